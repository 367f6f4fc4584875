package server

import (
	"log/slog"
	"net/http"

	"github.com/alfredjeanlab/jobly/internal/events"
	"github.com/alfredjeanlab/jobly/internal/model"
	"github.com/alfredjeanlab/jobly/internal/store"
)

// createCompanyInput is the JSON body for POST /v1/companies.
type createCompanyInput struct {
	Handle       string `json:"handle"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	NumEmployees *int   `json:"numEmployees"`
	LogoURL      string `json:"logoUrl"`
}

// handleListCompanies handles GET /v1/companies.
func (s *JoblyServer) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	filter, err := parseCompanyFilter(r.URL.Query())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	companies, err := s.store.ListCompanies(r.Context(), filter)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if companies == nil {
		companies = []*model.Company{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"companies": companies})
}

// handleCreateCompany handles POST /v1/companies.
func (s *JoblyServer) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	var in createCompanyInput
	if err := decodeBody(r.Body, &in); err != nil {
		writeStoreError(w, r, err)
		return
	}

	company := &model.Company{
		Handle:       in.Handle,
		Name:         in.Name,
		Description:  in.Description,
		NumEmployees: in.NumEmployees,
		LogoURL:      in.LogoURL,
	}
	if err := model.ValidateCompany(company); err != nil {
		writeStoreError(w, r, err)
		return
	}

	created, err := s.store.CreateCompany(r.Context(), company)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	slog.Info("company created", "handle", created.Handle)
	s.publish(r.Context(), events.TopicCompanyCreated, created.Handle, events.CompanyCreated{Company: created})
	writeJSON(w, http.StatusCreated, map[string]any{"company": created})
}

// handleGetCompany handles GET /v1/companies/{handle}. The company and its
// jobs are read in one transaction.
func (s *JoblyServer) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")

	var detail model.CompanyDetail
	err := s.store.RunInTransaction(r.Context(), func(tx store.Store) error {
		company, err := tx.GetCompany(r.Context(), handle)
		if err != nil {
			return err
		}
		jobs, err := tx.ListCompanyJobs(r.Context(), handle)
		if err != nil {
			return err
		}
		if jobs == nil {
			jobs = []*model.Job{}
		}
		detail = model.CompanyDetail{Company: *company, Jobs: jobs}
		return nil
	})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"company": detail})
}

// handleUpdateCompany handles PATCH /v1/companies/{handle}.
func (s *JoblyServer) handleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")

	patch, err := decodePatch(r.Body, model.CompanyPatchRules)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	updated, err := s.store.UpdateCompany(r.Context(), handle, patch)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	slog.Info("company updated", "handle", handle, "fields", patch.Names())
	s.publish(r.Context(), events.TopicCompanyUpdated, handle, events.CompanyUpdated{
		Company: updated,
		Changes: patch.Map(),
	})
	writeJSON(w, http.StatusOK, map[string]any{"company": updated})
}

// handleDeleteCompany handles DELETE /v1/companies/{handle}.
func (s *JoblyServer) handleDeleteCompany(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")

	if err := s.store.DeleteCompany(r.Context(), handle); err != nil {
		writeStoreError(w, r, err)
		return
	}

	slog.Info("company deleted", "handle", handle)
	s.publish(r.Context(), events.TopicCompanyDeleted, handle, events.CompanyDeleted{Handle: handle})
	writeJSON(w, http.StatusOK, map[string]string{"deleted": handle})
}
