package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/alfredjeanlab/jobly/internal/events"
	"github.com/alfredjeanlab/jobly/internal/model"
)

// createJobInput is the JSON body for POST /v1/jobs. Equity may be sent as a
// number or a numeric string.
type createJobInput struct {
	Title         string       `json:"title"`
	Salary        *int         `json:"salary"`
	Equity        *json.Number `json:"equity"`
	CompanyHandle string       `json:"companyHandle"`
}

// handleListJobs handles GET /v1/jobs.
func (s *JoblyServer) handleListJobs(w http.ResponseWriter, r *http.Request) {
	filter, err := parseJobFilter(r.URL.Query())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	jobs, err := s.store.ListJobs(r.Context(), filter)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if jobs == nil {
		jobs = []*model.Job{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// handleCreateJob handles POST /v1/jobs.
func (s *JoblyServer) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var in createJobInput
	if err := decodeBody(r.Body, &in); err != nil {
		writeStoreError(w, r, err)
		return
	}

	job := &model.Job{
		Title:         in.Title,
		Salary:        in.Salary,
		Equity:        numberText(in.Equity),
		CompanyHandle: in.CompanyHandle,
	}
	if err := model.ValidateJob(job); err != nil {
		writeStoreError(w, r, err)
		return
	}

	created, err := s.store.CreateJob(r.Context(), job)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	slog.Info("job created", "title", created.Title, "company", created.CompanyHandle)
	s.publish(r.Context(), events.TopicJobCreated, created.Title, events.JobCreated{Job: created})
	writeJSON(w, http.StatusCreated, map[string]any{"job": created})
}

// handleGetJob handles GET /v1/jobs/{title}.
func (s *JoblyServer) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.store.GetJob(r.Context(), r.PathValue("title"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"job": job})
}

// handleUpdateJob handles PATCH /v1/jobs/{title}.
func (s *JoblyServer) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	title := r.PathValue("title")

	patch, err := decodePatch(r.Body, model.JobPatchRules)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	updated, err := s.store.UpdateJob(r.Context(), title, patch)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	slog.Info("job updated", "title", title, "fields", patch.Names())
	s.publish(r.Context(), events.TopicJobUpdated, title, events.JobUpdated{
		Job:     updated,
		Changes: patch.Map(),
	})
	writeJSON(w, http.StatusOK, map[string]any{"job": updated})
}

// handleDeleteJob handles DELETE /v1/jobs/{title}.
func (s *JoblyServer) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	title := r.PathValue("title")

	if err := s.store.DeleteJob(r.Context(), title); err != nil {
		writeStoreError(w, r, err)
		return
	}

	slog.Info("job deleted", "title", title)
	s.publish(r.Context(), events.TopicJobDeleted, title, events.JobDeleted{Title: title})
	writeJSON(w, http.StatusOK, map[string]string{"deleted": title})
}
