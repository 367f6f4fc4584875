package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/alfredjeanlab/jobly/internal/model"
)

// healthTimeout bounds the database ping behind GET /v1/health.
const healthTimeout = 2 * time.Second

// NewHTTPHandler returns an http.Handler with all routes registered.
// When adminToken is non-empty, mutating routes require a valid
// Authorization: Bearer <token> header. Reads are always open.
func (s *JoblyServer) NewHTTPHandler(adminToken string) http.Handler {
	admin := func(h http.HandlerFunc) http.Handler { return RequireAdmin(adminToken, h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	mux.HandleFunc("GET /v1/events/stream", s.handleEventStream)

	mux.HandleFunc("GET /v1/companies", s.handleListCompanies)
	mux.Handle("POST /v1/companies", admin(s.handleCreateCompany))
	mux.HandleFunc("GET /v1/companies/{handle}", s.handleGetCompany)
	mux.Handle("PATCH /v1/companies/{handle}", admin(s.handleUpdateCompany))
	mux.Handle("DELETE /v1/companies/{handle}", admin(s.handleDeleteCompany))

	mux.HandleFunc("GET /v1/jobs", s.handleListJobs)
	mux.Handle("POST /v1/jobs", admin(s.handleCreateJob))
	mux.HandleFunc("GET /v1/jobs/{title}", s.handleGetJob)
	mux.Handle("PATCH /v1/jobs/{title}", admin(s.handleUpdateJob))
	mux.Handle("DELETE /v1/jobs/{title}", admin(s.handleDeleteJob))

	return RequestLogger(RecoverHTTP(mux))
}

// handleHealth handles GET /v1/health.
func (s *JoblyServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		slog.Warn("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeStoreError maps a classified error to its HTTP status. Unclassified
// errors are logged and reported as 500 without leaking driver detail.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch model.KindOf(err) {
	case model.KindInvalidInput, model.KindDuplicate:
		writeError(w, http.StatusBadRequest, err.Error())
	case model.KindNotFound:
		writeError(w, http.StatusNotFound, err.Error())
	default:
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", RequestIDFrom(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
