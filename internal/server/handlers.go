// internal/server/handlers.go
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	stderrors "competition-intake/internal/common/errors"
	"competition-intake/internal/common/metrics"
	"competition-intake/internal/export"
	"competition-intake/internal/models"
	"competition-intake/internal/paging"
	"competition-intake/internal/validation"
)

const maxSubmissionBytes = 1 << 20 // form payloads are small; reject anything bigger

type submitResponse struct {
	Success       bool   `json:"success"`
	ApplicationID string `json:"applicationId"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSubmissionBytes))
	if err != nil {
		s.errs.WriteHTTP(w, err)
		return
	}

	if err := validation.ValidateSubmission(body); err != nil {
		metrics.ApplicationsRejected.WithLabelValues("validation").Inc()
		s.errs.WriteHTTP(w, err)
		return
	}

	var sub models.Submission
	if err := json.Unmarshal(body, &sub); err != nil {
		s.errs.WriteHTTP(w, err)
		return
	}

	app, err := s.store.Create(r.Context(), &sub)
	if err != nil {
		if stdErr, ok := err.(*stderrors.StandardError); ok {
			switch stdErr.Code {
			case stderrors.ErrCodeDuplicateEmail:
				metrics.ApplicationsRejected.WithLabelValues("duplicate_email").Inc()
			case stderrors.ErrCodeDuplicateDiscordID:
				metrics.ApplicationsRejected.WithLabelValues("duplicate_discord").Inc()
			default:
				metrics.ApplicationsRejected.WithLabelValues("storage").Inc()
			}
		}
		s.errs.WriteHTTP(w, err)
		return
	}

	metrics.ApplicationsSubmitted.Inc()

	// Best-effort; the record is already committed, so a failed send must not
	// turn this response into a failure.
	if s.notifier != nil {
		s.notifier.Submitted(r.Context(), app)
	}

	writeJSON(w, http.StatusCreated, submitResponse{
		Success:       true,
		ApplicationID: app.ID,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	apps, err := s.store.List(r.Context())
	if err != nil {
		s.errs.WriteHTTP(w, err)
		return
	}

	apps = paging.Filter(apps, r.URL.Query().Get("q"))

	page := queryInt(r, "page", paging.DefaultPage)
	pageSize := queryInt(r, "pageSize", paging.DefaultPageSize)

	writeJSON(w, http.StatusOK, paging.Paginate(apps, page, pageSize))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	app, err := s.store.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.errs.WriteHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteByID(r.Context(), r.PathValue("id")); err != nil {
		s.errs.WriteHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.errs.WriteHTTP(w, err)
		return
	}

	apps, err := s.store.List(r.Context())
	if err != nil {
		s.errs.WriteHTTP(w, err)
		return
	}
	paging.SortByCreatedAtDesc(apps)

	payload, err := export.Marshal(apps, format)
	if err != nil {
		s.errs.WriteHTTP(w, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s", format.Filename()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
