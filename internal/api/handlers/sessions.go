package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/spendlens/spendlens/internal/api/dto"
	"github.com/spendlens/spendlens/internal/infrastructure/storage"
	"github.com/spendlens/spendlens/internal/report"
)

// SessionsHandler serves stored analysis sessions.
type SessionsHandler struct {
	*Base
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(repo storage.Repository) *SessionsHandler {
	return &SessionsHandler{Base: NewBase(repo)}
}

// List handles GET /api/sessions.
func (h *SessionsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := ParseIntParam(r, "limit", 50)

	summaries, err := h.repo.ListSessions(limit)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	sessions := make([]dto.SessionSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		sessions = append(sessions, dto.SessionSummaryResponse{
			ID:               s.ID,
			CreatedAt:        s.CreatedAt,
			Source:           s.Source,
			TransactionCount: s.TransactionCount,
			TotalSpent:       s.TotalSpent,
		})
	}

	h.WriteJSON(w, http.StatusOK, dto.SessionListResponse{
		Sessions:   sessions,
		TotalCount: len(sessions),
	})
}

// Get handles GET /api/sessions/{id}.
func (h *SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.SessionResponse{
		ID:           session.ID,
		CreatedAt:    session.CreatedAt,
		Source:       session.Source,
		Transactions: session.Transactions,
		Insights:     session.Insights,
	})
}

// Delete handles DELETE /api/sessions/{id}.
func (h *SessionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.repo.DeleteSession(id)
	if errors.Is(err, storage.ErrSessionNotFound) {
		h.WriteError(w, http.StatusNotFound, dto.NotFoundError("session"))
		return
	}
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Report handles GET /api/sessions/{id}/report - the markdown rendering.
func (h *SessionsHandler) Report(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(report.Markdown(session.Insights)))
}

// Charts handles GET /api/sessions/{id}/charts - chart-ready datasets.
func (h *SessionsHandler) Charts(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.ChartsFrom(session.Insights))
}

func (h *SessionsHandler) lookup(w http.ResponseWriter, r *http.Request) (*storage.AnalysisSession, bool) {
	id := chi.URLParam(r, "id")

	session, err := h.repo.GetSession(id)
	if errors.Is(err, storage.ErrSessionNotFound) {
		h.WriteError(w, http.StatusNotFound, dto.NotFoundError("session"))
		return nil, false
	}
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return nil, false
	}

	return session, true
}
