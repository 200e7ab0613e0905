// Package http exposes the controller over a JSON API.
package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/soulai-app/soulai/internal/controller"
	"github.com/soulai-app/soulai/internal/conversation"
	"github.com/soulai-app/soulai/internal/domain"
)

const defaultReportsPageSize = 20

// Handler binds the controller's operations to routes.
type Handler struct {
	ctrl *controller.Controller
	log  *slog.Logger
}

// NewHandler creates the API handler.
func NewHandler(ctrl *controller.Controller, log *slog.Logger) *Handler {
	return &Handler{ctrl: ctrl, log: log}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	session, err := h.ctrl.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.ctrl.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) viewState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.ctrl.ViewState())
}

func (h *Handler) navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	if err := h.ctrl.Navigate(req.View); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, h.ctrl.ViewState())
}

func (h *Handler) currentCandidate(w http.ResponseWriter, _ *http.Request) {
	profile, ok, err := h.ctrl.CurrentCandidate()
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	resp := candidateResponse{Exhausted: !ok}
	if ok {
		resp.Profile = &profile
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) like(w http.ResponseWriter, r *http.Request) {
	result, err := h.ctrl.Like(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) pass(w http.ResponseWriter, _ *http.Request) {
	if err := h.ctrl.Pass(); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) matches(w http.ResponseWriter, _ *http.Request) {
	matches, err := h.ctrl.Matches()
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if matches == nil {
		matches = []controller.MatchView{}
	}
	writeJSON(w, http.StatusOK, matches)
}

func (h *Handler) openChat(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.SelectChat(chi.URLParam(r, "matchID")); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, h.ctrl.ViewState())
}

func (h *Handler) back(w http.ResponseWriter, _ *http.Request) {
	if err := h.ctrl.Back(); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, h.ctrl.ViewState())
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	history, err := h.ctrl.History(chi.URLParam(r, "matchID"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if history == nil {
		history = []domain.Message{}
	}
	writeJSON(w, http.StatusOK, history)
}

func (h *Handler) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	msg, err := h.ctrl.SendMessage(r.Context(), chi.URLParam(r, "matchID"),
		conversation.Content{Text: req.Text, ImageURL: req.ImageURL})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

func (h *Handler) fileReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	report, err := h.ctrl.Report(r.Context(), req.TargetID, req.Reason)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

func (h *Handler) listReports(w http.ResponseWriter, r *http.Request) {
	limit := defaultReportsPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	var pageToken *string
	if raw := r.URL.Query().Get("pageToken"); raw != "" {
		pageToken = &raw
	}

	reports, next, err := h.ctrl.Reports(pageToken, limit)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if reports == nil {
		reports = []domain.Report{}
	}
	writeJSON(w, http.StatusOK, reportsResponse{Reports: reports, NextPageToken: next})
}

func (h *Handler) resolveReport(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.ResolveReport(r.Context(), chi.URLParam(r, "reportID")); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ban(w http.ResponseWriter, r *http.Request) {
	var req banRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	if err := h.ctrl.Ban(r.Context(), req.TargetID); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) icebreakers(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	suggestions, err := h.ctrl.Icebreakers(r.Context(), req.MatchID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, icebreakersResponse{Suggestions: suggestions})
}

func (h *Handler) advice(w http.ResponseWriter, r *http.Request) {
	advice, err := h.ctrl.Advice(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, adviceResponse{Advice: advice})
}

func (h *Handler) compatibility(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	result, err := h.ctrl.CompatibilityCheck(r.Context(), req.MatchID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) dismissCelebration(w http.ResponseWriter, _ *http.Request) {
	h.ctrl.DismissCelebration()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getProfile(w http.ResponseWriter, _ *http.Request) {
	profile, err := h.ctrl.Profile()
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req domain.Profile
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	profile, err := h.ctrl.UpdateProfile(r.Context(), req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) completeOnboarding(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.CompleteOnboarding(r.Context()); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
