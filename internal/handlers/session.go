package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mpetrun5/hobbylog/internal/metrics"
	"github.com/mpetrun5/hobbylog/internal/models"
	"github.com/mpetrun5/hobbylog/internal/repo"
)

type SessionHandler struct {
	Repo *repo.SessionRepo
}

type sessionInput struct {
	Duration int     `json:"duration" validate:"required,gt=0"`
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
	Notes    *string `json:"notes"`
}

//
// ==========================
// List Sessions
// ==========================
//

func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := hobbyID(w, r)
	if !ok {
		return
	}

	sessions, err := h.Repo.ListForHobby(user.UserID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "hobby not found", http.StatusNotFound)
			return
		}
		slog.Error("list sessions failed", "error", err, "hobby_id", id)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if sessions == nil {
		sessions = []models.Session{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": sessions})
}

//
// ==========================
// Create Session
// ==========================
//

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := hobbyID(w, r)
	if !ok {
		return
	}

	var input sessionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	// Fail fast: nothing is written when duration or date is bad.
	if err := validate.Struct(input); err != nil {
		JSONError(w, validationMessage(err), http.StatusBadRequest)
		return
	}

	session, err := h.Repo.Create(user.UserID, id, input.Duration, input.Date, input.Notes)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "hobby not found", http.StatusNotFound)
			return
		}
		slog.Error("create session failed", "error", err, "hobby_id", id)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.SessionsLogged.Inc()
	metrics.SessionMinutes.Add(float64(session.Duration))
	writeJSON(w, http.StatusCreated, map[string]interface{}{"session": session})
}
