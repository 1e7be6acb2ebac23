package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mpetrun5/hobbylog/internal/metrics"
	"github.com/mpetrun5/hobbylog/internal/middleware"
	"github.com/mpetrun5/hobbylog/internal/models"
	"github.com/mpetrun5/hobbylog/internal/repo"
	"github.com/mpetrun5/hobbylog/internal/token"
)

type HobbyHandler struct {
	Repo *repo.HobbyRepo
}

type hobbyInput struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

// currentUser pulls the verified identity out of the request context.
// RequireAuth always runs first on these routes, so a miss means a wiring
// bug rather than a real request; it still answers 401.
func currentUser(w http.ResponseWriter, r *http.Request) (token.Identity, bool) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		JSONError(w, "not authenticated", http.StatusUnauthorized)
	}
	return id, ok
}

// hobbyID parses the {id} route parameter. A non-numeric id cannot name an
// existing hobby, so it gets the same 404 as an unowned one.
func hobbyID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "hobby not found", http.StatusNotFound)
		return 0, false
	}
	return id, true
}

//
// ==========================
// List Hobbies
// ==========================
//

func (h *HobbyHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	hobbies, err := h.Repo.ListWithStats(user.UserID)
	if err != nil {
		slog.Error("list hobbies failed", "error", err, "user_id", user.UserID)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if hobbies == nil {
		hobbies = []models.HobbyWithStats{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"hobbies": hobbies})
}

//
// ==========================
// Create Hobby
// ==========================
//

func (h *HobbyHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input hobbyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(input); err != nil {
		JSONError(w, validationMessage(err), http.StatusBadRequest)
		return
	}

	hobby, err := h.Repo.Create(user.UserID, input.Name, input.Description, input.Category)
	if err != nil {
		slog.Error("create hobby failed", "error", err, "user_id", user.UserID)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.HobbiesCreated.Inc()
	writeJSON(w, http.StatusCreated, map[string]interface{}{"hobby": hobby})
}

//
// ==========================
// Get Hobby
// ==========================
//

func (h *HobbyHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := hobbyID(w, r)
	if !ok {
		return
	}

	hobby, err := h.Repo.Get(user.UserID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "hobby not found", http.StatusNotFound)
			return
		}
		slog.Error("get hobby failed", "error", err, "hobby_id", id)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"hobby": hobby})
}

//
// ==========================
// Update Hobby
// ==========================
//

func (h *HobbyHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := hobbyID(w, r)
	if !ok {
		return
	}

	var input hobbyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(input); err != nil {
		JSONError(w, validationMessage(err), http.StatusBadRequest)
		return
	}

	hobby, err := h.Repo.Update(user.UserID, id, input.Name, input.Description, input.Category)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "hobby not found", http.StatusNotFound)
			return
		}
		slog.Error("update hobby failed", "error", err, "hobby_id", id)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"hobby": hobby})
}

//
// ==========================
// Delete Hobby
// ==========================
//

func (h *HobbyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := hobbyID(w, r)
	if !ok {
		return
	}

	if err := h.Repo.Delete(user.UserID, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "hobby not found", http.StatusNotFound)
			return
		}
		slog.Error("delete hobby failed", "error", err, "hobby_id", id)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
