package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/mpetrun5/hobbylog/internal/middleware"
	"github.com/mpetrun5/hobbylog/internal/repo"
	"github.com/mpetrun5/hobbylog/internal/token"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Users  *repo.UserRepo
	Tokens *token.Service

	// CookieMaxAge is the auth cookie lifetime in seconds; matches the token TTL.
	CookieMaxAge int
	// SecureCookie marks the cookie Secure when the API serves HTTPS.
	SecureCookie bool
}

// ==========================
// Login
// ==========================

// Login verifies username/password, issues a token and sets the auth cookie.
// Unknown user and wrong password are the same 401 to the client.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	user, err := h.Users.GetByUsername(input.Username)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			slog.Error("login: fetch user failed", "error", err)
			JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
			return
		}
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	signed, err := h.Tokens.Issue(user.ID, user.Username)
	if err != nil {
		slog.Error("login: issue token failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   h.CookieMaxAge,
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": signed,
		"user":  user,
	})
}

// ==========================
// Logout
// ==========================

// Logout clears the auth cookie. Tokens are stateless, so this is the whole
// of revocation: a client that keeps a copy of the token keeps its validity.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ==========================
// Current User
// ==========================

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		JSONError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	user, err := h.Users.GetByID(id.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// Token outlived the user row; treat as unauthenticated.
			JSONError(w, "not authenticated", http.StatusUnauthorized)
			return
		}
		slog.Error("me: fetch user failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}
