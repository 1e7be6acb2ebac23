package main

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates
var templatesFS embed.FS

const (
	cookieName  = "hobbylog_token"
	defaultPort = "3000"
	defaultAPI  = "http://localhost:8080"
	envWebPort  = "HOBBYLOG_WEB_PORT"
	envAPIURL   = "HOBBYLOG_API_URL"
)

var tmpl = template.Must(template.New("").Funcs(template.FuncMap{
	"minutes": formatMinutes,
}).ParseFS(templatesFS, "templates/*.html"))

func main() {
	port := getEnv(envWebPort, defaultPort)
	apiBase := getEnv(envAPIURL, defaultAPI)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(gate)

	// Health (no auth, no templates)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	// Public
	r.Get("/", root)
	r.Get("/login", loginForm)
	r.Post("/login", loginSubmit(apiBase))
	r.Get("/logout", logout)

	// Everything below needs a token cookie; the gate already bounced
	// cookieless requests to /login.
	r.Get("/dashboard", dashboard(apiBase))
	r.Post("/hobbies", hobbyCreate(apiBase))
	r.Get("/hobbies/{id}", hobbyDetail(apiBase))
	r.Get("/hobbies/{id}/edit", hobbyEditForm(apiBase))
	r.Post("/hobbies/{id}/edit", hobbyUpdate(apiBase))
	r.Post("/hobbies/{id}/delete", hobbyDelete(apiBase))
	r.Post("/hobbies/{id}/sessions", sessionCreate(apiBase))

	log.Printf("Web UI running on http://localhost:%s (API: %s)", port, apiBase)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}

// gate decides routability only, from cookie presence and path. It never
// verifies the token; the API re-verifies on every request the pages make,
// so an expired cookie that passes here still ends at the login page.
func gate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := r.Cookie(cookieName)
		hasToken := err == nil
		path := r.URL.Path
		public := path == "/login" || path == "/logout" || path == "/healthz"

		if !hasToken && !public && path != "/" {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		if hasToken && path == "/login" {
			http.Redirect(w, r, "/dashboard", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func root(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(cookieName); err == nil {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

//
// ==========================
// Auth pages
// ==========================
//

func loginForm(w http.ResponseWriter, r *http.Request) {
	render(w, "login.html", map[string]interface{}{
		"Error": r.URL.Query().Get("error") != "",
	})
}

func loginSubmit(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{
			"username": r.FormValue("username"),
			"password": r.FormValue("password"),
		}

		body, status, err := apiSend(apiBase, "POST", "/api/auth/login", "", payload)
		if err != nil || status != http.StatusOK {
			http.Redirect(w, r, "/login?error=1", http.StatusFound)
			return
		}

		var out struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(body, &out); err != nil || out.Token == "" {
			http.Redirect(w, r, "/login?error=1", http.StatusFound)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    out.Token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
			MaxAge:   7 * 24 * 60 * 60,
		})
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	}
}

func logout(w http.ResponseWriter, r *http.Request) {
	clearCookie(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

//
// ==========================
// Hobby pages
// ==========================
//

type hobbyView struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Description    *string `json:"description"`
	Category       *string `json:"category"`
	TotalTimeSpent int     `json:"total_time_spent"`
	SessionCount   int     `json:"session_count"`
}

type sessionView struct {
	ID       int     `json:"id"`
	Duration int     `json:"duration"`
	Notes    *string `json:"notes"`
	Date     string  `json:"date"`
}

func dashboard(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, status, err := apiSend(apiBase, "GET", "/api/hobbies", tokenFrom(r), nil)
		if status == http.StatusUnauthorized {
			clearAuthAndRedirectToLogin(w, r)
			return
		}
		if err != nil || status != http.StatusOK {
			http.Error(w, "failed to load hobbies", http.StatusBadGateway)
			return
		}

		var out struct {
			Hobbies []hobbyView `json:"hobbies"`
		}
		if err := json.Unmarshal(body, &out); err != nil {
			http.Error(w, "failed to load hobbies", http.StatusBadGateway)
			return
		}

		render(w, "dashboard.html", map[string]interface{}{
			"Hobbies": out.Hobbies,
		})
	}
}

func hobbyCreate(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]interface{}{"name": r.FormValue("name")}
		if v := r.FormValue("description"); v != "" {
			payload["description"] = v
		}
		if v := r.FormValue("category"); v != "" {
			payload["category"] = v
		}

		_, status, _ := apiSend(apiBase, "POST", "/api/hobbies", tokenFrom(r), payload)
		if status == http.StatusUnauthorized {
			clearAuthAndRedirectToLogin(w, r)
			return
		}
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	}
}

func hobbyDetail(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		hobbyBody, status, err := apiSend(apiBase, "GET", "/api/hobbies/"+id, tokenFrom(r), nil)
		if status == http.StatusUnauthorized {
			clearAuthAndRedirectToLogin(w, r)
			return
		}
		if status == http.StatusNotFound {
			http.NotFound(w, r)
			return
		}
		if err != nil || status != http.StatusOK {
			http.Error(w, "failed to load hobby", http.StatusBadGateway)
			return
		}

		sessionsBody, status, err := apiSend(apiBase, "GET", "/api/hobbies/"+id+"/sessions", tokenFrom(r), nil)
		if err != nil || status != http.StatusOK {
			http.Error(w, "failed to load sessions", http.StatusBadGateway)
			return
		}

		var hobbyOut struct {
			Hobby hobbyView `json:"hobby"`
		}
		var sessionsOut struct {
			Sessions []sessionView `json:"sessions"`
		}
		if json.Unmarshal(hobbyBody, &hobbyOut) != nil || json.Unmarshal(sessionsBody, &sessionsOut) != nil {
			http.Error(w, "failed to load hobby", http.StatusBadGateway)
			return
		}

		total := 0
		for _, s := range sessionsOut.Sessions {
			total += s.Duration
		}

		render(w, "hobby.html", map[string]interface{}{
			"Hobby":    hobbyOut.Hobby,
			"Sessions": sessionsOut.Sessions,
			"Total":    total,
		})
	}
}

func hobbyEditForm(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		body, status, err := apiSend(apiBase, "GET", "/api/hobbies/"+id, tokenFrom(r), nil)
		if status == http.StatusUnauthorized {
			clearAuthAndRedirectToLogin(w, r)
			return
		}
		if status == http.StatusNotFound {
			http.NotFound(w, r)
			return
		}
		if err != nil || status != http.StatusOK {
			http.Error(w, "failed to load hobby", http.StatusBadGateway)
			return
		}

		var out struct {
			Hobby hobbyView `json:"hobby"`
		}
		if err := json.Unmarshal(body, &out); err != nil {
			http.Error(w, "failed to load hobby", http.StatusBadGateway)
			return
		}

		render(w, "hobby_edit.html", map[string]interface{}{"Hobby": out.Hobby})
	}
}

func hobbyUpdate(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		payload := map[string]interface{}{"name": r.FormValue("name")}
		if v := r.FormValue("description"); v != "" {
			payload["description"] = v
		}
		if v := r.FormValue("category"); v != "" {
			payload["category"] = v
		}

		_, status, _ := apiSend(apiBase, "PUT", "/api/hobbies/"+id, tokenFrom(r), payload)
		if status == http.StatusUnauthorized {
			clearAuthAndRedirectToLogin(w, r)
			return
		}
		http.Redirect(w, r, "/hobbies/"+id, http.StatusFound)
	}
}

func hobbyDelete(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		_, status, _ := apiSend(apiBase, "DELETE", "/api/hobbies/"+id, tokenFrom(r), nil)
		if status == http.StatusUnauthorized {
			clearAuthAndRedirectToLogin(w, r)
			return
		}
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	}
}

func sessionCreate(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		payload := map[string]interface{}{
			"duration": atoiOrZero(r.FormValue("duration")),
			"date":     r.FormValue("date"),
		}
		if v := r.FormValue("notes"); v != "" {
			payload["notes"] = v
		}

		_, status, _ := apiSend(apiBase, "POST", "/api/hobbies/"+id+"/sessions", tokenFrom(r), payload)
		if status == http.StatusUnauthorized {
			clearAuthAndRedirectToLogin(w, r)
			return
		}
		http.Redirect(w, r, "/hobbies/"+id, http.StatusFound)
	}
}

//
// ==========================
// Helpers
// ==========================
//

// apiSend performs an API request with an optional bearer token and JSON payload.
func apiSend(apiBase, method, path, token string, payload interface{}) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, apiBase+path, reqBody)
	if err != nil {
		return nil, 0, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return body, resp.StatusCode, err
}

func tokenFrom(r *http.Request) string {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
}

func clearAuthAndRedirectToLogin(w http.ResponseWriter, r *http.Request) {
	clearCookie(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

func render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
	}
}

// formatMinutes renders a minute count as "2h 15m" (or "45m").
func formatMinutes(min int) string {
	if min < 60 {
		return fmt.Sprintf("%dm", min)
	}
	if min%60 == 0 {
		return fmt.Sprintf("%dh", min/60)
	}
	return fmt.Sprintf("%dh %dm", min/60, min%60)
}

func atoiOrZero(s string) int {
	n := 0
	fmt.Sscanf(strings.TrimSpace(s), "%d", &n)
	return n
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
