// Package server wires repositories, handlers and the middleware chain into
// the API's HTTP router.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mpetrun5/hobbylog/internal/config"
	"github.com/mpetrun5/hobbylog/internal/handlers"
	mw "github.com/mpetrun5/hobbylog/internal/middleware"
	"github.com/mpetrun5/hobbylog/internal/repo"
	"github.com/mpetrun5/hobbylog/internal/token"
)

type Server struct {
	Router     *chi.Mux
	httpServer *http.Server
	tlsCert    string
	tlsKey     string
}

// New builds the router with every repository constructed against the given
// database handle. Nothing global: the handle is injected here and flows
// down through the repos.
func New(cfg config.Config, db *sql.DB) *Server {
	tokens := token.NewService([]byte(cfg.JWTSecret), time.Duration(cfg.TokenTTLDays)*24*time.Hour)

	users := repo.NewUserRepo(db)
	hobbies := repo.NewHobbyRepo(db)
	sessions := repo.NewSessionRepo(db)

	useTLS := cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""

	authH := &handlers.AuthHandler{
		Users:        users,
		Tokens:       tokens,
		CookieMaxAge: cfg.TokenTTLDays * 24 * 60 * 60,
		SecureCookie: useTLS,
	}
	hobbyH := &handlers.HobbyHandler{Repo: hobbies}
	sessionH := &handlers.SessionHandler{Repo: sessions}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.Recoverer)
	r.Use(mw.RequestLog)
	r.Use(mw.SecurityHeaders(useTLS))
	r.Use(mw.CORS(cfg.CORSAllowedOrigins))
	r.Use(mw.Prometheus)
	r.Use(mw.MaxBytes(mw.DefaultMaxBodyBytes))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authH.Login)
		r.Post("/auth/logout", authH.Logout)

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAuth(tokens))

			r.Get("/auth/me", authH.Me)

			r.Route("/hobbies", func(r chi.Router) {
				r.Get("/", hobbyH.List)
				r.Post("/", hobbyH.Create)
				r.Get("/{id}", hobbyH.Get)
				r.Put("/{id}", hobbyH.Update)
				r.Delete("/{id}", hobbyH.Delete)
				r.Get("/{id}/sessions", sessionH.List)
				r.Post("/{id}/sessions", sessionH.Create)
			})
		})
	})

	return &Server{
		Router: r,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Port),
			Handler:      r,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		tlsCert: cfg.TLSCertFile,
		tlsKey:  cfg.TLSKeyFile,
	}
}

// Start runs the HTTP (or HTTPS, when certificates are configured) server.
func (s *Server) Start() error {
	if s.tlsCert != "" && s.tlsKey != "" {
		return s.httpServer.ListenAndServeTLS(s.tlsCert, s.tlsKey)
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
