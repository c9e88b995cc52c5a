package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Router builds the route tree. Routes that mutate state sit behind
// RequireAuth.
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()

	if len(s.cfg.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(s.logger))
	r.Use(middleware.Recoverer)
	if s.cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.cfg.RequestTimeout))
	}

	r.Get("/health", s.handleHealth)

	r.Post("/auth", s.handleLogin)
	r.Post("/users", s.handleRegister)
	r.Get("/reviews", s.handleListReviews)

	r.Route("/books", func(r chi.Router) {
		r.Get("/", s.handleSearchBooks)
		r.Get("/{id}", s.handleGetBook)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.RequireAuth)

		r.Get("/users", s.handleProfile)
		r.Patch("/users", s.handleUpdateProfile)
		r.Delete("/users", s.handleDeleteAccount)

		r.Post("/reviews", s.handleCreateReview)
		r.Patch("/reviews/{id}", s.handleUpdateReview)
		r.Delete("/reviews/{id}", s.handleDeleteReview)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "not_found", "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	return r
}
