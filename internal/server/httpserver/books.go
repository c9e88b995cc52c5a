package httpserver

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/go-chi/chi/v5"
)

func (s *HTTPServer) handleGetBook(w http.ResponseWriter, r *http.Request) {
	book, err := s.deps.Catalog.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, book)
}

func (s *HTTPServer) handleSearchBooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 1
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, r, common.NewValidationError("page", "must be a positive integer"))
			return
		}
		page = n
	}

	result, err := s.deps.Catalog.Search(r.Context(), q.Get("q"), page)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Store.Ping(r.Context()); err != nil {
		s.logger.Warn(r.Context(), "health check failed", "error", err)
		respondError(w, http.StatusServiceUnavailable, "unavailable", "storage unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
