package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/go-chi/chi/v5"
)

type CreateReviewRequest struct {
	BookID  string `json:"bookId"`
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}

type UpdateReviewRequest struct {
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}

func (s *HTTPServer) handleListReviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ReviewFilter{
		BookID: q.Get("bookId"),
		UserID: q.Get("userId"),
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, common.NewValidationError("limit", "must be a non-negative integer"))
			return
		}
		filter.Limit = n
	}

	list, err := s.deps.Reviews.List(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (s *HTTPServer) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w)
		return
	}

	var req CreateReviewRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	review, err := s.deps.Reviews.Create(r.Context(), userID, req.BookID, req.Comment, req.Rating)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, review)
}

// handleUpdateReview checks ownership before the body is looked at, so a
// non-owner gets 403 even for a malformed payload.
func (s *HTTPServer) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w)
		return
	}

	// An undecodable body leaves rating at 0, which the service rejects
	// only after the ownership check.
	var req UpdateReviewRequest
	decodeErr := decodeBody(r, &req)
	if decodeErr != nil {
		req = UpdateReviewRequest{}
	}

	review, err := s.deps.Reviews.Update(r.Context(), chi.URLParam(r, "id"), userID, req.Comment, req.Rating)
	if err != nil {
		if decodeErr != nil && errors.Is(err, common.ErrorValidation) {
			err = decodeErr
		}
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, review)
}

func (s *HTTPServer) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w)
		return
	}

	if err := s.deps.Reviews.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: "review deleted"})
}
