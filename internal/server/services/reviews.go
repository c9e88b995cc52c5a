package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/repomanager"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100

	maxCommentLen = 4000
	maxBookIDLen  = 128
)

// ReviewService creates, lists and mutates reviews. Every mutation of an
// existing review first loads it and compares its owner with the requester.
type ReviewService struct {
	repos repomanager.RepositoryManager
}

func NewReviewService(m repomanager.RepositoryManager) *ReviewService {
	return &ReviewService{repos: m}
}

func validateRating(rating int) error {
	if rating < models.MinRating || rating > models.MaxRating {
		return common.NewValidationError("rating", fmt.Sprintf("must be between %d and %d", models.MinRating, models.MaxRating))
	}
	return nil
}

func validateComment(comment string) error {
	if comment == "" {
		return common.NewValidationError("comment", "required")
	}
	if len(comment) > maxCommentLen {
		return common.NewValidationError("comment", "too long")
	}
	return nil
}

// Create stores a review owned by ownerID, which must come from a verified
// token.
func (s *ReviewService) Create(ctx context.Context, ownerID, bookID, comment string, rating int) (*models.Review, error) {
	bookID = strings.TrimSpace(bookID)
	comment = strings.TrimSpace(comment)

	if bookID == "" {
		return nil, common.NewValidationError("bookId", "required")
	}
	if len(bookID) > maxBookIDLen {
		return nil, common.NewValidationError("bookId", "too long")
	}
	if err := validateComment(comment); err != nil {
		return nil, err
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}

	review, err := s.repos.Reviews().Create(ctx, &models.Review{
		UserID:  ownerID,
		BookID:  bookID,
		Rating:  rating,
		Comment: comment,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating review: %w", err)
	}
	return review, nil
}

// List returns reviews matching filter, newest first. With neither BookID
// nor UserID set it returns the latest reviews across all books. A zero
// Limit means DefaultListLimit; a negative one or one above MaxListLimit is
// rejected.
func (s *ReviewService) List(ctx context.Context, filter models.ReviewFilter) ([]*models.Review, error) {
	switch {
	case filter.Limit == 0:
		filter.Limit = DefaultListLimit
	case filter.Limit < 0 || filter.Limit > MaxListLimit:
		return nil, common.NewValidationError("limit", fmt.Sprintf("must be between 1 and %d", MaxListLimit))
	}

	list, err := s.repos.Reviews().List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing reviews: %w", err)
	}
	return list, nil
}

// loadOwned fetches reviewID and checks that requesterID owns it.
func loadOwned(ctx context.Context, repos repomanager.Repositories, reviewID, requesterID string) (*models.Review, error) {
	review, err := repos.Reviews().Get(ctx, reviewID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error loading review: %w", err)
	}
	if review.UserID != requesterID {
		return nil, common.ErrorForbidden
	}
	return review, nil
}

// Update changes rating and comment of a review owned by requesterID. The
// ownership check precedes payload validation. An empty comment keeps the
// current one; rating is always required.
func (s *ReviewService) Update(ctx context.Context, reviewID, requesterID, comment string, rating int) (*models.Review, error) {
	review, err := loadOwned(ctx, s.repos, reviewID, requesterID)
	if err != nil {
		return nil, err
	}

	if comment = strings.TrimSpace(comment); comment != "" {
		if err := validateComment(comment); err != nil {
			return nil, err
		}
		review.Comment = comment
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	review.Rating = rating

	updated, err := s.repos.Reviews().Update(ctx, review)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating review: %w", err)
	}
	return updated, nil
}

// Delete removes a review owned by requesterID. Of two concurrent deletes
// the second reports common.ErrorNotFound.
func (s *ReviewService) Delete(ctx context.Context, reviewID, requesterID string) error {
	if _, err := loadOwned(ctx, s.repos, reviewID, requesterID); err != nil {
		return err
	}
	if err := s.repos.Reviews().Delete(ctx, reviewID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("error deleting review: %w", err)
	}
	return nil
}
