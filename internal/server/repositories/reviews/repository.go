// Package reviews persists book reviews. List returns newest first. Update
// changes only rating, comment and updated_at; the owner is never rewritten.
package reviews

import (
	"context"

	"github.com/dmitrijs2005/bookshelf/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	Get(ctx context.Context, id string) (*models.Review, error)
	List(ctx context.Context, filter models.ReviewFilter) ([]*models.Review, error)
	Update(ctx context.Context, review *models.Review) (*models.Review, error)
	// Delete removes one review; common.ErrorNotFound if nothing was removed.
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}
