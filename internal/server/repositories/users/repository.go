// Package users persists user accounts. Implementations report a missing
// account as common.ErrorNotFound and a username/email collision as
// common.ErrorAlreadyExists.
package users

import (
	"context"

	"github.com/dmitrijs2005/bookshelf/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// FindConflicts returns users, other than excludeID, that already hold
	// username or email. One round trip covers both fields.
	FindConflicts(ctx context.Context, username, email, excludeID string) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id string) error
}
