// Package repomanager selects the storage backend and hands out repositories
// bound to it. PostgreSQL (pgx + goose migrations) and MongoDB are supported;
// the DSN scheme decides which one is used.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookshelf/internal/server/config"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/reviews"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/users"
)

// Repositories is the set of repositories bound to one connection or
// transaction.
type Repositories interface {
	Users() users.Repository
	Reviews() reviews.Repository
}

type RepositoryManager interface {
	Repositories

	// WithinTx runs fn with repositories that share one transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error

	// RunMigrations brings the schema (tables or indexes) up to date.
	RunMigrations(ctx context.Context) error

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Open connects to the backend named by cfg.DatabaseDSN. Connections are
// established lazily; call Ping or RunMigrations to surface dial errors.
func Open(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	switch cfg.Storage() {
	case config.StorageMongo:
		return NewMongoRepositoryManager(ctx, cfg.DatabaseDSN, cfg.MongoDatabase)
	case config.StoragePostgres:
		return NewPostgresRepositoryManager(cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unsupported storage %q", cfg.Storage())
	}
}
