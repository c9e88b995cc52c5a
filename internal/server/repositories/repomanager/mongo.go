package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/reviews"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoRepositoryManager vends MongoDB-backed repositories.
//
// Standalone servers have no multi-document transactions, so WithinTx runs
// fn directly against the database; unique indexes still reject colliding
// usernames and emails.
type MongoRepositoryManager struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoRepositoryManager creates a client for uri. The driver dials lazily.
func NewMongoRepositoryManager(ctx context.Context, uri, database string) (*MongoRepositoryManager, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo init error: %w", err)
	}
	return &MongoRepositoryManager{client: client, db: client.Database(database)}, nil
}

// NewMongoRepositoryManagerFromDB wraps an existing database handle.
func NewMongoRepositoryManagerFromDB(db *mongo.Database) *MongoRepositoryManager {
	return &MongoRepositoryManager{client: db.Client(), db: db}
}

func (m *MongoRepositoryManager) Users() users.Repository {
	return users.NewMongoRepository(m.db)
}

func (m *MongoRepositoryManager) Reviews() reviews.Repository {
	return reviews.NewMongoRepository(m.db)
}

func (m *MongoRepositoryManager) WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return fn(ctx, m)
}

// RunMigrations creates the indexes each collection relies on.
func (m *MongoRepositoryManager) RunMigrations(ctx context.Context) error {
	if _, err := m.db.Collection(users.CollectionName).Indexes().CreateMany(ctx, users.Indexes()); err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	if _, err := m.db.Collection(reviews.CollectionName).Indexes().CreateMany(ctx, reviews.Indexes()); err != nil {
		return fmt.Errorf("create review indexes: %w", err)
	}
	return nil
}

func (m *MongoRepositoryManager) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
