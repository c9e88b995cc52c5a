package reviews

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "reviews"

var (
	newID = uuid.NewString
	now   = func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }
)

// MongoRepository stores reviews as documents keyed by a UUID string.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

// Indexes backs the book and author listings and the latest feed.
func Indexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "book_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
}

func (r *MongoRepository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	doc := *review
	doc.ID = newID()
	doc.CreatedAt = now()
	doc.UpdatedAt = doc.CreatedAt

	if _, err := r.coll.InsertOne(ctx, &doc); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	*review = doc
	return review, nil
}

func (r *MongoRepository) Get(ctx context.Context, id string) (*models.Review, error) {
	review := &models.Review{}
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(review); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return review, nil
}

func (r *MongoRepository) List(ctx context.Context, filter models.ReviewFilter) ([]*models.Review, error) {
	q := bson.D{}
	if filter.BookID != "" {
		q = append(q, bson.E{Key: "book_id", Value: filter.BookID})
	}
	if filter.UserID != "" {
		q = append(q, bson.E{Key: "user_id", Value: filter.UserID})
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cur, err := r.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to select reviews: %w", err)
	}

	result := make([]*models.Review, 0)
	if err := cur.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *MongoRepository) Update(ctx context.Context, review *models.Review) (*models.Review, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "rating", Value: review.Rating},
		{Key: "comment", Value: review.Comment},
		{Key: "updated_at", Value: now()},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	updated := &models.Review{}
	err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: review.ID}}, update, opts).Decode(updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return updated, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *MongoRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{{Key: "user_id", Value: userID}})
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.DeletedCount, nil
}
