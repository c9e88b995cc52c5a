package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a star rating with a comment on a catalog book.
//
// UserID is set once at creation from the verified token and never changes.
// BookID is the catalog volume id; it is not validated against the catalog.
type Review struct {
	ID        string    `db:"id" bson:"_id" json:"id"`
	UserID    string    `db:"user_id" bson:"user_id" json:"userId"`
	BookID    string    `db:"book_id" bson:"book_id" json:"bookId"`
	Rating    int       `db:"rating" bson:"rating" json:"rating"`
	Comment   string    `db:"comment" bson:"comment" json:"comment"`
	CreatedAt time.Time `db:"created_at" bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" bson:"updated_at" json:"updatedAt"`
}

// ReviewFilter selects reviews for listing. Empty fields do not filter.
// Limit <= 0 means no limit.
type ReviewFilter struct {
	BookID string
	UserID string
	Limit  int
}
