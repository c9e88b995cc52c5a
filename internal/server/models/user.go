// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account. PasswordHash is never serialised to clients.
type User struct {
	ID           string    `db:"id" bson:"_id" json:"id"`
	UserName     string    `db:"username" bson:"username" json:"username"`
	Email        string    `db:"email" bson:"email" json:"email"`
	PasswordHash string    `db:"password_hash" bson:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" bson:"updated_at" json:"updatedAt"`
}
