package client

import (
	"fmt"
	"time"
)

const (
	minRating = 1
	maxRating = 5
)

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) validate() error {
	if u.ID == "" || u.Username == "" {
		return fmt.Errorf("%w: user without id or username", ErrUnexpectedResponse)
	}
	return nil
}

type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	BookID    string    `json:"bookId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Review) validate() error {
	if r.ID == "" || r.UserID == "" || r.BookID == "" {
		return fmt.Errorf("%w: review without id, owner or book", ErrUnexpectedResponse)
	}
	if r.Rating < minRating || r.Rating > maxRating {
		return fmt.Errorf("%w: review %s has rating %d", ErrUnexpectedResponse, r.ID, r.Rating)
	}
	return nil
}

type Book struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Description   string   `json:"description"`
	CoverURL      string   `json:"coverUrl"`
	PublishedDate string   `json:"publishedDate"`
	PageCount     int      `json:"pageCount"`
	ISBN          string   `json:"isbn"`
	Categories    []string `json:"categories"`
}

func (b *Book) validate() error {
	if b.ID == "" || b.Title == "" {
		return fmt.Errorf("%w: book without id or title", ErrUnexpectedResponse)
	}
	return nil
}

type SearchPage struct {
	Query      string  `json:"query"`
	Page       int     `json:"page"`
	TotalItems int     `json:"totalItems"`
	Items      []*Book `json:"items"`
}

// LoginResult is the answer to a successful login.
type LoginResult struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}

func (l *LoginResult) validate() error {
	if l.Token == "" || l.User == nil {
		return fmt.Errorf("%w: login without token or user", ErrUnexpectedResponse)
	}
	return l.User.validate()
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
