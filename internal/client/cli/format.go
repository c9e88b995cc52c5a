package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/bookshelf/internal/client/client"
)


// describe turns client errors into short messages for the terminal.
func describe(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrNotLoggedIn):
		return "please log in first"
	case errors.Is(err, client.ErrForbidden):
		return "you can only change your own reviews"
	case errors.Is(err, client.ErrNotFound):
		return "not found"
	case errors.Is(err, client.ErrUnexpectedResponse):
		return "the server sent a response this client does not understand"
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	case errors.Is(err, client.ErrUnauthorized):
		return "not authorized, please log in again"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable"
	default:
		return err.Error()
	}
}

func stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > maxRating {
		n = maxRating
	}
	return strings.Repeat("*", n) + strings.Repeat(".", maxRating-n)
}

func printBook(w io.Writer, b *client.Book) {
	fmt.Fprintf(w, "%s%s\n", b.Title, byline(b))
	if b.PublishedDate != "" {
		fmt.Fprintf(w, "  Published: %s\n", b.PublishedDate)
	}
	if b.PageCount > 0 {
		fmt.Fprintf(w, "  Pages: %d\n", b.PageCount)
	}
	if b.ISBN != "" {
		fmt.Fprintf(w, "  ISBN: %s\n", b.ISBN)
	}
	if len(b.Categories) > 0 {
		fmt.Fprintf(w, "  Genre: %s\n", strings.Join(b.Categories, ", "))
	}
	if b.Description != "" {
		fmt.Fprintf(w, "\n%s\n", b.Description)
	}
}

func printReviews(w io.Writer, list []*client.Review) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No reviews yet")
		return
	}
	for _, r := range list {
		fmt.Fprintf(w, "[%s] %s book=%s %s\n  %s\n", r.ID, stars(r.Rating), r.BookID, r.CreatedAt.Format("2006-01-02"), r.Comment)
	}
}
