package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookshelf/internal/client/client"
)

var errUsage = errors.New("usage")

const (
	minRating = 1
	maxRating = 5
)

// Reviews lists the latest reviews, the user's own ("mine") or those of
// one book.
func (a *App) Reviews(ctx context.Context, args []string) error {
	var bookID, userID string

	switch {
	case len(args) == 0:
	case len(args) == 1 && args[0] == "mine":
		if !a.isLoggedIn() {
			return a.report(client.ErrNotLoggedIn)
		}
		userID = a.session.UserID
	case len(args) == 1:
		id, err := a.resolveBookID(args[0])
		if err != nil {
			return a.report(err)
		}
		bookID = id
	default:
		fmt.Fprintln(a.out, "Usage: reviews [mine|<bookId>]")
		return errUsage
	}

	list, err := a.api.ListReviews(ctx, bookID, userID, 0)
	if err != nil {
		return a.report(err)
	}
	printReviews(a.out, list)
	return nil
}

// Review writes a new review for a book.
func (a *App) Review(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: review <bookId|#n>")
		return errUsage
	}
	if !a.isLoggedIn() {
		return a.report(client.ErrNotLoggedIn)
	}
	bookID, err := a.resolveBookID(args[0])
	if err != nil {
		return a.report(err)
	}

	rating, err := GetRating(a.reader, fmt.Sprintf("Rating (%d-%d)", minRating, maxRating), a.out, minRating, maxRating, false)
	if err != nil {
		return a.report(err)
	}
	comment, err := getSimpleText(a.reader, "Comment", a.out)
	if err != nil {
		return a.report(err)
	}

	r, err := a.api.CreateReview(ctx, a.session, bookID, comment, rating)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Review %s saved\n", r.ID)
	return nil
}

// Edit changes rating and comment of one of the user's reviews. An empty
// comment keeps the current one.
func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: edit <reviewId>")
		return errUsage
	}
	if !a.isLoggedIn() {
		return a.report(client.ErrNotLoggedIn)
	}

	rating, err := GetRating(a.reader, fmt.Sprintf("New rating (%d-%d)", minRating, maxRating), a.out, minRating, maxRating, false)
	if err != nil {
		return a.report(err)
	}
	comment, err := getSimpleText(a.reader, "New comment (empty keeps the current one)", a.out)
	if err != nil {
		return a.report(err)
	}

	r, err := a.api.UpdateReview(ctx, a.session, args[0], comment, rating)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Review %s updated\n", r.ID)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: delete <reviewId>")
		return errUsage
	}
	if !a.isLoggedIn() {
		return a.report(client.ErrNotLoggedIn)
	}

	if err := a.api.DeleteReview(ctx, a.session, args[0]); err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Review %s deleted\n", args[0])
	return nil
}
