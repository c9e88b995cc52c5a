package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/bookshelf/internal/client/client"
)

// resolveBookID accepts a catalog id or "#n", the n-th result of the last
// search.
func (a *App) resolveBookID(arg string) (string, error) {
	if !strings.HasPrefix(arg, "#") {
		return arg, nil
	}
	n, err := strconv.Atoi(arg[1:])
	if err != nil || n < 1 || n > len(a.session.LastSearch) {
		return "", fmt.Errorf("no search result %s", arg)
	}
	return a.session.LastSearch[n-1].ID, nil
}

func (a *App) Book(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: book <id|#n>")
		return errUsage
	}
	id, err := a.resolveBookID(args[0])
	if err != nil {
		return a.report(err)
	}

	b, err := a.api.GetBook(ctx, id)
	if err != nil {
		return a.report(err)
	}
	printBook(a.out, b)

	reviews, err := a.api.ListReviews(ctx, b.ID, "", 0)
	if err != nil {
		return a.report(err)
	}
	printReviews(a.out, reviews)
	return nil
}

func (a *App) Search(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: search <query>")
		return errUsage
	}

	page, err := a.api.SearchBooks(ctx, strings.Join(args, " "), 1)
	if err != nil {
		return a.report(err)
	}

	a.session.LastSearch = page.Items
	if len(page.Items) == 0 {
		fmt.Fprintln(a.out, "No books found")
		return nil
	}
	fmt.Fprintf(a.out, "%d results, showing %d:\n", page.TotalItems, len(page.Items))
	for i, b := range page.Items {
		fmt.Fprintf(a.out, "  #%d  %s%s  [%s]\n", i+1, b.Title, byline(b), b.ID)
	}
	return nil
}

func byline(b *client.Book) string {
	if len(b.Authors) == 0 {
		return ""
	}
	return " by " + strings.Join(b.Authors, ", ")
}
