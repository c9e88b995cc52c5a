package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/bookshelf/internal/client/client"
	"github.com/dmitrijs2005/bookshelf/internal/client/config"
)

// API is the part of client.HTTPClient the commands use.
type API interface {
	Health(ctx context.Context) error
	Register(ctx context.Context, username, email, password string) (*client.User, error)
	Login(ctx context.Context, identifier, password string) (*client.Session, error)
	Profile(ctx context.Context, sess *client.Session) (*client.User, error)
	DeleteAccount(ctx context.Context, sess *client.Session) error
	GetBook(ctx context.Context, id string) (*client.Book, error)
	SearchBooks(ctx context.Context, query string, page int) (*client.SearchPage, error)
	ListReviews(ctx context.Context, bookID, userID string, limit int) ([]*client.Review, error)
	CreateReview(ctx context.Context, sess *client.Session, bookID, comment string, rating int) (*client.Review, error)
	UpdateReview(ctx context.Context, sess *client.Session, id, comment string, rating int) (*client.Review, error)
	DeleteReview(ctx context.Context, sess *client.Session, id string) error
}

type App struct {
	config  *config.Config
	api     API
	session *client.Session
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	if c.ServerURL == "" {
		return nil, fmt.Errorf("server url is empty")
	}
	api := client.NewHTTPClient(c.ServerURL, c.Timeout)
	return newApp(c, api, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, api API, in io.Reader, out io.Writer) *App {
	return &App{
		config:  c,
		api:     api,
		session: &client.Session{},
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Active(now())
}

func (a *App) getStatus() string {
	if a.isLoggedIn() {
		return fmt.Sprintf("(%s)", a.session.Username)
	}
	return ""
}

// Root greets the user, checks the server and runs the REPL until exit.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Bookshelf CLI (type 'help' for commands)")

	if err := a.api.Health(ctx); err != nil {
		fmt.Fprintf(a.out, "Warning: %s is not reachable: %v\n", a.config.ServerURL, err)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

// report prints err in a user-facing form and returns it.
func (a *App) report(err error) error {
	fmt.Fprintf(a.out, "Error: %s\n", describe(err))
	return err
}
