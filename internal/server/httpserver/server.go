// Package httpserver exposes the user, review and catalog services over a
// JSON HTTP API built on chi.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/dmitrijs2005/bookshelf/internal/server/auth"
	"github.com/dmitrijs2005/bookshelf/internal/server/catalog"
	"github.com/dmitrijs2005/bookshelf/internal/server/config"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/dmitrijs2005/bookshelf/internal/server/services"
)

// UserService is the account logic the handlers depend on.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, identifier, password string) (string, *models.User, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, upd services.ProfileUpdate) (*models.User, error)
	DeleteAccount(ctx context.Context, userID string) error
}

// ReviewService is the review logic the handlers depend on.
type ReviewService interface {
	Create(ctx context.Context, ownerID, bookID, comment string, rating int) (*models.Review, error)
	List(ctx context.Context, filter models.ReviewFilter) ([]*models.Review, error)
	Update(ctx context.Context, reviewID, requesterID, comment string, rating int) (*models.Review, error)
	Delete(ctx context.Context, reviewID, requesterID string) error
}

// Catalog looks books up in the external catalog.
type Catalog interface {
	GetBook(ctx context.Context, id string) (*catalog.Book, error)
	Search(ctx context.Context, query string, page int) (*catalog.SearchPage, error)
}

// Pinger reports storage health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps bundles what the server needs to answer requests.
type Deps struct {
	Users   UserService
	Reviews ReviewService
	Catalog Catalog
	Store   Pinger
	Tokens  auth.TokenService
}

type HTTPServer struct {
	cfg    *config.Config
	logger logging.Logger
	deps   Deps
	srv    *http.Server
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, deps Deps) *HTTPServer {
	s := &HTTPServer{
		cfg:    cfg,
		logger: l.With("module", "http_server"),
		deps:   deps,
	}
	s.srv = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      s.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Run listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully within cfg.ShutdownTimeout.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.cfg.HTTPAddr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is like Run but uses an existing listener.
func (s *HTTPServer) Serve(ctx context.Context, listen net.Listener) error {
	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout())
		defer cancel()
		done <- s.srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := s.srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-done
}

func (s *HTTPServer) shutdownTimeout() time.Duration {
	if s.cfg.ShutdownTimeout > 0 {
		return s.cfg.ShutdownTimeout
	}
	return 15 * time.Second
}
