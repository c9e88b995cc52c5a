// Package server wires configuration, storage, token issuing, the catalog
// client and the HTTP API together and runs them until a shutdown signal.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/dmitrijs2005/bookshelf/internal/server/auth"
	"github.com/dmitrijs2005/bookshelf/internal/server/catalog"
	"github.com/dmitrijs2005/bookshelf/internal/server/config"
	"github.com/dmitrijs2005/bookshelf/internal/server/httpserver"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookshelf/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  repomanager.RepositoryManager
	http   *httpserver.HTTPServer
}

// openRepositories is a seam for tests.
var openRepositories = repomanager.Open

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(os.Stdout, c.IsDev())

	repos, err := openRepositories(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := repos.RunMigrations(ctx); err != nil {
		_ = repos.Close(ctx)
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	tokens, err := auth.NewTokenService(c)
	if err != nil {
		_ = repos.Close(ctx)
		return nil, fmt.Errorf("token service error: %w", err)
	}

	deps := httpserver.Deps{
		Users:   services.NewUserService(repos, tokens, c),
		Reviews: services.NewReviewService(repos),
		Catalog: catalog.New(c.CatalogBaseURL, c.CatalogAPIKey, c.CatalogTimeout),
		Store:   repos,
		Tokens:  tokens,
	}

	logger.Info(ctx, "App initialized",
		"storage", c.Storage(),
		"token_format", c.TokenFormat,
		"login_identifier", c.LoginIdentifier,
	)

	return &App{
		config: c,
		logger: logger,
		repos:  repos,
		http:   httpserver.NewHTTPServer(c, logger, deps),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves HTTP until ctx is cancelled or a signal arrives, then closes
// the store.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	runErr := app.http.Run(ctx)
	if runErr != nil {
		app.logger.Error(ctx, runErr.Error())
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()
	if err := app.repos.Close(closeCtx); err != nil {
		app.logger.Error(ctx, "error closing storage", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
	return runErr
}
