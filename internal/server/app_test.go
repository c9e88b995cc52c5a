package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/server/config"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type migrateFailStore struct {
	*repotest.Store
	closed bool
}

func (s *migrateFailStore) RunMigrations(context.Context) error { return errors.New("no schema") }
func (s *migrateFailStore) Close(context.Context) error         { s.closed = true; return nil }

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	c.HTTPAddr = ln.Addr().String()
	require.NoError(t, ln.Close())

	c.ShutdownTimeout = time.Second
	return c
}

func stubOpen(t *testing.T, rm repomanager.RepositoryManager, err error) {
	t.Helper()
	orig := openRepositories
	openRepositories = func(context.Context, *config.Config) (repomanager.RepositoryManager, error) {
		return rm, err
	}
	t.Cleanup(func() { openRepositories = orig })
}

func TestNewApp_InvalidConfig(t *testing.T) {
	c := testConfig(t)
	c.SecretKey = ""

	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestNewApp_OpenError(t *testing.T) {
	stubOpen(t, nil, errors.New("dial"))

	_, err := NewApp(context.Background(), testConfig(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db init error")
}

func TestNewApp_MigrationErrorClosesStore(t *testing.T) {
	store := &migrateFailStore{Store: repotest.NewStore()}
	stubOpen(t, store, nil)

	_, err := NewApp(context.Background(), testConfig(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations error")
	assert.True(t, store.closed)
}

func TestApp_RunServesUntilCancelled(t *testing.T) {
	stubOpen(t, repotest.NewStore(), nil)
	c := testConfig(t)

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + c.HTTPAddr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
}
