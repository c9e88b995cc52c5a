package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"http_addr":        "0.0.0.0:9000",
		"database_dsn":     "mongodb://mongo:27017",
		"mongo_database":   "reviews",
		"token_format":     "paseto",
		"secret_key":       "0123456789abcdef0123456789abcdef",
		"token_validity":   "45m",
		"login_identifier": "email",
		"catalog_timeout":  "2s",
		"request_timeout":  3000000000,
		"trusted_origins":  []string{"https://books.example"},
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "0.0.0.0:9000", cfg.HTTPAddr)
		assert.Equal(t, "mongodb://mongo:27017", cfg.DatabaseDSN)
		assert.Equal(t, "reviews", cfg.MongoDatabase)
		assert.Equal(t, TokenFormatPaseto, cfg.TokenFormat)
		assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.SecretKey)
		assert.Equal(t, 45*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, LoginByEmail, cfg.LoginIdentifier)
		assert.Equal(t, 2*time.Second, cfg.CatalogTimeout)
		assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
		assert.Equal(t, []string{"https://books.example"}, cfg.TrustedOrigins)

		// keys absent from the file keep their defaults
		assert.Equal(t, "https://www.googleapis.com/books/v1", cfg.CatalogBaseURL)
		assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			HTTPAddr:                    "defaults:1234",
			DatabaseDSN:                 "postgres://db",
			SecretKey:                   "key",
			AccessTokenValidityDuration: 2 * time.Minute,
		}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.HTTPAddr)
		assert.Equal(t, "postgres://db", cfg.DatabaseDSN)
		assert.Equal(t, "key", cfg.SecretKey)
		assert.Equal(t, 2*time.Minute, cfg.AccessTokenValidityDuration)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "nope.json")}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
