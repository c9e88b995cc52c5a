package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-d", "db", "-n", "shelf", "-s", "secret", "-f", "jwt",
			"-t", "90", "-l", "email", "-b", "http://catalog", "-k", "key", "-m", "dev",
			"-o", "http://a.example,http://b.example",
		}, expectPanic: false,
			expected: &Config{
				HTTPAddr:                    "127.0.0.1:9090",
				DatabaseDSN:                 "db",
				MongoDatabase:               "shelf",
				SecretKey:                   "secret",
				TokenFormat:                 "jwt",
				AccessTokenValidityDuration: 90 * time.Minute,
				LoginIdentifier:             "email",
				CatalogBaseURL:              "http://catalog",
				CatalogAPIKey:               "key",
				Env:                         "dev",
				TrustedOrigins:              []string{"http://a.example", "http://b.example"},
			}},
		{name: "absent -t keeps sub-minute validity", args: []string{"cmd", "-a", ":1"}, expectPanic: false,
			expected: &Config{HTTPAddr: ":1", AccessTokenValidityDuration: 30 * time.Second}},
		{name: "bad validity", args: []string{"cmd", "-t", "soon"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{AccessTokenValidityDuration: 30 * time.Second}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
