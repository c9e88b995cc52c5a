package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenService(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	ts, err := NewTokenService(cfg)
	require.NoError(t, err)
	assert.IsType(t, &JWTService{}, ts)

	cfg.TokenFormat = config.TokenFormatPaseto
	cfg.SecretKey = "0123456789abcdef0123456789abcdef"
	ts, err = NewTokenService(cfg)
	require.NoError(t, err)
	assert.IsType(t, &PasetoService{}, ts)

	cfg.TokenFormat = "saml"
	_, err = NewTokenService(cfg)
	require.Error(t, err)
}

func TestPassword_HashAndCheck(t *testing.T) {
	h, err := HashPassword("pw1")
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", h)

	assert.True(t, CheckPassword(h, "pw1"))
	assert.False(t, CheckPassword(h, "pw2"))
	assert.False(t, CheckPassword("not-a-hash", "pw1"))

	h2, err := HashPassword("pw1")
	require.NoError(t, err)
	assert.NotEqual(t, h, h2, "hashes must be salted")
}

func TestBurnPasswordCheck_DoesNotPanic(t *testing.T) {
	start := time.Now()
	BurnPasswordCheck("whatever")
	assert.Greater(t, time.Since(start), time.Duration(0))
}
