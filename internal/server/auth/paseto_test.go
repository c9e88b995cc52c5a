package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pasetoKey = []byte("0123456789abcdef0123456789abcdef")

func TestNewPasetoService_KeyLength(t *testing.T) {
	_, err := NewPasetoService([]byte("short"), time.Hour)
	require.Error(t, err)

	svc, err := NewPasetoService(pasetoKey, time.Hour)
	require.NoError(t, err)
	require.NotNil(t, svc)
}

func TestPaseto_IssueAndVerify(t *testing.T) {
	svc, err := NewPasetoService(pasetoKey, time.Hour)
	require.NoError(t, err)

	tok, err := svc.Issue("user-7")
	require.NoError(t, err)
	assert.Contains(t, tok, "v4.local.")

	got, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-7", got)
}

func TestPaseto_Verify_Failures(t *testing.T) {
	svc, err := NewPasetoService(pasetoKey, time.Hour)
	require.NoError(t, err)

	other, err := NewPasetoService([]byte("fedcba9876543210fedcba9876543210"), time.Hour)
	require.NoError(t, err)
	foreign, err := other.Issue("mallory")
	require.NoError(t, err)

	jwtTok, err := NewJWTService(pasetoKey, time.Hour).Issue("ann")
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"empty":     "",
		"garbage":   "v4.local.garbage",
		"other key": foreign,
		"jwt":       jwtTok,
	} {
		_, err := svc.Verify(tok)
		assert.Truef(t, errors.Is(err, common.ErrInvalidToken), "%s: got %v", name, err)
	}
}

func TestPaseto_Verify_Expired(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	orig := now
	t.Cleanup(func() { now = orig })

	svc, err := NewPasetoService(pasetoKey, time.Hour)
	require.NoError(t, err)

	now = func() time.Time { return base }
	tok, err := svc.Issue("ann")
	require.NoError(t, err)

	now = func() time.Time { return base.Add(time.Hour) }
	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
