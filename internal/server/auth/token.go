// Package auth issues and verifies bearer tokens and hashes passwords.
//
// Tokens are stateless: nothing is stored server-side and a token stops
// working only when it expires. Verification failures of any kind
// (malformed, forged, expired, missing claim) surface as
// common.ErrInvalidToken.
package auth

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/server/config"
)

// TokenService issues tokens carrying a user id and verifies them.
type TokenService interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}

// now is a seam for tests that need to move the clock.
var now = time.Now

// NewTokenService picks the implementation named by cfg.TokenFormat.
func NewTokenService(cfg *config.Config) (TokenService, error) {
	switch cfg.TokenFormat {
	case config.TokenFormatJWT:
		return NewJWTService([]byte(cfg.SecretKey), cfg.AccessTokenValidityDuration), nil
	case config.TokenFormatPaseto:
		return NewPasetoService([]byte(cfg.SecretKey), cfg.AccessTokenValidityDuration)
	default:
		return nil, fmt.Errorf("unknown token format %q", cfg.TokenFormat)
	}
}
