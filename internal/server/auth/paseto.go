package auth

import (
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/dmitrijs2005/bookshelf/internal/common"
)

// PasetoService issues v4.local tokens (XChaCha20 + BLAKE2b, symmetric key).
type PasetoService struct {
	symmetricKey     paseto.V4SymmetricKey
	validityDuration time.Duration
}

func NewPasetoService(symmetricKey []byte, validityDuration time.Duration) (*PasetoService, error) {
	if len(symmetricKey) != 32 {
		return nil, fmt.Errorf("symmetric key must be exactly 32 bytes, got %d", len(symmetricKey))
	}

	key, err := paseto.V4SymmetricKeyFromBytes(symmetricKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create symmetric key: %w", err)
	}

	return &PasetoService{symmetricKey: key, validityDuration: validityDuration}, nil
}

func (s *PasetoService) Issue(userID string) (string, error) {
	issued := now()

	token := paseto.NewToken()
	token.SetIssuedAt(issued)
	token.SetNotBefore(issued)
	token.SetExpiration(issued.Add(s.validityDuration))
	token.SetString("userId", userID)

	return token.V4Encrypt(s.symmetricKey, nil), nil
}

func (s *PasetoService) Verify(tokenString string) (string, error) {
	parser := paseto.NewParserWithoutExpiryCheck()

	token, err := parser.ParseV4Local(s.symmetricKey, tokenString, nil)
	if err != nil {
		return "", common.ErrInvalidToken
	}

	exp, err := token.GetExpiration()
	if err != nil || !now().Before(exp) {
		return "", common.ErrInvalidToken
	}

	userID, err := token.GetString("userId")
	if err != nil || userID == "" {
		return "", common.ErrInvalidToken
	}

	return userID, nil
}
