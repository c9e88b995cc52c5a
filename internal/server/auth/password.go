package auth

import "golang.org/x/crypto/bcrypt"

// BcryptCost is the work factor for new hashes.
const BcryptCost = 10

// dummyHash is compared against when the account does not exist so that
// unknown identifiers and wrong passwords take the same time.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("bookshelf-dummy-password"), BcryptCost)

// MaxPasswordLen is the longest password bcrypt accepts.
const MaxPasswordLen = 72

// HashPassword returns a salted bcrypt hash of password.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// CheckPassword reports whether password matches hash. Malformed hashes
// never match.
func CheckPassword(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// BurnPasswordCheck performs a throwaway comparison.
func BurnPasswordCheck(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}
