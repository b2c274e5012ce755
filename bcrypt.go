package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordAuthenticator hashes and verifies passwords.
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

// BcryptAuthenticator is the default PasswordAuthenticator.
type BcryptAuthenticator struct {
	cost int
}

var _ PasswordAuthenticator = (*BcryptAuthenticator)(nil)

// NewBcryptAuthenticator creates a bcrypt-backed hasher. A cost outside
// bcrypt's supported range falls back to the library default.
func NewBcryptAuthenticator(cost int) *BcryptAuthenticator {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptAuthenticator{cost: cost}
}

// HashPassword will generate a password hash
func (b *BcryptAuthenticator) HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	return string(h), err
}

// ComparePasswordAndHash will validate the given cleartext
// password matches the hashed password
func (b *BcryptAuthenticator) ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordNotMatch
		}
		return err
	}
	return nil
}

// HashPassword hashes password with the default cost.
func HashPassword(password string) (string, error) {
	return NewBcryptAuthenticator(bcrypt.DefaultCost).HashPassword(password)
}

// ComparePasswordAndHash validates the given cleartext password against
// the hashed password using the default authenticator.
func ComparePasswordAndHash(password, hash string) error {
	return NewBcryptAuthenticator(bcrypt.DefaultCost).ComparePasswordAndHash(password, hash)
}
