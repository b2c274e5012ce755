package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"

	goerrors "github.com/goliatone/go-errors"
)

// DefaultTokenLength is the number of random bytes per token. Rendered as
// hex, the default produces 32-character tokens.
const DefaultTokenLength = 16

// TokenGenerator produces opaque request tokens and validates their
// surface format. IsValid is a format check only, not an existence check.
type TokenGenerator interface {
	Generate() (string, error)
	IsValid(token string) bool
}

// BasicTokenGenerator renders cryptographically random bytes as hex.
type BasicTokenGenerator struct {
	length  int
	pattern *regexp.Regexp
}

var _ TokenGenerator = (*BasicTokenGenerator)(nil)

// NewTokenGenerator creates a generator for tokens of the given byte
// length. Length must be positive.
func NewTokenGenerator(length int) (*BasicTokenGenerator, error) {
	if length <= 0 {
		return nil, ErrInvalidConfiguration
	}

	return &BasicTokenGenerator{
		length:  length,
		pattern: regexp.MustCompile(fmt.Sprintf("^[0-9a-fA-F]{%d}$", length*2)),
	}, nil
}

// Generate returns a fresh lowercase hex token.
func (g *BasicTokenGenerator) Generate() (string, error) {
	buf := make([]byte, g.length)
	if _, err := rand.Read(buf); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "could not read random bytes").
			WithTextCode(TextCodeIOError)
	}
	return hex.EncodeToString(buf), nil
}

// IsValid reports whether token has the expected length and charset.
func (g *BasicTokenGenerator) IsValid(token string) bool {
	return g.pattern.MatchString(token)
}
