package auth

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/crypto/bcrypt"
)

// Config holds the knobs for request issuance and credential hashing.
// The per-day naming mirrors the product framing; the limits actually
// count requests that are still pending (not expired, not activated).
type Config struct {
	// NumInvitesPerDay caps pending invites per email.
	NumInvitesPerDay int
	// NumRecoveryRequestsPerDay caps pending recovery requests per user.
	NumRecoveryRequestsPerDay int
	// NumChangeEmailRequestsPerDay caps pending change-email requests per user.
	NumChangeEmailRequestsPerDay int
	// RequestTTL is how long a request stays redeemable.
	RequestTTL time.Duration
	// TokenLength is the number of random bytes per token.
	TokenLength int
	// BcryptCost is the hashing cost for the default PasswordAuthenticator.
	BcryptCost int
}

// DefaultConfig returns the stock limits: five pending requests per
// scope, 24h TTL, 16-byte tokens.
func DefaultConfig() Config {
	return Config{
		NumInvitesPerDay:             5,
		NumRecoveryRequestsPerDay:    5,
		NumChangeEmailRequestsPerDay: 5,
		RequestTTL:                   24 * time.Hour,
		TokenLength:                  DefaultTokenLength,
		BcryptCost:                   bcrypt.DefaultCost,
	}
}

// Validate checks the configuration for unusable values.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.NumInvitesPerDay, validation.Required, validation.Min(1)),
		validation.Field(&c.NumRecoveryRequestsPerDay, validation.Required, validation.Min(1)),
		validation.Field(&c.NumChangeEmailRequestsPerDay, validation.Required, validation.Min(1)),
		validation.Field(&c.RequestTTL, validation.Required, validation.Min(time.Duration(1))),
		validation.Field(&c.TokenLength, validation.Required, validation.Min(1)),
	)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid configuration").
			WithTextCode(TextCodeInvalidConfiguration)
	}
	return nil
}
