package auth

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeUserNotFound         = "USER_NOT_FOUND"
	TextCodeUserAlreadyExists    = "USER_ALREADY_EXISTS"
	TextCodeUserLocked           = "USER_LOCKED"
	TextCodePasswordNotMatch     = "PASSWORD_NOT_MATCH"
	TextCodeTokenNotFound        = "TOKEN_NOT_FOUND"
	TextCodeRequestExpired       = "REQUEST_EXPIRED"
	TextCodeRequestActivated     = "REQUEST_ACTIVATED"
	TextCodeTooManyRequests      = "TOO_MANY_REQUESTS"
	TextCodeInvalidConfiguration = "INVALID_CONFIGURATION"
	TextCodeEmptyPassword        = "EMPTY_PASSWORD"
	TextCodeIOError              = "IO_ERROR"
)

// ErrUserNotFound is returned when no account exists for the given email or id.
var ErrUserNotFound = goerrors.New("user not found", goerrors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound).
	WithCode(goerrors.CodeNotFound)

// ErrUserAlreadyExists is returned when an email is already claimed by an account.
var ErrUserAlreadyExists = goerrors.New("user already exists", goerrors.CategoryConflict).
	WithTextCode(TextCodeUserAlreadyExists).
	WithCode(goerrors.CodeConflict)

// ErrUserLocked is returned when the affected account is administratively locked.
var ErrUserLocked = goerrors.New("user account is locked", goerrors.CategoryAuth).
	WithTextCode(TextCodeUserLocked).
	WithCode(goerrors.CodeForbidden)

// ErrPasswordNotMatch is returned when credential verification fails.
var ErrPasswordNotMatch = goerrors.New("password does not match", goerrors.CategoryAuth).
	WithTextCode(TextCodePasswordNotMatch).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenNotFound is returned when no request carries the given token.
var ErrTokenNotFound = goerrors.New("token not found", goerrors.CategoryNotFound).
	WithTextCode(TextCodeTokenNotFound).
	WithCode(goerrors.CodeNotFound)

// ErrRequestExpired is returned when a request is past its expiry timestamp.
var ErrRequestExpired = goerrors.New("request has expired", goerrors.CategoryValidation).
	WithTextCode(TextCodeRequestExpired).
	WithCode(goerrors.CodeBadRequest)

// ErrRequestActivated is returned when a request was already redeemed.
var ErrRequestActivated = goerrors.New("request already activated", goerrors.CategoryConflict).
	WithTextCode(TextCodeRequestActivated).
	WithCode(goerrors.CodeConflict)

// ErrTooManyRequests is returned when the pending-request limit is reached.
var ErrTooManyRequests = goerrors.New("too many pending requests", goerrors.CategoryOperation).
	WithTextCode(TextCodeTooManyRequests)

// ErrInvalidConfiguration is returned for unusable construction parameters.
var ErrInvalidConfiguration = goerrors.New("invalid configuration", goerrors.CategoryValidation).
	WithTextCode(TextCodeInvalidConfiguration).
	WithCode(goerrors.CodeBadRequest)

// ErrNoEmptyString is returned when an empty password is offered for hashing.
var ErrNoEmptyString = goerrors.New("password must not be empty", goerrors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(goerrors.CodeBadRequest)

// WrapIOError marks err as a storage-layer fault. Domain errors pass
// through unchanged so callers can keep matching on them.
func WrapIOError(err error, message string) error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr
	}

	return goerrors.Wrap(err, goerrors.CategoryInternal, message).
		WithTextCode(TextCodeIOError)
}

// IsIOError reports whether err was produced by the persistence boundary.
func IsIOError(err error) bool {
	if err == nil {
		return false
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.TextCode == TextCodeIOError
	}

	return false
}
