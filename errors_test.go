package auth_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-email-auth"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		err      *goerrors.Error
		textCode string
		category goerrors.Category
	}{
		{auth.ErrUserNotFound, auth.TextCodeUserNotFound, goerrors.CategoryNotFound},
		{auth.ErrUserAlreadyExists, auth.TextCodeUserAlreadyExists, goerrors.CategoryConflict},
		{auth.ErrUserLocked, auth.TextCodeUserLocked, goerrors.CategoryAuth},
		{auth.ErrPasswordNotMatch, auth.TextCodePasswordNotMatch, goerrors.CategoryAuth},
		{auth.ErrTokenNotFound, auth.TextCodeTokenNotFound, goerrors.CategoryNotFound},
		{auth.ErrRequestExpired, auth.TextCodeRequestExpired, goerrors.CategoryValidation},
		{auth.ErrRequestActivated, auth.TextCodeRequestActivated, goerrors.CategoryConflict},
		{auth.ErrTooManyRequests, auth.TextCodeTooManyRequests, goerrors.CategoryOperation},
		{auth.ErrInvalidConfiguration, auth.TextCodeInvalidConfiguration, goerrors.CategoryValidation},
	}

	for _, tt := range tests {
		t.Run(tt.textCode, func(t *testing.T) {
			assert.Equal(t, tt.textCode, tt.err.TextCode)
			assert.Equal(t, tt.category, tt.err.Category)
		})
	}
}

func TestWrapIOError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, auth.WrapIOError(nil, "nope"))
	})

	t.Run("domain errors pass through", func(t *testing.T) {
		err := auth.WrapIOError(auth.ErrUserLocked, "should not wrap")
		require.ErrorIs(t, err, auth.ErrUserLocked)
		assert.False(t, auth.IsIOError(err))
	})

	t.Run("storage faults become IO errors", func(t *testing.T) {
		err := auth.WrapIOError(errors.New("connection refused"), "query failed")
		assert.True(t, auth.IsIOError(err))
	})
}

func TestIsIOError(t *testing.T) {
	assert.False(t, auth.IsIOError(nil))
	assert.False(t, auth.IsIOError(errors.New("plain")))
	assert.False(t, auth.IsIOError(auth.ErrUserNotFound))
}
