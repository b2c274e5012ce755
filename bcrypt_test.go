package auth_test

import (
	"testing"

	"github.com/goliatone/go-email-auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hasher := auth.NewBcryptAuthenticator(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "Valid password",
			password: "securePassword123!",
			wantErr:  false,
		},
		{
			name:     "Empty password",
			password: "",
			wantErr:  true, // bcrypt can hash empty strings!
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := hasher.HashPassword(tt.password)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, hash)

			err = hasher.ComparePasswordAndHash(tt.password, hash)
			assert.NoError(t, err)
		})
	}
}

func TestComparePasswordAndHash(t *testing.T) {
	hasher := auth.NewBcryptAuthenticator(bcrypt.MinCost)

	password := "testPassword123!"
	hash, err := hasher.HashPassword(password)
	require.NoError(t, err)

	t.Run("Matching password", func(t *testing.T) {
		assert.NoError(t, hasher.ComparePasswordAndHash(password, hash))
	})

	t.Run("Wrong password", func(t *testing.T) {
		err := hasher.ComparePasswordAndHash("not-the-password", hash)
		require.ErrorIs(t, err, auth.ErrPasswordNotMatch)
	})

	t.Run("Fresh salt per hash", func(t *testing.T) {
		second, err := hasher.HashPassword(password)
		require.NoError(t, err)
		assert.NotEqual(t, hash, second)
		assert.NoError(t, hasher.ComparePasswordAndHash(password, second))
	})
}

func TestHashPasswordEmptyString(t *testing.T) {
	_, err := auth.HashPassword("")
	require.ErrorIs(t, err, auth.ErrNoEmptyString)
}
