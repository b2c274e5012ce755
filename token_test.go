package auth_test

import (
	"testing"

	"github.com/goliatone/go-email-auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenGenerator(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		wantErr bool
	}{
		{
			name:   "default length",
			length: auth.DefaultTokenLength,
		},
		{
			name:   "short tokens",
			length: 4,
		},
		{
			name:    "zero length",
			length:  0,
			wantErr: true,
		},
		{
			name:    "negative length",
			length:  -8,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := auth.NewTokenGenerator(tt.length)
			if tt.wantErr {
				require.ErrorIs(t, err, auth.ErrInvalidConfiguration)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, gen)
		})
	}
}

func TestTokenGeneratorGenerate(t *testing.T) {
	gen, err := auth.NewTokenGenerator(auth.DefaultTokenLength)
	require.NoError(t, err)

	token, err := gen.Generate()
	require.NoError(t, err)
	assert.Len(t, token, auth.DefaultTokenLength*2)
	assert.True(t, gen.IsValid(token))

	other, err := gen.Generate()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestTokenGeneratorIsValid(t *testing.T) {
	gen, err := auth.NewTokenGenerator(4)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"lowercase hex", "0123abcd", true},
		{"uppercase hex", "0123ABCD", true},
		{"too short", "0123abc", false},
		{"too long", "0123abcd0", false},
		{"bad charset", "0123abcz", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gen.IsValid(tt.token))
		})
	}
}
