package auth_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-email-auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := auth.DefaultConfig()

	assert.Equal(t, 5, config.NumInvitesPerDay)
	assert.Equal(t, 5, config.NumRecoveryRequestsPerDay)
	assert.Equal(t, 5, config.NumChangeEmailRequestsPerDay)
	assert.Equal(t, 24*time.Hour, config.RequestTTL)
	assert.Equal(t, auth.DefaultTokenLength, config.TokenLength)

	require.NoError(t, config.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*auth.Config)
	}{
		{"zero invite limit", func(c *auth.Config) { c.NumInvitesPerDay = 0 }},
		{"negative recovery limit", func(c *auth.Config) { c.NumRecoveryRequestsPerDay = -1 }},
		{"zero change email limit", func(c *auth.Config) { c.NumChangeEmailRequestsPerDay = 0 }},
		{"zero ttl", func(c *auth.Config) { c.RequestTTL = 0 }},
		{"zero token length", func(c *auth.Config) { c.TokenLength = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := auth.DefaultConfig()
			tt.mutate(&config)
			assert.Error(t, config.Validate())
		})
	}
}
