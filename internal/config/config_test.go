package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv(EnvCredentialsFile, "/secrets/client_secret.json")
	t.Setenv(EnvTokenFile, "/secrets/token.json")
	t.Setenv(EnvBlogID, "1234567890")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/secrets/client_secret.json", cfg.CredentialsFile)
	assert.Equal(t, "/secrets/token.json", cfg.TokenFile)
	assert.Equal(t, "1234567890", cfg.BlogID)
}

func TestLoadMissingVars(t *testing.T) {
	t.Setenv(EnvCredentialsFile, "")
	t.Setenv(EnvTokenFile, "")
	t.Setenv(EnvBlogID, "1234567890")

	_, err := Load()
	require.Error(t, err)

	// The error should name every missing variable so the user can fix the
	// whole environment in one go.
	assert.Contains(t, err.Error(), EnvCredentialsFile)
	assert.Contains(t, err.Error(), EnvTokenFile)
	assert.NotContains(t, err.Error(), EnvBlogID)
}
