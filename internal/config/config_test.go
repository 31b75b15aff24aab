package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateListsEveryMissingCredential(t *testing.T) {
	cfg := New("", "", "", 30*time.Second, false, false, false, false)
	err := cfg.Validate()
	require.Error(t, err)

	var missing *MissingCredentialsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"site-url", "api-key", "api-username"}, missing.Missing)
	assert.Contains(t, err.Error(), "site-url")
	assert.Contains(t, err.Error(), "api-key")
	assert.Contains(t, err.Error(), "api-username")
}

func TestValidateReportsOnlyEmptyFields(t *testing.T) {
	cfg := New("https://forum.example.com", "", "system", 30*time.Second, false, false, false, false)
	var missing *MissingCredentialsError
	require.ErrorAs(t, cfg.Validate(), &missing)
	assert.Equal(t, []string{"api-key"}, missing.Missing)
}

func TestValidatePassesWithAllCredentials(t *testing.T) {
	cfg := New("https://forum.example.com", "key", "system", 30*time.Second, false, false, false, false)
	require.NoError(t, cfg.Validate())
}

func TestValidateSkippedInDryRun(t *testing.T) {
	cfg := New("", "", "", 30*time.Second, false, false, false, true)
	require.NoError(t, cfg.Validate())
}

func TestNewTrimsSiteURL(t *testing.T) {
	cfg := New(" https://forum.example.com/// ", " key ", " system ", time.Second, true, true, true, false)
	assert.Equal(t, "https://forum.example.com", cfg.SiteURL)
	assert.Equal(t, "key", cfg.APIKey)
	assert.Equal(t, "system", cfg.APIUsername)
}

func TestFromEnvTrimsValues(t *testing.T) {
	t.Setenv("DISCOURSE_SITE_URL", "  https://forum.example.com  ")
	t.Setenv("DISCOURSE_API_KEY", " abc123 ")
	t.Setenv("DISCOURSE_API_USERNAME", " system ")

	env, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://forum.example.com", env.SiteURL)
	assert.Equal(t, "abc123", env.APIKey)
	assert.Equal(t, "system", env.APIUsername)
}
