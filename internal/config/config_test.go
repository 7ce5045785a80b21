package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := FromViper(newViper())
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.Model)
	assert.Equal(t, 20*time.Second, cfg.AI.Timeout)
	assert.Zero(t, cfg.AI.Retries)
	assert.Equal(t, "v17.0", cfg.WhatsApp.APIVersion)
	assert.Equal(t, 24*time.Hour, cfg.Redis.InboxTTL)
	assert.False(t, cfg.DebugReplies)
	assert.Zero(t, cfg.MonthlyQuota)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("AUTOATENDE_AI_TIMEOUT", "5s")
	t.Setenv("AUTOATENDE_AI_RETRIES", "2")
	t.Setenv("AUTOATENDE_DEBUG_REPLIES", "true")
	t.Setenv("AUTOATENDE_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("WHATSAPP_VERIFY_TOKEN", "secret")

	cfg, err := FromViper(newViper())
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 2, cfg.AI.Retries)
	assert.True(t, cfg.DebugReplies)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "secret", cfg.WhatsApp.VerifyToken)
}

func TestLoadRequiresGeminiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := FromViper(newViper())
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestLoadRejectsNegativeRetries(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("AUTOATENDE_AI_RETRIES", "-1")

	_, err := FromViper(newViper())
	assert.Error(t, err)
}
