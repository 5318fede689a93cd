package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir()) // no config.yml
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
	assert.Equal(t, "gemini", cfg.NotesProvider)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadPlaceholderFalKeyTreatedAsUnset(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FAL_API_KEY", PlaceholderFalKey)

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.HasFal())
	assert.Empty(t, cfg.FalAPIKey)
}

func TestRequireGemini(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.RequireGemini())

	cfg.GeminiAPIKey = "k"
	assert.NoError(t, cfg.RequireGemini())
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("NOTES_PROVIDER", "openai")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "openai", cfg.NotesProvider)
}
