package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MODEL_NAME", "")
	t.Setenv("OPENAI_BASE_URL", "")
	t.Setenv("MAX_STEPS", "")
	t.Setenv("SAMPLE_DATA_DIR", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Empty(t, cfg.BaseURL)
	assert.Equal(t, 10, cfg.MaxSteps)
	assert.Equal(t, "./sample_data", cfg.SampleDataDir)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MODEL_NAME", "gpt-4o")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:8080/v1")
	t.Setenv("MAX_STEPS", "5")
	t.Setenv("SAMPLE_DATA_DIR", "/srv/data")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, "http://localhost:8080/v1", cfg.BaseURL)
	assert.Equal(t, 5, cfg.MaxSteps)
	assert.Equal(t, "/srv/data", cfg.SampleDataDir)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestLoad_InvalidMaxSteps(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	for _, raw := range []string{"abc", "0", "-3"} {
		t.Setenv("MAX_STEPS", raw)
		_, err := Load()
		assert.Error(t, err, "MAX_STEPS=%s", raw)
	}
}
