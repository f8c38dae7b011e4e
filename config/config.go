// Package config loads runtime settings from the process environment,
// optionally seeded from a .env file in the working directory.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultModel         = "gpt-4o-mini"
	defaultMaxSteps      = 10
	defaultSampleDataDir = "./sample_data"
)

// Config is the resolved runtime configuration for the agent binary.
type Config struct {
	// APIKey authenticates against the OpenAI-compatible endpoint. Required.
	APIKey string

	// Model is the chat model identifier sent with every request.
	Model string

	// BaseURL overrides the provider endpoint. Empty means the provider
	// default is used.
	BaseURL string

	// MaxSteps bounds the number of reasoning steps per task.
	MaxSteps int

	// SampleDataDir is the directory the file tools operate on.
	SampleDataDir string
}

// Load reads a .env file if one exists, then resolves configuration from the
// environment. A missing .env file is not an error; a missing OPENAI_API_KEY
// is.
func Load() (*Config, error) {
	// godotenv never overwrites variables already set in the environment,
	// so explicit exports win over the .env file.
	_ = godotenv.Load()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set; export it or add it to a .env file")
	}

	cfg := &Config{
		APIKey:        apiKey,
		Model:         envOr("MODEL_NAME", defaultModel),
		BaseURL:       os.Getenv("OPENAI_BASE_URL"),
		MaxSteps:      defaultMaxSteps,
		SampleDataDir: envOr("SAMPLE_DATA_DIR", defaultSampleDataDir),
	}

	if raw := os.Getenv("MAX_STEPS"); raw != "" {
		steps, err := strconv.Atoi(raw)
		if err != nil || steps < 1 {
			return nil, fmt.Errorf("MAX_STEPS must be a positive integer, got %q", raw)
		}
		cfg.MaxSteps = steps
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
