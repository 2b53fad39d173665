package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"rec2txt/internal/app/errors"
)

// OpenAIKeyEnv is the environment variable holding the transcription API key.
const OpenAIKeyEnv = "OPENAI_API_KEY"

// envPaths are probed in order; the first existing file wins.
var envPaths = []string{
	".env",
	".env.local",
	"../.env",
	"../../.env",
}

// LoadEnv loads environment variables from the first .env file found.
// Variables already set in the process environment are not overridden.
// It returns the path that was loaded, or "" when none exists.
func LoadEnv() (string, error) {
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			return envPath, nil
		}
	}

	return "", nil
}

// RequireOpenAIKey returns the trimmed API key or ErrMissingAPIKey with a setup hint.
func RequireOpenAIKey() (string, error) {
	key := strings.TrimSpace(os.Getenv(OpenAIKeyEnv))
	if key == "" {
		return "", errors.WithHint(errors.ErrMissingAPIKey, "Please set it: export OPENAI_API_KEY='sk-...' (or add it to .env)")
	}
	return key, nil
}

// GetProjectRoot finds the project root directory by looking for go.mod
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("could not find project root (go.mod not found)")
}

// DefaultRecordingsDir is <project root>/Recordings, or ./Recordings outside a checkout.
func DefaultRecordingsDir() string {
	root, err := GetProjectRoot()
	if err != nil {
		return "Recordings"
	}
	return filepath.Join(root, "Recordings")
}
