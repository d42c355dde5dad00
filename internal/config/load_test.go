package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv sets up environment variables for testing
func setupEnv(t *testing.T, envVars map[string]string) func() {
	// Save current environment values
	originalValues := make(map[string]string)
	for name := range envVars {
		originalValues[name] = os.Getenv(name)
	}

	// Set new environment variables
	for name, value := range envVars {
		err := os.Setenv(name, value)
		require.NoError(t, err, "Failed to set environment variable %s", name)
	}

	// Return cleanup function
	return func() {
		// Restore original environment
		for name, value := range originalValues {
			if value == "" {
				os.Unsetenv(name)
			} else {
				os.Setenv(name, value)
			}
		}
	}
}

// TestLoadDefaults verifies that the Load function sets the expected default
// values when only the required fields are provided.
func TestLoadDefaults(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"INTERVIEWPREP_LLM_GEMINI_API_KEY": "test-api-key",
		// Explicitly unset the ones we want to test defaults for
		"INTERVIEWPREP_SERVER_PORT":      "",
		"INTERVIEWPREP_SERVER_LOG_LEVEL": "",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg, "Load() should return a non-nil config")
	assert.Equal(t, 8080, cfg.Server.Port, "Default server port should be 8080")
	assert.Equal(t, "info", cfg.Server.LogLevel, "Default log level should be 'info'")
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.ModelName, "Default model should be gemini-2.0-flash")
	assert.Equal(t, 100, cfg.RateLimit.MaxCalls, "Default rate limit should be 100 calls")
	assert.Equal(t, 60, cfg.RateLimit.WindowMinutes, "Default window should be 60 minutes")
	assert.Equal(t, 10, cfg.Session.MaxHistory, "Default history cap should be 10")
}

// TestLoadFromEnv verifies that the Load function correctly reads values from
// environment variables.
func TestLoadFromEnv(t *testing.T) {
	cleanup := setupEnv(t, map[string]string{
		"INTERVIEWPREP_SERVER_PORT":          "9090",
		"INTERVIEWPREP_SERVER_LOG_LEVEL":     "debug",
		"INTERVIEWPREP_LLM_GEMINI_API_KEY":   "test-api-key",
		"INTERVIEWPREP_LLM_MODEL_NAME":       "gemini-1.5-pro",
		"INTERVIEWPREP_RATE_LIMIT_MAX_CALLS": "50",
		"INTERVIEWPREP_SESSION_MAX_HISTORY":  "25",
	})
	defer cleanup()

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with valid environment variables")
	require.NotNil(t, cfg, "Load() should return a non-nil config")
	assert.Equal(t, 9090, cfg.Server.Port, "Server port should be loaded from environment variables")
	assert.Equal(t, "debug", cfg.Server.LogLevel, "Log level should be loaded from environment variables")
	assert.Equal(t, "test-api-key", cfg.LLM.GeminiAPIKey, "Gemini API key should be loaded from environment variables")
	assert.Equal(t, "gemini-1.5-pro", cfg.LLM.ModelName, "Model name should be loaded from environment variables")
	assert.Equal(t, 50, cfg.RateLimit.MaxCalls, "Rate limit should be loaded from environment variables")
	assert.Equal(t, 25, cfg.Session.MaxHistory, "History cap should be loaded from environment variables")
}

// TestLoadValidationErrors verifies that the Load function correctly validates
// the configuration.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name: "Missing API key",
			envVars: map[string]string{
				"INTERVIEWPREP_SERVER_PORT":        "9090",
				"INTERVIEWPREP_SERVER_LOG_LEVEL":   "debug",
				"INTERVIEWPREP_LLM_GEMINI_API_KEY": "",
			},
		},
		{
			name: "Invalid port number",
			envVars: map[string]string{
				"INTERVIEWPREP_SERVER_PORT":        "999999",
				"INTERVIEWPREP_LLM_GEMINI_API_KEY": "test-api-key",
			},
		},
		{
			name: "Invalid log level",
			envVars: map[string]string{
				"INTERVIEWPREP_SERVER_LOG_LEVEL":   "invalid-level",
				"INTERVIEWPREP_LLM_GEMINI_API_KEY": "test-api-key",
			},
		},
		{
			name: "Temperature out of range",
			envVars: map[string]string{
				"INTERVIEWPREP_LLM_GEMINI_API_KEY": "test-api-key",
				"INTERVIEWPREP_LLM_TEMPERATURE":    "3.5",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cleanup := setupEnv(t, tc.envVars)
			defer cleanup()

			cfg, err := Load()

			assert.Error(t, err, "Load() should return an error with invalid configuration")
			if err != nil {
				assert.Contains(t, err.Error(), "validating config")
			}
			assert.Nil(t, cfg, "Config should be nil when an error occurs")
		})
	}
}
