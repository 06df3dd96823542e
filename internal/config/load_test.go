package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv sets environment variables for the duration of the test. Every
// variable Load reads is cleared first so the host environment cannot leak in.
func setupEnv(t *testing.T, envVars map[string]string) {
	t.Helper()

	for _, b := range envBindings {
		for _, name := range b.envVars {
			t.Setenv(name, "")
		}
	}
	for name, value := range envVars {
		t.Setenv(name, value)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	setupEnv(t, nil)

	cfg, err := Load("")
	require.NoError(t, err, "Load() should succeed with defaults only")
	require.NotNil(t, cfg)

	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, DefaultLogLevel, cfg.Server.LogLevel)
	assert.Equal(t, DefaultWriteTimeout, cfg.Server.WriteTimeout)
	assert.Equal(t, int64(DefaultMaxBodyBytes), cfg.Server.MaxBodyBytes)
	assert.Equal(t, []string{DefaultCORSOrigin}, cfg.Server.CORSAllowedOrigins)

	assert.Equal(t, DefaultGeminiModel, cfg.LLM.GeminiModel)
	assert.Equal(t, DefaultGeminiImageModel, cfg.LLM.GeminiImageModel)
	assert.Equal(t, DefaultGeminiVisionModel, cfg.LLM.GeminiVisionModel)
	assert.Equal(t, DefaultOpenAIModel, cfg.LLM.OpenAIModel)
	assert.InDelta(t, DefaultOpenAITemperature, cfg.LLM.OpenAITemperature, 1e-9)

	assert.False(t, cfg.LLM.GeminiEnabled(), "no key means Gemini is disabled")
	assert.False(t, cfg.LLM.OpenAIEnabled(), "no key means OpenAI is disabled")
}

func TestLoadFromEnv(t *testing.T) {
	setupEnv(t, map[string]string{
		"PROMPTLAB_SERVER_PORT":         "9090",
		"PROMPTLAB_SERVER_LOG_LEVEL":    "debug",
		"PROMPTLAB_SERVER_READ_TIMEOUT": "5s",
		"PROMPTLAB_LLM_GEMINI_API_KEY":  "gemini-key",
		"PROMPTLAB_LLM_OPENAI_API_KEY":  "openai-key",
		"PROMPTLAB_LLM_OPENAI_MODEL":    "gpt-4o",
	})

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "gemini-key", cfg.LLM.GeminiAPIKey)
	assert.Equal(t, "openai-key", cfg.LLM.OpenAIAPIKey)
	assert.Equal(t, "gpt-4o", cfg.LLM.OpenAIModel)
	assert.True(t, cfg.LLM.GeminiEnabled())
	assert.True(t, cfg.LLM.OpenAIEnabled())
}

func TestLoadUnprefixedEnv(t *testing.T) {
	setupEnv(t, map[string]string{
		"PORT":                 "7000",
		"GEMINI_API_KEY":       "plain-gemini",
		"OPENAI_API_KEY":       "plain-openai",
		"CORS_ALLOWED_ORIGINS": "http://a.example,http://b.example",
	})

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "plain-gemini", cfg.LLM.GeminiAPIKey)
	assert.Equal(t, "plain-openai", cfg.LLM.OpenAIAPIKey)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Server.CORSAllowedOrigins)
}

func TestLoadPrefixedWinsOverUnprefixed(t *testing.T) {
	setupEnv(t, map[string]string{
		"PORT":                  "7000",
		"PROMPTLAB_SERVER_PORT": "7001",
	})

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7001, cfg.Server.Port)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 7070
  log_level: warn
  cors_allowed_origins:
    - https://app.example
llm:
  gemini_api_key: file-key
  openai_temperature: 0.2
`)

	t.Run("file values", func(t *testing.T) {
		setupEnv(t, nil)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 7070, cfg.Server.Port)
		assert.Equal(t, "warn", cfg.Server.LogLevel)
		assert.Equal(t, []string{"https://app.example"}, cfg.Server.CORSAllowedOrigins)
		assert.Equal(t, "file-key", cfg.LLM.GeminiAPIKey)
		assert.InDelta(t, 0.2, cfg.LLM.OpenAITemperature, 1e-9)
	})

	t.Run("environment takes precedence", func(t *testing.T) {
		setupEnv(t, map[string]string{
			"PROMPTLAB_SERVER_PORT": "9090",
			"GEMINI_API_KEY":        "env-key",
		})

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "warn", cfg.Server.LogLevel, "unset env keeps file value")
		assert.Equal(t, "env-key", cfg.LLM.GeminiAPIKey)
	})
}

func TestLoadMissingExplicitFile(t *testing.T) {
	setupEnv(t, nil)

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name:    "port out of range",
			envVars: map[string]string{"PROMPTLAB_SERVER_PORT": "999999"},
		},
		{
			name:    "invalid log level",
			envVars: map[string]string{"PROMPTLAB_SERVER_LOG_LEVEL": "verbose"},
		},
		{
			name:    "invalid openai base url",
			envVars: map[string]string{"PROMPTLAB_LLM_OPENAI_BASE_URL": "not a url"},
		},
		{
			name:    "temperature too high",
			envVars: map[string]string{"PROMPTLAB_LLM_OPENAI_TEMPERATURE": "3.5"},
		},
		{
			name:    "prompts path does not exist",
			envVars: map[string]string{"PROMPTLAB_LLM_PROMPTS_PATH": "/definitely/not/here.yaml"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setupEnv(t, tc.envVars)

			cfg, err := Load("")
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("file populates unset variables", func(t *testing.T) {
		t.Setenv("PROMPTLAB_DOTENV_PROBE", "")
		require.NoError(t, os.Unsetenv("PROMPTLAB_DOTENV_PROBE"))

		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("PROMPTLAB_DOTENV_PROBE=from-file\n"), 0o600))

		require.NoError(t, loadDotEnv(path))
		assert.Equal(t, "from-file", os.Getenv("PROMPTLAB_DOTENV_PROBE"))
	})

	t.Run("existing variables are not overridden", func(t *testing.T) {
		t.Setenv("PROMPTLAB_DOTENV_KEEP", "from-env")

		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("PROMPTLAB_DOTENV_KEEP=from-file\n"), 0o600))

		require.NoError(t, loadDotEnv(path))
		assert.Equal(t, "from-env", os.Getenv("PROMPTLAB_DOTENV_KEEP"))
	})
}
