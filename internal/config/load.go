package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for namespaced environment variables (PROMPTLAB_SERVER_PORT).
const EnvPrefix = "PROMPTLAB"

// Defaults applied before config files and environment variables.
const (
	DefaultPort            = 5000
	DefaultLogLevel        = "info"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 120 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxBodyBytes    = 10 << 20
	DefaultCORSOrigin      = "http://localhost:5173"

	DefaultGeminiModel       = "gemini-2.0-flash"
	DefaultGeminiImageModel  = "gemini-2.5-flash-image-preview"
	DefaultGeminiVisionModel = "gemini-2.5-flash"
	DefaultOpenAIModel       = "gpt-4o-mini"
	DefaultOpenAITemperature = 0.7
)

// envBinding maps a config key to the environment variables that may set it.
// Earlier names take precedence.
type envBinding struct {
	key     string
	envVars []string
}

// Un-prefixed names are accepted so existing .env files keep working.
var envBindings = []envBinding{
	{"server.port", []string{"PROMPTLAB_SERVER_PORT", "PORT"}},
	{"server.log_level", []string{"PROMPTLAB_SERVER_LOG_LEVEL", "LOG_LEVEL"}},
	{"server.cors_allowed_origins", []string{"PROMPTLAB_SERVER_CORS_ALLOWED_ORIGINS", "CORS_ALLOWED_ORIGINS"}},
	{"llm.gemini_api_key", []string{"PROMPTLAB_LLM_GEMINI_API_KEY", "GEMINI_API_KEY"}},
	{"llm.openai_api_key", []string{"PROMPTLAB_LLM_OPENAI_API_KEY", "OPENAI_API_KEY"}},
}

// Load reads configuration from a .env file (if present), an optional YAML
// config file, and environment variables, in increasing order of precedence.
// An empty configPath looks for config.yaml in the working directory and
// tolerates its absence. The result is validated before it is returned.
func Load(configPath string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, b := range envBindings {
		args := append([]string{b.key}, b.envVars...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("error binding environment variable for %s: %w", b.key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.read_timeout", DefaultReadTimeout)
	v.SetDefault("server.write_timeout", DefaultWriteTimeout)
	v.SetDefault("server.idle_timeout", DefaultIdleTimeout)
	v.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)
	v.SetDefault("server.max_body_bytes", DefaultMaxBodyBytes)
	v.SetDefault("server.cors_allowed_origins", []string{DefaultCORSOrigin})

	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.gemini_model", DefaultGeminiModel)
	v.SetDefault("llm.gemini_image_model", DefaultGeminiImageModel)
	v.SetDefault("llm.gemini_vision_model", DefaultGeminiVisionModel)
	v.SetDefault("llm.openai_api_key", "")
	v.SetDefault("llm.openai_model", DefaultOpenAIModel)
	v.SetDefault("llm.openai_base_url", "")
	v.SetDefault("llm.openai_temperature", DefaultOpenAITemperature)
	v.SetDefault("llm.prompts_path", "")
}

// loadDotEnv populates the process environment from path without overriding
// variables that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
