package config

import (
	"strings"
	"time"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	ReadTimeout     time.Duration `mapstructure:"read_timeout"     validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"    validate:"gt=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"     validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`

	// MaxBodyBytes caps request bodies; image analysis payloads carry base64 images.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes" validate:"gt=0"`

	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins" validate:"required,min=1,dive,required"`
}

// LLMConfig contains all LLM integration related settings.
// A provider is enabled only when its API key is set.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key"`
	GeminiModel       string `mapstructure:"gemini_model"        validate:"required"`
	GeminiImageModel  string `mapstructure:"gemini_image_model"  validate:"required"`
	GeminiVisionModel string `mapstructure:"gemini_vision_model" validate:"required"`

	OpenAIAPIKey      string  `mapstructure:"openai_api_key"`
	OpenAIModel       string  `mapstructure:"openai_model"       validate:"required"`
	OpenAIBaseURL     string  `mapstructure:"openai_base_url"    validate:"omitempty,url"`
	OpenAITemperature float64 `mapstructure:"openai_temperature" validate:"gte=0,lte=2"`

	// PromptsPath optionally overrides the embedded prompt catalog.
	PromptsPath string `mapstructure:"prompts_path" validate:"omitempty,file"`
}

// GeminiEnabled reports whether a Gemini credential is configured.
func (c LLMConfig) GeminiEnabled() bool {
	return strings.TrimSpace(c.GeminiAPIKey) != ""
}

// OpenAIEnabled reports whether an OpenAI credential is configured.
func (c LLMConfig) OpenAIEnabled() bool {
	return strings.TrimSpace(c.OpenAIAPIKey) != ""
}
