// Package config handles configuration loading, parsing, and validation
// from various sources (.env files, YAML config files, environment
// variables). It provides type-safe access to application settings needed by
// different components while keeping configuration details separate from
// business logic.
//
// Environment variables use the PROMPTLAB_ prefix with dots replaced by
// underscores (PROMPTLAB_SERVER_PORT). PORT, GEMINI_API_KEY, OPENAI_API_KEY
// and CORS_ALLOWED_ORIGINS are also honored without the prefix.
package config
