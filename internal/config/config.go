package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	LLM       LLMConfig       `mapstructure:"llm" validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" validate:"required"`
	Session   SessionConfig   `mapstructure:"session" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// LLMConfig contains the completion provider settings.
type LLMConfig struct {
	GeminiAPIKey string  `mapstructure:"gemini_api_key" validate:"required"`
	ModelName    string  `mapstructure:"model_name" validate:"required"`
	Temperature  float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens    int     `mapstructure:"max_tokens" validate:"gte=100,lte=4000"`
}

// RateLimitConfig bounds the completion call budget.
type RateLimitConfig struct {
	MaxCalls      int `mapstructure:"max_calls" validate:"required,gt=0"`
	WindowMinutes int `mapstructure:"window_minutes" validate:"required,gt=0"`
}

// SessionConfig controls the generation history.
type SessionConfig struct {
	MaxHistory int    `mapstructure:"max_history" validate:"required,gt=0"`
	ExportPath string `mapstructure:"export_path" validate:"required"`
}
