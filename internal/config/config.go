package config

import "time"

// Pipeline modes.
const (
	// ModeFull runs the planning, search and authoring stages.
	ModeFull = "full"

	// ModeSingle runs only the authoring stage on the bare topic. It needs no
	// search credential and serves as the degraded/offline mode.
	ModeSingle = "single"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
	Search   SearchConfig   `mapstructure:"search"`
	Pipeline PipelineConfig `mapstructure:"pipeline" validate:"required"`
	Session  SessionConfig  `mapstructure:"session"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// SecureCookies marks the session cookie Secure; enable behind TLS.
	SecureCookies bool `mapstructure:"secure_cookies"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	GeminiAPIKey      string  `mapstructure:"gemini_api_key"      validate:"required"`
	ModelName         string  `mapstructure:"model_name"          validate:"required"`
	MaxRetries        int     `mapstructure:"max_retries"         validate:"gte=0,lte=10"`
	RetryDelaySeconds int     `mapstructure:"retry_delay_seconds" validate:"gte=0,lte=60"`
	Temperature       float32 `mapstructure:"temperature"         validate:"gte=0,lte=2"`
	MaxToolCalls      int     `mapstructure:"max_tool_calls"      validate:"gte=1,lte=20"`
}

// SearchConfig contains the web search provider settings.
type SearchConfig struct {
	SerperAPIKey   string `mapstructure:"serper_api_key"`
	BaseURL        string `mapstructure:"base_url"        validate:"required,url"`
	ResultCount    int    `mapstructure:"result_count"    validate:"gte=1,lte=10"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=1,lte=120"`
}

// Timeout returns the per-request search timeout.
func (c SearchConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// PipelineConfig controls how flashcards are generated.
type PipelineConfig struct {
	Mode                string `mapstructure:"mode"                  validate:"required,oneof=full single"`
	CardCount           int    `mapstructure:"card_count"            validate:"required,oneof=5 10"`
	StageTimeoutSeconds int    `mapstructure:"stage_timeout_seconds" validate:"gte=0,lte=600"`
}

// StageTimeout returns the per-stage deadline, or zero when stages may run
// without one.
func (c PipelineConfig) StageTimeout() time.Duration {
	return time.Duration(c.StageTimeoutSeconds) * time.Second
}

// SessionConfig controls viewer sessions held by the web server.
type SessionConfig struct {
	TTLMinutes int `mapstructure:"ttl_minutes" validate:"gte=1"`
}

// TTL returns how long an idle session is kept.
func (c SessionConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}
