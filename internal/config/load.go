package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix is prepended to every environment variable read by Load.
const envPrefix = "SCRY"

// Options adjusts where Load looks for configuration.
type Options struct {
	// ConfigFile is an explicit config file path. When empty, Load looks for
	// config.yaml in the working directory and ignores its absence.
	ConfigFile string

	// EnvFiles are dotenv files loaded before the environment is read.
	// Missing files are ignored. Variables already set are not overridden.
	EnvFiles []string

	// Overrides are applied last, above the environment. Keys use the dotted
	// config path, e.g. "pipeline.mode".
	Overrides map[string]any
}

// DefaultOptions returns the options used by Load.
func DefaultOptions() Options {
	return Options{EnvFiles: []string{".env"}}
}

// Load configuration from .env files, an optional config file and environment
// variables. Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error wrapping ErrInvalidConfig if
// loading or validation fails.
func Load() (*Config, error) {
	return LoadWithOptions(DefaultOptions())
}

// LoadWithOptions is Load with explicit file locations.
func LoadWithOptions(opts Options) (*Config, error) {
	for _, path := range opts.EnvFiles {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: failed to load env file %s: %v", ErrInvalidConfig, path, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: failed to read config file: %v", ErrInvalidConfig, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("%w: failed to read config file: %v", ErrInvalidConfig, err)
			}
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The provider credentials also answer to their conventional names.
	if err := v.BindEnv("llm.gemini_api_key", envPrefix+"_LLM_GEMINI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := v.BindEnv("search.serper_api_key", envPrefix+"_SEARCH_SERPER_API_KEY", "SERPER_API_KEY"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal config: %v", ErrInvalidConfig, err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks struct constraints and the cross-field rules that tags
// cannot express.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("%w: validation failed: %v", ErrInvalidConfig, err)
	}

	if cfg.Pipeline.Mode == ModeFull && strings.TrimSpace(cfg.Search.SerperAPIKey) == "" {
		return fmt.Errorf("%w: validation failed: search.serper_api_key is required in %q mode",
			ErrInvalidConfig, ModeFull)
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.secure_cookies", false)

	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.model_name", "gemini-2.0-flash")
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_delay_seconds", 2)
	v.SetDefault("llm.temperature", 0.4)
	v.SetDefault("llm.max_tool_calls", 6)

	v.SetDefault("search.serper_api_key", "")
	v.SetDefault("search.base_url", "https://google.serper.dev")
	v.SetDefault("search.result_count", 5)
	v.SetDefault("search.timeout_seconds", 10)

	v.SetDefault("pipeline.mode", ModeFull)
	v.SetDefault("pipeline.card_count", 5)
	v.SetDefault("pipeline.stage_timeout_seconds", 60)

	v.SetDefault("session.ttl_minutes", 60)
}
