// internal/config/config.go
//
// Server configuration.
// Values come from defaults, an optional config file (configs/<CONFIG_NAME>.yaml),
// and environment variables (a .env file is loaded by main before Load runs).
//
// Environment variables:
//   APP_ENV, PORT, LOG_LEVEL, CLIENT_ORIGINS (comma separated), CONTENT_FILE,
//   QUIZ_FEEDBACK_DELAY, MATCH_FEEDBACK_DELAY, SORT_FEEDBACK_DELAY,
//   SESSION_TTL, SWEEP_INTERVAL, AUDIO_TIMEOUT.

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds the server configuration.
type Config struct {
	Env           string   `mapstructure:"env" validate:"oneof=development production test"`
	Port          string   `mapstructure:"port" validate:"required,numeric"`
	LogLevel      string   `mapstructure:"log_level" validate:"oneof=trace debug info warn error"`
	ClientOrigins []string `mapstructure:"client_origins" validate:"min=1,dive,required"`
	ContentFile   string   `mapstructure:"content_file"`

	Game    GameConfig    `mapstructure:",squash"`
	Session SessionConfig `mapstructure:",squash"`

	AudioTimeout time.Duration `mapstructure:"audio_timeout" validate:"min=1ms"`
}

// GameConfig holds the feedback delays of the three engines.
type GameConfig struct {
	QuizFeedbackDelay  time.Duration `mapstructure:"quiz_feedback_delay" validate:"min=1ms"`
	MatchFeedbackDelay time.Duration `mapstructure:"match_feedback_delay" validate:"min=1ms"`
	SortFeedbackDelay  time.Duration `mapstructure:"sort_feedback_delay" validate:"min=1ms"`
}

// SessionConfig controls idle-session eviction.
type SessionConfig struct {
	TTL           time.Duration `mapstructure:"session_ttl" validate:"min=1s"`
	SweepInterval time.Duration `mapstructure:"sweep_interval" validate:"min=1s"`
}

var envKeys = map[string]string{
	"env":                  "APP_ENV",
	"port":                 "PORT",
	"log_level":            "LOG_LEVEL",
	"client_origins":       "CLIENT_ORIGINS",
	"content_file":         "CONTENT_FILE",
	"quiz_feedback_delay":  "QUIZ_FEEDBACK_DELAY",
	"match_feedback_delay": "MATCH_FEEDBACK_DELAY",
	"sort_feedback_delay":  "SORT_FEEDBACK_DELAY",
	"session_ttl":          "SESSION_TTL",
	"sweep_interval":       "SWEEP_INTERVAL",
	"audio_timeout":        "AUDIO_TIMEOUT",
}

var validate = validator.New()

// Load reads configuration from defaults, an optional file, and the environment.
func Load() (*Config, error) {
	v := viper.New()

	configName := os.Getenv("CONFIG_NAME")
	if configName == "" {
		configName = "default"
	}
	v.AddConfigPath("configs")
	v.SetConfigName(configName)

	v.SetDefault("env", "development")
	v.SetDefault("port", "5175")
	v.SetDefault("log_level", "info")
	v.SetDefault("client_origins", []string{"http://localhost:5173"})
	v.SetDefault("content_file", "")
	v.SetDefault("quiz_feedback_delay", "2s")
	v.SetDefault("match_feedback_delay", "1500ms")
	v.SetDefault("sort_feedback_delay", "1500ms")
	v.SetDefault("session_ttl", "30m")
	v.SetDefault("sweep_interval", "1m")
	v.SetDefault("audio_timeout", "5s")

	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ClientOrigins = splitOrigins(cfg.ClientOrigins)

	if err := ValidateStruct(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ValidateStruct reports every failing field of s in one error.
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		var errMsgs []string
		for _, fe := range verrs {
			errMsgs = append(errMsgs, fmt.Sprintf(
				"Field: %s, Tag: %s, Param: %s", fe.Field(), fe.Tag(), fe.Param(),
			))
		}
		return fmt.Errorf("validation failed: %s", strings.Join(errMsgs, "; "))
	}
	return nil
}

// splitOrigins accepts both list values and a single comma-separated string.
func splitOrigins(in []string) []string {
	var out []string
	for _, item := range in {
		for _, o := range strings.Split(item, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}
