package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	practicesession "github.com/remaimber-it/flashcards/internal/domain/practice_session"
	"github.com/remaimber-it/flashcards/internal/history"
	"github.com/remaimber-it/flashcards/internal/store"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	// Question sources: file paths or http(s) URLs, loaded in order.
	QuestionSources []string
	SourceWorkers   int
	SessionLength   int
	SessionTTL      time.Duration // idle sessions are dropped after this

	// History persistence
	HistoryDriver store.Dialect
	HistoryDSN    string
	HistoryKey    string

	LogLevel slog.Level
}

var defaults = map[string]any{
	"server_address":   ":8080",
	"shutdown_timeout": "10s",
	"cors_origins":     "*",
	"question_sources": "data/questions.json",
	"source_workers":   4,
	"session_length":   practicesession.DefaultMaxQuestions,
	"session_ttl":      "1h",
	"history_driver":   string(store.DialectSQLite),
	"history_dsn":      "flashcards.db",
	"history_key":      history.DefaultKey,
	"log_level":        "info",
}

// Load reads configuration from, in increasing precedence: built-in
// defaults, the optional YAML file at path, a .env file, and the process
// environment (SERVER_ADDRESS, QUESTION_SOURCES, ...).
func Load(path string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	shutdown, err := time.ParseDuration(v.GetString("shutdown_timeout"))
	if err != nil {
		return nil, fmt.Errorf("config: SHUTDOWN_TIMEOUT=%q is not a valid duration: %w", v.GetString("shutdown_timeout"), err)
	}

	sessionTTL, err := time.ParseDuration(v.GetString("session_ttl"))
	if err != nil {
		return nil, fmt.Errorf("config: SESSION_TTL=%q is not a valid duration: %w", v.GetString("session_ttl"), err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("log_level"))); err != nil {
		return nil, fmt.Errorf("config: LOG_LEVEL: %w", err)
	}

	cfg := &Config{
		ServerAddress:   v.GetString("server_address"),
		ShutdownTimeout: shutdown,
		CORSOrigins:     splitList(v.GetString("cors_origins")),
		QuestionSources: splitList(v.GetString("question_sources")),
		SourceWorkers:   v.GetInt("source_workers"),
		SessionLength:   v.GetInt("session_length"),
		SessionTTL:      sessionTTL,
		HistoryDriver:   store.Dialect(strings.ToLower(v.GetString("history_driver"))),
		HistoryDSN:      v.GetString("history_dsn"),
		HistoryKey:      v.GetString("history_key"),
		LogLevel:        level,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("SERVER_ADDRESS cannot be empty")
	}
	if len(c.QuestionSources) == 0 {
		return fmt.Errorf("QUESTION_SOURCES cannot be empty")
	}
	if c.SessionLength < 0 {
		return fmt.Errorf("SESSION_LENGTH must be >= 0")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if c.SourceWorkers <= 0 {
		return fmt.Errorf("SOURCE_WORKERS must be > 0")
	}
	switch c.HistoryDriver {
	case store.DialectSQLite, store.DialectPostgres:
	default:
		return fmt.Errorf("HISTORY_DRIVER must be %q or %q", store.DialectSQLite, store.DialectPostgres)
	}
	if c.HistoryDSN == "" {
		return fmt.Errorf("HISTORY_DSN cannot be empty")
	}
	if c.HistoryKey == "" {
		return fmt.Errorf("HISTORY_KEY cannot be empty")
	}
	return nil
}

// SessionConfig returns the draw constraints for new sessions.
func (c *Config) SessionConfig() practicesession.SessionConfig {
	return practicesession.SessionConfig{MaxQuestions: c.SessionLength}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
