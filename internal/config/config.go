package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultMatchProbability is the Bernoulli chance that a like turns into a
// mutual match. The 60% variant is canonical.
const DefaultMatchProbability = 0.60

// DefaultReplyDelay is the latency of the simulated counterpart reply.
const DefaultReplyDelay = 3 * time.Second

type Config struct {
	App struct {
		ENV string
	}

	Log struct {
		Level     string
		Format    string
		Component string
		Source    bool
	}

	HTTP struct {
		Host string
		Port string
	}

	// Storage selects the snapshot backend: "sqlite" (default, a local
	// file standing in for the client's key-value storage), "mysql"
	// (server-style DSN), or "redis".
	Storage struct {
		Backend string
	}

	DB struct {
		Driver string
		DSN    string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	Match struct {
		Probability float64
	}

	Chat struct {
		ReplyDelay time.Duration
	}

	Assist struct {
		BaseURL string
		APIKey  string
		Model   string
		Timeout time.Duration
	}
}

func New() *Config {
	cfg := &Config{}

	cfg.App.ENV = getEnvDefault("APP_ENV", "development")

	// Logger
	cfg.Log.Level = getEnvDefault("LOG_LEVEL", "info")
	cfg.Log.Format = getEnvDefault("LOG_FORMAT", "text")
	cfg.Log.Component = getEnvDefault("LOG_COMPONENT", "soulai")
	cfg.Log.Source = isTruthy(os.Getenv("LOG_SOURCE"))

	// HTTP
	cfg.HTTP.Host = getEnvDefault("HTTP_HOST", "127.0.0.1")
	cfg.HTTP.Port = getEnvDefault("HTTP_PORT", "8080")

	// Storage
	cfg.Storage.Backend = strings.ToLower(getEnvDefault("STORAGE_BACKEND", "sqlite"))

	// Database
	cfg.DB.Driver = strings.ToLower(getEnvDefault("DB_DRIVER", "sqlite"))
	cfg.DB.DSN = os.Getenv("DB_DSN")
	if cfg.DB.DSN == "" {
		switch cfg.DB.Driver {
		case "mysql":
			host := getEnvDefault("DB_HOST", "localhost")
			port := getEnvDefault("DB_PORT", "3306")
			user := getEnvDefault("DB_USER", "root")
			pass := getEnvDefault("DB_PASSWORD", "root")
			name := getEnvDefault("DB_NAME", "soulai")
			cfg.DB.DSN = fmt.Sprintf(
				"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
				user, pass, host, port, name,
			)
		default:
			cfg.DB.DSN = getEnvDefault("DB_PATH", "soulai.db")
		}
	}

	// Redis
	cfg.Redis.Addr = getEnvDefault("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnvDefault("REDIS_PASSWORD", "")
	if dbStr := getEnvDefault("REDIS_DB", "0"); dbStr != "" {
		if dbInt, err := strconv.Atoi(dbStr); err == nil {
			cfg.Redis.DB = dbInt
		}
	}

	// Matching
	cfg.Match.Probability = DefaultMatchProbability
	if p := os.Getenv("MATCH_PROBABILITY"); p != "" {
		if f, err := strconv.ParseFloat(p, 64); err == nil && f >= 0 && f <= 1 {
			cfg.Match.Probability = f
		}
	}

	// Chat
	cfg.Chat.ReplyDelay = DefaultReplyDelay
	if d := os.Getenv("CHAT_REPLY_DELAY"); d != "" {
		if dur, err := time.ParseDuration(d); err == nil && dur > 0 {
			cfg.Chat.ReplyDelay = dur
		}
	}

	// AI assist
	cfg.Assist.BaseURL = getEnvDefault("ASSIST_BASE_URL", "https://api.openai.com/v1")
	cfg.Assist.APIKey = os.Getenv("ASSIST_API_KEY")
	cfg.Assist.Model = getEnvDefault("ASSIST_MODEL", "gpt-4o-mini")
	cfg.Assist.Timeout = 15 * time.Second
	if d := os.Getenv("ASSIST_TIMEOUT"); d != "" {
		if dur, err := time.ParseDuration(d); err == nil && dur > 0 {
			cfg.Assist.Timeout = dur
		}
	}

	return cfg
}

func getEnvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
