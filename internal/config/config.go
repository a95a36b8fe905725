package config

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the full runtime configuration, populated from the
// environment. A .env file in the working directory is loaded first
// when present; real environment variables win over file values.
type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173,http://127.0.0.1:5173"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:""`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	MediaPath    string `envconfig:"MEDIA_PATH" default:"./data/media"`
	MediaBaseURL string `envconfig:"MEDIA_BASE_URL" default:"http://localhost:8080/media"`

	// Empty JWTSecret disables the admin auth boundary (local dev only).
	JWTSecret string `envconfig:"JWT_SECRET" default:""`

	// Empty AMQPURL selects the console notifier.
	AMQPURL   string `envconfig:"AMQP_URL" default:""`
	AMQPQueue string `envconfig:"AMQP_QUEUE" default:"admin.notifications"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads .env (if any) and processes the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, err
	}
	// envconfig's required tag only fires on an absent key.
	if c.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	return c, nil
}

// CORSOriginList splits the configured origins into a trimmed list.
func (c Config) CORSOriginList() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SlogLevel maps the configured level name onto a slog level,
// defaulting to info for unknown names.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
