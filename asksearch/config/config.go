package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	env "github.com/netflix/go-env"
)

const (
	// APIKeyEnv is the primary credential variable; FallbackAPIKeyEnv is read when it is empty.
	APIKeyEnv         = "DEEPSEEK_API_KEY"
	FallbackAPIKeyEnv = "API_KEY"
)

type Config struct {
	Port            string        `env:"PORT,default=8000"`
	LogDir          string        `env:"LOG_DIR,default=./logs"`
	LogConsole      bool          `env:"LOG_CONSOLE,default=true"`
	UpstreamBaseURL string        `env:"UPSTREAM_BASE_URL,default=https://openrouter.ai/api/v1"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT,default=0s"`
	PropertiesFile  string        `env:"SEARCH_PROPERTIES_FILE"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
	MetricsEndpoint string        `env:"OTEL_EXPORTER_OTLP_METRICS_ENDPOINT"`
	MetricsInterval time.Duration `env:"METRICS_EXPORT_INTERVAL,default=30s"`
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (Config, error) {
	// a missing .env is fine, the process environment still applies
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment variables: %w", err)
	}
	if err := validateConfig(&cfg); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	cfg.Port = strings.TrimPrefix(strings.TrimSpace(cfg.Port), ":")
	if cfg.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	cfg.UpstreamBaseURL = strings.TrimRight(strings.TrimSpace(cfg.UpstreamBaseURL), "/")
	if !strings.HasPrefix(cfg.UpstreamBaseURL, "http://") && !strings.HasPrefix(cfg.UpstreamBaseURL, "https://") {
		return fmt.Errorf("UPSTREAM_BASE_URL must include scheme (http:// or https://)")
	}
	if cfg.UpstreamTimeout < 0 {
		cfg.UpstreamTimeout = 0
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if cfg.MetricsInterval <= 0 {
		cfg.MetricsInterval = 30 * time.Second
	}
	return nil
}

// Addr is the listen address for http.Server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// APIKey resolves the upstream credential. It is read on every call so the
// key can be set or rotated without restarting the process.
func APIKey() string {
	return getEnv(APIKeyEnv, getEnv(FallbackAPIKeyEnv, ""))
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value != "" {
		return value
	}
	return fallback
}
