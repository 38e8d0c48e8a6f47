package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

const (
	defaultHTTPAddr      = ":8080"
	defaultStorageDriver = "gorm"
	defaultDatabaseURL   = "musicstore.db"
	defaultBoltPath      = "musicstore.bolt"
	defaultJWTSecret     = "change-me-jwt-secret"
	defaultJWTTTL        = "24h"
	defaultLatency       = "0s"
	defaultAdminEmail    = "admin@musicstore.local"
)

type Config struct {
	AppEnv             string
	HTTPAddr           string
	StorageDriver      string
	DatabaseURL        string
	BoltPath           string
	JWTSecret          string
	JWTTTL             time.Duration
	SimulatedLatency   time.Duration
	LogFile            string
	CORSAllowedOrigins []string
	APIBaseURL         string
	APIToken           string
	AdminEmail         string
	AdminPassword      string
}

// Load reads the environment, after merging a .env file from the working
// directory when one exists. Variables already set win over .env.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", defaultStorageDriver)))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.BoltPath = strings.TrimSpace(getEnv("BOLT_PATH", defaultBoltPath))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.LogFile = strings.TrimSpace(os.Getenv("LOG_FILE"))
	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(os.Getenv("API_BASE_URL")), "/")
	cfg.APIToken = strings.TrimSpace(os.Getenv("API_TOKEN"))
	cfg.AdminEmail = strings.ToLower(strings.TrimSpace(getEnv("ADMIN_EMAIL", defaultAdminEmail)))
	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}
	cfg.SimulatedLatency, err = parseDurationEnv("SIMULATED_LATENCY", defaultLatency)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool { return isProdLike(c.AppEnv) }

func validateConfig(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.SimulatedLatency < 0 {
		return fmt.Errorf("SIMULATED_LATENCY must be >= 0")
	}
	switch cfg.StorageDriver {
	case "gorm", "bolt", "memory":
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of: gorm, bolt, memory")
	}
	if cfg.StorageDriver == "bolt" && cfg.BoltPath == "" {
		return fmt.Errorf("BOLT_PATH must not be empty when STORAGE_DRIVER=bolt")
	}
	if isProdLike(cfg.AppEnv) {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.SimulatedLatency > 0 {
			return fmt.Errorf("in prod/release SIMULATED_LATENCY must be 0")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := cast.ToDurationE(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
