package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config holds application configuration.
type Config struct {
	Port            string        `env:"PORT, default=8080"`
	Env             string        `env:"ENV, default=dev"`
	LogLevel        string        `env:"LOG_LEVEL, default=info"`
	LogPretty       bool          `env:"LOG_PRETTY, default=false"`
	CORSAllowOrigin []string      `env:"CORS_ALLOW_ORIGINS, default=http://localhost:5173"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	JWTSecret       string        `env:"JWT_SECRET"`
	TokenTTL        time.Duration `env:"TOKEN_TTL, default=2h"`
	ObjectStoreType string        `env:"OBJECT_STORE, default=local"`
	LocalStoreDir   string        `env:"LOCAL_STORE_DIR, default=./data"`
	AWSRegion       string        `env:"AWS_REGION"`
	S3Bucket        string        `env:"S3_BUCKET"`
	S3Prefix        string        `env:"S3_PREFIX"`
	AuthRateLimit   float64       `env:"AUTH_RATE_LIMIT, default=5"`
	AuthRateBurst   int           `env:"AUTH_RATE_BURST, default=10"`
}

// Load reads configuration from the environment, best-effort loading local
// .env files first for dev convenience.
func Load(ctx context.Context) (Config, error) {
	_ = godotenv.Load(".env", "cmd/.env")

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, fmt.Errorf("process env config: %w", err)
	}
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.ObjectStoreType = normalizeStoreType(cfg.ObjectStoreType)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate enforces settings that must be present outside dev.
func (c Config) validate() error {
	if c.IsDevLike() {
		return nil
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required in %s", c.Env)
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required in %s", c.Env)
	}
	if c.ObjectStoreType == "s3" && (strings.TrimSpace(c.AWSRegion) == "" || strings.TrimSpace(c.S3Bucket) == "") {
		return fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
	}
	return nil
}

// IsDevLike reports whether the environment tolerates missing backing services.
func (c Config) IsDevLike() bool {
	switch c.Env {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
