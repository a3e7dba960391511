package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL,   default=12h"`

	RateLimitRPS          float64 `env:"RATE_LIMIT_RPS,           default=20"`
	LoyaltyRupeesPerPoint float64 `env:"LOYALTY_RUPEES_PER_POINT, default=10"`
	AuditWorkers          int     `env:"AUDIT_WORKERS,            default=4"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Login    LoginConfig
	Security SecurityConfig
	Minio    MinioConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=cafe_pos"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type LoginConfig struct {
	MaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	Window      time.Duration `env:"LOGIN_WINDOW,       default=15m"`
}

type SecurityConfig struct {
	CSRFTTL     time.Duration `env:"CSRF_TTL,      default=60m"`
	APIKeyTTL   time.Duration `env:"API_KEY_TTL,   default=2160h"`
	APIKeyGrace time.Duration `env:"API_KEY_GRACE, default=168h"`
}

// MinioConfig is optional; uploads are not archived when Endpoint is empty.
type MinioConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	Bucket    string `env:"MINIO_BUCKET, default=cafe-pos-imports"`
	UseSSL    bool   `env:"MINIO_USE_SSL, default=false"`
}

const devJWTSecret = "dev-secret-change-me"

// IsDevelopment reports whether the service runs in the development environment.
func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Load reads configuration from environment variables using go-envconfig.
// In development a .env file in the working directory is loaded first.
func Load(ctx context.Context) (*Config, error) {
	if os.Getenv("ENV") == "" || os.Getenv("ENV") == "development" {
		_ = godotenv.Load()
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		if !c.IsDevelopment() {
			return errors.New("config: JWT_SECRET is required outside development")
		}
		c.JWTSecret = devJWTSecret
	}
	if c.JWTTTL <= 0 {
		return errors.New("config: JWT_TTL must be positive")
	}
	if c.LoyaltyRupeesPerPoint <= 0 {
		return errors.New("config: LOYALTY_RUPEES_PER_POINT must be positive")
	}
	if c.RateLimitRPS < 0 {
		return errors.New("config: RATE_LIMIT_RPS must not be negative")
	}
	return nil
}
