package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppEnv                   = "dev"
	defaultHTTPAddr                 = ":8080"
	defaultDatabaseURL              = "foodgram.db"
	defaultJWTSecret                = "change-me-jwt-secret"
	defaultJWTTTL                   = "24h"
	defaultMediaDir                 = "./media"
	defaultMediaURL                 = "/media"
	defaultImageMaxWidth            = "1280"
	defaultImageMaxBytes            = "10485760"
	defaultImageMaxPixels           = "40000000"
	defaultCacheTTL                 = "10m"
	defaultRateLimitRPS             = "20"
	defaultRateLimitBurst           = "40"
	defaultSubscriptionRecipesLimit = "3"
	defaultPageSize                 = "6"
	defaultLogLevel                 = "info"
	defaultShutdownTimeout          = "10s"
)

type Config struct {
	AppEnv          string
	HTTPAddr        string
	DatabaseURL     string
	JWTSecret       string
	JWTTTL          time.Duration
	ShutdownTimeout time.Duration

	MediaDir      string
	MediaURL      string
	ImageMaxWidth int
	ImageMaxBytes int
	// ImageMaxPixels bounds width*height before an upload is decoded.
	ImageMaxPixels int

	RedisAddr string
	CacheTTL  time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	CORSAllowedOrigins []string

	SubscriptionRecipesLimit int
	PageSize                 int
	LogLevel                 string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = defaultAppEnv
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.MediaDir = strings.TrimSpace(getEnv("MEDIA_DIR", defaultMediaDir))
	cfg.MediaURL = strings.TrimRight(strings.TrimSpace(getEnv("MEDIA_URL", defaultMediaURL)), "/")
	cfg.RedisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	cfg.LogLevel = strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel))
	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	var err error
	if cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = parseDurationEnv("CACHE_TTL", defaultCacheTTL); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = parseDurationEnv("SHUTDOWN_TIMEOUT", defaultShutdownTimeout); err != nil {
		return nil, err
	}
	if cfg.ImageMaxWidth, err = parseIntEnv("IMAGE_MAX_WIDTH", defaultImageMaxWidth); err != nil {
		return nil, err
	}
	if cfg.ImageMaxBytes, err = parseIntEnv("IMAGE_MAX_BYTES", defaultImageMaxBytes); err != nil {
		return nil, err
	}
	if cfg.ImageMaxPixels, err = parseIntEnv("IMAGE_MAX_PIXELS", defaultImageMaxPixels); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = parseIntEnv("RATE_LIMIT_BURST", defaultRateLimitBurst); err != nil {
		return nil, err
	}
	if cfg.SubscriptionRecipesLimit, err = parseIntEnv("SUBSCRIPTION_RECIPES_LIMIT", defaultSubscriptionRecipesLimit); err != nil {
		return nil, err
	}
	if cfg.PageSize, err = parseIntEnv("PAGE_SIZE", defaultPageSize); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = parseFloatEnv("RATE_LIMIT_RPS", defaultRateLimitRPS); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProdLike() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be > 0")
	}
	if cfg.ImageMaxWidth <= 0 {
		return fmt.Errorf("IMAGE_MAX_WIDTH must be > 0")
	}
	if cfg.ImageMaxBytes <= 0 {
		return fmt.Errorf("IMAGE_MAX_BYTES must be > 0")
	}
	if cfg.ImageMaxPixels <= 0 {
		return fmt.Errorf("IMAGE_MAX_PIXELS must be > 0")
	}
	if cfg.RateLimitRPS < 0 || cfg.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be >= 0")
	}
	if cfg.SubscriptionRecipesLimit < 0 {
		return fmt.Errorf("SUBSCRIPTION_RECIPES_LIMIT must be >= 0")
	}
	if cfg.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be > 0")
	}
	if cfg.MediaURL == "" || !strings.HasPrefix(cfg.MediaURL, "/") {
		return fmt.Errorf("MEDIA_URL must be an absolute path")
	}

	if isProdLike(cfg.AppEnv) && isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseFloatEnv(name, fallback string) (float64, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return f, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
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
