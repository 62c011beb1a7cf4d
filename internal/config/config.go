// Package config loads process configuration from the environment (and an
// optional .env file) plus the studio's site profile.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything cmd/server needs to start.
type Config struct {
	Addr        string
	FrontendURL string
	LogLevel    string

	AdminSecret      string
	DatabaseURL      string
	DBConnectTimeout time.Duration

	Cloudinary CloudinaryConfig
	Gmail      GmailConfig
	Telegram   TelegramConfig

	RedisURL             string
	RateLimitPerMinute   int
	TrustedProxyCount    int
	UseFallbackGalleries bool

	Site *Site
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type GmailConfig struct {
	User         string
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// TelegramConfig is optional; Enabled reports whether both values are set.
type TelegramConfig struct {
	BotToken string
	ChatID   int64
}

func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != 0
}

// required lists the environment variables without which the process refuses
// to start.
var required = []string{
	"ADMIN_SECRET",
	"DATABASE_URL",
	"CLOUDINARY_CLOUD_NAME",
	"CLOUDINARY_API_KEY",
	"CLOUDINARY_API_SECRET",
	"GMAIL_USER",
	"GMAIL_CLIENT_ID",
	"GMAIL_CLIENT_SECRET",
	"GMAIL_REFRESH_TOKEN",
}

// MissingError names every required variable that was absent.
type MissingError struct {
	Vars []string
}

func (e *MissingError) Error() string {
	return "config: missing required environment variables: " + strings.Join(e.Vars, ", ")
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env.
func FromEnv() (*Config, error) {
	var missing []string
	for _, key := range required {
		if strings.TrimSpace(os.Getenv(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingError{Vars: missing}
	}

	cfg := &Config{
		Addr:        getEnv("ADDR", ":8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
		AdminSecret: os.Getenv("ADMIN_SECRET"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
		Gmail: GmailConfig{
			User:         os.Getenv("GMAIL_USER"),
			ClientID:     os.Getenv("GMAIL_CLIENT_ID"),
			ClientSecret: os.Getenv("GMAIL_CLIENT_SECRET"),
			RefreshToken: os.Getenv("GMAIL_REFRESH_TOKEN"),
		},
		Telegram: TelegramConfig{
			BotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		},
		RedisURL:             os.Getenv("REDIS_URL"),
		UseFallbackGalleries: os.Getenv("USE_FALLBACK_GALLERIES") == "true",
	}

	var errs []error
	var err error
	if cfg.DBConnectTimeout, err = getDuration("DB_CONNECT_TIMEOUT", 5*time.Second); err != nil {
		errs = append(errs, err)
	}
	if cfg.RateLimitPerMinute, err = getInt("RATE_LIMIT_PER_MINUTE", 10); err != nil {
		errs = append(errs, err)
	}
	if raw := os.Getenv("TRUSTED_PROXY_COUNT"); raw != "" {
		if cfg.TrustedProxyCount, err = strconv.Atoi(raw); err != nil || cfg.TrustedProxyCount < 0 {
			errs = append(errs, fmt.Errorf("TRUSTED_PROXY_COUNT must be a non-negative integer, got %q", raw))
		}
	} else {
		cfg.TrustedProxyCount = 1
	}
	if raw := os.Getenv("TELEGRAM_CHAT_ID"); raw != "" {
		if cfg.Telegram.ChatID, err = strconv.ParseInt(raw, 10, 64); err != nil {
			errs = append(errs, fmt.Errorf("TELEGRAM_CHAT_ID: %w", err))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("config: %w", errors.Join(errs...))
	}

	site, err := LoadSite(os.Getenv("SITE_CONFIG_PATH"))
	if err != nil {
		return nil, err
	}
	if site.ContactEmail == "" {
		site.ContactEmail = cfg.Gmail.User
	}
	cfg.Site = site

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return n, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}
	return d, nil
}
