package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
	Webhooks WebhookConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	URL string
}

type SessionConfig struct {
	JWTSecret    string
	TTL          time.Duration
	CookieDomain string
	CookieSecure bool
}

type WebhookConfig struct {
	DiscordURL string
	SlackURL   string
	Timeout    time.Duration
}

const DefaultSessionTTL = 24 * time.Hour

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

func NewConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "3000"),
			Mode:           getEnv("GIN_MODE", "debug"),
			AllowedOrigins: allowedOrigins(),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=vipcrm port=5432 sslmode=disable"),
		},
		Session: SessionConfig{
			JWTSecret:    getEnv("JWT_SECRET", ""),
			TTL:          getEnvDuration("SESSION_TTL", DefaultSessionTTL),
			CookieDomain: getEnv("COOKIE_DOMAIN", ""),
			CookieSecure: getEnvBool("COOKIE_SECURE", false),
		},
		Webhooks: WebhookConfig{
			DiscordURL: getEnv("DISCORD_WEBHOOK_URL", ""),
			SlackURL:   getEnv("SLACK_WEBHOOK_URL", ""),
			Timeout:    getEnvDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		},
	}
}

func (c *Config) Validate() error {
	if c.Session.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.Session.TTL)
	}
	return nil
}

func allowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if extra := os.Getenv("ALLOWED_ORIGINS"); extra != "" {
		for _, origin := range strings.Split(extra, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
