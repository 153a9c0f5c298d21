// Package config reads process settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort     = "8080"
	minSecretLength = 32
)

var insecureSecretPlaceholders = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type Config struct {
	Env              string
	LogLevel         string
	Port             string
	DBPath           string
	Location         *time.Location
	SecretKey        string
	DefaultLanguage  string
	CookieSecure     bool
	SeedUserPassword string
	NotifierSchedule string
	TelegramBotToken string
	TelegramChatID   string
}

// Load reads the given .env files (default ".env") when present, then the
// environment. Variables already set in the environment win over the files.
func Load(envFiles ...string) (*Config, error) {
	if err := loadEnvFiles(envFiles...); err != nil {
		return nil, err
	}

	secretKey, err := resolveSecretKey()
	if err != nil {
		return nil, err
	}
	port, err := resolvePort()
	if err != nil {
		return nil, err
	}
	location, err := resolveLocation()
	if err != nil {
		return nil, err
	}
	cookieSecure, err := parseBoolEnv("COOKIE_SECURE", false)
	if err != nil {
		return nil, err
	}

	return &Config{
		Env:              getEnv("APP_ENV", "development"),
		LogLevel:         getEnv("LOG_LEVEL", ""),
		Port:             port,
		DBPath:           getEnv("DB_PATH", filepath.Join("data", "dailybrew.db")),
		Location:         location,
		SecretKey:        secretKey,
		DefaultLanguage:  getEnv("DEFAULT_LANGUAGE", "en"),
		CookieSecure:     cookieSecure,
		SeedUserPassword: os.Getenv("SEED_USER_PASSWORD"),
		NotifierSchedule: getEnv("NOTIFIER_SCHEDULE", "*/15 * * * *"),
		TelegramBotToken: strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		TelegramChatID:   strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")),
	}, nil
}

// TelegramEnabled reports whether both Telegram settings are present.
func (config *Config) TelegramEnabled() bool {
	return config.TelegramBotToken != "" && config.TelegramChatID != ""
}

func loadEnvFiles(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env file %s: %w", file, err)
		}
	}
	return nil
}

func resolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretPlaceholders[strings.ToLower(secret)]; insecure {
		return "", errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secret) < minSecretLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretLength)
	}
	return secret, nil
}

func resolvePort() (string, error) {
	raw := getEnv("PORT", defaultPort)
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("PORT must be between 1 and 65535, got %q", raw)
	}
	return strconv.Itoa(port), nil
}

func resolveLocation() (*time.Location, error) {
	name := getEnv("TZ", "UTC")
	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load TZ %q: %w", name, err)
	}
	return location, nil
}

func parseBoolEnv(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, raw)
	}
	return value, nil
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
