package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	EnvPracticumToken = "PRACTICUM_TOKEN"
	EnvTelegramToken  = "TELEGRAM_TOKEN"
	EnvTelegramChatID = "TELEGRAM_CHAT_ID"

	DefaultEndpoint        = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	DefaultRetryPeriod     = 10 * time.Minute
	DefaultInitialLookback = 7 * 24 * time.Hour
	DefaultHTTPTimeout     = 30 * time.Second

	// MissingTokensMessage is the diagnostic printed when a required secret is absent.
	MissingTokensMessage = "Отсутствуют обязательные переменные окружения"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	PracticumToken  string
	TelegramToken   string
	TelegramChatID  string // numeric chat id or @channel name
	Endpoint        string
	RetryPeriod     time.Duration
	InitialLookback time.Duration
	HTTPTimeout     time.Duration
	StrictResponse  bool // reject an empty homeworks list like the legacy bot did
	DatabaseURL     string
	LogLevel        string
	Environment     string
	LogFile         string
}

// Load reads configuration from environment variables and .env file (if present).
// Missing secrets are not an error here; see MissingTokens and CheckTokens.
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{
		PracticumToken: os.Getenv(EnvPracticumToken),
		TelegramToken:  os.Getenv(EnvTelegramToken),
		TelegramChatID: strings.TrimSpace(os.Getenv(EnvTelegramChatID)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
	}
	var err error

	cfg.Endpoint = os.Getenv("PRACTICUM_ENDPOINT")
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}

	if cfg.RetryPeriod, err = durationFromEnv("RETRY_PERIOD", DefaultRetryPeriod); err != nil {
		return nil, err
	}
	if cfg.RetryPeriod < time.Second {
		return nil, fmt.Errorf("RETRY_PERIOD must be at least 1s, got %s", cfg.RetryPeriod)
	}

	if cfg.InitialLookback, err = durationFromEnv("INITIAL_LOOKBACK", DefaultInitialLookback); err != nil {
		return nil, err
	}
	if cfg.InitialLookback < 0 {
		return nil, fmt.Errorf("INITIAL_LOOKBACK must not be negative, got %s", cfg.InitialLookback)
	}

	if cfg.HTTPTimeout, err = durationFromEnv("HTTP_TIMEOUT", DefaultHTTPTimeout); err != nil {
		return nil, err
	}

	if raw := os.Getenv("STRICT_RESPONSE_CHECK"); raw != "" {
		cfg.StrictResponse, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid STRICT_RESPONSE_CHECK: %w", err)
		}
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.LogFile = os.Getenv("LOG_FILE")
	if cfg.LogFile == "" {
		cfg.LogFile = "main.log"
	}

	return cfg, nil
}

func durationFromEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// MissingTokens returns the names of required secrets that are empty, in declaration order.
func (c *AppConfig) MissingTokens() []string {
	var missing []string
	if c.PracticumToken == "" {
		missing = append(missing, EnvPracticumToken)
	}
	if c.TelegramToken == "" {
		missing = append(missing, EnvTelegramToken)
	}
	if c.TelegramChatID == "" {
		missing = append(missing, EnvTelegramChatID)
	}
	return missing
}

// CheckTokens reports whether every required secret is present. When one is not,
// it logs a fatal-level entry naming the absent keys. It never exits by itself.
func (c *AppConfig) CheckTokens(log *logrus.Entry) bool {
	missing := c.MissingTokens()
	if len(missing) == 0 {
		return true
	}
	log.WithField("missing", strings.Join(missing, ",")).Log(logrus.FatalLevel, MissingTokensMessage)
	return false
}
