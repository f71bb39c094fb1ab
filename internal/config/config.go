package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultDBPath      = "./dev.db"
	defaultPort        = "8080"
	defaultEnv         = "dev"
	defaultLogLevel    = "info"
	defaultMailTimeout = 15 * time.Second
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env      string
	Port     string
	DBPath   string
	LogLevel string

	AdminEmail    string
	AdminPassword string
	SessionSecret string

	Mail MailConfig

	// Warnings lists missing settings; the caller decides how to log them.
	Warnings []string
}

// MailConfig configures the transactional mail API.
type MailConfig struct {
	APIURL             string
	APIKey             string
	From               string
	InternalRecipients []string
	Timeout            time.Duration
}

// Enabled reports whether enough is set to send mail.
func (m MailConfig) Enabled() bool {
	return m.APIURL != "" && m.APIKey != "" && m.From != ""
}

func (c Config) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}

// Load reads envFile (".env" when empty) and the environment.
// A missing env file is not an error; production injects real variables.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	cfg := Config{
		Env:           getenvWithDefault("ENV", defaultEnv),
		Port:          getenvWithDefault("PORT", defaultPort),
		DBPath:        getenvWithDefault("DB_PATH", defaultDBPath),
		LogLevel:      getenvWithDefault("LOG_LEVEL", defaultLogLevel),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		Mail: MailConfig{
			APIURL:             strings.TrimRight(os.Getenv("MAIL_API_URL"), "/"),
			APIKey:             os.Getenv("MAIL_API_KEY"),
			From:               os.Getenv("MAIL_FROM"),
			InternalRecipients: splitList(os.Getenv("MAIL_INTERNAL_RECIPIENTS")),
			Timeout:            defaultMailTimeout,
		},
	}

	if raw := os.Getenv("MAIL_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse MAIL_TIMEOUT: %w", err)
		}
		cfg.Mail.Timeout = d
	}

	if cfg.AdminEmail == "" {
		cfg.Warnings = append(cfg.Warnings, "ADMIN_EMAIL is not set")
	}
	if cfg.AdminPassword == "" {
		cfg.Warnings = append(cfg.Warnings, "ADMIN_PASSWORD is not set")
	}
	if cfg.SessionSecret == "" {
		cfg.Warnings = append(cfg.Warnings, "SESSION_SECRET is not set")
	}
	if !cfg.Mail.Enabled() {
		cfg.Warnings = append(cfg.Warnings, "MAIL_API_URL, MAIL_API_KEY or MAIL_FROM is not set; email delivery disabled")
	}

	return cfg, nil
}

func getenvWithDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
