package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultPort              = "4000"
	defaultInvitationBaseURL = "https://maricelayhugo2025.com"
	defaultServiceName       = "invitaciones"
)

// Config holds all configuration for the application
type Config struct {
	Environment       string
	LogLevel          string
	Port              string
	InvitationBaseURL string
	AllowedOrigins    []string
	Database          DatabaseConfig
	Mail              MailConfig
	Tracing           TracingConfig
}

// DatabaseConfig describes the Postgres connection. URL wins over the discrete fields.
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// MailConfig drives the RSVP notice mailer.
type MailConfig struct {
	Provider           string
	FromAddress        string
	FromName           string
	RSVPRecipients     []string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	InsecureSkipVerify bool
}

// TracingConfig enables OTLP export when Endpoint is set.
type TracingConfig struct {
	ServiceName string
	Endpoint    string
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := getenv("GO_ENV", "development")

	// In production .env might not exist and we rely on system environment variables.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			slog.Debug(".env file not loaded", "err", err)
		}
	}

	skipVerify := false
	if s := os.Getenv("SES_INSECURE_SKIP_VERIFY"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("SES_INSECURE_SKIP_VERIFY: %w", err)
		}
		skipVerify = v
	}

	cfg := &Config{
		Environment:       env,
		LogLevel:          getenv("LOG_LEVEL", "info"),
		Port:              getenv("PORT", defaultPort),
		InvitationBaseURL: strings.TrimRight(getenv("INVITATION_BASE_URL", defaultInvitationBaseURL), "/"),
		AllowedOrigins:    splitList(getenv("ALLOWED_ORIGINS", "*")),
		Database: DatabaseConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     getenv("DB_HOST", "localhost"),
			Port:     getenv("DB_PORT", "5432"),
			User:     getenv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getenv("DB_NAME", "invitaciones"),
			SSLMode:  getenv("DB_SSLMODE", "disable"),
		},
		Mail: MailConfig{
			Provider:           getenv("MAIL_PROVIDER", "noop"),
			FromAddress:        os.Getenv("MAIL_FROM_ADDRESS"),
			FromName:           os.Getenv("MAIL_FROM_NAME"),
			RSVPRecipients:     splitList(os.Getenv("MAIL_RSVP_RECIPIENTS")),
			AWSRegion:          os.Getenv("AWS_REGION"),
			AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			InsecureSkipVerify: skipVerify,
		},
		Tracing: TracingConfig{
			ServiceName: getenv("OTEL_SERVICE_NAME", defaultServiceName),
			Endpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		},
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}

	return cfg, nil
}

// DatabaseDSN returns DATABASE_URL when set, otherwise a lib/pq key=value connection string.
func (c *Config) DatabaseDSN() string {
	db := c.Database
	if db.URL != "" {
		return db.URL
	}
	parts := []string{
		"host=" + quoteDSN(db.Host),
		"port=" + quoteDSN(db.Port),
		"user=" + quoteDSN(db.User),
		"dbname=" + quoteDSN(db.Name),
		"sslmode=" + quoteDSN(db.SSLMode),
	}
	if db.Password != "" {
		parts = append(parts, "password="+quoteDSN(db.Password))
	}
	return strings.Join(parts, " ")
}

// quoteDSN quotes v per the libpq key=value rules when it is empty or holds spaces, quotes or backslashes.
func quoteDSN(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
