package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	SMTPAddr   string
	MailFrom   string
	PublicBase string

	// ModerationInbox receives award decision notifications.
	// Award submissions carry no contact address.
	ModerationInbox string

	EnableProjectNotifications     bool
	EnableCompetitionNotifications bool
	EnableAwardNotifications       bool
	EnableOutboxRelay              bool
}

func Load() (Config, error) {
	// .env is optional; real deployments inject env vars directly.
	_ = godotenv.Load()

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "showcase"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	publicBase := strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/")
	if publicBase == "" {
		publicBase = "http://localhost:8080"
	}

	mailFrom := os.Getenv("MAIL_FROM")
	if mailFrom == "" {
		mailFrom = "no-reply@showcase.local"
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		SMTPAddr:   os.Getenv("SMTP_ADDR"),
		MailFrom:   mailFrom,
		PublicBase: publicBase,

		ModerationInbox: os.Getenv("MODERATION_INBOX"),

		EnableProjectNotifications:     envBool("ENABLE_PROJECT_NOTIFICATIONS", true),
		EnableCompetitionNotifications: envBool("ENABLE_COMPETITION_NOTIFICATIONS", true),
		EnableAwardNotifications:       envBool("ENABLE_AWARD_NOTIFICATIONS", true),
		EnableOutboxRelay:              envBool("ENABLE_OUTBOX_RELAY", true),
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
