// Package config reads runtime configuration from the environment, with the
// same fallbacks the landing page shipped with.
package config

import (
	"log"
	"os"
	"strings"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr        string
	DatabaseDSN string

	// Support contacts shown on the completion page and the floating button.
	WhatsappSupport string
	EmailSupport    string

	// GTMID is the Google Tag Manager container id. Optional: analytics is
	// skipped with a warning when unset.
	GTMID string

	AllowedOrigins []string
}

// Load reads environment variables and returns a fully populated Config.
func Load() Config {
	cfg := Config{
		Addr:            envOrDefault("HTTP_ADDR", ":8080"),
		DatabaseDSN:     envOrDefault("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=copivaga port=5432 sslmode=disable"),
		WhatsappSupport: envOrDefault("WHATSAPP_SUPPORT", "5511999999999"),
		EmailSupport:    envOrDefault("EMAIL_SUPPORT", "oi@copivaga.com.br"),
		GTMID:           strings.TrimSpace(os.Getenv("GTM_ID")),
		AllowedOrigins:  parseList("ALLOWED_ORIGINS", []string{"*"}),
	}

	if cfg.GTMID == "" {
		log.Println("GTM_ID is not provided. Google Tag Manager will not be initialized.")
	}

	return cfg
}

// SupportWhatsappURL builds the wa.me link for the support contact.
func (c Config) SupportWhatsappURL() string {
	return "https://wa.me/" + c.WhatsappSupport
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
