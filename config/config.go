package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	App       AppConfig
	EmailJS   EmailJSConfig
	SMTP      SMTPConfig
	Contact   ContactConfig
	Admin     AdminConfig
	Analytics AnalyticsConfig
}

type ServerConfig struct {
	Port               string   `env:"PORT" envDefault:"8080"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	// TrustedProxies lists the proxies allowed to set X-Forwarded-For. Empty
	// means client IPs come from the connection only.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

type AppConfig struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	Version     string `env:"APP_VERSION" envDefault:"1.0.0"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"portfolio"`
}

// EmailJSConfig holds the three tokens the hosted mail provider needs. They
// may be empty at startup; submissions fail until they are set.
type EmailJSConfig struct {
	ServiceID  string `env:"EMAILJS_SERVICE_ID"`
	TemplateID string `env:"EMAILJS_TEMPLATE_ID"`
	PublicKey  string `env:"EMAILJS_PUBLIC_KEY"`
	PrivateKey string `env:"EMAILJS_PRIVATE_KEY"`
	Endpoint   string `env:"EMAILJS_ENDPOINT" envDefault:"https://api.emailjs.com/api/v1.0/email/send"`
}

// Missing names the unset provider tokens.
func (c EmailJSConfig) Missing() []string {
	var missing []string
	if c.ServiceID == "" {
		missing = append(missing, "EMAILJS_SERVICE_ID")
	}
	if c.TemplateID == "" {
		missing = append(missing, "EMAILJS_TEMPLATE_ID")
	}
	if c.PublicKey == "" {
		missing = append(missing, "EMAILJS_PUBLIC_KEY")
	}
	return missing
}

type SMTPConfig struct {
	Host string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port string `env:"SMTP_PORT" envDefault:"587"`
	User string `env:"SMTP_USER"`
	Pass string `env:"SMTP_PASS"`
	To   string `env:"TO_EMAIL"`
}

type ContactConfig struct {
	Provider      string `env:"CONTACT_PROVIDER" envDefault:"emailjs"`
	RatePerMinute int    `env:"CONTACT_RATE_PER_MINUTE" envDefault:"3"`
	Burst         int    `env:"CONTACT_BURST" envDefault:"3"`
}

type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME"`
	Password string `env:"ADMIN_PASSWORD"`
}

type AnalyticsConfig struct {
	Disabled        bool   `env:"ANALYTICS_DISABLED"`
	DatabasePath    string `env:"DATABASE_PATH" envDefault:"portfolio.db"`
	RetentionMonths int    `env:"ANALYTICS_RETENTION_MONTHS" envDefault:"12"`
	CleanupSchedule string `env:"ANALYTICS_CLEANUP_SCHEDULE" envDefault:"@daily"`
}

func (c AnalyticsConfig) Enabled() bool { return !c.Disabled && c.DatabasePath != "" }

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv parses the process environment without touching .env files.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.Contact.Provider = strings.ToLower(strings.TrimSpace(cfg.Contact.Provider))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("PORT is required")
	}

	switch c.Contact.Provider {
	case "emailjs", "smtp":
	default:
		return fmt.Errorf("CONTACT_PROVIDER must be emailjs or smtp, got %q", c.Contact.Provider)
	}

	if c.Contact.RatePerMinute <= 0 || c.Contact.Burst <= 0 {
		return errors.New("CONTACT_RATE_PER_MINUTE and CONTACT_BURST must be positive")
	}

	if c.Analytics.Enabled() && c.Analytics.RetentionMonths <= 0 {
		return errors.New("ANALYTICS_RETENTION_MONTHS must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
