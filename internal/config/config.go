// Package config loads process configuration from the environment.
// A .env file in the working directory (or its parent) is loaded first.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	MailProviderSMTP    = "smtp"
	MailProviderMailgun = "mailgun"
)

// Config is the full process configuration.
type Config struct {
	Port        string
	FrontendURL string
	LegalDocs   string
	LogLevel    string
	Database    DatabaseConfig
	Mail        MailConfig
	Telemetry   TelemetryConfig
	Client      ClientConfig
}

// DatabaseConfig selects and connects the contact store.
type DatabaseConfig struct {
	// URL is a postgres:// or mongodb:// connection string.
	URL string
	// MongoDatabase is used only for mongodb:// URLs.
	MongoDatabase string
}

// IsMongo reports whether URL points at MongoDB.
func (c DatabaseConfig) IsMongo() bool {
	return strings.HasPrefix(c.URL, "mongodb://") || strings.HasPrefix(c.URL, "mongodb+srv://")
}

// MailConfig configures the notification sender.
type MailConfig struct {
	Provider string
	From     string
	To       string

	SMTPHost string
	SMTPPort string
	Username string
	Password string

	MailgunDomain string
	MailgunAPIKey string
}

// TelemetryConfig configures OTLP trace export. Tracing is off when Endpoint is empty.
type TelemetryConfig struct {
	Endpoint    string
	ServiceName string
	Environment string
	SampleRatio float64
}

// ClientConfig is used by the contact CLI.
type ClientConfig struct {
	APIURL         string
	RelayEndpoint  string
	RelayAccessKey string
	RelayFromName  string
	FallbackEmail  string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	_ = godotenv.Load("../.env")
	return fromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("port", "5000")
	v.SetDefault("frontend_url", "*")
	v.SetDefault("legal_docs_dir", "./legal")
	v.SetDefault("log_level", "INFO")
	v.SetDefault("mongo_database", "portfolio")
	v.SetDefault("mail_provider", MailProviderSMTP)
	v.SetDefault("smtp_host", "smtp.gmail.com")
	v.SetDefault("smtp_port", "587")
	v.SetDefault("otel_service_name", "portfolio-contact")
	v.SetDefault("env", "local")
	v.SetDefault("otel_traces_sampler_arg", 1.0)
	v.SetDefault("contact_api_url", "http://localhost:5000")
	v.SetDefault("relay_endpoint", "https://api.web3forms.com/submit")
	v.SetDefault("relay_from_name", "Portfolio Contact Form")

	_ = v.BindEnv("port", "PORT")
	_ = v.BindEnv("frontend_url", "FRONTEND_URL")
	_ = v.BindEnv("legal_docs_dir", "LEGAL_DOCS_DIR")
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	_ = v.BindEnv("database_url", "DATABASE_URL", "MONGO_URI")
	_ = v.BindEnv("mongo_database", "MONGO_DATABASE")
	_ = v.BindEnv("mail_provider", "MAIL_PROVIDER")
	_ = v.BindEnv("smtp_host", "SMTP_HOST")
	_ = v.BindEnv("smtp_port", "SMTP_PORT")
	_ = v.BindEnv("email_user", "EMAIL_USER")
	_ = v.BindEnv("email_pass", "EMAIL_PASS")
	_ = v.BindEnv("email_from", "EMAIL_FROM")
	_ = v.BindEnv("email_to", "EMAIL_TO")
	_ = v.BindEnv("mailgun_domain", "MAILGUN_DOMAIN")
	_ = v.BindEnv("mailgun_api_key", "MAILGUN_API_KEY")
	_ = v.BindEnv("otel_endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")
	_ = v.BindEnv("otel_service_name", "OTEL_SERVICE_NAME")
	_ = v.BindEnv("env", "ENV")
	_ = v.BindEnv("otel_traces_sampler_arg", "OTEL_TRACES_SAMPLER_ARG")
	_ = v.BindEnv("contact_api_url", "CONTACT_API_URL")
	_ = v.BindEnv("relay_endpoint", "RELAY_ENDPOINT")
	_ = v.BindEnv("relay_access_key", "RELAY_ACCESS_KEY")
	_ = v.BindEnv("relay_from_name", "RELAY_FROM_NAME")
	_ = v.BindEnv("fallback_email", "FALLBACK_EMAIL")

	return v
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:        v.GetString("port"),
		FrontendURL: v.GetString("frontend_url"),
		LegalDocs:   v.GetString("legal_docs_dir"),
		LogLevel:    v.GetString("log_level"),
		Database: DatabaseConfig{
			URL:           v.GetString("database_url"),
			MongoDatabase: v.GetString("mongo_database"),
		},
		Mail: MailConfig{
			Provider:      strings.ToLower(strings.TrimSpace(v.GetString("mail_provider"))),
			From:          v.GetString("email_from"),
			To:            v.GetString("email_to"),
			SMTPHost:      v.GetString("smtp_host"),
			SMTPPort:      v.GetString("smtp_port"),
			Username:      v.GetString("email_user"),
			Password:      v.GetString("email_pass"),
			MailgunDomain: v.GetString("mailgun_domain"),
			MailgunAPIKey: v.GetString("mailgun_api_key"),
		},
		Telemetry: TelemetryConfig{
			Endpoint:    v.GetString("otel_endpoint"),
			ServiceName: v.GetString("otel_service_name"),
			Environment: v.GetString("env"),
			SampleRatio: v.GetFloat64("otel_traces_sampler_arg"),
		},
		Client: ClientConfig{
			APIURL:         strings.TrimRight(v.GetString("contact_api_url"), "/"),
			RelayEndpoint:  v.GetString("relay_endpoint"),
			RelayAccessKey: v.GetString("relay_access_key"),
			RelayFromName:  v.GetString("relay_from_name"),
			FallbackEmail:  v.GetString("fallback_email"),
		},
	}

	if cfg.Mail.From == "" {
		cfg.Mail.From = cfg.Mail.Username
	}
	if cfg.Client.FallbackEmail == "" {
		cfg.Client.FallbackEmail = cfg.Mail.To
	}
	if cfg.Telemetry.SampleRatio < 0 || cfg.Telemetry.SampleRatio > 1 {
		cfg.Telemetry.SampleRatio = 1
	}

	return cfg, nil
}

// ValidateServer checks the settings the HTTP server cannot start without.
func (c *Config) ValidateServer() error {
	var errs []error
	if c.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL or MONGO_URI is required"))
	}
	if c.Mail.To == "" {
		errs = append(errs, errors.New("EMAIL_TO is required"))
	}
	if c.Mail.From == "" {
		errs = append(errs, errors.New("EMAIL_FROM or EMAIL_USER is required"))
	}
	switch c.Mail.Provider {
	case MailProviderSMTP, MailProviderMailgun:
	default:
		errs = append(errs, fmt.Errorf("unknown MAIL_PROVIDER %q", c.Mail.Provider))
	}
	if c.Mail.Provider == MailProviderMailgun && (c.Mail.MailgunDomain == "" || c.Mail.MailgunAPIKey == "") {
		errs = append(errs, errors.New("MAILGUN_DOMAIN and MAILGUN_API_KEY are required for the mailgun provider"))
	}
	return errors.Join(errs...)
}

// Addr returns the listen address for Port.
func (c *Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
