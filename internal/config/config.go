package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the full set of deployment settings. It is built once at start-up
// and handed to the handlers; nothing reads the environment after that.
type Config struct {
	Server  ServerConfig
	Getnet  GetnetConfig
	Mail    MailConfig
	Queue   QueueConfig
	Metrics MetricsConfig
}

type ServerConfig struct {
	Port     string
	Env      string
	RunLocal bool
}

// GetnetConfig holds the payment gateway credentials and session defaults.
type GetnetConfig struct {
	BaseURL           string
	Login             string
	SecretKey         string
	Locale            string
	Currency          string
	ReturnURL         string // may contain {reference}
	SessionTTLMinutes int
}

// MailConfig covers both e-mail transports: the Resend API used by
// order-notify and the SMTP account used by send-email.
type MailConfig struct {
	ResendAPIKey string
	NotifyTo     string
	NotifyFrom   string // bare address; the display name is fixed

	SMTPHost string
	SMTPPort int // 587 uses STARTTLS, 465 implicit TLS
	SMTPUser string
	SMTPPass string
}

type QueueConfig struct {
	NotificationsURL string
}

type MetricsConfig struct {
	Namespace string
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	ttl, _ := strconv.Atoi(getEnv("GETNET_SESSION_TTL_MINUTES", "15"))
	if ttl <= 0 {
		ttl = 15
	}
	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))

	return &Config{
		Server: ServerConfig{
			Port:     getEnv("PORT", "8080"),
			Env:      getEnv("ENV", "development"),
			RunLocal: getEnv("RUN_LOCAL", "") == "true",
		},
		Getnet: GetnetConfig{
			BaseURL:           strings.TrimSuffix(getEnv("GETNET_BASE_URL", ""), "/"),
			Login:             getEnv("GETNET_LOGIN", ""),
			SecretKey:         getEnv("GETNET_SECRET_KEY", ""),
			Locale:            getEnv("GETNET_LOCALE", "es_CL"),
			Currency:          getEnv("GETNET_CURRENCY", "CLP"),
			ReturnURL:         getEnv("GETNET_RETURN_URL", "https://entrealasyraices.cl/confirmacion.html?reference={reference}"),
			SessionTTLMinutes: ttl,
		},
		Mail: MailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			NotifyTo:     getEnv("ORDER_NOTIFY_TO", ""),
			NotifyFrom:   getEnv("ORDER_NOTIFY_FROM", "no-reply@entrealasyraices.cl"),
			SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:     smtpPort,
			SMTPUser:     getEnv("GMAIL_USER", ""),
			SMTPPass:     getEnv("GMAIL_PASS", ""),
		},
		Queue: QueueConfig{
			NotificationsURL: getEnv("NOTIFICATIONS_QUEUE_URL", ""),
		},
		Metrics: MetricsConfig{
			Namespace: getEnv("METRICS_NAMESPACE", "EntreAlasYRaices"),
		},
	}
}

// Missing returns the names of the environment variables required to talk to
// the gateway that are not set.
func (g GetnetConfig) Missing() []string {
	var missing []string
	if g.BaseURL == "" {
		missing = append(missing, "GETNET_BASE_URL")
	}
	if g.Login == "" {
		missing = append(missing, "GETNET_LOGIN")
	}
	if g.SecretKey == "" {
		missing = append(missing, "GETNET_SECRET_KEY")
	}
	return missing
}

// ResendMissing reports the variables order-notify needs.
func (m MailConfig) ResendMissing() []string {
	var missing []string
	if m.ResendAPIKey == "" {
		missing = append(missing, "RESEND_API_KEY")
	}
	if m.NotifyTo == "" {
		missing = append(missing, "ORDER_NOTIFY_TO")
	}
	return missing
}

// SMTPMissing reports the variables send-email needs.
func (m MailConfig) SMTPMissing() []string {
	var missing []string
	if m.SMTPHost == "" {
		missing = append(missing, "SMTP_HOST")
	}
	if m.SMTPUser == "" {
		missing = append(missing, "GMAIL_USER")
	}
	if m.SMTPPass == "" {
		missing = append(missing, "GMAIL_PASS")
	}
	return missing
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
