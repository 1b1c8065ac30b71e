// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Notification transports accepted in NOTIFY_TRANSPORT.
const (
	TransportSMTP = "smtp"
	TransportSES  = "ses"
)

// Config holds all configuration values for the server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "4000".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:4200"] (the booking form dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// BookingsFile is the JSON file bookings are appended to when no
	// database is configured. Defaults to "bookings.json".
	BookingsFile string

	// DatabaseURL is the Postgres connection string. Optional; when set,
	// bookings are stored in Postgres instead of BookingsFile.
	DatabaseURL string

	// MaxBodyBytes caps request bodies. Defaults to 64 KiB.
	MaxBodyBytes int64

	// RateLimitRPS and RateLimitBurst throttle booking submissions per
	// client IP. A zero RPS disables throttling.
	RateLimitRPS   float64
	RateLimitBurst int

	// AdminToken is the bearer token for the staff endpoints. Empty
	// disables them.
	AdminToken string

	// BookingAPIURL is where the server-rendered booking page posts
	// requests. Defaults to this server on localhost.
	BookingAPIURL string

	// AssetsDir is served under /img when set. Site images are not
	// embedded in the binary.
	AssetsDir string

	Notify Notify
}

// Notify configures staff email.
type Notify struct {
	// Transport is "smtp" (default) or "ses".
	Transport string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	SESRegion string
	SESSender string

	// Recipient receives every booking notification (BOOKING_NOTIFY_EMAIL).
	Recipient string
}

// SMTPReady reports whether every SMTP setting needed to send is present.
// When it is false the server runs without email.
func (n Notify) SMTPReady() bool {
	return n.SMTPHost != "" && n.SMTPPort != 0 && n.SMTPUser != "" && n.SMTPPass != "" && n.Recipient != ""
}

// LoadDotEnv loads variables from a .env file into the environment without
// overriding ones already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("config.LoadDotEnv: %w", err)
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error naming every variable that is malformed, and the
// variables a chosen transport requires but lacks.
func Load() (Config, error) {
	cfg := Config{
		Port:         getEnv("PORT", "4000"),
		LogLevel:     strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", "info"))),
		CORSOrigins:  splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200")),
		BookingsFile: getEnv("BOOKINGS_FILE", "bookings.json"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		AdminToken:   os.Getenv("ADMIN_TOKEN"),
		AssetsDir:    os.Getenv("ASSETS_DIR"),
		Notify: Notify{
			Transport: strings.ToLower(getEnv("NOTIFY_TRANSPORT", TransportSMTP)),
			SMTPHost:  os.Getenv("SMTP_HOST"),
			SMTPUser:  os.Getenv("SMTP_USER"),
			SMTPPass:  os.Getenv("SMTP_PASS"),
			SESRegion: os.Getenv("SES_REGION"),
			SESSender: os.Getenv("SES_SENDER"),
			Recipient: os.Getenv("BOOKING_NOTIFY_EMAIL"),
		},
	}
	cfg.BookingAPIURL = getEnv("BOOKING_API_URL", "http://localhost:"+cfg.Port)

	var p parser
	cfg.MaxBodyBytes = int64(p.int("MAX_BODY_BYTES", 64<<10))
	cfg.RateLimitRPS = p.float("RATE_LIMIT_RPS", 5)
	cfg.RateLimitBurst = p.int("RATE_LIMIT_BURST", 10)
	cfg.Notify.SMTPPort = p.int("SMTP_PORT", 0)

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		p.invalid = append(p.invalid, "LOG_LEVEL")
	}

	var missing []string
	switch cfg.Notify.Transport {
	case TransportSMTP:
	case TransportSES:
		for key, v := range map[string]string{
			"SES_REGION":           cfg.Notify.SESRegion,
			"SES_SENDER":           cfg.Notify.SESSender,
			"BOOKING_NOTIFY_EMAIL": cfg.Notify.Recipient,
		} {
			if v == "" {
				missing = append(missing, key)
			}
		}
	default:
		p.invalid = append(p.invalid, "NOTIFY_TRANSPORT")
	}

	if len(p.invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(p.invalid, ", "))
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

// parser collects the names of malformed numeric variables.
type parser struct {
	invalid []string
}

func (p *parser) int(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		p.invalid = append(p.invalid, key)
		return fallback
	}
	return n
}

func (p *parser) float(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || f < 0 {
		p.invalid = append(p.invalid, key)
		return fallback
	}
	return f
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
