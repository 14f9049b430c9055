package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the honeypot reads from the environment.
// Values are resolved once at startup and never mutated afterwards.
type Config struct {
	Environment string
	Port        string
	UseHTTPS    bool

	LogLevel  string
	LogFormat string

	DBPath   string
	DecoyDir string

	// DemoMode replaces real client identity and geolocation with fabricated data
	DemoMode bool

	GeoIPDBPath  string
	GeoIPAPIURL  string
	GeoIPTimeout time.Duration

	TelemetryQueueSize int
	MaxBodyBytes       int64

	CORSAllowedOrigins []string

	OIDCDomain       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCCallbackURL  string

	AWSRegion       string
	ArchiveBucket   string
	ArchivePrefix   string
	ArchiveInterval time.Duration
}

// AuthEnabled reports whether operator login protects the query API
func (c Config) AuthEnabled() bool {
	return c.OIDCDomain != ""
}

// ArchiveEnabled reports whether threat records are exported to S3
func (c Config) ArchiveEnabled() bool {
	return c.ArchiveBucket != ""
}

// IsProduction returns true when running with APP_ENV=production
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// LoadDotEnv loads variables from a .env file if one exists.
// A missing file is not an error; a malformed one is.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load builds a Config from the environment. Malformed values fall back to
// their defaults and are reported together in the returned error so the caller
// can decide whether to continue.
func Load() (Config, error) {
	var errs []error

	cfg := Config{
		Environment: getenv("APP_ENV", "development"),
		Port:        getenv("PORT", "3000"),
		UseHTTPS:    getBool("USE_HTTPS", false, &errs),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "json"),

		DBPath:   getenv("DB_PATH", "honeypot.db"),
		DecoyDir: getenv("DECOY_DIR", "public"),

		DemoMode: getBool("DEMO_MODE", false, &errs),

		GeoIPDBPath:  os.Getenv("GEOIP_DB_PATH"),
		GeoIPAPIURL:  os.Getenv("GEOIP_API_URL"),
		GeoIPTimeout: getDuration("GEOIP_TIMEOUT", 250*time.Millisecond, &errs),

		TelemetryQueueSize: getInt("TELEMETRY_QUEUE_SIZE", 1024, &errs),
		MaxBodyBytes:       int64(getInt("MAX_BODY_BYTES", 64*1024, &errs)),

		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		OIDCDomain:       os.Getenv("OIDC_DOMAIN"),
		OIDCClientID:     os.Getenv("OIDC_CLIENT_ID"),
		OIDCClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
		OIDCCallbackURL:  os.Getenv("OIDC_CALLBACK_URL"),

		AWSRegion:       getenv("AWS_REGION", "us-east-1"),
		ArchiveBucket:   os.Getenv("ARCHIVE_BUCKET"),
		ArchivePrefix:   getenv("ARCHIVE_PREFIX", "honeypot/threats"),
		ArchiveInterval: getDuration("ARCHIVE_INTERVAL", 15*time.Minute, &errs),
	}

	if cfg.TelemetryQueueSize <= 0 {
		errs = append(errs, fmt.Errorf("TELEMETRY_QUEUE_SIZE must be positive, got %d", cfg.TelemetryQueueSize))
		cfg.TelemetryQueueSize = 1024
	}
	if cfg.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", cfg.MaxBodyBytes))
		cfg.MaxBodyBytes = 64 * 1024
	}

	return cfg, errors.Join(errs...)
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool, errs *[]error) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid bool env %s=%q: %w", key, v, err))
		return fallback
	}
	return b
}

func getInt(key string, fallback int, errs *[]error) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid int env %s=%q: %w", key, v, err))
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid duration env %s=%q: %w", key, v, err))
		return fallback
	}
	return d
}

func getList(key string, fallback []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
