package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	MemoryDocumentStore = "memory://"
)

type Config struct {
	Addr               string
	Environment        string
	LogLevel           string
	RelationalDriver   string
	RelationalDSN      string
	DocumentStoreURI   string
	DocumentDatabase   string
	DocumentCollection string
	DocumentTimeout    time.Duration
	CheckReferences    bool
	JWTSecret          string
	SessionTTL         time.Duration
	SeedHRUsername     string
	SeedHRPassword     string
	SeedLeadUsername   string
	SeedLeadPassword   string
	MaxBodyBytes       int64
	MetricsEnabled     bool
	LoginRateLimit     int
	LoginRateWindow    time.Duration
	TrustedProxies     []string
}

// Load reads the process environment. A .env file in the working directory
// is applied first when present; real environment variables win.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("dotenv load failed", "err", err)
	}

	cfg := Config{
		Addr:               getEnv("APP_ADDR", ":8080"),
		Environment:        getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		RelationalDriver:   strings.ToLower(getEnv("RELATIONAL_DRIVER", DriverSQLite)),
		RelationalDSN:      getEnv("RELATIONAL_DSN", "company.db"),
		DocumentStoreURI:   getEnv("DOCUMENT_STORE_URI", getEnv("connection_string", MemoryDocumentStore)),
		DocumentDatabase:   getEnv("DOCUMENT_DATABASE", "performance_reviews_db"),
		DocumentCollection: getEnv("DOCUMENT_COLLECTION", "reviews"),
		DocumentTimeout:    getEnvDuration("DOCUMENT_TIMEOUT", 5*time.Second),
		CheckReferences:    getEnvBool("CHECK_REFERENCES", false),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		SessionTTL:         getEnvDuration("SESSION_TTL", 12*time.Hour),
		SeedHRUsername:     getEnv("SEED_HR_USERNAME", ""),
		SeedHRPassword:     getEnv("SEED_HR_PASSWORD", ""),
		SeedLeadUsername:   getEnv("SEED_LEAD_USERNAME", ""),
		SeedLeadPassword:   getEnv("SEED_LEAD_PASSWORD", ""),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
		LoginRateLimit:     getEnvInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow:    getEnvDuration("LOGIN_RATE_WINDOW", time.Minute),
		TrustedProxies:     getEnvList("TRUSTED_PROXIES"),
	}

	// Outside production an unset secret gets a per-process random one;
	// tokens do not survive a restart.
	if strings.TrimSpace(cfg.JWTSecret) == "" && cfg.Environment != "production" {
		cfg.JWTSecret = randomSecret()
		slog.Warn("JWT_SECRET not set, using a random per-process secret")
	}
	return cfg
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("generate jwt secret: %v", err))
	}
	return hex.EncodeToString(buf)
}

func (c Config) MemoryDocuments() bool {
	return c.DocumentStoreURI == MemoryDocumentStore
}

func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	switch c.RelationalDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("RELATIONAL_DRIVER must be %q or %q", DriverSQLite, DriverPostgres)
	}
	if strings.TrimSpace(c.RelationalDSN) == "" {
		return fmt.Errorf("RELATIONAL_DSN is required")
	}
	if strings.TrimSpace(c.DocumentStoreURI) == "" {
		return fmt.Errorf("DOCUMENT_STORE_URI is required")
	}
	if !c.MemoryDocuments() && !strings.HasPrefix(c.DocumentStoreURI, "mongodb://") && !strings.HasPrefix(c.DocumentStoreURI, "mongodb+srv://") {
		return fmt.Errorf("DOCUMENT_STORE_URI must be a mongodb URI or %s", MemoryDocumentStore)
	}
	if strings.TrimSpace(c.DocumentDatabase) == "" || strings.TrimSpace(c.DocumentCollection) == "" {
		return fmt.Errorf("DOCUMENT_DATABASE and DOCUMENT_COLLECTION are required")
	}
	if c.DocumentTimeout <= 0 {
		return fmt.Errorf("DOCUMENT_TIMEOUT must be positive")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.MemoryDocuments() {
			return fmt.Errorf("DOCUMENT_STORE_URI must point at MongoDB in production")
		}
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.LoginRateLimit > 0 && c.LoginRateWindow <= 0 {
		return fmt.Errorf("LOGIN_RATE_WINDOW must be positive")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	return nil
}
