package config

import (
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"os"
	"strconv"
	"time"
)

type StoreKind string

const (
	StoreSheets   StoreKind = "sheets"
	StorePostgres StoreKind = "postgres"
	StoreMemory   StoreKind = "memory"
)

const EnvDevelopment = "development"

type Config struct {
	Env      string
	Port     string
	LogLevel string

	Store  StoreKind
	Sheets SheetsConfig
	DB     DBConfig
	Redis  RedisConfig

	Session SessionConfig
	OAuth   OAuthConfig
	SMTP    SMTPConfig

	PackSize      int
	SnowflakeNode int64
}

type SheetsConfig struct {
	SpreadsheetID string
	Credentials   string
}

type DBConfig struct {
	DSN string
}

type RedisConfig struct {
	URL string
	TTL time.Duration
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Recipient string
}

// Load reads configuration from the environment. In development a local
// .env file is loaded first when present.
func Load() (Config, error) {
	if getEnv("APP_ENV", EnvDevelopment) == EnvDevelopment {
		_ = godotenv.Load()
	}

	cfg := Config{
		Env:      getEnv("APP_ENV", EnvDevelopment),
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Store:    StoreKind(getEnv("STORE", string(StoreSheets))),
		Sheets: SheetsConfig{
			SpreadsheetID: getEnv("SHEETS_SPREADSHEET_ID", ""),
			Credentials:   getEnv("GOOGLE_CREDENTIALS", ""),
		},
		DB: DBConfig{
			DSN: getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
			TTL: getEnvDuration("COMPANY_CACHE_TTL", 5*time.Minute),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", ""),
			TTL:    getEnvDuration("SESSION_TTL", 30*24*time.Hour),
		},
		OAuth: OAuthConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("OAUTH_REDIRECT_URL", "http://localhost:8080/auth/callback"),
		},
		SMTP: SMTPConfig{
			Host:      getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:      getEnvInt("SMTP_PORT", 587),
			Username:  getEnv("EMAIL_USER", ""),
			Password:  getEnv("EMAIL_PASSWORD", ""),
			Recipient: getEnv("ENQUIRY_RECIPIENT", ""),
		},
		PackSize:      getEnvInt("PACK_SIZE", 1),
		SnowflakeNode: int64(getEnvInt("SNOWFLAKE_NODE", 1)),
	}

	if cfg.Session.Secret == "" && cfg.IsDevelopment() {
		cfg.Session.Secret = "development-session-secret"
	}

	return cfg, cfg.Validate()
}

func (c Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreSheets:
		if c.Sheets.SpreadsheetID == "" || c.Sheets.Credentials == "" {
			return errors.New("SHEETS_SPREADSHEET_ID and GOOGLE_CREDENTIALS are required for the sheets store")
		}
	case StorePostgres:
		if c.DB.DSN == "" {
			return errors.New("DATABASE_URL is required for the postgres store")
		}
		if c.Sheets.SpreadsheetID == "" || c.Sheets.Credentials == "" {
			return errors.New("SHEETS_SPREADSHEET_ID and GOOGLE_CREDENTIALS are required for the company catalogue")
		}
	case StoreMemory:
	default:
		return errors.Errorf("unknown STORE %q", c.Store)
	}

	if c.Session.Secret == "" {
		return errors.New("SESSION_SECRET is required")
	}
	if c.PackSize < 1 {
		return errors.Errorf("PACK_SIZE must be positive, got %d", c.PackSize)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
