package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	GraphQL   GraphQLConfig
	Print     PrintConfig
	Sheets    SheetsConfig
	Reporting ReportingConfig
	MongoDB   MongoDBConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port           string
	SessionCookie  string
	SessionIdleTTL time.Duration
}

// GraphQLConfig points at the inventory GraphQL endpoint receiving fabric mutations.
type GraphQLConfig struct {
	Endpoint string
	Token    string
	Timeout  time.Duration
}

// PrintConfig controls the QR print popup.
type PrintConfig struct {
	MaxSurfaces  int
	ProbeTimeout time.Duration
}

// SheetsConfig contains configuration required to mirror submissions into Google Sheets.
// Mirroring is disabled when SpreadsheetID is empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	Range           string
}

// Enabled reports whether a spreadsheet mirror was configured.
func (c SheetsConfig) Enabled() bool {
	return c.SpreadsheetID != ""
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule  string
	SweepSchedule string
	Timezone      string
}

// MongoDBConfig holds settings for MongoDB. The submission journal is disabled when URI is empty.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Enabled reports whether a MongoDB journal was configured.
func (c MongoDBConfig) Enabled() bool {
	return c.URI != ""
}

// LogConfig holds logger options.
type LogConfig struct {
	Level string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	idleTTL, err := getDurationWithDefault("SESSION_IDLE_TTL", 2*time.Hour)
	if err != nil {
		return nil, err
	}
	gqlTimeout, err := getDurationWithDefault("GRAPHQL_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	probeTimeout, err := getDurationWithDefault("PRINT_PROBE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	maxSurfaces, err := getIntWithDefault("PRINT_MAX_SURFACES", 16)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getenvWithDefault("APP_PORT", "8080"),
			SessionCookie:  getenvWithDefault("SESSION_COOKIE", "fabric_session"),
			SessionIdleTTL: idleTTL,
		},
		GraphQL: GraphQLConfig{
			Endpoint: os.Getenv("GRAPHQL_ENDPOINT"),
			Token:    os.Getenv("GRAPHQL_TOKEN"),
			Timeout:  gqlTimeout,
		},
		Print: PrintConfig{
			MaxSurfaces:  maxSurfaces,
			ProbeTimeout: probeTimeout,
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			Range:           getenvWithDefault("GOOGLE_SHEET_RANGE", "Fabrics!A:H"),
		},
		Reporting: ReportingConfig{
			CronSchedule:  getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * *"),
			SweepSchedule: getenvWithDefault("SESSION_SWEEP_SCHEDULE", "@every 10m"),
			Timezone:      getenvWithDefault("TIMEZONE", "UTC"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "inventory"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Server.SessionCookie == "" {
		return errors.New("SESSION_COOKIE must not be empty")
	}

	if c.GraphQL.Endpoint == "" {
		return errors.New("GRAPHQL_ENDPOINT must be provided")
	}

	if c.Print.MaxSurfaces <= 0 {
		return errors.New("PRINT_MAX_SURFACES must be positive")
	}

	if c.Sheets.Enabled() && c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when GOOGLE_SHEET_DATABASE_ID is set")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if _, err := time.LoadLocation(c.Reporting.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE is invalid: %w", err)
	}

	if c.MongoDB.Enabled() && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must not be empty")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDurationWithDefault(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid duration: %w", key, err)
	}
	return d, nil
}

func getIntWithDefault(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid integer: %w", key, err)
	}
	return n, nil
}
