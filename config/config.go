package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	FetchModeHTTP    = "http"
	FetchModeBrowser = "browser"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	BaseURL   string
	StartYear int

	DataDir    string
	CSVDir     string
	DBDriver   string
	SQLitePath string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	FetchMode      string
	HTTPTimeoutSec int
	RequestDelayMs int
	ChromeBin      string

	LogLevel string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	dataDir := getEnv("DATA_DIR", "./data")

	return &Config{
		BaseURL:   getEnv("PHISHNET_BASE_URL", "https://phish.net/music/ratings"),
		StartYear: getEnvInt("START_YEAR", 1984),

		DataDir:    dataDir,
		CSVDir:     getEnv("CSV_DIR", filepath.Join(dataDir, "csv")),
		DBDriver:   getEnv("DB_DRIVER", DriverSQLite),
		SQLitePath: getEnv("SQLITE_PATH", filepath.Join(dataDir, "ratings.db")),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "ratings"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "ratings"),
		PostgresDB:       getEnv("POSTGRES_DB", "phish_ratings"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		FetchMode:      getEnv("FETCH_MODE", FetchModeHTTP),
		HTTPTimeoutSec: getEnvInt("HTTP_TIMEOUT_SEC", 30),
		RequestDelayMs: getEnvInt("REQUEST_DELAY_MS", 1000),
		ChromeBin:      getEnv("CHROME_BIN", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSec) * time.Second
}

func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.RequestDelayMs) * time.Millisecond
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
