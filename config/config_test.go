package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PHISHNET_BASE_URL", "START_YEAR", "DATA_DIR", "CSV_DIR", "DB_DRIVER",
		"SQLITE_PATH", "FETCH_MODE", "HTTP_TIMEOUT_SEC", "REQUEST_DELAY_MS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	require.Equal(t, "https://phish.net/music/ratings", cfg.BaseURL)
	require.Equal(t, 1984, cfg.StartYear)
	require.Equal(t, DriverSQLite, cfg.DBDriver)
	require.Equal(t, FetchModeHTTP, cfg.FetchMode)
	require.Equal(t, filepath.Join("./data", "ratings.db"), cfg.SQLitePath)
	require.Equal(t, filepath.Join("./data", "csv"), cfg.CSVDir)
	require.Equal(t, 30*time.Second, cfg.HTTPTimeout())
	require.Equal(t, time.Second, cfg.RequestDelay())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATA_DIR", "/tmp/ratings")
	t.Setenv("CSV_DIR", "")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("START_YEAR", "2020")
	t.Setenv("REQUEST_DELAY_MS", "0")
	t.Setenv("HTTP_TIMEOUT_SEC", "not-a-number")

	cfg := Load()

	require.Equal(t, 2020, cfg.StartYear)
	require.Equal(t, "/tmp/ratings/ratings.db", cfg.SQLitePath)
	require.Equal(t, "/tmp/ratings/csv", cfg.CSVDir)
	require.Equal(t, time.Duration(0), cfg.RequestDelay())
	require.Equal(t, 30, cfg.HTTPTimeoutSec)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost:     "db",
		PostgresPort:     "5432",
		PostgresUser:     "u",
		PostgresPassword: "p",
		PostgresDB:       "d",
		PostgresSSLMode:  "disable",
	}
	require.Equal(t, "host=db port=5432 user=u password=p dbname=d sslmode=disable", cfg.DSN())
}
