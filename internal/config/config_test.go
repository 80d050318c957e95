package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
port = 5432
user = "app"
password = "secret"
dbname = "reservations"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Server.HTTPPort)
	require.Equal(t, 10, cfg.Server.ShutdownTimeout)
	require.Equal(t, "disable", cfg.Database.SSLMode)
	require.Equal(t, 50, cfg.Booking.MaxDailyReservations)
}

func TestLoadExplicitZeroDisablesDailyCap(t *testing.T) {
	path := writeConfig(t, `
[booking]
max_daily_reservations = 0
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 0, cfg.Booking.MaxDailyReservations)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	c := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "app",
		Password: "secret",
		DBName:   "reservations",
		SSLMode:  "disable",
	}

	require.Equal(t,
		"host=db port=5432 user=app password=secret dbname=reservations sslmode=disable",
		c.DSN(),
	)
}
