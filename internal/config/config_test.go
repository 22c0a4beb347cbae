package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TELEGRAM_API_TOKEN", "")
	t.Setenv("TELEGRAM_OWNER_ID", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DriverJSON, cfg.Store.Driver)
	assert.Equal(t, "default", cfg.Store.Collection)
	assert.Equal(t, "data/review_items.json", cfg.Store.JSONPath)
	assert.Equal(t, 30*time.Minute, cfg.DB.MaxConnLifetime)
	assert.True(t, cfg.Reminder.Enabled)
	assert.Equal(t, "0 * * * *", cfg.Reminder.Schedule)
	assert.NoError(t, cfg.Validate())

	assert.ErrorIs(t, cfg.Telegram.Validate(), ErrMissingEnvironmentVariables)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recall.yaml")
	data := `
env: production
log_level: warn
store:
  driver: SQLite
  sqlite_path: /var/lib/recall/recall.db
database:
  max_connections: 4
reminder:
  schedule: "30 8 * * *"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	t.Setenv("STORE_COLLECTION", "work")
	t.Setenv("TELEGRAM_API_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_OWNER_ID", "42")
	t.Setenv("DATABASE_URL", "postgres://recall@localhost/recall")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/var/lib/recall/recall.db", cfg.Store.SQLitePath)
	assert.Equal(t, "work", cfg.Store.Collection)
	assert.Equal(t, 4, cfg.DB.MaxConnections)
	assert.Equal(t, "30 8 * * *", cfg.Reminder.Schedule)
	assert.Equal(t, "123:abc", cfg.Telegram.APIToken)
	assert.Equal(t, int64(42), cfg.Telegram.OwnerID)

	dsn, err := cfg.DB.DSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://recall@localhost/recall", dsn)

	assert.NoError(t, cfg.Validate())
	assert.NoError(t, cfg.Telegram.Validate())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	base := func() Config {
		return Config{Store: Store{Driver: DriverJSON, Collection: "default", JSONPath: "items.json"}}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"json ok", func(c *Config) {}, nil},
		{"memory ok", func(c *Config) { c.Store.Driver = DriverMemory }, nil},
		{"unknown driver", func(c *Config) { c.Store.Driver = "redis" }, ErrInvalidConfig},
		{"empty collection", func(c *Config) { c.Store.Collection = "" }, ErrInvalidConfig},
		{"json without path", func(c *Config) { c.Store.JSONPath = "" }, ErrInvalidConfig},
		{"sqlite without path", func(c *Config) { c.Store.Driver = DriverSQLite }, ErrInvalidConfig},
		{"postgres without url", func(c *Config) { c.Store.Driver = DriverPostgres }, ErrMissingEnvironmentVariables},
		{"postgres with url", func(c *Config) {
			c.Store.Driver = DriverPostgres
			c.DB.URL = "postgres://localhost/recall"
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
