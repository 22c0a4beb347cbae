package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidConfig               = errors.New("invalid configuration")
)

// Store drivers.
const (
	DriverJSON     = "json"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env      string   `mapstructure:"env"`       // current application environment (local, dev, production etc)
	LogLevel string   `mapstructure:"log_level"` // zap level name, empty keeps the environment default
	SeedPath string   `mapstructure:"seed_path"` // JSON file with example items used when the store is empty
	Store    Store    `mapstructure:"store"`
	DB       DB       `mapstructure:"database"`
	Reminder Reminder `mapstructure:"reminder"`
	Telegram Telegram `mapstructure:"-"`
}

// Store selects and configures the review item store.
type Store struct {
	Driver     string `mapstructure:"driver"`      // json, postgres, sqlite or memory
	Collection string `mapstructure:"collection"`  // collection name for database drivers
	JSONPath   string `mapstructure:"json_path"`   // file used by the json driver
	SQLitePath string `mapstructure:"sqlite_path"` // database file used by the sqlite driver
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Reminder configures due reminders sent by the bot.
type Reminder struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"` // cron spec, evaluated in UTC
}

// Telegram holds bot secrets. They are read from the environment only.
type Telegram struct {
	APIToken string
	OwnerID  int64 // the only chat the bot answers
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
	}
	return db.URL, nil
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	if c.Store.Collection == "" {
		return fmt.Errorf("%w: store.collection is empty", ErrInvalidConfig)
	}

	switch c.Store.Driver {
	case DriverJSON:
		if c.Store.JSONPath == "" {
			return fmt.Errorf("%w: store.json_path is empty", ErrInvalidConfig)
		}
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("%w: store.sqlite_path is empty", ErrInvalidConfig)
		}
	case DriverPostgres:
		if _, err := c.DB.DSN(); err != nil {
			return err
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: unknown store driver %q", ErrInvalidConfig, c.Store.Driver)
	}

	return nil
}

// Validate checks the bot secrets.
func (t Telegram) Validate() error {
	var missing []string
	if t.APIToken == "" {
		missing = append(missing, "TELEGRAM_API_TOKEN")
	}
	if t.OwnerID == 0 {
		missing = append(missing, "TELEGRAM_OWNER_ID")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingEnvironmentVariables, strings.Join(missing, ", "))
	}
	return nil
}

// Load reads configuration from a .env file, a config file and environment
// variables. An empty configFile searches ./config for config.yaml.
func Load(configFile string) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
	}

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("log_level", "")
	v.SetDefault("seed_path", "assets/data/review_items.json")
	v.SetDefault("store.driver", DriverJSON)
	v.SetDefault("store.collection", "default")
	v.SetDefault("store.json_path", "data/review_items.json")
	v.SetDefault("store.sqlite_path", "data/recall.db")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("reminder.enabled", true)
	v.SetDefault("reminder.schedule", "0 * * * *")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("telegram_owner_id", "TELEGRAM_OWNER_ID")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.DB.URL = v.GetString("database_url")
	cfg.Telegram.APIToken = v.GetString("telegram_api_token")
	cfg.Telegram.OwnerID = v.GetInt64("telegram_owner_id")

	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))

	return &cfg, nil
}
