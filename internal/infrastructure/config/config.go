package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	once     sync.Once
	instance *Config
)

// Store drivers
const (
	DriverMongoDB = "mongodb"
	DriverSQLite  = "sqlite"
	DriverCSV     = "csv"
	DriverMemory  = "memory"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	MongoDB   MongoDBConfig   `mapstructure:"mongodb"`
	SQLite    SQLiteConfig    `mapstructure:"sqlite"`
	Groceries GroceriesConfig `mapstructure:"groceries"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

type AppConfig struct {
	Name  string `mapstructure:"name"`
	Env   string `mapstructure:"env"`
	Debug bool   `mapstructure:"debug"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StoreConfig selects the record store backing recipes and inventory
type StoreConfig struct {
	Driver        string        `mapstructure:"driver"` // mongodb, sqlite, csv, memory
	RecipesFile   string        `mapstructure:"recipes_file"`
	GroceriesFile string        `mapstructure:"groceries_file"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type MongoDBConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	MaxPoolSize    uint64        `mapstructure:"max_pool_size"`
	MinPoolSize    uint64        `mapstructure:"min_pool_size"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type GroceriesConfig struct {
	// DefaultFoodType is assigned to inventory items created by reconciliation
	DefaultFoodType string `mapstructure:"default_food_type"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

// Initialize sets up v with default configuration paths and environment bindings
func Initialize(v *viper.Viper) error {
	// .env is optional; real environment variables still win
	_ = godotenv.Load()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/larder")
	v.AddConfigPath("$HOME/.larder")

	// Environment variable support
	v.SetEnvPrefix("LARDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, using defaults and env vars
	}

	return nil
}

// SetDefaults registers every default value on v
func SetDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "larder")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", false)

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")

	// Store defaults
	v.SetDefault("store.driver", DriverCSV)
	v.SetDefault("store.recipes_file", "recipes.csv")
	v.SetDefault("store.groceries_file", "groceries.csv")
	v.SetDefault("store.timeout", "10s")

	// MongoDB defaults
	v.SetDefault("mongodb.uri", "mongodb://localhost:27017")
	v.SetDefault("mongodb.database", "larder")
	v.SetDefault("mongodb.max_pool_size", 10)
	v.SetDefault("mongodb.min_pool_size", 1)
	v.SetDefault("mongodb.connect_timeout", "10s")

	// SQLite defaults
	v.SetDefault("sqlite.path", "larder.db")

	// Groceries defaults
	v.SetDefault("groceries.default_food_type", "uncategorized")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	// CORS defaults
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Authorization", "Content-Type", "X-Request-ID"})
}

// LoadFrom unmarshals and validates configuration held by v
func LoadFrom(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load returns the singleton config instance
func Load() (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.GetViper()
		if err = Initialize(v); err != nil {
			return
		}
		instance, err = LoadFrom(v)
	})
	if err != nil {
		return nil, err
	}
	return instance, nil
}

// Validate checks values that cannot be defaulted away
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMongoDB, DriverSQLite, DriverCSV, DriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Store.Driver == DriverCSV && (c.Store.RecipesFile == "" || c.Store.GroceriesFile == "") {
		return fmt.Errorf("csv store requires store.recipes_file and store.groceries_file")
	}
	if c.Store.Timeout <= 0 {
		return fmt.Errorf("store.timeout must be positive")
	}
	if c.Store.Driver == DriverSQLite && c.SQLite.Path == "" {
		return fmt.Errorf("sqlite store requires sqlite.path")
	}
	return nil
}

// GetAddress returns the server address string
func (c *Config) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// LogSettings returns the logging section, forced to debug level when
// app.debug is set
func (c *Config) LogSettings() LoggingConfig {
	settings := c.Logging
	if c.App.Debug {
		settings.Level = "debug"
	}
	return settings
}
