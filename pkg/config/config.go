package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for catalog-engine.
// Configuration can come from YAML file (config.yaml) or environment
// variables; environment variables always override YAML values.
// Secrets (the database password) must only come from the environment.
type Config struct {
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:""`
	Port     string `yaml:"port" env:"PORT" env-default:"4000"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	Database DatabaseConfig `yaml:"database"`
	Import   ImportConfig   `yaml:"import"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"catalog"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"price_compare"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"10"`
}

// URL builds the connection URL for pgx and golang-migrate.
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

// ImportConfig holds the batch importer's input file locations.
type ImportConfig struct {
	ListingsFile    string `yaml:"listings_file" env:"IMPORT_LISTINGS_FILE" env-default:"data/productList.csv"`
	PricesFile      string `yaml:"prices_file" env:"IMPORT_PRICES_FILE" env-default:"data/prices.csv"`
	SuggestionsFile string `yaml:"suggestions_file" env:"IMPORT_SUGGESTIONS_FILE" env-default:"data/suggestions.csv"`
	// Encoding of the input files: utf8, windows1251 or latin1.
	Encoding       string `yaml:"encoding" env:"IMPORT_ENCODING" env-default:"utf8"`
	MigrationsPath string `yaml:"migrations_path" env:"IMPORT_MIGRATIONS_PATH" env-default:"migrations"`
}

// Load reads configuration from config.yaml with environment variable
// overrides. When config.yaml is absent, configuration comes from the
// environment alone. The version parameter is injected at build time.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	return cfg, nil
}
