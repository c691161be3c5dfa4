package config

import (
	"fmt"

	pkgconfig "github.com/utafrali/CatalogGo/pkg/config"
	"github.com/utafrali/CatalogGo/pkg/database"
)

// Config holds all configuration for the catalog service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"PORT" envDefault:"3000"`

	// MySQL
	DBHost         string `env:"DB_HOST" envDefault:"mysql"`
	DBPort         int    `env:"DB_PORT" envDefault:"3306"`
	DBUser         string `env:"DB_USER" envDefault:"root"`
	DBPassword     string `env:"DB_PASSWORD" envDefault:"rootpassword"`
	DBName         string `env:"DB_NAME" envDefault:"appdb"`
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`

	// Elasticsearch
	ElasticsearchURL   string `env:"ELASTICSEARCH_HOST" envDefault:"http://elasticsearch:9200"`
	ElasticsearchIndex string `env:"ELASTICSEARCH_INDEX" envDefault:"products"`

	// Search engine selection (elasticsearch or memory)
	SearchEngine string `env:"SEARCH_ENGINE" envDefault:"elasticsearch"`

	// Product feed used to seed the catalog
	FeedURL string `env:"FEED_URL" envDefault:"https://dummyjson.com/products"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load catalog config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.DBPort < 1 || c.DBPort > 65535 {
		return fmt.Errorf("invalid DB port: %d", c.DBPort)
	}
	if c.DBMaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be positive, got %d", c.DBMaxOpenConns)
	}
	return nil
}

// MySQL builds the connection pool configuration.
func (c *Config) MySQL() database.MySQLConfig {
	mc := database.DefaultMySQLConfig()
	mc.Host = c.DBHost
	mc.Port = c.DBPort
	mc.User = c.DBUser
	mc.Password = c.DBPassword
	mc.DBName = c.DBName
	mc.MaxOpenConns = c.DBMaxOpenConns
	return mc
}
