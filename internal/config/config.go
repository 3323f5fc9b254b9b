package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port           string   `yaml:"port" env:"SERVER_PORT"`
		Mode           string   `yaml:"mode" env:"SERVER_MODE"`
		ReadTimeout    string   `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout   string   `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		IdleTimeout    string   `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
		MaxBodyBytes   int64    `yaml:"max_body_bytes" env:"SERVER_MAX_BODY_BYTES"`
		CORSOrigins    []string `yaml:"cors_origins" env:"SERVER_CORS_ORIGINS"`
		// TrustedProxies lists the IPs or CIDRs allowed to set X-Forwarded-For; empty trusts none
		TrustedProxies []string `yaml:"trusted_proxies" env:"SERVER_TRUSTED_PROXIES"`
	} `yaml:"server"`

	Database struct {
		URL             string `yaml:"url" env:"DATABASE_URL"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MinConns        int    `yaml:"min_conns" env:"DB_MIN_CONNS"`
		MaxConns        int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Crypto struct {
		Key string `yaml:"key" env:"CRYPTO_KEY"`
	} `yaml:"crypto"`

	Cache struct {
		Driver string `yaml:"driver" env:"CACHE_DRIVER"`
		TTL    string `yaml:"ttl" env:"CACHE_TTL"`
		Size   int    `yaml:"size" env:"CACHE_SIZE"`
		Redis  struct {
			Addr     string `yaml:"addr" env:"REDIS_ADDR"`
			Password string `yaml:"password" env:"REDIS_PASSWORD"`
			DB       int    `yaml:"db" env:"REDIS_DB"`
			Prefix   string `yaml:"prefix" env:"REDIS_PREFIX"`
		} `yaml:"redis"`
	} `yaml:"cache"`

	Registration struct {
		UniqueNames bool `yaml:"unique_names" env:"REGISTRATION_UNIQUE_NAMES"`
	} `yaml:"registration"`

	Verify struct {
		RateLimitPerMinute int `yaml:"rate_limit_per_minute" env:"VERIFY_RATE_LIMIT_PER_MINUTE"`
	} `yaml:"verify"`

	Seed struct {
		Demo bool `yaml:"demo" env:"SEED_DEMO"`
	} `yaml:"seed"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load default config with sane defaults
	config := &Config{}
	setDefaults(config)

	// The file is optional; environment variables alone are enough
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.ReadTimeout = "10s"
	config.Server.WriteTimeout = "15s"
	config.Server.IdleTimeout = "60s"
	config.Server.MaxBodyBytes = 64 << 10
	config.Server.CORSOrigins = []string{"*"}

	// Database defaults
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "gradtracker"
	config.Database.SSLMode = "disable"
	config.Database.MinConns = 2
	config.Database.MaxConns = 10
	config.Database.ConnMaxLifetime = "1h"

	// Cache defaults
	config.Cache.Driver = "memory"
	config.Cache.TTL = "30s"
	config.Cache.Size = 1024
	config.Cache.Redis.Prefix = "gradtracker:"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.URL == "" && config.Database.Host == "" {
		return errors.New("database url or host is required")
	}

	if strings.TrimSpace(config.Crypto.Key) == "" {
		return errors.New("crypto key is required (set CRYPTO_KEY)")
	}

	durations := map[string]string{
		"server.read_timeout":        config.Server.ReadTimeout,
		"server.write_timeout":       config.Server.WriteTimeout,
		"server.idle_timeout":        config.Server.IdleTimeout,
		"database.conn_max_lifetime": config.Database.ConnMaxLifetime,
		"cache.ttl":                  config.Cache.TTL,
	}
	for name, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	switch strings.ToLower(config.Cache.Driver) {
	case "memory", "redis", "none":
	default:
		return fmt.Errorf("unsupported cache driver %q", config.Cache.Driver)
	}

	if config.Server.MaxBodyBytes <= 0 {
		return errors.New("server.max_body_bytes must be positive")
	}

	if config.Verify.RateLimitPerMinute < 0 {
		return errors.New("verify.rate_limit_per_minute must not be negative")
	}

	for _, origin := range config.Server.CORSOrigins {
		if origin == "*" || strings.HasPrefix(origin, "http://") || strings.HasPrefix(origin, "https://") {
			continue
		}
		return fmt.Errorf("invalid server.cors_origins entry %q", origin)
	}

	for _, proxy := range config.Server.TrustedProxies {
		if net.ParseIP(proxy) != nil {
			continue
		}
		if _, _, err := net.ParseCIDR(proxy); err == nil {
			continue
		}
		return fmt.Errorf("invalid server.trusted_proxies entry %q", proxy)
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}

	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     c.Database.Host + ":" + c.Database.Port,
		Path:     "/" + c.Database.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	return dsn.String()
}
