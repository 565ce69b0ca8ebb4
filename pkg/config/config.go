// Package config loads service settings from a YAML file and the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Catalog sources.
const (
	SourceBuiltin  = "builtin"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Cart stores.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config is the full service configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Catalog CatalogConfig `yaml:"catalog"`
	Cart    CartConfig    `yaml:"cart"`
	Session SessionConfig `yaml:"session"`
	Tracing TracingConfig `yaml:"tracing"`
	Log     LogConfig     `yaml:"log"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	TLSCert         string        `yaml:"tls_cert"`
	TLSKey          string        `yaml:"tls_key"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type CatalogConfig struct {
	Source      string `yaml:"source"`
	File        string `yaml:"file"`
	DatabaseURL string `yaml:"database_url"`
}

type CartConfig struct {
	Store     string `yaml:"store"`
	RedisAddr string `yaml:"redis_addr"`
}

type SessionConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

type TracingConfig struct {
	Host        string  `yaml:"host"`
	Probability float64 `yaml:"probability"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		HTTP:    HTTPConfig{Addr: ":8443", ShutdownTimeout: 10 * time.Second},
		Catalog: CatalogConfig{Source: SourceBuiltin},
		Cart:    CartConfig{Store: StoreMemory},
		Session: SessionConfig{TTL: time.Hour},
		Tracing: TracingConfig{Probability: 1.0},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads path (when non-empty) over the defaults, then applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("LIGHTSHOP_ADDR"); v != "" {
		c.HTTP.Addr = v
	}
	if v := os.Getenv("LIGHTSHOP_TLS_CERT"); v != "" {
		c.HTTP.TLSCert = v
	}
	if v := os.Getenv("LIGHTSHOP_TLS_KEY"); v != "" {
		c.HTTP.TLSKey = v
	}
	if v := os.Getenv("LIGHTSHOP_CATALOG_FILE"); v != "" {
		c.Catalog.File = v
		c.Catalog.Source = SourceFile
	}
	// A database wins over a file when both are given.
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Catalog.DatabaseURL = v
		c.Catalog.Source = SourcePostgres
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cart.RedisAddr = v
		c.Cart.Store = StoreRedis
	}
	if v := os.Getenv("LIGHTSHOP_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("LIGHTSHOP_SESSION_TTL: %w", err)
		}
		c.Session.TTL = d
	}
	if v := os.Getenv("OTEL_HOST"); v != "" {
		c.Tracing.Host = v
	}
	if v := os.Getenv("OTEL_PROBABILITY"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("OTEL_PROBABILITY: %w", err)
		}
		c.Tracing.Probability = p
	}
	if v := os.Getenv("LIGHTSHOP_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case SourceBuiltin:
	case SourceFile:
		if c.Catalog.File == "" {
			return fmt.Errorf("catalog.file is required for the %q source", SourceFile)
		}
	case SourcePostgres:
		if c.Catalog.DatabaseURL == "" {
			return fmt.Errorf("catalog.database_url is required for the %q source", SourcePostgres)
		}
	default:
		return fmt.Errorf("unknown catalog source %q", c.Catalog.Source)
	}
	switch c.Cart.Store {
	case StoreMemory:
	case StoreRedis:
		if c.Cart.RedisAddr == "" {
			return fmt.Errorf("cart.redis_addr is required for the %q store", StoreRedis)
		}
	default:
		return fmt.Errorf("unknown cart store %q", c.Cart.Store)
	}
	if c.Tracing.Probability < 0 || c.Tracing.Probability > 1 {
		return fmt.Errorf("tracing.probability %v outside [0,1]", c.Tracing.Probability)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}
	if (c.HTTP.TLSCert == "") != (c.HTTP.TLSKey == "") {
		return fmt.Errorf("http.tls_cert and http.tls_key must be set together")
	}
	return nil
}
