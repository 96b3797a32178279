package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config is the interface that all service configs must implement.
type Config interface {
	Validate() error
}

// CatalogConfig contains all configuration for the catalog service.
type CatalogConfig struct {
	Service  ServiceConfig  `koanf:"service"`
	Database DatabaseConfig `koanf:"database"`
	Storage  StorageConfig  `koanf:"storage"`
	Kafka    KafkaConfig    `koanf:"kafka"`
	NATS     NATSConfig     `koanf:"nats"`
	Logger   LoggerConfig   `koanf:"logger"`
}

// ServiceConfig contains service-specific metadata.
type ServiceConfig struct {
	Name         string        `koanf:"name"`
	Environment  string        `koanf:"environment"` // dev, staging, production
	ShutdownTime time.Duration `koanf:"shutdown_time"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	User            string        `koanf:"user"`
	Password        string        `koanf:"password"`
	Database        string        `koanf:"database"`
	SSLMode         string        `koanf:"ssl_mode"`
	MaxConnections  int           `koanf:"max_connections"`
	MaxConnLifetime time.Duration `koanf:"max_conn_lifetime"`
}

// DSN builds the postgres connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// StorageConfig contains binary media storage settings.
type StorageConfig struct {
	Bucket          string `koanf:"bucket"`
	Region          string `koanf:"region"`
	Prefix          string `koanf:"prefix"`
	FilenamePattern string `koanf:"filename_pattern"` // e.g. {type}; must be stable per slot
	LocationPattern string `koanf:"location_pattern"` // e.g. videoId-{videoId}
}

// KafkaConfig contains settings for the encoder callback consumer.
type KafkaConfig struct {
	Brokers []string `koanf:"brokers"`
	GroupID string   `koanf:"group_id"`
	Topic   string   `koanf:"topic"`
}

// NATSConfig contains settings for the outbound event publisher.
type NATSConfig struct {
	URL    string `koanf:"url"`
	Stream string `koanf:"stream"`
}

// LoggerConfig contains logging configuration.
type LoggerConfig struct {
	Level       string `koanf:"level"`  // debug, info, warn, error
	Format      string `koanf:"format"` // json, console
	Development bool   `koanf:"development"`
}

// Validate checks the configuration for missing required settings.
func (c *CatalogConfig) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Storage.Bucket == "" {
		return fmt.Errorf("storage bucket is required")
	}
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("at least one kafka broker is required")
	}
	return nil
}

// DefaultCatalogConfig returns the catalog config defaults.
func DefaultCatalogConfig() *CatalogConfig {
	return &CatalogConfig{
		Service: ServiceConfig{
			Name:         "catalog",
			Environment:  "development",
			ShutdownTime: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "finch",
			Password:        "finch",
			Database:        "finch_catalog",
			SSLMode:         "disable",
			MaxConnections:  25,
			MaxConnLifetime: 5 * time.Minute,
		},
		Storage: StorageConfig{
			Bucket:          "finch-media",
			Region:          "us-east-1",
			FilenamePattern: "{type}",
			LocationPattern: "videoId-{videoId}",
		},
		Kafka: KafkaConfig{
			Brokers: []string{"localhost:9092"},
			GroupID: "catalog",
			Topic:   "video.encoded",
		},
		NATS: NATSConfig{
			URL:    "nats://localhost:4222",
			Stream: "catalog",
		},
		Logger: LoggerConfig{
			Level:       "info",
			Format:      "console",
			Development: true,
		},
	}
}

// Manager handles configuration loading and parsing.
type Manager struct {
	k           *koanf.Koanf
	serviceName string
	configPaths []string
}

// NewManager creates a new configuration manager.
func NewManager(serviceName string) *Manager {
	return &Manager{
		k:           koanf.New("."),
		serviceName: serviceName,
		configPaths: defaultConfigPaths(serviceName),
	}
}

// Load loads configuration from defaults, config files, and environment
// variables, in increasing order of precedence.
func (m *Manager) Load(cfg Config) error {
	if err := m.k.Load(structs.Provider(cfg, "koanf"), nil); err != nil {
		return fmt.Errorf("failed to load defaults: %w", err)
	}

	for _, path := range m.configPaths {
		if err := m.loadFromFile(path); err != nil {
			if !os.IsNotExist(err) {
				return fmt.Errorf("failed to load config from %s: %w", path, err)
			}
		}
	}

	if err := m.loadFromEnv(); err != nil {
		return fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := m.k.Unmarshal("", cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// MustLoadCatalogConfig loads the catalog config and panics on failure.
func MustLoadCatalogConfig() *CatalogConfig {
	cfg := DefaultCatalogConfig()
	if err := NewManager("finch").Load(cfg); err != nil {
		panic(err)
	}
	return cfg
}

// loadFromFile loads configuration from a file.
func (m *Manager) loadFromFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return err
	}

	var parser koanf.Parser
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return fmt.Errorf("unsupported config file format: %s", ext)
	}

	return m.k.Load(file.Provider(path), parser)
}

// loadFromEnv loads configuration from FINCH_-prefixed environment
// variables, e.g. FINCH_DATABASE_HOST maps to database.host.
func (m *Manager) loadFromEnv() error {
	prefix := strings.ToUpper(m.serviceName) + "_"

	return m.k.Load(env.Provider(prefix, ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(s, prefix), "_", "."))
	}), nil)
}

// defaultConfigPaths returns the config paths to check.
func defaultConfigPaths(serviceName string) []string {
	paths := []string{
		"config.yaml",
		"config.json",
		fmt.Sprintf("configs/%s.yaml", serviceName),
		fmt.Sprintf("configs/%s.json", serviceName),
	}

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		paths = append([]string{configPath}, paths...)
	}

	return paths
}
