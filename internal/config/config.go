// Package config loads the connection and run settings for a sync,
// from an optional YAML file overlaid by environment variables
// (which main populates from the .env file).
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

const (
	DefaultMongoDatabase = "portalsync"
	DefaultWindowYears   = 2
	DefaultLogLevel      = "info"
)

// Config holds all configuration for a run. It is built once and passed
// to the orchestrator; nothing reads connection strings from globals.
type Config struct {
	ERPConnString    string `yaml:"erp_connection_string"`
	MirrorConnString string `yaml:"mirror_connection_string"`
	MongoConnString  string `yaml:"mongo_connection_string"`
	MongoDatabase    string `yaml:"mongo_database"`
	WindowYears      int    `yaml:"window_years"`
	LogLevel         string `yaml:"log_level"`
	LogFile          string `yaml:"log_file"`
}

// LoadConfig loads settings from environment variables only.
func LoadConfig() (*Config, error) {
	return Load("")
}

// Load reads the YAML file at path when path is not empty, then applies
// environment overrides, defaults and validation.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		var err error
		if cfg, err = LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.ERPConnString, "ERP_CONNECTION_STRING")
	setString(&c.MirrorConnString, "MIRROR_CONNECTION_STRING")
	setString(&c.MongoConnString, "MONGO_CONNECTION_STRING")
	setString(&c.MongoDatabase, "MONGO_DATABASE")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogFile, "LOG_FILE")

	if v := os.Getenv("SYNC_WINDOW_YEARS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "SYNC_WINDOW_YEARS must be a whole number of years")
		}
		c.WindowYears = n
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.MongoDatabase == "" {
		c.MongoDatabase = DefaultMongoDatabase
	}
	if c.WindowYears == 0 {
		c.WindowYears = DefaultWindowYears
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate reports the first missing or out of range setting.
func (c *Config) Validate() error {
	if c.ERPConnString == "" {
		return errors.New("ERP_CONNECTION_STRING environment variable not set")
	}
	if c.MirrorConnString == "" {
		return errors.New("MIRROR_CONNECTION_STRING environment variable not set")
	}
	if c.WindowYears < 1 {
		return fmt.Errorf("window years must be at least 1, got %d", c.WindowYears)
	}
	return nil
}

// HistoryEnabled reports whether runs should be recorded in MongoDB.
func (c *Config) HistoryEnabled() bool {
	return c.MongoConnString != ""
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
