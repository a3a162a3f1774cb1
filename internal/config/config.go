// Package config loads service settings from an optional YAML file and
// ECOFASHION_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "ECOFASHION"

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Recommend RecommendConfig `mapstructure:"recommend"`
	Similar   SimilarConfig   `mapstructure:"similar"`
	Compare   CompareConfig   `mapstructure:"compare"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// CatalogConfig points at an external catalog file. An empty path selects
// the built-in catalog.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

type StorageConfig struct {
	Driver     string `mapstructure:"driver"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type RecommendConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
}

type SimilarConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
}

// CompareConfig caps how many products one comparison may hold; 0 disables
// the cap.
type CompareConfig struct {
	MaxItems int `mapstructure:"max_items"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("catalog.path", "")
	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("storage.sqlite_path", "data/catalog.db")
	v.SetDefault("recommend.default_limit", 5)
	v.SetDefault("similar.default_limit", 4)
	v.SetDefault("compare.max_items", 4)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// Load reads path (if non-empty), applies environment overrides and
// validates the result.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			errs = append(errs, errors.New("storage.sqlite_path is required for the sqlite driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q is not one of memory, sqlite", c.Storage.Driver))
	}
	if c.Recommend.DefaultLimit < 0 {
		errs = append(errs, errors.New("recommend.default_limit must be >= 0"))
	}
	if c.Similar.DefaultLimit < 0 {
		errs = append(errs, errors.New("similar.default_limit must be >= 0"))
	}
	if c.Compare.MaxItems < 0 {
		errs = append(errs, errors.New("compare.max_items must be >= 0"))
	}
	if c.Server.Address == "" {
		errs = append(errs, errors.New("server.address is required"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
