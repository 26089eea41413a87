package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/cyberguard/internal/store"
)

// EnvPrefix prefixes every environment override, e.g. CYBERGUARD_DB.
const EnvPrefix = "CYBERGUARD"

// Config holds the application settings.
type Config struct {
	DB         string `mapstructure:"db"`
	Catalog    string `mapstructure:"catalog"`
	LogFile    string `mapstructure:"log_file"`
	LogMode    string `mapstructure:"log_mode"`
	Timezone   string `mapstructure:"timezone"`
	BcryptCost int    `mapstructure:"bcrypt_cost"`
}

// Options controls where Load looks.
type Options struct {
	// ConfigFile is an explicit config path; it must exist when set.
	ConfigFile string

	// SearchPaths are directories searched for config.yaml when ConfigFile
	// is empty. Defaults to the data directory and the working directory.
	SearchPaths []string
}

// Load resolves configuration from defaults, an optional config.yaml, and
// CYBERGUARD_* environment variables, in increasing priority. A .env file
// in the working directory is loaded into the environment first.
func Load(opts Options) (*Config, error) {
	_ = godotenv.Load()

	dataDir, err := store.DataDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("db", filepath.Join(dataDir, "cyberguard.db"))
	v.SetDefault("catalog", "")
	v.SetDefault("log_file", "")
	v.SetDefault("log_mode", "development")
	v.SetDefault("timezone", "Local")
	v.SetDefault("bcrypt_cost", bcrypt.DefaultCost)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		paths := opts.SearchPaths
		if len(paths) == 0 {
			paths = []string{dataDir, "."}
		}
		for _, p := range paths {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated and ranged settings.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogMode) {
	case "development", "dev", "production", "prod":
	default:
		return fmt.Errorf("invalid log_mode %q: want development or production", c.LogMode)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("invalid bcrypt_cost %d: want %d..%d", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the streak calendar. "Local" or empty means time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
