package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	MongoURI     string `mapstructure:"MONGODB_URI"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`
	BaseURL      string `mapstructure:"BASE_URL"`
	Env          string `mapstructure:"ENV"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`

	// Seed run settings.
	SeedTimeout time.Duration `mapstructure:"SEED_TIMEOUT"`
	SeedFile    string        `mapstructure:"SEED_FILE"`

	// Redis configuration. An empty address disables the seed lock.
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisLockDB   int           `mapstructure:"REDIS_LOCK_DB"`
	SeedLockTTL   time.Duration `mapstructure:"SEED_LOCK_TTL"`

	// Cloudinary cloud name. When set, image paths are resolved to Cloudinary delivery URLs.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "shoecare")
	v.SetDefault("BASE_URL", "http://localhost:5000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SEED_TIMEOUT", "30s")
	v.SetDefault("SEED_FILE", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_LOCK_DB", 0)
	v.SetDefault("SEED_LOCK_TTL", "2m")
	v.SetDefault("CLOUDINARY_CLOUD_NAME", "")
}

// Load reads configuration from environment variables, an optional config file and defaults.
// With an empty configFile it looks for "config.yaml" in the current and "config" directory.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.MongoURI == "" {
		return nil, errors.New("MONGODB_URI must not be empty")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("BASE_URL must not be empty")
	}
	if u, err := url.Parse(cfg.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("BASE_URL %q must be an absolute URL", cfg.BaseURL)
	}
	return &cfg, nil
}

// IsProduction checks if the environment is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// LockEnabled reports whether seed runs are serialized through Redis.
func (c *Config) LockEnabled() bool {
	return c.RedisAddr != ""
}

// ServicesEndpoint is the read API route expected to serve the seeded collection.
func (c *Config) ServicesEndpoint() string {
	endpoint, err := url.JoinPath(c.BaseURL, "api", "services")
	if err != nil {
		return strings.TrimRight(c.BaseURL, "/") + "/api/services"
	}
	return endpoint
}
