package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Site     SiteConfig     `mapstructure:"site"`
	Crawl    CrawlConfig    `mapstructure:"crawl"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Output   OutputConfig   `mapstructure:"output"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
}

// SiteConfig identifies the documentation site being crawled
type SiteConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	RootPath string `mapstructure:"root_path"`
	Name     string `mapstructure:"name"` // display name used for the outline root
}

// RootURL returns the absolute URL the crawl starts from.
func (s SiteConfig) RootURL() string {
	return strings.TrimRight(s.BaseURL, "/") + s.RootPath
}

// CrawlConfig holds fetch and concurrency tuning
type CrawlConfig struct {
	MaxWorkers           int `mapstructure:"max_workers"`
	MaxRequestsPerSecond int `mapstructure:"max_requests_per_second"`
	Timeout              int `mapstructure:"timeout"`  // per-fetch, seconds
	Deadline             int `mapstructure:"deadline"` // whole crawl, seconds; 0 means none
}

// CacheConfig holds the on-disk page mirror location
type CacheConfig struct {
	Dir string `mapstructure:"dir"`
}

// OutputConfig holds where the rendered outline goes
type OutputConfig struct {
	Path string `mapstructure:"path"` // empty means stdout
}

// RedisConfig enables the shared visit guard when Host is set
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
	TTL      int    `mapstructure:"ttl"` // visit key lifetime, seconds
}

// Enabled reports whether the Redis-backed visit guard should be used.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// DatabaseConfig enables the crawl-record archive when Host is set
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// Enabled reports whether classified records should be archived to Postgres.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// Load loads configuration from YAML file with environment variable overrides.
// The tool has to work with no configuration at all, so a missing config.yaml
// just means defaults.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("site.base_url", "https://developer.apple.com")
	viper.SetDefault("site.root_path", "/documentation/technologies")
	viper.SetDefault("site.name", "Technologies")

	viper.SetDefault("crawl.max_workers", 8)
	viper.SetDefault("crawl.max_requests_per_second", 10)
	viper.SetDefault("crawl.timeout", 30)
	viper.SetDefault("crawl.deadline", 0)

	viper.SetDefault("cache.dir", filepath.Join(os.TempDir(), "samplemap"))

	viper.SetDefault("output.path", "")

	viper.SetDefault("redis.host", "")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.database", 0)
	viper.SetDefault("redis.ttl", 3600)

	viper.SetDefault("database.host", "")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "samplemap")
	viper.SetDefault("database.user", "samplemap")
	viper.SetDefault("database.password", "")
}
