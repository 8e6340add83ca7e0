package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is prepended to every environment variable, e.g. RUNDASH_CONNECTION_URI.
const EnvPrefix = "RUNDASH"

// DateLayout is the layout of date_range_start and date_range_end.
const DateLayout = "2006-01-02"

// Config 应用配置
type Config struct {
	Port string `yaml:"port" envconfig:"PORT" validate:"required"`

	// Document store
	ConnectionURI  string `yaml:"connection_uri" envconfig:"CONNECTION_URI" validate:"required"`
	DatabaseName   string `yaml:"database_name" envconfig:"DATABASE_NAME" validate:"required"`
	CollectionName string `yaml:"collection_name" envconfig:"COLLECTION_NAME" validate:"required"`

	// SourceCSV, when set, serves activities from a delimited file instead of the store.
	SourceCSV string `yaml:"source_csv" envconfig:"SOURCE_CSV"`

	// Default reporting window, closed-open [start, end)
	DateRangeStart string `yaml:"date_range_start" envconfig:"DATE_RANGE_START" validate:"required,datetime=2006-01-02"`
	DateRangeEnd   string `yaml:"date_range_end" envconfig:"DATE_RANGE_END" validate:"required,datetime=2006-01-02"`

	LogLevel  string `yaml:"log_level" envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" envconfig:"LOG_FORMAT" validate:"oneof=json text"`

	RateLimitRPS   float64 `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" validate:"gte=0"`
	RateLimitBurst int     `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST" validate:"gte=0"`
}

// Default returns the configuration used when neither a file nor the environment
// overrides a value. The window covers calendar year 2024.
func Default() Config {
	return Config{
		Port:           ":8080",
		ConnectionURI:  "./data",
		DatabaseName:   "strava_data",
		CollectionName: "activities",
		DateRangeStart: "2024-01-01",
		DateRangeEnd:   "2025-01-01",
		LogLevel:       "info",
		LogFormat:      "json",
		RateLimitRPS:   20,
		RateLimitBurst: 40,
	}
}

// Load 加载配置: defaults, then the optional YAML file named by
// RUNDASH_CONFIG_FILE, then RUNDASH_* environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(EnvPrefix + "_CONFIG_FILE"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks field constraints and that the date range is not empty.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))

	if err := validator.New().Struct(c); err != nil {
		return err
	}

	start, end, err := c.DateRange()
	if err != nil {
		return err
	}
	if !start.Before(end) {
		return fmt.Errorf("date_range_start %s must be before date_range_end %s", c.DateRangeStart, c.DateRangeEnd)
	}
	return nil
}

// DateRange parses the configured window as UTC midnights.
func (c *Config) DateRange() (time.Time, time.Time, error) {
	start, err := time.Parse(DateLayout, c.DateRangeStart)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date_range_start: %w", err)
	}
	end, err := time.Parse(DateLayout, c.DateRangeEnd)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date_range_end: %w", err)
	}
	return start, end, nil
}
