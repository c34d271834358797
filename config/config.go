package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"zipweather/datasource"
)

const (
	DefaultZipCode     = "99501"
	DefaultHTTPTimeout = 10 * time.Second
)

// Config represents the application configuration
type Config struct {
	APIKey      string
	ZipCode     string
	OutputPath  string
	BaseURL     string
	HTTPTimeout time.Duration
	LogLevel    slog.Level
	AppEnv      string
}

// fileConfig is the on-disk shape. JSON files parse too since YAML is a superset.
type fileConfig struct {
	APIKey      string `yaml:"apiKey"`
	ZipCode     string `yaml:"zipCode"`
	OutputPath  string `yaml:"outputPath"`
	BaseURL     string `yaml:"baseURL"`
	HTTPTimeout string `yaml:"httpTimeout"`
	LogLevel    string `yaml:"logLevel"`
	AppEnv      string `yaml:"appEnv"`
}

// DefaultOutputPath names the CSV file after the ZIP code
func DefaultOutputPath(zipCode string) string {
	return fmt.Sprintf("fetch_weather_zipcode_%s.csv", zipCode)
}

// DefaultConfig creates a default configuration. The API key has no default.
func DefaultConfig() Config {
	return Config{
		ZipCode:     DefaultZipCode,
		BaseURL:     datasource.DefaultBaseURL,
		HTTPTimeout: DefaultHTTPTimeout,
		LogLevel:    slog.LevelInfo,
		AppEnv:      "dev",
	}
}

// Load builds the configuration from defaults, the optional file at filename,
// and environment overrides, in that order. OutputPath is derived from the ZIP
// code when nothing sets it.
func Load(filename string) (Config, error) {
	cfg := DefaultConfig()

	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", filename, err)
		}
		if err := cfg.applyFile(data); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", filename, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Finalize fills derived defaults and validates the result
func (c *Config) Finalize() error {
	if c.OutputPath == "" && c.ZipCode != "" {
		c.OutputPath = DefaultOutputPath(c.ZipCode)
	}
	return c.Validate()
}

// Validate checks that the pipeline can run with this configuration
func (c Config) Validate() error {
	var errs []error
	if c.APIKey == "" {
		errs = append(errs, errors.New("api key is required (set OPENWEATHER_API_KEY)"))
	}
	if c.ZipCode == "" {
		errs = append(errs, errors.New("zip code is required"))
	}
	if c.OutputPath == "" {
		errs = append(errs, errors.New("output path is required"))
	}
	if c.HTTPTimeout < 0 {
		errs = append(errs, fmt.Errorf("http timeout must not be negative, got %s", c.HTTPTimeout))
	}
	switch c.AppEnv {
	case "dev", "prod":
	default:
		errs = append(errs, fmt.Errorf("invalid app env %q (allowed: dev, prod)", c.AppEnv))
	}
	return errors.Join(errs...)
}

func (c *Config) applyFile(data []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}
	return c.apply(fc)
}

func (c *Config) applyEnv() error {
	return c.apply(fileConfig{
		APIKey:      os.Getenv("OPENWEATHER_API_KEY"),
		ZipCode:     os.Getenv("WEATHER_ZIP_CODE"),
		OutputPath:  os.Getenv("WEATHER_OUTPUT_PATH"),
		BaseURL:     os.Getenv("OPENWEATHER_BASE_URL"),
		HTTPTimeout: os.Getenv("HTTP_TIMEOUT"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
		AppEnv:      os.Getenv("APP_ENV"),
	})
}

// apply overwrites every field that is set in fc
func (c *Config) apply(fc fileConfig) error {
	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	set(&c.APIKey, fc.APIKey)
	set(&c.ZipCode, fc.ZipCode)
	set(&c.OutputPath, fc.OutputPath)
	set(&c.BaseURL, fc.BaseURL)
	set(&c.AppEnv, fc.AppEnv)

	if v := strings.TrimSpace(fc.HTTPTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid http timeout %q: %w", v, err)
		}
		c.HTTPTimeout = d
	}
	if v := strings.TrimSpace(fc.LogLevel); v != "" {
		level, err := parseLogLevel(v)
		if err != nil {
			return err
		}
		c.LogLevel = level
	}
	return nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
