package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
)

// Config captures crumb's runtime settings.
type Config struct {
	BaseURL        string        `envconfig:"BASE_URL"`
	Category       string        `envconfig:"CATEGORY"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT"`
	LogFile        string        `envconfig:"LOG_FILE"`
	LogLevel       string        `envconfig:"LOG_LEVEL"`
	ExportWorkers  int           `envconfig:"EXPORT_WORKERS"`
}

const (
	envPrefix = "crumb"

	defaultConfigPath     = "~/.config/crumb/config.toml"
	defaultBaseURL        = "https://www.themealdb.com/api/json/v1/1"
	defaultCategory       = "Dessert"
	defaultRequestTimeout = 10 * time.Second
	defaultLogFile        = "~/.local/state/crumb/crumb.log"
	defaultLogLevel       = "info"
	defaultExportWorkers  = 4

	// StderrLogFile directs logs to stderr instead of a file.
	StderrLogFile = "-"
)

// Default returns the built-in configuration with paths expanded.
func Default() Config {
	return Config{
		BaseURL:        defaultBaseURL,
		Category:       defaultCategory,
		RequestTimeout: defaultRequestTimeout,
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       defaultLogLevel,
		ExportWorkers:  defaultExportWorkers,
	}
}

// Load reads the config file at path (or the default location), applies
// CRUMB_* environment overrides and validates the result. A missing file is
// not an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := cfg.mergeFile(resolved); err != nil {
		return Config{}, err
	}
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL        string `toml:"base_url"`
		Category       string `toml:"category"`
		RequestTimeout string `toml:"request_timeout"`
		LogFile        string `toml:"log_file"`
		LogLevel       string `toml:"log_level"`
		ExportWorkers  int    `toml:"export_workers"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		c.BaseURL = v
	}
	if v := strings.TrimSpace(raw.Category); v != "" {
		c.Category = v
	}
	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse config: request_timeout %q: %w", v, err)
		}
		c.RequestTimeout = d
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		c.LogFile = v
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		c.LogLevel = v
	}
	if raw.ExportWorkers != 0 {
		c.ExportWorkers = raw.ExportWorkers
	}
	return nil
}

func (c *Config) normalize() {
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	c.Category = strings.TrimSpace(c.Category)
	if c.Category == "" {
		c.Category = defaultCategory
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	c.LogFile = strings.TrimSpace(c.LogFile)
	switch c.LogFile {
	case "":
		c.LogFile = mustExpand(defaultLogFile)
	case StderrLogFile:
	default:
		c.LogFile = mustExpand(c.LogFile)
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base_url %q: scheme must be http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid base_url %q: missing host", c.BaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("invalid request_timeout %s: must be positive", c.RequestTimeout)
	}
	if c.ExportWorkers <= 0 {
		return fmt.Errorf("invalid export_workers %d: must be positive", c.ExportWorkers)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
