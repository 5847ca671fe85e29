// Package config loads client settings from a YAML file, a .env file and the
// environment, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up from the working directory.
const FileName = "notehub.yaml"

// Defaults.
const (
	DefaultBaseURL  = "https://notehub-public.goit.study/api"
	DefaultTimeout  = 30 * time.Second
	DefaultDebounce = 500 * time.Millisecond
	DefaultLogLevel = "info"
)

// Environment variables read by Load.
const (
	EnvBaseURL     = "NOTEHUB_BASE_URL"
	EnvToken       = "NOTEHUB_TOKEN"
	EnvLegacyToken = "VITE_NOTEHUB_TOKEN"
	EnvTimeout     = "NOTEHUB_TIMEOUT"
	EnvDebounce    = "NOTEHUB_DEBOUNCE"
	EnvLogLevel    = "NOTEHUB_LOG_LEVEL"
)

// Config holds the client settings.
type Config struct {
	BaseURL  string
	Token    string
	Timeout  time.Duration
	Debounce time.Duration
	LogLevel string

	// Path is the YAML file the values came from, empty if none.
	Path string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BaseURL:  DefaultBaseURL,
		Timeout:  DefaultTimeout,
		Debounce: DefaultDebounce,
		LogLevel: DefaultLogLevel,
	}
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// file mirrors the YAML layout. Durations stay strings so a typo is
// reported instead of silently read as zero.
type file struct {
	BaseURL  string `yaml:"base_url"`
	Token    string `yaml:"token"`
	Timeout  string `yaml:"timeout"`
	Debounce string `yaml:"debounce"`
	LogLevel string `yaml:"log_level"`
}

// Load builds a Config. A .env file in the working directory is loaded into
// the environment when present. path, if not empty, must name a YAML file.
// Environment variables override the file.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	c.Path = path
	if f.BaseURL != "" {
		c.BaseURL = f.BaseURL
	}
	if f.Token != "" {
		c.Token = f.Token
	}
	if f.LogLevel != "" {
		c.LogLevel = f.LogLevel
	}
	if err := setDuration(&c.Timeout, "timeout", f.Timeout); err != nil {
		return err
	}
	return setDuration(&c.Debounce, "debounce", f.Debounce)
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		c.Token = v
	} else if v := os.Getenv(EnvLegacyToken); v != "" {
		c.Token = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if err := setDuration(&c.Timeout, EnvTimeout, os.Getenv(EnvTimeout)); err != nil {
		return err
	}
	return setDuration(&c.Debounce, EnvDebounce, os.Getenv(EnvDebounce))
}

func setDuration(dst *time.Duration, name, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if d < 0 {
		return fmt.Errorf("%s: must not be negative", name)
	}
	*dst = d
	return nil
}

// Template returns a commented config file with the default values.
func Template() string {
	return fmt.Sprintf(`# NoteHub client configuration.
# Environment variables (%s, %s, ...) take precedence.
base_url: %s

# Bearer token sent with every request.
token: ""

timeout: %s
# How long search input must settle before the list is refetched.
debounce: %s

# debug, info, warn or error
log_level: %s
`, EnvBaseURL, EnvToken, DefaultBaseURL, DefaultTimeout, DefaultDebounce, DefaultLogLevel)
}
