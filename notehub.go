package notehub

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/notehub/internal/platform"
	"github.com/aretw0/notehub/pkg/config"
	"github.com/aretw0/notehub/pkg/core"
	"github.com/aretw0/notehub/pkg/notify"
)

// --- Types ---

// Client is the wired note client.
type Client = platform.Client

// Config holds the client settings.
type Config = config.Config

// --- Configuration ---

// Option defines a functional option for configuring the client.
type Option = platform.Option

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository injects a note repository in place of the HTTP adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithNotifier sets where create/delete results are reported.
func WithNotifier(n notify.Notifier) Option {
	return platform.WithNotifier(n)
}

// WithHTTPClient replaces the HTTP client of the remote adapter.
func WithHTTPClient(c *http.Client) Option {
	return platform.WithHTTPClient(c)
}

// WithDebounce overrides the search debounce.
func WithDebounce(d time.Duration) Option {
	return platform.WithDebounce(d)
}

// LoadConfig loads settings from path, or from the nearest notehub.yaml.
func LoadConfig(path string) (Config, error) {
	return platform.LoadConfig(path)
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return config.Default()
}

// --- Factory ---

// New creates a client.
func New(cfg Config, opts ...Option) (*Client, error) {
	return platform.New(cfg, opts...)
}

// FindConfig looks upwards from startDir for notehub.yaml.
func FindConfig(startDir string) (string, error) {
	return platform.FindFile(startDir, config.FileName)
}
