package platform

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/notehub/pkg/core"
	"github.com/aretw0/notehub/pkg/notify"
)

// options holds the internal configuration for the client.
type options struct {
	repository core.Repository
	logger     *slog.Logger
	notifier   notify.Notifier
	httpClient *http.Client
	debounce   *time.Duration
}

// Option defines a functional option for configuring the client.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository injects a note repository (e.g. a fake).
// If provided, the HTTP adapter is not built.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithNotifier sets where mutation results are reported.
// Defaults to the logger.
func WithNotifier(n notify.Notifier) Option {
	return func(o *options) {
		o.notifier = n
	}
}

// WithHTTPClient replaces the HTTP client of the remote adapter.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithDebounce overrides the search debounce from the config.
// Zero applies search input at once.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = &d
	}
}
