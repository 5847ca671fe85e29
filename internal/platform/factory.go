package platform

import (
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/notehub/pkg/adapters/remote"
	"github.com/aretw0/notehub/pkg/config"
	"github.com/aretw0/notehub/pkg/core"
	"github.com/aretw0/notehub/pkg/mutation"
	"github.com/aretw0/notehub/pkg/notify"
	"github.com/aretw0/notehub/pkg/query"
	"github.com/aretw0/notehub/pkg/view"
)

// Client is the wired client: one repository, one list cache and one
// mutation coordinator shared by every list query.
type Client struct {
	Service   *core.Service
	Remote    *remote.Repository // nil when a repository was injected
	Cache     *query.Cache
	Mutations *mutation.Coordinator
	Logger    *slog.Logger

	debounce time.Duration
}

// New composes a client from cfg.
//
//	client, err := platform.New(cfg, platform.WithLogger(slog.Default()))
func New(cfg config.Config, opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c := &Client{Logger: logger, debounce: cfg.Debounce}
	if o.debounce != nil {
		c.debounce = *o.debounce
	}

	repo := o.repository
	if repo == nil {
		c.Remote = remote.NewRepository(remote.Config{
			BaseURL:    cfg.BaseURL,
			Token:      cfg.Token,
			Timeout:    cfg.Timeout,
			HTTPClient: o.httpClient,
			Logger:     logger,
		})
		repo = c.Remote
	}

	notifier := o.notifier
	if notifier == nil {
		notifier = notify.Logger(logger)
	}

	c.Service = core.NewService(repo)
	c.Cache = query.NewCache()
	c.Mutations = mutation.NewCoordinator(c.Service, c.Cache,
		mutation.WithNotifier(notifier),
		mutation.WithLogger(logger),
	)

	logger.Debug("client ready", "base_url", cfg.BaseURL, "debounce", c.debounce, "remote", c.Remote != nil)
	return c, nil
}

// NewListQuery creates a list query on the shared cache.
func (c *Client) NewListQuery(opts ...query.Option) *query.ListQuery {
	base := []query.Option{query.WithDebounce(c.debounce), query.WithLogger(c.Logger)}
	return query.NewListQuery(c.Service, c.Cache, append(base, opts...)...)
}

// NewApp builds the interactive view. tray should also be the notifier the
// client was built with so mutation results show up on screen.
func (c *Client) NewApp(tray *notify.Tray) *view.App {
	return view.NewApp(c.NewListQuery(), c.Mutations, tray)
}

// SetToken rotates the bearer token of the remote adapter, if any.
func (c *Client) SetToken(token string) {
	if c.Remote != nil {
		c.Remote.SetToken(token)
	}
}
