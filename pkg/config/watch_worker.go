package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/supervisor"
	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/notehub/internal/debounce"
)

// ReloadDelay is how long file events must settle before a reload.
const ReloadDelay = 50 * time.Millisecond

// Watcher reloads a config file when it changes and hands the result to a
// callback. A file that fails to load is logged and the callback is skipped.
type Watcher struct {
	*worker.BaseWorker
	path     string
	onChange func(Config)
	logger   *slog.Logger

	watcher   *fsnotify.Watcher
	debouncer *debounce.Debouncer
	cancel    context.CancelFunc
}

// NewWatcher creates a stopped watcher for path.
func NewWatcher(path string, onChange func(Config), logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return &Watcher{
		BaseWorker: worker.NewBaseWorker("config-watcher"),
		path:       filepath.Clean(path),
		onChange:   onChange,
		logger:     logger,
	}
}

func (w *Watcher) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	// Editors often replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}

	w.watcher = watcher
	w.debouncer = debounce.New(ReloadDelay)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *Watcher) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}
	return w.BaseWorker.Stop(ctx)
}

func (w *Watcher) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
			"path":              w.path,
		}
	})
}

func (w *Watcher) run(ctx context.Context) error {
	defer w.watcher.Close()
	defer w.debouncer.Stop(time.Second)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("config file changed", "path", w.path, "op", event.Op.String())
			w.debouncer.Add(w.reload)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("fsnotify error", "error", wErr)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Warn("config reload failed, keeping previous settings", "path", w.path, "error", err)
		return
	}
	w.logger.Info("config reloaded", "path", w.path)
	if w.onChange != nil {
		w.onChange(cfg)
	}
}

// Runner is a startable, stoppable background unit.
type Runner interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// NewSupervisor runs a Watcher for path under a lifecycle supervisor that
// restarts it when the fsnotify watcher fails.
func NewSupervisor(path string, onChange func(Config), logger *slog.Logger) Runner {
	spec := supervisor.Spec{
		Name: "config-watcher",
		Type: string(worker.TypeGoroutine),
		Factory: func() (worker.Worker, error) {
			return NewWatcher(path, onChange, logger), nil
		},
		Backoff: supervisor.Backoff{
			InitialInterval: 100 * time.Millisecond,
			MaxInterval:     5 * time.Second,
			Multiplier:      2,
			ResetDuration:   time.Minute,
			MaxRestarts:     5,
			MaxDuration:     5 * time.Minute,
		},
		RestartPolicy: supervisor.RestartOnFailure,
	}
	return supervisor.New("config", supervisor.StrategyOneForOne, spec)
}
