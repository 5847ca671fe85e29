// Package notify carries transient user-visible messages (toasts).
package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level is the severity of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one user-visible message.
type Notification struct {
	ID      uuid.UUID
	Level   Level
	Message string
	At      time.Time
}

// New builds a notification stamped now.
func New(level Level, format string, args ...any) Notification {
	return Notification{
		ID:      uuid.New(),
		Level:   level,
		Message: fmt.Sprintf(format, args...),
		At:      time.Now(),
	}
}

func (n Notification) String() string {
	mark := "✔"
	if n.Level == LevelError {
		mark = "✖"
	}
	return mark + " " + n.Message
}

// Notifier receives notifications.
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a function to Notifier.
type Func func(Notification)

func (f Func) Notify(n Notification) { f(n) }

// Multi fans a notification out to several notifiers.
func Multi(notifiers ...Notifier) Notifier {
	return Func(func(n Notification) {
		for _, target := range notifiers {
			if target != nil {
				target.Notify(n)
			}
		}
	})
}

// Logger writes notifications to slog; errors at warn level.
func Logger(logger *slog.Logger) Notifier {
	return Func(func(n Notification) {
		level := slog.LevelInfo
		if n.Level == LevelError {
			level = slog.LevelWarn
		}
		logger.Log(context.Background(), level, n.Message, "notification", n.ID.String(), "level", string(n.Level))
	})
}

// DefaultTTL is how long a notification stays in a Tray.
const DefaultTTL = 3 * time.Second

// Tray keeps recent notifications until they expire, like a toaster in the
// corner of the screen.
type Tray struct {
	mu    sync.Mutex
	items []Notification
	last  *Notification
	ttl   time.Duration
	echo  io.Writer
	now   func() time.Time
}

// NewTray creates a tray. A ttl <= 0 uses DefaultTTL. When echo is not nil
// every notification is also printed to it as it arrives.
func NewTray(ttl time.Duration, echo io.Writer) *Tray {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Tray{ttl: ttl, echo: echo, now: time.Now}
}

// Notify implements Notifier.
func (t *Tray) Notify(n Notification) {
	t.mu.Lock()
	t.items = append(t.items, n)
	t.last = &n
	echo := t.echo
	t.mu.Unlock()

	if echo != nil {
		fmt.Fprintln(echo, n.String())
	}
}

// Active returns unexpired notifications, oldest first, pruning the rest.
func (t *Tray) Active() []Notification {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := t.now().Add(-t.ttl)
	kept := t.items[:0]
	for _, n := range t.items {
		if n.At.After(cutoff) {
			kept = append(kept, n)
		}
	}
	t.items = kept
	return append([]Notification(nil), kept...)
}

// Dismiss removes a notification before it expires.
func (t *Tray) Dismiss(id uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, n := range t.items {
		if n.ID == id {
			t.items = append(t.items[:i], t.items[i+1:]...)
			return true
		}
	}
	return false
}

// Last returns the most recent notification received, even once it has
// expired or been dismissed.
func (t *Tray) Last() (Notification, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.last == nil {
		return Notification{}, false
	}
	return *t.last, true
}
