package notify

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTray_ExpiresAfterTTL(t *testing.T) {
	var out bytes.Buffer
	tray := NewTray(time.Minute, &out)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tray.now = func() time.Time { return now }

	old := New(LevelSuccess, "Note created")
	old.At = now.Add(-2 * time.Minute)
	tray.Notify(old)

	fresh := New(LevelError, "Failed to delete note: %s", "status 500")
	fresh.At = now.Add(-time.Second)
	tray.Notify(fresh)

	active := tray.Active()
	require.Len(t, active, 1)
	assert.Equal(t, fresh.ID, active[0].ID)
	assert.Contains(t, out.String(), "✔ Note created")
	assert.Contains(t, out.String(), "✖ Failed to delete note: status 500")
}

func TestTray_Dismiss(t *testing.T) {
	tray := NewTray(0, nil)
	n := New(LevelSuccess, "Note deleted")
	tray.Notify(n)

	assert.True(t, tray.Dismiss(n.ID))
	assert.False(t, tray.Dismiss(n.ID))
	assert.Empty(t, tray.Active())

	last, ok := tray.Last()
	assert.False(t, ok)
	assert.Empty(t, last.Message)
}

func TestMulti(t *testing.T) {
	var got []string
	collect := Func(func(n Notification) { got = append(got, n.Message) })

	Multi(collect, nil, collect).Notify(New(LevelSuccess, "hi"))
	assert.Equal(t, []string{"hi", "hi"}, got)
}

func TestTray_LastSurvivesPruning(t *testing.T) {
	tray := NewTray(time.Minute, nil)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tray.now = func() time.Time { return now }

	_, ok := tray.Last()
	assert.False(t, ok)

	expired := New(LevelSuccess, "Note created")
	expired.At = now.Add(-2 * time.Minute)
	tray.Notify(expired)

	assert.Empty(t, tray.Active())
	last, ok := tray.Last()
	require.True(t, ok)
	assert.Equal(t, expired.ID, last.ID)

	fresh := New(LevelError, "Failed to delete note: %s", "status 500")
	fresh.At = now
	tray.Notify(fresh)
	require.True(t, tray.Dismiss(fresh.ID))

	last, ok = tray.Last()
	require.True(t, ok)
	assert.Equal(t, fresh.ID, last.ID)
}
