package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvBaseURL, EnvToken, EnvLegacyToken, EnvTimeout, EnvDebounce, EnvLogLevel} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "https://notehub-public.goit.study/api", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "base_url: http://localhost:3000\ntoken: from-file\ntimeout: 5s\ndebounce: 0s\nlog_level: debug\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.Equal(t, "from-file", cfg.Token)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, time.Duration(0), cfg.Debounce)
	assert.Equal(t, path, cfg.Path)

	t.Setenv(EnvToken, "from-env")
	t.Setenv(EnvTimeout, "1m")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Token)
	assert.Equal(t, time.Minute, cfg.Timeout)
}

func TestLoad_LegacyToken(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvLegacyToken, "vite")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "vite", cfg.Token)

	t.Setenv(EnvToken, "preferred")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "preferred", cfg.Token)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "timeout: soon\n")
	_, err := Load(bad)
	assert.ErrorContains(t, err, "timeout")

	t.Setenv(EnvDebounce, "-1s")
	_, err = Load("")
	assert.ErrorContains(t, err, EnvDebounce)

	t.Setenv(EnvDebounce, "")
	t.Setenv(EnvLogLevel, "loud")
	_, err = Load("")
	assert.ErrorContains(t, err, "log level")

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestTemplate_LoadsAsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, Template())

	cfg, err := Load(path)
	require.NoError(t, err)
	want := Default()
	want.Path = path
	assert.Equal(t, want, cfg)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "token: first\n")

	var (
		mu     sync.Mutex
		tokens []string
	)
	w := NewWatcher(path, func(cfg Config) {
		mu.Lock()
		tokens = append(tokens, cfg.Token)
		mu.Unlock()
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	assert.Error(t, w.Start(ctx), "second start is rejected")

	writeFile(t, path, "token: second\n")

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(tokens) > 0 && tokens[len(tokens)-1] == "second"
	}, 2*time.Second, 10*time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	assert.NoError(t, w.Stop(stopCtx))
}

func TestWatcher_KeepsGoingOnBadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "token: first\n")

	got := make(chan string, 8)
	w := NewWatcher(path, func(cfg Config) { got <- cfg.Token }, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	writeFile(t, path, "timeout: never\n")
	time.Sleep(4 * ReloadDelay)
	writeFile(t, path, "token: fixed\n")

	timeout := time.After(2 * time.Second)
	for done := false; !done; {
		select {
		case token := <-got:
			done = token == "fixed"
		case <-timeout:
			t.Fatal("no reload after the file was fixed")
		}
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	_ = w.Stop(stopCtx)
}

func TestWriteTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	require.NoError(t, WriteTemplate(path, false))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Template(), string(data))

	assert.ErrorIs(t, WriteTemplate(path, false), ErrExists)
	assert.NoError(t, WriteTemplate(path, true))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file is gone")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteTemplate_KeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	writeFile(t, path, "token: mine\n")

	require.ErrorIs(t, WriteTemplate(path, false), ErrExists)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "token: mine\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "staged file is removed on refusal")
}
