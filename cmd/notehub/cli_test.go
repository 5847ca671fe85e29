package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notehub/pkg/config"
	"github.com/aretw0/notehub/pkg/core"
)

// buildBinary builds notehub into dir and returns its path.
func buildBinary(t *testing.T, dir string) string {
	t.Helper()
	bin := filepath.Join(dir, "notehub.exe")
	buildCmd := exec.Command("go", "build", "-o", bin, ".")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build notehub: %v\n%s", err, string(out))
	}
	return bin
}

// fakeAPI serves a fixed set of notes and fails deletes of "42".
type fakeAPI struct {
	mu      sync.Mutex
	notes   []core.Note
	created []core.CreateNoteParams
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer secret" {
		http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/notes":
		_ = json.NewEncoder(w).Encode(core.NotePage{
			Page: 1, PerPage: core.PerPage, TotalPages: 1, TotalItems: len(f.notes), Notes: f.notes,
		})
	case r.Method == http.MethodPost && r.URL.Path == "/notes":
		var p core.CreateNoteParams
		_ = json.NewDecoder(r.Body).Decode(&p)
		f.created = append(f.created, p)
		_ = json.NewEncoder(w).Encode(core.Note{ID: "n9", Title: p.Title, Content: p.Content, Tag: p.Tag})
	case r.Method == http.MethodDelete && r.URL.Path == "/notes/42":
		http.Error(w, `{"message":"boom"}`, http.StatusInternalServerError)
	default:
		http.NotFound(w, r)
	}
}

func runCLI(t *testing.T, dir, bin, baseURL string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(bin, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		config.EnvBaseURL+"="+baseURL,
		config.EnvToken+"=secret",
		config.EnvLogLevel+"=error",
	)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestCLI(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}

	dir := t.TempDir()
	bin := buildBinary(t, dir)

	api := &fakeAPI{notes: []core.Note{
		{ID: "42", Title: "Answer", Tag: core.TagWork},
		{ID: "7", Title: "Buy bread", Content: "rye", Tag: core.TagShopping},
	}}
	srv := httptest.NewServer(api)
	defer srv.Close()

	t.Run("list", func(t *testing.T) {
		out, err := runCLI(t, dir, bin, srv.URL, "list")
		require.NoError(t, err, out)
		assert.Contains(t, out, "42  Answer")
		assert.Contains(t, out, "7  Buy bread")
		assert.NotContains(t, out, "→", "single page has no pagination")
	})

	t.Run("list --match --json", func(t *testing.T) {
		out, err := runCLI(t, dir, bin, srv.URL, "list", "--match", "Buy*", "--json")
		require.NoError(t, err, out)

		var page core.NotePage
		require.NoError(t, json.Unmarshal([]byte(out), &page), out)
		require.Len(t, page.Notes, 1)
		assert.Equal(t, "7", page.Notes[0].ID)
	})

	t.Run("create", func(t *testing.T) {
		out, err := runCLI(t, dir, bin, srv.URL, "create", "--title", "Buy milk", "--tag", "Shopping")
		require.NoError(t, err, out)
		assert.Contains(t, out, "✔ Note created")

		api.mu.Lock()
		defer api.mu.Unlock()
		assert.Equal(t, []core.CreateNoteParams{{Title: "Buy milk", Content: "", Tag: core.TagShopping}}, api.created)
	})

	t.Run("create invalid", func(t *testing.T) {
		out, err := runCLI(t, dir, bin, srv.URL, "create", "--title", "ab")
		require.Error(t, err)
		assert.Contains(t, out, "title: Must be at least 3 characters")

		api.mu.Lock()
		defer api.mu.Unlock()
		assert.Len(t, api.created, 1, "invalid form never reaches the API")
	})

	t.Run("delete failure", func(t *testing.T) {
		out, err := runCLI(t, dir, bin, srv.URL, "delete", "42")
		require.Error(t, err)
		assert.Contains(t, out, "✖ Failed to delete note")
	})

	t.Run("init and version", func(t *testing.T) {
		out, err := runCLI(t, dir, bin, srv.URL, "init")
		require.NoError(t, err, out)
		data, err := os.ReadFile(filepath.Join(dir, config.FileName))
		require.NoError(t, err)
		assert.Equal(t, config.Template(), string(data))

		_, err = runCLI(t, dir, bin, srv.URL, "init")
		assert.Error(t, err, "existing file is not overwritten")

		out, err = runCLI(t, dir, bin, srv.URL, "version")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "notehub version "))
	})
}
