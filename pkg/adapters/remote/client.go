// Package remote implements core.Repository over the notehub REST API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/notehub/pkg/core"
)

// DefaultBaseURL is the public notehub API.
const DefaultBaseURL = "https://notehub-public.goit.study/api"

// DefaultTimeout bounds every request.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 512

// Config holds the configuration for the remote repository.
type Config struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client // optional; Timeout is ignored when set
	Logger     *slog.Logger
}

// Repository talks to the notehub API. It is safe for concurrent use.
type Repository struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	mu       sync.RWMutex
	token    string
	requests int
	failures int
	last     time.Time
}

// NewRepository creates a new API-backed repository.
func NewRepository(config Config) *Repository {
	base := strings.TrimRight(config.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}

	client := config.HTTPClient
	if client == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Repository{
		baseURL:    base,
		httpClient: client,
		logger:     logger,
		token:      config.Token,
	}
}

// SetToken replaces the bearer token used for subsequent requests.
func (r *Repository) SetToken(token string) {
	r.mu.Lock()
	r.token = token
	r.mu.Unlock()
}

// List fetches one page of notes. search is always sent, even when empty.
func (r *Repository) List(ctx context.Context, page int, search string) (core.NotePage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("perPage", strconv.Itoa(core.PerPage))
	q.Set("search", search)

	var result core.NotePage
	if err := r.do(ctx, "list notes", http.MethodGet, "/notes?"+q.Encode(), nil, &result); err != nil {
		return core.NotePage{}, err
	}
	return result, nil
}

// Create posts a new note.
func (r *Repository) Create(ctx context.Context, params core.CreateNoteParams) (core.Note, error) {
	var result core.Note
	if err := r.do(ctx, "create note", http.MethodPost, "/notes", params, &result); err != nil {
		return core.Note{}, err
	}
	return result, nil
}

// Delete removes a note by ID.
func (r *Repository) Delete(ctx context.Context, id string) (core.Note, error) {
	var result core.Note
	if err := r.do(ctx, "delete note", http.MethodDelete, "/notes/"+url.PathEscape(id), nil, &result); err != nil {
		return core.Note{}, err
	}
	return result, nil
}

// do performs an HTTP request and decodes a 2xx JSON body into target.
func (r *Repository) do(ctx context.Context, op, method, path string, body, target any) (err error) {
	start := time.Now()
	status := 0
	defer func() {
		r.record(err)
		r.logger.Debug("notehub request",
			"method", method,
			"path", path,
			"status", status,
			"duration", time.Since(start),
			"error", err,
		)
	}()

	var bodyReader io.Reader
	if body != nil {
		payload, mErr := json.Marshal(body)
		if mErr != nil {
			return &core.Error{Kind: core.KindValidation, Op: op, Err: fmt.Errorf("failed to marshal request body: %w", mErr)}
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, bodyReader)
	if err != nil {
		return &core.Error{Kind: core.KindTransport, Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := r.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return &core.Error{Kind: core.KindTransport, Op: op, Err: err}
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &core.Error{
			Kind:   core.KindHTTP,
			Op:     op,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(raw)),
		}
	}

	if target == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return &core.Error{Kind: core.KindDecode, Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func (r *Repository) currentToken() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.token
}

func (r *Repository) record(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests++
	if err != nil {
		r.failures++
	}
	r.last = time.Now()
}

var _ core.Repository = (*Repository)(nil)
