// Package api provides the HTTP gateway to the Rogue-Day backend. It is a
// thin translation layer: JSON over HTTP in, domain models out, with every
// non-2xx response normalized into a single human-readable error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ShayCichocki/rogueday/pkg/models"
)

// initDataHeader carries the opaque Telegram WebApp auth blob.
const initDataHeader = "X-Telegram-Init-Data"

// Client talks to the Rogue-Day backend.
type Client struct {
	baseURL    string
	initData   string
	telegramID int64
	http       *http.Client
}

// ClientConfig contains configuration for creating a new Client.
type ClientConfig struct {
	// BaseURL is the backend root, e.g. "https://api.rogueday.app/api".
	BaseURL string
	// InitData is the raw Telegram WebApp initData string used for auth.
	InitData string
	// TelegramID identifies the user in dev mode when InitData is empty.
	TelegramID int64
	// Timeout bounds each request. Zero means 15 seconds.
	Timeout time.Duration
}

// NewClient creates a new backend client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("api base URL is required")
	}
	if cfg.InitData == "" && cfg.TelegramID == 0 {
		return nil, fmt.Errorf("either init data or a telegram id is required")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		initData:   cfg.InitData,
		telegramID: cfg.TelegramID,
		http:       &http.Client{Timeout: timeout},
	}, nil
}

// Error is the normalized form of any non-2xx backend response. The store
// treats all statuses identically; Detail is what the user sees.
type Error struct {
	// Status is the HTTP status code.
	Status int
	// Detail is the server's "detail" field, or a generic fallback.
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Detail
}

// NotFound reports whether the error is an HTTP 404.
func (e *Error) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// do issues a request and decodes the JSON response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.initData != "" {
		req.Header.Set(initDataHeader, c.initData)
	} else {
		// Dev mode: identify via query parameter instead of initData.
		q := req.URL.Query()
		q.Set("telegram_id", strconv.FormatInt(c.telegramID, 10))
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return normalizeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// normalizeError extracts the server's detail message, falling back to a
// generic status line when the body has no usable detail field.
func normalizeError(resp *http.Response) *Error {
	apiErr := &Error{
		Status: resp.StatusCode,
		Detail: fmt.Sprintf("API error: %d", resp.StatusCode),
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return apiErr
	}

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Detail != "" {
		apiErr.Detail = payload.Detail
	}
	return apiErr
}

// CurrentRun fetches the user's active run. A 404 means no run is active
// and is reported as (nil, nil) rather than an error.
func (c *Client) CurrentRun(ctx context.Context) (*models.Run, error) {
	var run models.Run
	err := c.do(ctx, http.MethodGet, "/runs/current", nil, &run)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.NotFound() {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

// StartRun creates a new run for today. The server rejects a second
// concurrent run; that rejection surfaces as a normalized *Error.
func (c *Client) StartRun(ctx context.Context) (*models.Run, error) {
	var run models.Run
	if err := c.do(ctx, http.MethodPost, "/runs", nil, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// ExtractRun closes the run and returns the immutable extraction record.
func (c *Client) ExtractRun(ctx context.Context, runID int) (*models.Extraction, error) {
	var extraction models.Extraction
	path := fmt.Sprintf("/runs/%d/extract", runID)
	if err := c.do(ctx, http.MethodPost, path, nil, &extraction); err != nil {
		return nil, err
	}
	return &extraction, nil
}

// ListJournal fetches the latest journal entries, newest first.
func (c *Client) ListJournal(ctx context.Context, limit int) ([]models.JournalEntry, error) {
	path := "/runs/journal"
	if limit > 0 {
		path += "?limit=" + url.QueryEscape(strconv.Itoa(limit))
	}
	var entries []models.JournalEntry
	if err := c.do(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateTask creates a task in the current run and returns the server's
// copy, which carries the permanent id.
func (c *Client) CreateTask(ctx context.Context, spec models.TaskSpec) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", spec, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// StartTask transitions a pending task to active. The returned task carries
// the server-authoritative started_at, which anchors the countdown.
func (c *Client) StartTask(ctx context.Context, taskID int) (*models.Task, error) {
	return c.taskAction(ctx, taskID, "start")
}

// CompleteTask transitions an active task to completed.
func (c *Client) CompleteTask(ctx context.Context, taskID int) (*models.Task, error) {
	return c.taskAction(ctx, taskID, "complete")
}

// FailTask transitions an active task to failed.
func (c *Client) FailTask(ctx context.Context, taskID int) (*models.Task, error) {
	return c.taskAction(ctx, taskID, "fail")
}

func (c *Client) taskAction(ctx context.Context, taskID int, action string) (*models.Task, error) {
	var task models.Task
	path := fmt.Sprintf("/tasks/%d/%s", taskID, action)
	if err := c.do(ctx, http.MethodPost, path, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a pending task.
func (c *Client) DeleteTask(ctx context.Context, taskID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", taskID), nil, nil)
}

// ListTemplates fetches the user's saved task templates.
func (c *Client) ListTemplates(ctx context.Context) ([]models.Template, error) {
	var templates []models.Template
	if err := c.do(ctx, http.MethodGet, "/templates", nil, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// CreateTemplate saves a new task template.
func (c *Client) CreateTemplate(ctx context.Context, spec models.TaskSpec) (*models.Template, error) {
	var template models.Template
	if err := c.do(ctx, http.MethodPost, "/templates", spec, &template); err != nil {
		return nil, err
	}
	return &template, nil
}

// DeleteTemplate removes a saved template.
func (c *Client) DeleteTemplate(ctx context.Context, templateID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/templates/%d", templateID), nil, nil)
}

// ListPresets fetches the user's presets with their templates.
func (c *Client) ListPresets(ctx context.Context) ([]models.Preset, error) {
	var presets []models.Preset
	if err := c.do(ctx, http.MethodGet, "/presets", nil, &presets); err != nil {
		return nil, err
	}
	return presets, nil
}

// ApplyPreset creates tasks from a preset's templates in the current run.
// Templates the run cannot afford are skipped and counted, not rejected.
func (c *Client) ApplyPreset(ctx context.Context, presetID int) (*models.PresetApplyResult, error) {
	var result models.PresetApplyResult
	path := fmt.Sprintf("/presets/%d/apply", presetID)
	if err := c.do(ctx, http.MethodPost, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Me fetches the user profile with cumulative stats.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
