// Package execution talks to the remote execution backend: creating and
// starting runs, and reading back execution state for display.
package execution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/canvasflow/canvasflow/pkg/models"
)

const (
	defaultTimeout = 30 * time.Second

	// Freshly polled execution state is reused for a few seconds so that
	// repeated status reads while a run is in flight do not hammer the
	// backend.
	statusCacheTTL = 5 * time.Second
)

// Client is the HTTP client for the execution collaborator.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	statuses   *gocache.Cache
}

func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
		statuses:   gocache.New(statusCacheTTL, time.Minute),
	}
}

type createRequest struct {
	SystemID   string                   `json:"system_id"`
	SystemJSON *models.ExecutionPayload `json:"system_json"`
	Status     models.ExecutionStatus   `json:"status"`
}

type startResponse struct {
	Message string `json:"message"`
}

// Create registers a new execution for the given system payload with status
// "running".
func (c *Client) Create(ctx context.Context, systemID string, p *models.ExecutionPayload) (*models.Execution, error) {
	body := createRequest{
		SystemID:   systemID,
		SystemJSON: p,
		Status:     models.ExecutionStatusRunning,
	}

	var execution models.Execution
	if err := c.do(ctx, http.MethodPost, "/executions", body, &execution); err != nil {
		return nil, fmt.Errorf("failed to create execution: %w", err)
	}

	return &execution, nil
}

// Start asks the backend to begin running a created execution.
func (c *Client) Start(ctx context.Context, executionID string) (string, error) {
	var resp startResponse
	if err := c.do(ctx, http.MethodPost, "/executions/"+executionID, nil, &resp); err != nil {
		return "", fmt.Errorf("failed to start execution %s: %w", executionID, err)
	}

	return resp.Message, nil
}

// Get fetches current execution state, serving recent results from cache.
func (c *Client) Get(ctx context.Context, executionID string) (*models.Execution, error) {
	if cached, ok := c.statuses.Get(executionID); ok {
		if execution, ok := cached.(*models.Execution); ok {
			return execution, nil
		}
	}

	var execution models.Execution
	if err := c.do(ctx, http.MethodGet, "/executions/"+executionID, nil, &execution); err != nil {
		return nil, fmt.Errorf("failed to fetch execution %s: %w", executionID, err)
	}

	c.statuses.Set(executionID, &execution, gocache.DefaultExpiration)

	return &execution, nil
}

// Records decodes an execution's per-node log records. An absent or
// malformed logs field yields an empty list; the records are consumed for
// display only.
func Records(execution *models.Execution) []*models.ExecutionRecord {
	if execution == nil || execution.Logs == "" {
		return nil
	}

	var records []*models.ExecutionRecord
	if err := json.Unmarshal([]byte(execution.Logs), &records); err != nil {
		return nil
	}

	return records
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}

		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		return fmt.Errorf("execution backend returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
