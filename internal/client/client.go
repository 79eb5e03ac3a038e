// Package client provides an HTTP client for the contentpipe server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jdelaney/contentpipe-go/internal/ingest"
	"github.com/jdelaney/contentpipe-go/internal/metrics"
	"github.com/jdelaney/contentpipe-go/internal/models"
	"github.com/jdelaney/contentpipe-go/internal/pipeline"
	"github.com/jdelaney/contentpipe-go/internal/starter"
)

// Client talks to a running contentpipe server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given base URL.
// If baseURL is empty, uses CONTENTPIPE_SERVER_URL or defaults to localhost:8080.
// Timeout can be configured via CONTENTPIPE_CLIENT_TIMEOUT (default 10m,
// pipeline runs can take a while against a real model).
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("CONTENTPIPE_SERVER_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	timeout := 10 * time.Minute
	if t := os.Getenv("CONTENTPIPE_CLIENT_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// apiError is the server's error payload.
type apiError struct {
	Error string `json:"error"`
}

// do sends one request and decodes the JSON response into result.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server error (%s): %s", resp.Status, apiErr.Error)
		}
		return fmt.Errorf("server error: %s - %s", resp.Status, string(raw))
	}

	if result != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

// withClient appends the client scope query parameter when set.
func withClient(path, clientID string) string {
	if clientID == "" {
		return path
	}
	return path + "?client=" + url.QueryEscape(clientID)
}

// Paste uploads pasted content as a new piece.
func (c *Client) Paste(ctx context.Context, content, source, clientID string) (*ingest.Result, error) {
	body := map[string]string{"content": content, "source": source, "client_id": clientID}
	var result ingest.Result
	if err := c.do(ctx, http.MethodPost, "/api/upload/paste", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListPieces returns the pieces in a client scope.
func (c *Client) ListPieces(ctx context.Context, clientID string) ([]models.Piece, error) {
	var result struct {
		Pieces []models.Piece `json:"pieces"`
	}
	if err := c.do(ctx, http.MethodGet, withClient("/api/pieces", clientID), nil, &result); err != nil {
		return nil, err
	}
	return result.Pieces, nil
}

// PieceDetail is a piece with whatever stage outputs exist for it.
type PieceDetail struct {
	Piece     *models.Piece          `json:"piece"`
	Tags      *models.ArchivistTags  `json:"tags,omitempty"`
	Placement *models.Placement      `json:"placement,omitempty"`
	Items     []models.RepurposeItem `json:"items,omitempty"`
}

// GetPiece retrieves one piece with its pipeline outputs.
func (c *Client) GetPiece(ctx context.Context, id string) (*PieceDetail, error) {
	var result PieceDetail
	if err := c.do(ctx, http.MethodGet, "/api/pieces/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RunPiece runs the per-piece chain on one piece.
func (c *Client) RunPiece(ctx context.Context, id string) (*pipeline.PieceResult, *models.CalendarPlan, error) {
	var result struct {
		Result   *pipeline.PieceResult `json:"result"`
		Calendar *models.CalendarPlan  `json:"calendar"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/pipeline/run/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, nil, err
	}
	return result.Result, result.Calendar, nil
}

// RunAll runs the full pipeline over a client scope.
func (c *Client) RunAll(ctx context.Context, clientID string) (*pipeline.RunResult, error) {
	body := map[string]string{"client_id": clientID}
	var result pipeline.RunResult
	if err := c.do(ctx, http.MethodPost, "/api/pipeline/run-all", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Onboard submits a client intake and returns the strategy plus the run it
// triggered.
func (c *Client) Onboard(ctx context.Context, clientID string, intake *models.StrategistIntake) (*pipeline.OnboardResult, error) {
	body := map[string]any{"client_id": clientID, "intake": intake}
	var result pipeline.OnboardResult
	if err := c.do(ctx, http.MethodPost, "/api/onboarding", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Starter generates a 30-day starter pack.
func (c *Client) Starter(ctx context.Context, req *starter.Request) (*models.StarterOutput, error) {
	var result models.StarterOutput
	if err := c.do(ctx, http.MethodPost, "/api/starter", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Calendar retrieves the stored 4-week calendar for a client scope.
func (c *Client) Calendar(ctx context.Context, clientID string) (*models.CalendarPlan, error) {
	var result models.CalendarPlan
	if err := c.do(ctx, http.MethodGet, withClient("/api/calendar", clientID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Series lists the content series for a client scope.
func (c *Client) Series(ctx context.Context, clientID string) ([]models.ContentSeries, error) {
	var result struct {
		Series []models.ContentSeries `json:"series"`
	}
	if err := c.do(ctx, http.MethodGet, withClient("/api/series", clientID), nil, &result); err != nil {
		return nil, err
	}
	return result.Series, nil
}

// Stats pairs stored artifact counts with the server's in-process agent
// metrics.
type Stats struct {
	Stored models.PipelineStats `json:"stored"`
	Agents *metrics.Snapshot    `json:"agents,omitempty"`
}

// GetStats retrieves library and agent statistics.
func (c *Client) GetStats(ctx context.Context, clientID string) (*Stats, error) {
	var result Stats
	if err := c.do(ctx, http.MethodGet, withClient("/api/stats", clientID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Events subscribes to the server's progress feed and invokes onEvent for
// each event. Blocks until ctx is cancelled, the connection drops, or
// onEvent returns an error.
func (c *Client) Events(ctx context.Context, onEvent func(pipeline.Event) error) error {
	wsURL := c.baseURL + "/api/events"
	wsURL = strings.Replace(wsURL, "http://", "ws://", 1)
	wsURL = strings.Replace(wsURL, "https://", "wss://", 1)

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("websocket connect: %w", err)
	}
	defer conn.Close()

	// Close the connection when the context ends so ReadJSON unblocks
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		var event pipeline.Event
		if err := conn.ReadJSON(&event); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read event: %w", err)
		}
		if err := onEvent(event); err != nil {
			return err
		}
	}
}
