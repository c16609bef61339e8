// Package supabase is a minimal client for the PostgREST interface
// that Supabase exposes under /rest/v1.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/lead-import-api/internal/config"
	"github.com/rs/zerolog"
)

const (
	restPath = "/rest/v1/"
	// maxErrorBody caps how much of an error response is kept for diagnostics
	maxErrorBody = 4 << 10
)

// APIError is returned when the REST endpoint answers with a non-2xx status
type APIError struct {
	Method     string
	Table      string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Table, e.StatusCode, e.Body)
}

// Client issues filtered reads and inserts against PostgREST tables
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        zerolog.Logger
}

// New creates a client for the configured project.
// Every request is bounded by cfg.Timeout.
func New(cfg *config.SupabaseConfig, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   5 * time.Second,
				ResponseHeaderTimeout: timeout,
				MaxIdleConns:          50,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		log: log.With().Str("component", "supabase").Logger(),
	}
}

// Select reads the rows of table matching q and decodes them into dest,
// which must be a pointer to a slice
func (c *Client) Select(ctx context.Context, table string, q *Query, dest interface{}) error {
	endpoint := c.tableURL(table)
	if encoded := q.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	resp, err := c.do(ctx, http.MethodGet, table, endpoint, nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s rows: %w", table, err)
	}
	return nil
}

// Insert writes one record into table. When dest is non-nil the stored
// representation is requested and decoded into it (a pointer to a slice).
func (c *Client) Insert(ctx context.Context, table string, record interface{}, dest interface{}) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal %s record: %w", table, err)
	}

	headers := map[string]string{"Prefer": "return=minimal"}
	if dest != nil {
		headers["Prefer"] = "return=representation"
	}

	resp, err := c.do(ctx, http.MethodPost, table, c.tableURL(table), bytes.NewReader(payload), headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if dest == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode inserted %s row: %w", table, err)
	}
	return nil
}

// Ping checks that the REST endpoint is reachable and accepts the API key
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "", c.baseURL+restPath, nil, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) tableURL(table string) string {
	return c.baseURL + restPath + table
}

// do executes a request and returns the response only for 2xx statuses.
// Requests are attempted exactly once.
func (c *Client) do(ctx context.Context, method, table, url string, body io.Reader, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Str("table", table).Msg("Remote store request failed")
		return nil, fmt.Errorf("%s %s: %w", method, table, err)
	}

	c.log.Debug().
		Str("method", method).
		Str("table", table).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Remote store request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{
			Method:     method,
			Table:      table,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(msg)),
		}
	}

	return resp, nil
}
