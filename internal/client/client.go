// Package client talks to the admin endpoints of a running trusthub-twin.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/twctl/twctl/internal/twin"
)

// AdminClient talks to twin /admin/* endpoints.
type AdminClient struct {
	base string
	http *http.Client
}

// New creates an AdminClient for the twin at baseURL with a 5-second timeout.
func New(baseURL string) *AdminClient {
	return &AdminClient{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 5 * time.Second},
	}
}

// Health checks GET /admin/health.
func (c *AdminClient) Health(ctx context.Context) error {
	_, err := c.call(ctx, http.MethodGet, "/admin/health", nil)
	return err
}

// Reset clears the twin's state, faults and request log.
func (c *AdminClient) Reset(ctx context.Context) error {
	_, err := c.call(ctx, http.MethodPost, "/admin/reset", nil)
	return err
}

// Seed loads a YAML or JSON fixture into the twin.
func (c *AdminClient) Seed(ctx context.Context, data []byte) error {
	_, err := c.call(ctx, http.MethodPost, "/admin/state", data)
	return err
}

// State returns the twin's current records.
func (c *AdminClient) State(ctx context.Context) (twin.Seed, error) {
	body, err := c.call(ctx, http.MethodGet, "/admin/state", nil)
	if err != nil {
		return twin.Seed{}, err
	}
	return twin.ParseSeed(body)
}

// InjectFault makes requests matching pattern fail as described by f.
func (c *AdminClient) InjectFault(ctx context.Context, pattern string, f twin.Fault) error {
	payload, err := json.Marshal(struct {
		Path string `json:"path"`
		twin.Fault
	}{Path: pattern, Fault: f})
	if err != nil {
		return err
	}
	_, err = c.call(ctx, http.MethodPost, "/admin/faults", payload)
	return err
}

// ClearFaults removes every injected fault.
func (c *AdminClient) ClearFaults(ctx context.Context) error {
	_, err := c.call(ctx, http.MethodDelete, "/admin/faults", nil)
	return err
}

// Requests returns the twin's recent API requests, oldest first.
func (c *AdminClient) Requests(ctx context.Context) ([]twin.RequestLogEntry, error) {
	body, err := c.call(ctx, http.MethodGet, "/admin/requests", nil)
	if err != nil {
		return nil, err
	}
	var entries []twin.RequestLogEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("decoding request log: %w", err)
	}
	return entries, nil
}

func (c *AdminClient) call(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s %s returned status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return data, nil
}
