package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Channel delivers a composed document to the outward publication surface and
// returns the external reference for the sent copy.
type Channel interface {
	Send(ctx context.Context, title, body string) (string, error)
}

// HTTPChannel posts to a bridge endpoint (e.g. a Substack email relay).
type HTTPChannel struct {
	baseURL string
	client  *http.Client
}

func NewHTTPChannel(baseURL string, client *http.Client) *HTTPChannel {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &HTTPChannel{baseURL: baseURL, client: client}
}

func (c *HTTPChannel) Send(ctx context.Context, title, body string) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("publication channel not configured")
	}
	payload, _ := json.Marshal(map[string]string{"title": title, "body": body})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/publish", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build publish request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("publish request failed: %w", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("publish error %d: %s", resp.StatusCode, string(raw))
	}
	var parsed struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode publish response: %w", err)
	}
	if parsed.URL == "" {
		return "", fmt.Errorf("publish response missing url")
	}
	return parsed.URL, nil
}

// MockChannel records sends in memory and returns deterministic references.
type MockChannel struct {
	mu    sync.Mutex
	Sends []MockSend
}

type MockSend struct {
	Title string
	Body  string
}

func NewMockChannel() *MockChannel {
	return &MockChannel{}
}

func (c *MockChannel) Send(ctx context.Context, title, body string) (string, error) {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Sends = append(c.Sends, MockSend{Title: title, Body: body})
	return fmt.Sprintf("https://mock.publication/%d", len(c.Sends)), nil
}
