package token

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Source yields the bearer token used to authorize completion requests.
type Source interface {
	Token(ctx context.Context) (string, error)
}

// Static wraps a fixed token (e.g. from an environment variable).
type Static string

func (s Static) Token(ctx context.Context) (string, error) {
	if s == "" {
		return "", fmt.Errorf("no auth token configured")
	}
	return string(s), nil
}

// Client fetches a token from the fixed token endpoint, which responds
// with {"token": "..."}. The token is cached for the life of the process;
// the endpoint is an external collaborator and is not re-validated here.
type Client struct {
	endpoint   string
	credential string
	httpClient *http.Client

	mu     sync.Mutex
	cached string
}

func NewClient(endpoint, credential string) *Client {
	return &Client{
		endpoint:   endpoint,
		credential: credential,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != "" {
		return c.cached, nil
	}

	if c.endpoint == "" {
		return "", fmt.Errorf("no token endpoint configured")
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	if c.credential != "" {
		req.Header.Set("Authorization", "Bearer "+c.credential)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(bodyBytes, &payload); err != nil {
		return "", fmt.Errorf("unmarshal token response: %w", err)
	}
	if strings.TrimSpace(payload.Token) == "" {
		return "", fmt.Errorf("token endpoint returned an empty token")
	}

	c.cached = payload.Token
	return c.cached, nil
}

// Invalidate drops the cached token so the next call refetches it.
func (c *Client) Invalidate() {
	c.mu.Lock()
	c.cached = ""
	c.mu.Unlock()
}
