// Package client contains the typed wrappers over the Sparkmatch REST API:
// a thin HTTP core speaking the {success, data, error} envelope with bearer
// auth, and per-area services (auth, matching, profile) on top of it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sparkmatch/sparkmatch-backend/internal/domain"
)

// TokenStore supplies the bearer token attached to authenticated requests.
// Implementations typically read from the device's secure storage.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
}

// MemoryTokenStore is an in-process TokenStore. The zero value is empty.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

func (m *MemoryTokenStore) Token(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *MemoryTokenStore) Set(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

func (m *MemoryTokenStore) Clear() { m.Set("") }

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func New(baseURL string, tokens TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Auth() *AuthService         { return &AuthService{c: c} }
func (c *Client) Matching() *MatchingService { return &MatchingService{c: c} }
func (c *Client) Profile() *ProfileService   { return &ProfileService{c: c} }

// envelope is the backend's fixed wire format.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// do performs one authenticated round trip. A missing token fails
// immediately with domain.ErrUnauthorized without issuing the request.
// Transport failures come back as *domain.NetworkError, server-reported
// failures as *domain.ServiceError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("reading auth token: %w", err)
	}
	if token == "" {
		return domain.ErrUnauthorized
	}
	return c.roundTrip(ctx, method, path, token, body, out)
}

// doPublic is do for unauthenticated endpoints (OTP flows).
func (c *Client) doPublic(ctx context.Context, method, path string, body, out interface{}) error {
	return c.roundTrip(ctx, method, path, "", body, out)
}

func (c *Client) roundTrip(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return &domain.ServiceError{Status: resp.StatusCode, Message: resp.Status}
		}
		return &domain.NetworkError{Err: fmt.Errorf("decoding response: %w", err)}
	}

	if resp.StatusCode >= 400 || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		if msg == "" {
			msg = "request failed"
		}
		return &domain.ServiceError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decoding response data: %w", err)
		}
	}
	return nil
}
