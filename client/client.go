// Package client is the Go API client used by the Odo Valley admin tooling.
// It wraps the REST endpoints with bearer auth, a fixed request timeout, a
// single retry on bare network failures, and an optimistic local cache driven
// by the syncmon staleness tracker.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const defaultTimeout = 30 * time.Second

// ErrUnauthorized is returned on any 401; the configured hook has already
// cleared the stored token by the time the caller sees it.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: %d %s (%d field errors)", e.StatusCode, e.Message, len(e.Fields))
}

type Client struct {
	baseURL string
	httpc   *http.Client

	mu             sync.RWMutex
	token          string
	onUnauthorized func()
}

type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mostly for tests.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// WithToken sets the initial bearer token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithUnauthorizedHook installs a callback invoked after a 401 clears the
// token, typically to send the user back to the login screen.
func WithUnauthorizedHook(hook func()) Option {
	return func(c *Client) {
		c.onUnauthorized = hook
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token, e.g. after login.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// envelope is the uniform response shape of every endpoint.
type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Count   int               `json:"count"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
	Token   string            `json:"token"`
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	env, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	return decodeData(env, out)
}

func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	env, err := c.do(ctx, http.MethodPost, path, "application/json", payload)
	if err != nil {
		return err
	}
	return decodeData(env, out)
}

func (c *Client) PutJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	env, err := c.do(ctx, http.MethodPut, path, "application/json", payload)
	if err != nil {
		return err
	}
	return decodeData(env, out)
}

// PostForm submits resource fields the way the admin forms do.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, out any) error {
	env, err := c.do(ctx, http.MethodPost, path, "application/x-www-form-urlencoded", []byte(form.Encode()))
	if err != nil {
		return err
	}
	return decodeData(env, out)
}

func (c *Client) PutForm(ctx context.Context, path string, form url.Values, out any) error {
	env, err := c.do(ctx, http.MethodPut, path, "application/x-www-form-urlencoded", []byte(form.Encode()))
	if err != nil {
		return err
	}
	return decodeData(env, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, "", nil)
	return err
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) error {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}
	env, err := c.do(ctx, http.MethodPost, "/api/auth/login", "application/json", payload)
	if err != nil {
		return err
	}
	if env.Token == "" {
		return &APIError{StatusCode: http.StatusOK, Message: "login response missing token"}
	}
	c.SetToken(env.Token)
	return nil
}

// do issues the request, retrying exactly once when the round trip itself
// fails before an HTTP response exists. HTTP-level failures are never
// retried.
func (c *Client) do(ctx context.Context, method, path, contentType string, body []byte) (*envelope, error) {
	resp, err := c.send(ctx, method, path, contentType, body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		resp, err = c.send(ctx, method, path, contentType, body)
		if err != nil {
			return nil, err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.SetToken("")
		c.mu.RLock()
		hook := c.onUnauthorized
		c.mu.RUnlock()
		if hook != nil {
			hook()
		}
		return nil, ErrUnauthorized
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("api: invalid response: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		message := env.Message
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: message, Fields: env.Errors}
	}
	return &env, nil
}

func (c *Client) send(ctx context.Context, method, path, contentType string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = strings.NewReader(string(body))
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.httpc.Do(req)
}

func decodeData(env *envelope, out any) error {
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}
