// Package client is the Go counterpart of the web frontend's fetch wrapper:
// it attaches the current access token to every request, detects
// authentication failure, transparently refreshes the session once, and
// retries the original request once.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// ErrSessionExpired is returned when a request cannot be authenticated and
// the refresh attempt failed (or no session exists). The caller must treat
// it as a forced logout.
var ErrSessionExpired = errors.New("session expired")

// APIError carries a non-auth error response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client calls the staff API. Tokens live in memory under a mutex; the mutex
// also serializes refresh attempts so concurrent failed requests do not spawn
// parallel rotations.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	// OnLogout runs whenever the client clears its session state. Optional.
	OnLogout func()

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func New(baseURL string) *Client {
	return &Client{BaseURL: baseURL, HTTP: http.DefaultClient}
}

// envelope is the subset of every response body the interceptor inspects:
// the backend mirrors the HTTP status as statusCode inside error payloads,
// and some deployed revisions did so inside 200 responses.
type envelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

type signInResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	IsAdmin      bool   `json:"isAdmin"`
	Success      bool   `json:"success"`
	Message      string `json:"message"`
}

// SignIn authenticates and stores the issued token pair.
func (c *Client) SignIn(ctx context.Context, email, password string) (isAdmin bool, err error) {
	payload, _ := json.Marshal(map[string]string{"email": email, "password": password})
	status, body, err := c.send(ctx, http.MethodPost, "/signin", payload, "")
	if err != nil {
		return false, err
	}
	if status != http.StatusOK {
		var env envelope
		_ = json.Unmarshal(body, &env)
		return false, &APIError{StatusCode: status, Message: env.Message}
	}
	var resp signInResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return false, fmt.Errorf("decode sign-in response: %w", err)
	}
	c.mu.Lock()
	c.accessToken = resp.AccessToken
	c.refreshToken = resp.RefreshToken
	c.mu.Unlock()
	return resp.IsAdmin, nil
}

// Logout invalidates the session server-side and clears local state. It
// succeeds even when the server no longer knows the token.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	refresh := c.refreshToken
	c.mu.Unlock()
	if refresh != "" {
		if _, _, err := c.send(ctx, http.MethodPost, "/logout", nil, refresh); err != nil {
			return err
		}
	}
	c.clearSession()
	return nil
}

// Do performs an authenticated request. On auth failure — HTTP 401 or an
// embedded statusCode 401 inside a 2xx body — it refreshes the session once
// and retries once; a second failure clears the session and returns
// ErrSessionExpired. out, when non-nil, receives the decoded success body.
func (c *Client) Do(ctx context.Context, method, path string, payload, out interface{}) error {
	c.mu.Lock()
	access := c.accessToken
	c.mu.Unlock()
	if access == "" {
		c.clearSession()
		return ErrSessionExpired
	}

	var body []byte
	if payload != nil {
		var err error
		if body, err = json.Marshal(payload); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	status, respBody, err := c.send(ctx, method, path, body, access)
	if err != nil {
		return err
	}

	if authFailed(status, respBody) {
		if err := c.refresh(ctx); err != nil {
			c.clearSession()
			return ErrSessionExpired
		}
		c.mu.Lock()
		access = c.accessToken
		c.mu.Unlock()
		// One retry, whatever it yields.
		if status, respBody, err = c.send(ctx, method, path, body, access); err != nil {
			return err
		}
		if authFailed(status, respBody) {
			c.clearSession()
			return ErrSessionExpired
		}
	}

	if status < 200 || status > 299 {
		var env envelope
		_ = json.Unmarshal(respBody, &env)
		return &APIError{StatusCode: status, Message: env.Message}
	}
	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// refresh exchanges the stored refresh token for a new pair. Serialized by
// the mutex: when several in-flight requests fail together only one rotation
// runs at a time, and the losers see the tokens it installed.
func (c *Client) refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.refreshToken == "" {
		return ErrSessionExpired
	}

	status, body, err := c.send(ctx, http.MethodPost, "/refresh", nil, c.refreshToken)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return ErrSessionExpired
	}
	var resp struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || resp.AccessToken == "" || resp.RefreshToken == "" {
		return ErrSessionExpired
	}
	c.accessToken = resp.AccessToken
	c.refreshToken = resp.RefreshToken
	return nil
}

func (c *Client) clearSession() {
	c.mu.Lock()
	c.accessToken = ""
	c.refreshToken = ""
	c.mu.Unlock()
	if c.OnLogout != nil {
		c.OnLogout()
	}
}

func (c *Client) send(ctx context.Context, method, path string, body []byte, bearer string) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, respBody, nil
}

func authFailed(status int, body []byte) bool {
	if status == http.StatusUnauthorized {
		return true
	}
	if status >= 200 && status <= 299 {
		var env envelope
		if err := json.Unmarshal(body, &env); err == nil && env.StatusCode == http.StatusUnauthorized {
			return true
		}
	}
	return false
}
