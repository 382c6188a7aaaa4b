package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend fakes the auth endpoints plus one protected resource. It
// accepts exactly one access token at a time and rotates both tokens on
// refresh, like the real backend.
type fakeBackend struct {
	access         string
	refresh        string
	refreshCalls   int32
	resourceCalls  int32
	failRefresh    bool
	embedAuthError bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{access: "access-1", refresh: "refresh-1"}
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&b.refreshCalls, 1)
		if b.failRefresh || r.Header.Get("Authorization") != "Bearer "+b.refresh {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"statusCode": 401, "message": "Invalid token"})
			return
		}
		b.access += "x"
		b.refresh += "x"
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"accessToken":  b.access,
			"refreshToken": b.refresh,
			"success":      true,
			"message":      "refreshed successfully",
		})
	})
	mux.HandleFunc("/logout", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Logged out successfully"})
	})
	mux.HandleFunc("/resource", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&b.resourceCalls, 1)
		if r.Header.Get("Authorization") != "Bearer "+b.access {
			if b.embedAuthError {
				// Legacy shape: auth failure reported inside a 200 body.
				_ = json.NewEncoder(w).Encode(map[string]interface{}{"statusCode": 401, "message": "Unauthorized"})
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"statusCode": 401, "message": "Unauthorized"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"value": "ok"})
	})
	return mux
}

func newTestClient(t *testing.T, b *fakeBackend) (*Client, *int32) {
	t.Helper()
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)

	var logouts int32
	c := New(srv.URL)
	c.OnLogout = func() { atomic.AddInt32(&logouts, 1) }
	c.accessToken = b.access
	c.refreshToken = b.refresh
	return c, &logouts
}

func TestDo_Success(t *testing.T) {
	b := newFakeBackend()
	c, logouts := newTestClient(t, b)

	var out struct {
		Value string `json:"value"`
	}
	require.NoError(t, c.Do(context.Background(), http.MethodGet, "/resource", nil, &out))
	assert.Equal(t, "ok", out.Value)
	assert.EqualValues(t, 0, atomic.LoadInt32(&b.refreshCalls))
	assert.EqualValues(t, 0, atomic.LoadInt32(logouts))
}

func TestDo_RefreshesAndRetriesOnce(t *testing.T) {
	b := newFakeBackend()
	c, logouts := newTestClient(t, b)

	// Simulate an expired access token: the backend already moved on.
	c.accessToken = "stale-access"

	var out struct {
		Value string `json:"value"`
	}
	require.NoError(t, c.Do(context.Background(), http.MethodGet, "/resource", nil, &out))
	assert.Equal(t, "ok", out.Value)
	assert.EqualValues(t, 1, atomic.LoadInt32(&b.refreshCalls))
	assert.EqualValues(t, 2, atomic.LoadInt32(&b.resourceCalls))
	assert.EqualValues(t, 0, atomic.LoadInt32(logouts))

	// The rotated pair replaced the stored one.
	assert.Equal(t, b.access, c.accessToken)
	assert.Equal(t, b.refresh, c.refreshToken)
}

func TestDo_EmbeddedStatusCodeTreatedAsAuthFailure(t *testing.T) {
	b := newFakeBackend()
	b.embedAuthError = true
	c, _ := newTestClient(t, b)
	c.accessToken = "stale-access"

	var out struct {
		Value string `json:"value"`
	}
	require.NoError(t, c.Do(context.Background(), http.MethodGet, "/resource", nil, &out))
	assert.Equal(t, "ok", out.Value)
	assert.EqualValues(t, 1, atomic.LoadInt32(&b.refreshCalls))
}

func TestDo_RefreshFailureForcesLogout(t *testing.T) {
	b := newFakeBackend()
	b.failRefresh = true
	c, logouts := newTestClient(t, b)
	c.accessToken = "stale-access"

	err := c.Do(context.Background(), http.MethodGet, "/resource", nil, nil)
	require.ErrorIs(t, err, ErrSessionExpired)
	assert.EqualValues(t, 1, atomic.LoadInt32(logouts))
	assert.Empty(t, c.accessToken)
	assert.Empty(t, c.refreshToken)

	// Exactly one resource attempt, no retry after a failed refresh.
	assert.EqualValues(t, 1, atomic.LoadInt32(&b.resourceCalls))
}

func TestDo_NoSecondRetry(t *testing.T) {
	b := newFakeBackend()
	c, logouts := newTestClient(t, b)

	// Refresh succeeds but the retried request still fails auth: the server
	// rotates again behind the client's back after each call.
	c.accessToken = "stale-access"
	inner := b.handler()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/resource" {
			atomic.AddInt32(&b.resourceCalls, 1)
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"statusCode": 401, "message": "Unauthorized"})
			return
		}
		inner.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	c.BaseURL = srv.URL

	err := c.Do(context.Background(), http.MethodGet, "/resource", nil, nil)
	require.ErrorIs(t, err, ErrSessionExpired)
	assert.EqualValues(t, 2, atomic.LoadInt32(&b.resourceCalls), "original attempt plus exactly one retry")
	assert.EqualValues(t, 1, atomic.LoadInt32(&b.refreshCalls))
	assert.EqualValues(t, 1, atomic.LoadInt32(logouts))
}

func TestDo_NoTokenForcesLogoutWithoutRequest(t *testing.T) {
	b := newFakeBackend()
	c, logouts := newTestClient(t, b)
	c.accessToken = ""

	err := c.Do(context.Background(), http.MethodGet, "/resource", nil, nil)
	require.ErrorIs(t, err, ErrSessionExpired)
	assert.EqualValues(t, 0, atomic.LoadInt32(&b.resourceCalls))
	assert.EqualValues(t, 1, atomic.LoadInt32(logouts))
}

func TestDo_NonAuthErrorPassedThrough(t *testing.T) {
	b := newFakeBackend()
	c, _ := newTestClient(t, b)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"statusCode": 404, "message": "Employee not found"})
	}))
	t.Cleanup(srv.Close)
	c.BaseURL = srv.URL

	err := c.Do(context.Background(), http.MethodGet, "/resource", nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.EqualValues(t, 0, atomic.LoadInt32(&b.refreshCalls))
}

func TestSignInAndLogout(t *testing.T) {
	b := newFakeBackend()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/signin" {
			var req struct{ Email, Password string }
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Email != "admin@example.com" {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{"statusCode": 401, "message": "Invalid credentials"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"accessToken":  b.access,
				"refreshToken": b.refresh,
				"isAdmin":      true,
				"success":      true,
				"message":      "Signed in successfully",
			})
			return
		}
		b.handler().ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL)

	isAdmin, err := c.SignIn(context.Background(), "admin@example.com", "pass")
	require.NoError(t, err)
	assert.True(t, isAdmin)
	assert.Equal(t, b.access, c.accessToken)

	_, err = c.SignIn(context.Background(), "other@example.com", "pass")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	require.NoError(t, c.Logout(context.Background()))
	assert.Empty(t, c.accessToken)
	assert.Empty(t, c.refreshToken)
}
