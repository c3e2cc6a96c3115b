package cli

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth, gotPath, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAgent = r.Header.Get("User-Agent")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok123")

	var result HealthResult
	err := c.Get("/health", &result)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", gotAuth)
	assert.Equal(t, "tilecli", gotAgent)
	assert.Equal(t, "/api/v1/health", gotPath)
	assert.Equal(t, "ok", result.Status)
}

func TestClientOmitsAuthWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	err := c.Get("/health", nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClientPostMarshalsBody(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "/api/v1/game/level-result", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"success":true,"starsEarned":3}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")

	var result LevelResult
	err := c.Post("/game/level-result", map[string]any{"userId": "u1"}, &result)
	require.NoError(t, err)
	assert.Equal(t, "u1", gotBody["userId"])
	assert.Equal(t, 3, result.StarsEarned)
}

func TestClientParsesStructuredError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"USER_NOT_FOUND","message":"user not found"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	err := c.Get("/users/nope", nil)
	require.Error(t, err)
	assert.Equal(t, "user not found (USER_NOT_FOUND)", err.Error())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "USER_NOT_FOUND", apiErr.Code)
}

func TestClientFallsBackToRawError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream broke"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	err := c.Get("/health", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
	assert.Contains(t, err.Error(), "upstream broke")
}

func TestClientTrimsTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/health", r.URL.Path)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "")
	require.NoError(t, c.Get("/health", nil))
}
