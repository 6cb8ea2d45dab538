package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-key", nil)
	client.SetToken("tok-123")

	_, err := client.ListProjects(context.Background())
	require.NoError(t, err)
}

func TestClientAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", nil)
	_, err := client.ListProjects(context.Background())
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
}

func TestClientNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", nil)
	_, err := client.GetProject(context.Background(), "gone")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestClientRetriesRateLimit(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", nil)
	_, err := client.ListProjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			w.Write([]byte(`{"token": "tok-9", "username": "ana", "role": "USER"}`))
		case "/api/projects":
			// The login token must ride on follow-up requests.
			assert.Equal(t, "Bearer tok-9", r.Header.Get("Authorization"))
			w.Write([]byte(`[]`))
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", nil)
	resp, err := client.Login(context.Background(), "ana", "pw")
	require.NoError(t, err)
	assert.Equal(t, "ana", resp.Username)

	_, err = client.ListProjects(context.Background())
	require.NoError(t, err)
}

func TestRegister(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/register", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"username": "ana", "enabled": false}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", nil)
	resp, err := client.Register(context.Background(), "ana", "pw")
	require.NoError(t, err)
	assert.Equal(t, "ana", resp.Username)
	assert.True(t, resp.Pending())
}

func TestRegisterWithoutEnabledField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"username": "ana"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", nil)
	resp, err := client.Register(context.Background(), "ana", "pw")
	require.NoError(t, err)
	assert.False(t, resp.Pending())
}

func TestRegisterUsernameTaken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", nil)
	_, err := client.Register(context.Background(), "ana", "pw")
	require.Error(t, err)
	assert.True(t, IsConflict(err))
}

func TestLoginWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"username": "ana", "role": "USER"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", nil)
	_, err := client.Login(context.Background(), "ana", "pw")
	assert.Error(t, err)
}
