package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "12 Elm St", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Write([]byte(`[{"lat": "40.7128", "lon": "-74.0060", "display_name": "12 Elm St, New York"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.Geocode(context.Background(), "12 Elm St")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 40.7128, result.Latitude)
	assert.Equal(t, -74.0060, result.Longitude)
	assert.Equal(t, "12 Elm St, New York", result.Label)
}

func TestGeocodeMisses(t *testing.T) {
	t.Run("blank address skips the lookup entirely", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		result, err := NewClient(server.URL).Geocode(context.Background(), "   ")
		require.NoError(t, err)
		assert.Nil(t, result)
		assert.False(t, called)
	})

	t.Run("empty result set is a miss", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		result, err := NewClient(server.URL).Geocode(context.Background(), "nowhere at all")
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("unparsable coordinates are a miss", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"lat": "not-a-number", "lon": "-74"}]`))
		}))
		defer server.Close()

		result, err := NewClient(server.URL).Geocode(context.Background(), "12 Elm St")
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("server errors are a miss, not a failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		result, err := NewClient(server.URL).Geocode(context.Background(), "12 Elm St")
		require.NoError(t, err)
		assert.Nil(t, result)
	})
}
