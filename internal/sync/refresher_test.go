package sync_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homereno/renoterm/internal/api"
	"github.com/homereno/renoterm/internal/sync"
	"github.com/homereno/renoterm/tests/testutil"
)

func TestRefresherFetchesAndCaches(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/projects", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": "p1", "name": "Kitchen", "budget": 12000, "number_of_workers": 3, "eta": 6},
			{"id": "p2", "name": "Roof", "progress": 40}
		]`))
	})
	mux.HandleFunc("/api/contractors", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": "c1", "fullName": "Ada Brick", "price": 400, "expertise": "JUNIOR"}]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := api.NewClient(srv.URL, "test-key", nil)
	s := testutil.NewTestStore(t)

	r := sync.New(client, s, time.Hour)
	defer r.Stop()

	// Start kicks off an immediate fetch; the returned command blocks
	// until its result is published.
	msg := r.Start()()
	result, ok := msg.(sync.RefreshResultMsg)
	require.True(t, ok)
	require.NoError(t, result.Error)
	require.Len(t, result.Projects, 2)
	assert.Equal(t, "Kitchen", result.Projects[0].Name)
	require.Len(t, result.Contractors, 1)

	cached, err := s.GetProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, cached, 2)
	assert.Equal(t, "p1", cached[0].ID)

	status := r.Status()
	assert.Equal(t, sync.Idle, status.State)
	assert.False(t, status.LastSync.IsZero())
}

func TestRefresherReportsAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"token expired"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL, "test-key", nil)
	r := sync.New(client, testutil.NewTestStore(t), time.Hour)
	defer r.Stop()

	msg := r.Start()()
	result, ok := msg.(sync.RefreshResultMsg)
	require.True(t, ok)
	require.Error(t, result.Error)
	require.NotNil(t, result.AuthError)
	assert.Equal(t, sync.Error, r.Status().State)
}
