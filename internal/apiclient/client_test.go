package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/steamraiders/internal/apiclient"
)

func TestDoDecodesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/directory/snapshot", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"currentPlayerId": "player-1"})
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	var out struct {
		CurrentPlayerID string `json:"currentPlayerId"`
	}
	err := c.Do(context.Background(), apiclient.Request{Path: "directory/snapshot"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "player-1", out.CurrentPlayerID)
}

func TestDoEncodesBodyAndHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "token-123", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "attack", body["type"])
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	err := c.Do(context.Background(), apiclient.Request{
		Path:    "/missions",
		Method:  http.MethodPost,
		Body:    map[string]string{"type": "attack"},
		Headers: map[string]string{"Authorization": "token-123"},
	}, nil)
	assert.NoError(t, err)
}

func TestDoNoContentSkipsDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	var out map[string]string
	err := apiclient.New(srv.URL).Do(context.Background(), apiclient.Request{Path: "/x"}, &out)
	assert.NoError(t, err)
	assert.Nil(t, out)
}

func TestDoNonSuccessCarriesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "commander not found", http.StatusNotFound)
	}))
	defer srv.Close()

	err := apiclient.New(srv.URL).Do(context.Background(), apiclient.Request{Path: "/x"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "commander not found")
}

func TestDoTimeout(t *testing.T) {
	blocked := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer srv.Close()
	defer close(blocked)

	c := apiclient.New(srv.URL, apiclient.WithTimeout(20*time.Millisecond))
	err := c.Do(context.Background(), apiclient.Request{Path: "/slow"}, nil)
	assert.Error(t, err)
}

func TestFetchDirectorySnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/directory/snapshot", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"currentPlayerId": "player-7",
			"systems": []map[string]any{
				{"id": "system-0-0-1", "displayName": "Sector 0:0 · 01"},
			},
		})
	}))
	defer srv.Close()

	snap, err := apiclient.New(srv.URL).FetchDirectorySnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "player-7", snap.CurrentPlayerID)
	require.Len(t, snap.Systems, 1)
	assert.Equal(t, "system-0-0-1", snap.Systems[0].ID)
}

func TestFetchAllianceDirectory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/alliances/directory", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"alliances":         []map[string]any{{"id": "alliance-1", "tag": "AER"}},
			"invites":           map[string]string{"AER-JOIN": "alliance-1"},
			"currentAllianceId": "alliance-1",
		})
	}))
	defer srv.Close()

	dir, err := apiclient.New(srv.URL).FetchAllianceDirectory(context.Background())
	require.NoError(t, err)
	require.Len(t, dir.Alliances, 1)
	assert.Equal(t, "AER", dir.Alliances[0].Tag)
	assert.Equal(t, "alliance-1", dir.Invites["AER-JOIN"])
	assert.Equal(t, "alliance-1", dir.CurrentAllianceID)
}
