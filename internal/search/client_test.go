package search

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPlayers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, indexUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"generated_at": "2025-01-15T10:00:00Z",
			"players": [
				{"name": "LeBron James", "slug": "lebron-james", "count": 12, "has_page": true},
				{"name": "Luka Doncic", "slug": "luka-doncic", "count": 7, "has_page": true}
			]
		}`))
	}))
	defer srv.Close()

	client := NewIndexClient(srv.URL + "/search/players.json")
	players, err := client.FetchPlayers()
	require.NoError(t, err)

	require.Len(t, players, 2)
	assert.Equal(t, "LeBron James", players[0].Name)
	assert.Equal(t, 12, players[0].Count)
	assert.True(t, players[0].HasPage)
}

func TestFetchPlayersServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewIndexClient(srv.URL)
	_, err := client.FetchPlayers()
	assert.Error(t, err)
}

func TestFetchPlayersBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"players": [`))
	}))
	defer srv.Close()

	client := NewIndexClient(srv.URL)
	_, err := client.FetchPlayers()
	assert.Error(t, err)
}
