package search

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"courtside/pkg/models"
)

const indexUserAgent = "courtside/1.0"

// IndexClient fetches the player search index from a courtside server.
type IndexClient struct {
	http     *http.Client
	indexURL string
}

// NewIndexClient constructs a client for the players.json index at indexURL.
func NewIndexClient(indexURL string) *IndexClient {
	return &IndexClient{
		http:     &http.Client{Timeout: 12 * time.Second},
		indexURL: indexURL,
	}
}

// FetchPlayers downloads and decodes the index, returning the player list.
func (c *IndexClient) FetchPlayers() ([]models.PlayerEntry, error) {
	req, err := http.NewRequest("GET", c.indexURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", indexUserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search index returned status %d", resp.StatusCode)
	}

	var index models.SearchIndex
	if err := json.NewDecoder(resp.Body).Decode(&index); err != nil {
		return nil, err
	}
	return index.Players, nil
}
