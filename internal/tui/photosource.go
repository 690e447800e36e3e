package tui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"courtside/internal/archive"
	"courtside/internal/feed"
	"courtside/pkg/models"
)

const viewerUserAgent = "courtview/1.0"

// PhotoSource supplies the photo sequence the viewer browses. The gallery
// server and local feed files both implement it; tests substitute fixed
// slices.
type PhotoSource interface {
	FetchPhotos() ([]models.PhotoRecord, error)
}

// APIClient loads photos from a courtside server's /api/photos endpoint.
type APIClient struct {
	http    *http.Client
	baseURL string
	limit   int
}

// NewAPIClient constructs a client against serverURL, requesting at most
// limit photos.
func NewAPIClient(serverURL string, limit int) *APIClient {
	return &APIClient{
		http:    &http.Client{Timeout: 12 * time.Second},
		baseURL: serverURL,
		limit:   limit,
	}
}

// FetchPhotos downloads the newest photos from the server.
func (c *APIClient) FetchPhotos() ([]models.PhotoRecord, error) {
	url := fmt.Sprintf("%s/api/photos?limit=%d", c.baseURL, c.limit)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", viewerUserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("photo API returned status %d", resp.StatusCode)
	}

	var photos []models.PhotoRecord
	if err := json.NewDecoder(resp.Body).Decode(&photos); err != nil {
		return nil, err
	}
	return photos, nil
}

// FeedSource loads photos straight from a feed drop on disk, for browsing
// without a running server.
type FeedSource struct {
	path string
}

// NewFeedSource constructs a source over the feed file at path.
func NewFeedSource(path string) *FeedSource {
	return &FeedSource{path: path}
}

// FetchPhotos parses and normalizes the feed file's records. Slugs are
// derived here since these photos never pass through the archive.
func (s *FeedSource) FetchPhotos() ([]models.PhotoRecord, error) {
	images, err := feed.ParseFile(s.path)
	if err != nil {
		return nil, err
	}

	photos := make([]models.PhotoRecord, 0, len(images))
	for _, img := range images {
		record, ok := feed.Normalize(img)
		if !ok {
			continue
		}
		record.PlayerSlug = archive.Slugify(record.PlayerName)
		record.BrandSlug = archive.ExtractBrandSlug(record.Headline + " " + record.Caption)
		photos = append(photos, record)
	}
	return photos, nil
}
