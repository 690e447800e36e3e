package models

import "time"

// PhotoRecord represents a single archived sneaker photo
type PhotoRecord struct {
	ImagnID      string   `json:"imagn_id"`
	ImageURL     string   `json:"image_url"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
	HoverURL     string   `json:"hover_url,omitempty"`
	Headline     string   `json:"headline,omitempty"`
	Caption      string   `json:"caption,omitempty"`
	Photographer string   `json:"photographer,omitempty"`
	Source       string   `json:"source,omitempty"`
	PhotoDate    string   `json:"photo_date,omitempty"` // YYYY-MM-DD
	PlayerName   string   `json:"player_name,omitempty"`
	PlayerSlug   string   `json:"player_slug,omitempty"`
	BrandSlug    string   `json:"brand_slug,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
	AddedAt      string   `json:"added_at,omitempty"`
}

// PlayerEntry is one row of the player search index
type PlayerEntry struct {
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Count      int    `json:"count"`
	HasPage    bool   `json:"has_page,omitempty"`
	LatestDate string `json:"latest_date,omitempty"`
}

// SearchIndex is the players.json document consumed by the quick search
type SearchIndex struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Players     []PlayerEntry `json:"players"`
}

// TrackedItem is one entry of the persisted price-tracking sequence.
// Timestamps marshal as RFC 3339 so file round-trips are lossless.
type TrackedItem struct {
	Shoe   string    `json:"shoe"`
	Player string    `json:"player"`
	Added  time.Time `json:"added"`
}

// BrandStat aggregates photo counts per shoe brand
type BrandStat struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// WeekBucket aggregates photo counts per ISO week (e.g. "2025-W33")
type WeekBucket struct {
	Week  string `json:"week"`
	Count int    `json:"count"`
}

// ArchiveStats summarizes the archive for the stats endpoint
type ArchiveStats struct {
	TotalPhotos  int           `json:"total_photos"`
	TotalPlayers int           `json:"total_players"`
	TotalBrands  int           `json:"total_brands"`
	TotalWeeks   int           `json:"total_weeks"`
	TopPlayers   []PlayerEntry `json:"top_players"`
	TopBrands    []BrandStat   `json:"top_brands"`
	RecentWeeks  []WeekBucket  `json:"recent_weeks"`
}

// IngestStatus represents the status of a feed ingest job
type IngestStatus string

const (
	IngestPending   IngestStatus = "pending"
	IngestRunning   IngestStatus = "running"
	IngestCompleted IngestStatus = "completed"
	IngestFailed    IngestStatus = "failed"
)

// IngestJob records one importer run over a feed file
type IngestJob struct {
	ID          string       `json:"id"`
	Source      string       `json:"source"`
	Status      IngestStatus `json:"status"`
	PhotosSeen  int          `json:"photos_seen"`
	PhotosAdded int          `json:"photos_added"`
	Error       string       `json:"error,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}
