package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"courtside/internal/affiliate"
	"courtside/internal/archive"
	"courtside/internal/config"
	"courtside/internal/feed"
	"courtside/internal/search"
	"courtside/internal/site"
	"courtside/internal/tracker"
	"courtside/pkg/models"
)

// testFeed is a provider-shaped drop covering all three player derivations:
// keywords, caption extraction and the assorted date formats.
const testFeed = `{
	"allImages": [
		{
			"id": "3001",
			"headLine": "Lakers at Celtics",
			"captionClean": "LeBron James wearing the Nike LeBron 21 during the second half",
			"keywords": "LeBron James",
			"create_date": "2025-01-15T19:30:00"
		},
		{
			"id": 3002,
			"headLine": "Lakers at Warriors",
			"captionClean": "LeBron James looks on during a timeout",
			"keywords": "LeBron James",
			"create_date": "2025-01-18"
		},
		{
			"id": "3003",
			"headLine": "Celtics at Knicks",
			"captionClean": "Detailed view of the shoes worn by Boston Celtics forward Jayson Tatum (0) during the first quarter",
			"create_date": "January 20, 2025"
		}
	]
}`

func TestIngestPipeline(t *testing.T) {
	// Set up test environment
	testDir := t.TempDir()
	feedsDir := filepath.Join(testDir, "feeds")
	siteDir := filepath.Join(testDir, "site")

	if err := os.MkdirAll(feedsDir, 0755); err != nil {
		t.Fatalf("Failed to create feeds directory: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Archive.DatabasePath = filepath.Join(testDir, "test.db")
	cfg.Feeds.IncomingDir = feedsDir
	cfg.Feeds.WatchForChanges = false
	cfg.Site.OutputDir = siteDir
	cfg.Tracker.StoragePath = filepath.Join(testDir, "tracking.json")

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Test configuration invalid: %v", err)
	}

	// Create archive
	arc, err := archive.NewArchive(cfg.Archive.DatabasePath)
	if err != nil {
		t.Fatalf("Failed to create archive: %v", err)
	}
	defer arc.Close()

	feedPath := filepath.Join(feedsDir, "imagn_feed.json")
	if err := os.WriteFile(feedPath, []byte(testFeed), 0644); err != nil {
		t.Fatalf("Failed to write feed file: %v", err)
	}

	importer := feed.NewImporter(arc)

	t.Run("FeedImport", func(t *testing.T) {
		job, err := importer.ImportFile(feedPath)
		if err != nil {
			t.Fatalf("Failed to import feed: %v", err)
		}

		if job.Status != models.IngestCompleted {
			t.Errorf("Expected completed job, got %s", job.Status)
		}
		if job.PhotosSeen != 3 {
			t.Errorf("Expected 3 photos seen, got %d", job.PhotosSeen)
		}
		if job.PhotosAdded != 3 {
			t.Errorf("Expected 3 photos added, got %d", job.PhotosAdded)
		}
	})

	t.Run("ReimportIsIdempotent", func(t *testing.T) {
		job, err := importer.ImportFile(feedPath)
		if err != nil {
			t.Fatalf("Failed to re-import feed: %v", err)
		}

		if job.PhotosSeen != 3 {
			t.Errorf("Expected 3 photos seen on re-import, got %d", job.PhotosSeen)
		}
		if job.PhotosAdded != 0 {
			t.Errorf("Expected 0 photos added on re-import, got %d", job.PhotosAdded)
		}

		count, err := arc.CountPhotos()
		if err != nil {
			t.Fatalf("Failed to count photos: %v", err)
		}
		if count != 3 {
			t.Errorf("Expected 3 photos after re-import, got %d", count)
		}
	})

	t.Run("ArchiveQueries", func(t *testing.T) {
		// Numeric and string feed IDs land as the same string form
		photo, err := arc.GetPhoto("3002")
		if err != nil {
			t.Fatalf("Failed to get photo: %v", err)
		}
		if photo.PlayerSlug != "lebron-james" {
			t.Errorf("Expected slug lebron-james, got %q", photo.PlayerSlug)
		}

		// Caption-extracted player and long-form date
		photo, err = arc.GetPhoto("3003")
		if err != nil {
			t.Fatalf("Failed to get photo: %v", err)
		}
		if photo.PlayerName != "Jayson Tatum" {
			t.Errorf("Expected player from caption, got %q", photo.PlayerName)
		}
		if photo.PhotoDate != "2025-01-20" {
			t.Errorf("Expected normalized date 2025-01-20, got %q", photo.PhotoDate)
		}

		lebron, err := arc.PhotosByPlayer("lebron-james")
		if err != nil {
			t.Fatalf("Failed to query by player: %v", err)
		}
		if len(lebron) != 2 {
			t.Fatalf("Expected 2 LeBron photos, got %d", len(lebron))
		}
		if lebron[0].ImagnID != "3002" {
			t.Errorf("Expected newest photo first, got %s", lebron[0].ImagnID)
		}

		nike, err := arc.PhotosByBrand("nike")
		if err != nil {
			t.Fatalf("Failed to query by brand: %v", err)
		}
		if len(nike) != 1 || nike[0].ImagnID != "3001" {
			t.Errorf("Expected only the Nike LeBron photo, got %d", len(nike))
		}
	})

	t.Run("IngestHistory", func(t *testing.T) {
		jobs, err := arc.ListIngestJobs()
		if err != nil {
			t.Fatalf("Failed to list ingest jobs: %v", err)
		}
		if len(jobs) != 2 {
			t.Fatalf("Expected 2 recorded jobs, got %d", len(jobs))
		}
		for _, job := range jobs {
			if job.Status != models.IngestCompleted {
				t.Errorf("Expected completed job, got %s", job.Status)
			}
		}
	})

	t.Run("SearchIndexArtifact", func(t *testing.T) {
		builder := site.NewBuilder(arc, siteDir)
		indexPath, err := builder.WriteSearchIndex()
		if err != nil {
			t.Fatalf("Failed to write search index: %v", err)
		}

		want := filepath.Join(siteDir, "search", "players.json")
		if indexPath != want {
			t.Errorf("Expected index at %s, got %s", want, indexPath)
		}

		data, err := os.ReadFile(indexPath)
		if err != nil {
			t.Fatalf("Failed to read search index: %v", err)
		}

		var index models.SearchIndex
		if err := json.Unmarshal(data, &index); err != nil {
			t.Fatalf("Failed to decode search index: %v", err)
		}

		if len(index.Players) != 2 {
			t.Fatalf("Expected 2 players in index, got %d", len(index.Players))
		}
		if index.Players[0].Slug != "lebron-james" || index.Players[0].Count != 2 {
			t.Errorf("Expected lebron-james (2) first, got %+v", index.Players[0])
		}
	})

	t.Run("QuickSearchOverIndex", func(t *testing.T) {
		// Serve the written artifact the way the gallery server would
		fileServer := httptest.NewServer(http.FileServer(http.Dir(siteDir)))
		defer fileServer.Close()

		client := search.NewIndexClient(fileServer.URL + "/search/players.json")
		players, err := client.FetchPlayers()
		if err != nil {
			t.Fatalf("Failed to fetch players: %v", err)
		}
		if len(players) != 2 {
			t.Fatalf("Expected 2 players, got %d", len(players))
		}

		matches := search.FilterPlayers(players, "tat", 8)
		if len(matches) != 1 || matches[0].Slug != "jayson-tatum" {
			t.Errorf("Expected jayson-tatum match, got %+v", matches)
		}
	})
}

func TestFullWorkflow(t *testing.T) {
	// Caption -> shoe identification -> tracked sequence -> persistence
	testDir := t.TempDir()
	storagePath := filepath.Join(testDir, "shoe_tracking.json")

	trk := tracker.NewTracker(tracker.NewFileStore(storagePath), nil)

	shoe, conf := affiliate.Identify("LeBron James wearing the Nike LeBron 21 during the second half", "LeBron James")
	if shoe != "Nike LeBron 21" || conf != affiliate.ExactMatch {
		t.Fatalf("Identify = %q (%s), want Nike LeBron 21 (exact)", shoe, conf)
	}
	if err := trk.AddTrack(shoe, "LeBron James"); err != nil {
		t.Fatalf("Failed to track shoe: %v", err)
	}

	shoe, conf = affiliate.Identify("Jayson Tatum warming up before the game", "Jayson Tatum")
	if shoe != "Jordan Tatum" || conf != affiliate.LatestModel {
		t.Fatalf("Identify = %q (%s), want Jordan Tatum (latest)", shoe, conf)
	}
	if err := trk.AddTrack(shoe, "Jayson Tatum"); err != nil {
		t.Fatalf("Failed to track shoe: %v", err)
	}

	if trk.Len() != 2 {
		t.Errorf("Expected 2 tracked items, got %d", trk.Len())
	}

	// A fresh tracker over the same storage sees the sequence in order
	reloaded := tracker.NewTracker(tracker.NewFileStore(storagePath), nil)
	items := reloaded.Items()
	if len(items) != 2 {
		t.Fatalf("Expected 2 persisted items, got %d", len(items))
	}
	if items[0].Shoe != "Nike LeBron 21" || items[1].Shoe != "Jordan Tatum" {
		t.Errorf("Unexpected persisted order: %q, %q", items[0].Shoe, items[1].Shoe)
	}
	if items[0].Added.IsZero() {
		t.Error("Expected tracked items to carry timestamps")
	}
}
