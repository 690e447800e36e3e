package tests

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"courtside/internal/archive"
	"courtside/internal/config"
	"courtside/internal/server"
)

// waitForCount polls the archive until it holds want photos or the deadline
// passes. The watcher sits on a settle timer, so imports land seconds after
// the file write.
func waitForCount(t *testing.T, arc *archive.Archive, want int, timeout time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		count, err := arc.CountPhotos()
		if err != nil {
			t.Fatalf("Failed to count photos: %v", err)
		}
		if count == want {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}

	count, _ := arc.CountPhotos()
	t.Fatalf("Expected %d photos before deadline, got %d", want, count)
}

func TestFeedWatcher(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping watcher test in short mode")
	}

	// Set up test environment
	testDir := t.TempDir()
	feedsDir := filepath.Join(testDir, "feeds")

	if err := os.MkdirAll(feedsDir, 0755); err != nil {
		t.Fatalf("Failed to create feeds directory: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = "0"
	cfg.Server.StaticDir = filepath.Join(testDir, "site")
	cfg.Server.RequestLogging = false
	cfg.Archive.DatabasePath = filepath.Join(testDir, "test.db")
	cfg.Feeds.IncomingDir = feedsDir
	cfg.Feeds.WatchForChanges = true
	cfg.Feeds.ImportOnStartup = false
	cfg.Site.OutputDir = filepath.Join(testDir, "site")
	cfg.Affiliate.Enabled = false
	cfg.Logging.Level = "error"

	arc, err := archive.NewArchive(cfg.Archive.DatabasePath)
	if err != nil {
		t.Fatalf("Failed to create archive: %v", err)
	}
	defer arc.Close()

	galleryServer, err := server.NewGalleryServer(cfg, arc)
	if err != nil {
		t.Fatalf("Failed to create gallery server: %v", err)
	}

	go galleryServer.Start()
	defer galleryServer.Shutdown()

	// Wait a moment for the watcher to start
	time.Sleep(300 * time.Millisecond)

	t.Run("TempFilesIgnored", func(t *testing.T) {
		tmpFeed := `[{"id": "9999", "keywords": "Nobody"}]`
		tmpPath := filepath.Join(feedsDir, "incoming.json.tmp")
		if err := os.WriteFile(tmpPath, []byte(tmpFeed), 0644); err != nil {
			t.Fatalf("Failed to write temp file: %v", err)
		}
	})

	t.Run("DroppedFeedImported", func(t *testing.T) {
		feedBody := `[
			{"id": "4001", "captionClean": "Anthony Edwards wearing the Adidas AE 1", "keywords": "Anthony Edwards", "create_date": "2025-02-01"},
			{"id": "4002", "captionClean": "Anthony Edwards celebrates", "keywords": "Anthony Edwards", "create_date": "2025-02-01"}
		]`
		if err := os.WriteFile(filepath.Join(feedsDir, "drop.json"), []byte(feedBody), 0644); err != nil {
			t.Fatalf("Failed to write feed file: %v", err)
		}

		waitForCount(t, arc, 2, 10*time.Second)
	})

	t.Run("NewSubdirectoryWatched", func(t *testing.T) {
		weekDir := filepath.Join(feedsDir, "week-05")
		if err := os.MkdirAll(weekDir, 0755); err != nil {
			t.Fatalf("Failed to create subdirectory: %v", err)
		}

		// Give the watcher time to pick up the new directory
		time.Sleep(300 * time.Millisecond)

		feedBody := `[{"id": "4003", "captionClean": "Luka Doncic in the Jordan Luka 3", "keywords": "Luka Doncic", "create_date": "2025-02-02"}]`
		if err := os.WriteFile(filepath.Join(weekDir, "drop.json"), []byte(feedBody), 0644); err != nil {
			t.Fatalf("Failed to write feed file: %v", err)
		}

		waitForCount(t, arc, 3, 10*time.Second)
	})

	t.Run("TempFileNeverImported", func(t *testing.T) {
		exists, err := arc.PhotoExists("9999")
		if err != nil {
			t.Fatalf("Failed to check photo: %v", err)
		}
		if exists {
			t.Error("Temp file should not have been imported")
		}
	})
}
