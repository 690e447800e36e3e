package archive

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"courtside/pkg/models"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// Archive wraps a *sql.DB providing higher-level helper methods for the
// photo archive. It is safe for concurrent use because the underlying
// *sql.DB is concurrency-safe.
type Archive struct {
	conn   *sql.DB
	logger *logrus.Logger

	// Prepared statements for better performance
	insertPhotoStmt *sql.Stmt
	updatePhotoStmt *sql.Stmt
	getPhotoStmt    *sql.Stmt
	photoExistsStmt *sql.Stmt
	searchStmt      *sql.Stmt
}

const photoColumns = `imagn_id, image_url, thumbnail_url, hover_url, headline, caption,
	photographer, source, photo_date, player_name, player_slug, brand_slug, keywords, added_at`

// NewArchive opens (or creates) a SQLite database at the provided path and
// ensures all required tables and indices exist. It also applies lightweight
// performance-oriented pragmas (WAL, cache sizing). Caller should Close() it
// when finished.
func NewArchive(dbPath string) (*Archive, error) {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	conn, err := sql.Open("sqlite3", dbPath+"?cache=shared&mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool - adjusted for SQLite
	conn.SetMaxOpenConns(5) // SQLite works better with fewer connections
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(15 * time.Minute)

	// Enable WAL mode for better concurrency
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA cache_size=2000;",
		"PRAGMA temp_store=memory;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA auto_vacuum=INCREMENTAL;",
	}

	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			logger.WithError(err).WithField("pragma", pragma).Warn("Failed to set pragma")
		}
	}

	a := &Archive{
		conn:   conn,
		logger: logger,
	}

	if err := a.createTables(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	if err := a.prepareStatements(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	logger.WithField("db_path", dbPath).Info("Archive initialized successfully")
	return a, nil
}

// createTables creates tables and indices if they do not already exist, then
// executes any migrations. This is idempotent and safe to call multiple times.
func (a *Archive) createTables() error {
	// Create photos table
	photosTable := `
	CREATE TABLE IF NOT EXISTS photos (
		imagn_id TEXT PRIMARY KEY,
		image_url TEXT NOT NULL,
		thumbnail_url TEXT NOT NULL DEFAULT '',
		hover_url TEXT NOT NULL DEFAULT '',
		headline TEXT NOT NULL DEFAULT '',
		caption TEXT NOT NULL DEFAULT '',
		photographer TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL DEFAULT '',
		photo_date TEXT NOT NULL DEFAULT '',
		player_name TEXT NOT NULL DEFAULT '',
		player_slug TEXT NOT NULL DEFAULT '',
		brand_slug TEXT NOT NULL DEFAULT '',
		added_at TEXT NOT NULL DEFAULT ''
	);`

	// Create ingest_jobs table (for persistence of feed imports)
	ingestJobsTable := `
	CREATE TABLE IF NOT EXISTS ingest_jobs (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		status TEXT,
		photos_seen INTEGER DEFAULT 0,
		photos_added INTEGER DEFAULT 0,
		error TEXT,
		created_at DATETIME,
		completed_at DATETIME
	);`

	// Create indices for better performance
	indices := []string{
		"CREATE INDEX IF NOT EXISTS idx_photos_player_slug ON photos(player_slug);",
		"CREATE INDEX IF NOT EXISTS idx_photos_brand_slug ON photos(brand_slug);",
		"CREATE INDEX IF NOT EXISTS idx_photos_photo_date ON photos(photo_date);",
		"CREATE INDEX IF NOT EXISTS idx_ingest_jobs_status ON ingest_jobs(status);",
		"CREATE INDEX IF NOT EXISTS idx_ingest_jobs_created ON ingest_jobs(created_at);",
	}

	tables := []string{photosTable, ingestJobsTable}
	for _, table := range tables {
		if _, err := a.conn.Exec(table); err != nil {
			return err
		}
	}

	for _, index := range indices {
		if _, err := a.conn.Exec(index); err != nil {
			return err
		}
	}

	// Run migrations
	if err := a.runMigrations(); err != nil {
		return err
	}

	return nil
}

// runMigrations performs incremental schema updates in-place. Each migration
// should be idempotent and safe to re-run; keep them lightweight.
func (a *Archive) runMigrations() error {
	// Migration 1: Add keywords column to photos table if it doesn't exist
	var keywordsExists bool
	err := a.conn.QueryRow(`
		SELECT COUNT(*) > 0
		FROM pragma_table_info('photos')
		WHERE name = 'keywords'`).Scan(&keywordsExists)

	if err != nil {
		return err
	}

	if !keywordsExists {
		_, err = a.conn.Exec("ALTER TABLE photos ADD COLUMN keywords TEXT NOT NULL DEFAULT ''")
		if err != nil {
			return err
		}
	}

	// Migration 2: Add week column to photos table if it doesn't exist
	var weekExists bool
	err = a.conn.QueryRow(`
		SELECT COUNT(*) > 0
		FROM pragma_table_info('photos')
		WHERE name = 'week'`).Scan(&weekExists)

	if err != nil {
		return err
	}

	if !weekExists {
		_, err = a.conn.Exec("ALTER TABLE photos ADD COLUMN week TEXT NOT NULL DEFAULT ''")
		if err != nil {
			return err
		}

		// Create index for the new week column
		_, err = a.conn.Exec("CREATE INDEX IF NOT EXISTS idx_photos_week ON photos(week)")
		if err != nil {
			return err
		}

		// Backfill week buckets for existing rows
		rows, err := a.conn.Query("SELECT imagn_id, photo_date FROM photos WHERE photo_date != ''")
		if err != nil {
			return err
		}
		type pair struct{ id, date string }
		var pairs []pair
		for rows.Next() {
			var p pair
			if err := rows.Scan(&p.id, &p.date); err != nil {
				rows.Close()
				return err
			}
			pairs = append(pairs, p)
		}
		rows.Close()
		for _, p := range pairs {
			if week := WeekBucket(p.date); week != "" {
				if _, err := a.conn.Exec("UPDATE photos SET week = ? WHERE imagn_id = ?", week, p.id); err != nil {
					return err
				}
			}
		}

		a.logger.Info("Added week column and index to photos table")
	}

	return nil
}

// prepareStatements prepares commonly used SQL statements for better performance
func (a *Archive) prepareStatements() error {
	var err error

	a.insertPhotoStmt, err = a.conn.Prepare(`
		INSERT INTO photos (imagn_id, image_url, thumbnail_url, hover_url, headline, caption,
			photographer, source, photo_date, player_name, player_slug, brand_slug, keywords, week, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert photo statement: %w", err)
	}

	a.updatePhotoStmt, err = a.conn.Prepare(`
		UPDATE photos SET image_url = ?, thumbnail_url = ?, hover_url = ?, headline = ?, caption = ?,
			photographer = ?, source = ?, photo_date = ?, player_name = ?, player_slug = ?,
			brand_slug = ?, keywords = ?, week = ?
		WHERE imagn_id = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare update photo statement: %w", err)
	}

	a.getPhotoStmt, err = a.conn.Prepare(`
		SELECT ` + photoColumns + `
		FROM photos WHERE imagn_id = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare get photo statement: %w", err)
	}

	a.photoExistsStmt, err = a.conn.Prepare(`
		SELECT COUNT(*) FROM photos WHERE imagn_id = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare photo exists statement: %w", err)
	}

	a.searchStmt, err = a.conn.Prepare(`
		SELECT ` + photoColumns + `
		FROM photos
		WHERE player_name LIKE ? OR headline LIKE ? OR caption LIKE ?
		ORDER BY photo_date DESC, imagn_id`)
	if err != nil {
		return fmt.Errorf("failed to prepare search photos statement: %w", err)
	}

	return nil
}

// AddPhotos merges a batch of photo records into the archive. New photos are
// inserted with slugs and week bucket computed; photos already present are
// enriched in place, filling only fields that were empty before. Returns the
// number of inserted and enriched records.
func (a *Archive) AddPhotos(photos []models.PhotoRecord) (int, int, error) {
	added, enriched := 0, 0

	for i := range photos {
		photo := photos[i]
		if photo.ImagnID == "" || photo.ImageURL == "" {
			continue
		}

		existing, err := a.GetPhoto(photo.ImagnID)
		if err == sql.ErrNoRows {
			if err := a.insertPhoto(photo); err != nil {
				return added, enriched, err
			}
			added++
			continue
		}
		if err != nil {
			return added, enriched, err
		}

		changed, err := a.enrichPhoto(existing, photo)
		if err != nil {
			return added, enriched, err
		}
		if changed {
			enriched++
		}
	}

	return added, enriched, nil
}

// insertPhoto inserts a brand new photo record, deriving the player slug,
// brand slug and week bucket.
func (a *Archive) insertPhoto(photo models.PhotoRecord) error {
	if photo.PlayerSlug == "" {
		photo.PlayerSlug = Slugify(photo.PlayerName)
	}
	if photo.BrandSlug == "" {
		photo.BrandSlug = ExtractBrandSlug(photo.Headline + " " + photo.Caption)
	}
	if photo.AddedAt == "" {
		photo.AddedAt = time.Now().Format(time.RFC3339)
	}

	_, err := a.insertPhotoStmt.Exec(
		photo.ImagnID, photo.ImageURL, photo.ThumbnailURL, photo.HoverURL,
		photo.Headline, photo.Caption, photo.Photographer, photo.Source,
		photo.PhotoDate, photo.PlayerName, photo.PlayerSlug, photo.BrandSlug,
		encodeKeywords(photo.Keywords), WeekBucket(photo.PhotoDate), photo.AddedAt)
	if err != nil {
		a.logger.WithError(err).WithField("imagn_id", photo.ImagnID).Error("Failed to insert photo")
	}
	return err
}

// enrichPhoto fills empty fields of an existing record from an incoming one.
// Populated fields are never overwritten and added_at is preserved.
func (a *Archive) enrichPhoto(existing *models.PhotoRecord, incoming models.PhotoRecord) (bool, error) {
	changed := false

	fill := func(dst *string, src string) {
		if *dst == "" && src != "" {
			*dst = src
			changed = true
		}
	}

	fill(&existing.ThumbnailURL, incoming.ThumbnailURL)
	fill(&existing.HoverURL, incoming.HoverURL)
	fill(&existing.Headline, incoming.Headline)
	fill(&existing.Caption, incoming.Caption)
	fill(&existing.Photographer, incoming.Photographer)
	fill(&existing.Source, incoming.Source)
	fill(&existing.PhotoDate, incoming.PhotoDate)
	fill(&existing.PlayerName, incoming.PlayerName)

	if len(existing.Keywords) == 0 && len(incoming.Keywords) > 0 {
		existing.Keywords = incoming.Keywords
		changed = true
	}

	if !changed {
		return false, nil
	}

	// Re-derive slugs and week bucket from the merged fields
	if existing.PlayerSlug == "" {
		existing.PlayerSlug = Slugify(existing.PlayerName)
	}
	if existing.BrandSlug == "" || existing.BrandSlug == "other" {
		existing.BrandSlug = ExtractBrandSlug(existing.Headline + " " + existing.Caption)
	}

	_, err := a.updatePhotoStmt.Exec(
		existing.ImageURL, existing.ThumbnailURL, existing.HoverURL,
		existing.Headline, existing.Caption, existing.Photographer, existing.Source,
		existing.PhotoDate, existing.PlayerName, existing.PlayerSlug, existing.BrandSlug,
		encodeKeywords(existing.Keywords), WeekBucket(existing.PhotoDate), existing.ImagnID)
	if err != nil {
		a.logger.WithError(err).WithField("imagn_id", existing.ImagnID).Error("Failed to enrich photo")
		return false, err
	}
	return true, nil
}

// GetPhoto returns a single photo by its imagn ID. Returns sql.ErrNoRows if
// the photo is not archived.
func (a *Archive) GetPhoto(imagnID string) (*models.PhotoRecord, error) {
	var photo models.PhotoRecord
	var keywords string

	err := a.getPhotoStmt.QueryRow(imagnID).Scan(
		&photo.ImagnID, &photo.ImageURL, &photo.ThumbnailURL, &photo.HoverURL,
		&photo.Headline, &photo.Caption, &photo.Photographer, &photo.Source,
		&photo.PhotoDate, &photo.PlayerName, &photo.PlayerSlug, &photo.BrandSlug,
		&keywords, &photo.AddedAt)
	if err != nil {
		return nil, err
	}

	photo.Keywords = decodeKeywords(keywords)
	return &photo, nil
}

// PhotoExists returns true if a photo with the given imagn ID is archived.
func (a *Archive) PhotoExists(imagnID string) (bool, error) {
	var count int
	err := a.photoExistsStmt.QueryRow(imagnID).Scan(&count)
	if err != nil {
		a.logger.WithError(err).WithField("imagn_id", imagnID).Error("Failed to check if photo exists")
		return false, err
	}
	return count > 0, nil
}

// RecordIngestJob inserts or updates an ingest job record by ID.
func (a *Archive) RecordIngestJob(job models.IngestJob) error {
	_, err := a.conn.Exec(`
		INSERT INTO ingest_jobs (id, source, status, photos_seen, photos_added, error, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source=excluded.source,
			status=excluded.status,
			photos_seen=excluded.photos_seen,
			photos_added=excluded.photos_added,
			error=excluded.error,
			completed_at=excluded.completed_at
	`, job.ID, job.Source, string(job.Status), job.PhotosSeen, job.PhotosAdded, job.Error, job.CreatedAt, job.CompletedAt)
	return err
}

// ListIngestJobs returns all persisted ingest jobs ordered by creation time.
func (a *Archive) ListIngestJobs() ([]models.IngestJob, error) {
	rows, err := a.conn.Query(`
		SELECT id, source, status, photos_seen, photos_added, COALESCE(error, ''), created_at, completed_at
		FROM ingest_jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []models.IngestJob
	for rows.Next() {
		var job models.IngestJob
		var status string
		var completedAt sql.NullTime
		if err := rows.Scan(&job.ID, &job.Source, &status, &job.PhotosSeen, &job.PhotosAdded,
			&job.Error, &job.CreatedAt, &completedAt); err != nil {
			return nil, err
		}
		job.Status = models.IngestStatus(status)
		if completedAt.Valid {
			t := completedAt.Time
			job.CompletedAt = &t
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// Close closes the underlying database connection and prepared statements.
func (a *Archive) Close() error {
	// Close prepared statements
	statements := []*sql.Stmt{
		a.insertPhotoStmt,
		a.updatePhotoStmt,
		a.getPhotoStmt,
		a.photoExistsStmt,
		a.searchStmt,
	}

	for _, stmt := range statements {
		if stmt != nil {
			if err := stmt.Close(); err != nil {
				a.logger.WithError(err).Error("Failed to close prepared statement")
			}
		}
	}

	// Close database connection
	if a.conn != nil {
		return a.conn.Close()
	}
	return nil
}

// WeekBucket returns the ISO week bucket (e.g. "2025-W33") for a YYYY-MM-DD
// date string, or "" when the date does not parse.
func WeekBucket(photoDate string) string {
	t, err := time.Parse("2006-01-02", photoDate)
	if err != nil {
		return ""
	}
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// encodeKeywords serializes a keyword list to its TEXT column representation.
func encodeKeywords(keywords []string) string {
	if len(keywords) == 0 {
		return ""
	}
	data, err := json.Marshal(keywords)
	if err != nil {
		return ""
	}
	return string(data)
}

// decodeKeywords parses the TEXT column representation back to a list.
func decodeKeywords(raw string) []string {
	if raw == "" {
		return nil
	}
	var keywords []string
	if err := json.Unmarshal([]byte(raw), &keywords); err != nil {
		return nil
	}
	return keywords
}
