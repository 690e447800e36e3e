package archive

import (
	"database/sql"
	"fmt"

	"courtside/pkg/models"
)

// AllPhotos returns archived photos ordered by photo date, newest first.
// A limit <= 0 returns everything.
func (a *Archive) AllPhotos(limit int) ([]models.PhotoRecord, error) {
	query := `SELECT ` + photoColumns + ` FROM photos ORDER BY photo_date DESC, imagn_id`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = a.conn.Query(query+" LIMIT ?", limit)
	} else {
		rows, err = a.conn.Query(query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return a.scanPhotoRows(rows)
}

// PhotosByPlayer returns all photos for a player slug, newest first.
func (a *Archive) PhotosByPlayer(playerSlug string) ([]models.PhotoRecord, error) {
	rows, err := a.conn.Query(`
		SELECT `+photoColumns+` FROM photos
		WHERE player_slug = ? ORDER BY photo_date DESC, imagn_id`, playerSlug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return a.scanPhotoRows(rows)
}

// PhotosByBrand returns all photos tagged with a brand slug, newest first.
func (a *Archive) PhotosByBrand(brandSlug string) ([]models.PhotoRecord, error) {
	rows, err := a.conn.Query(`
		SELECT `+photoColumns+` FROM photos
		WHERE brand_slug = ? ORDER BY photo_date DESC, imagn_id`, brandSlug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return a.scanPhotoRows(rows)
}

// PhotosByWeek returns all photos whose date falls in an ISO week bucket
// such as "2025-W33".
func (a *Archive) PhotosByWeek(week string) ([]models.PhotoRecord, error) {
	rows, err := a.conn.Query(`
		SELECT `+photoColumns+` FROM photos
		WHERE week = ? ORDER BY photo_date DESC, imagn_id`, week)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return a.scanPhotoRows(rows)
}

// RecentPhotos returns photos dated on or after the given YYYY-MM-DD cutoff.
// ISO dates compare correctly as strings so no parsing is needed.
func (a *Archive) RecentPhotos(cutoffDate string) ([]models.PhotoRecord, error) {
	rows, err := a.conn.Query(`
		SELECT `+photoColumns+` FROM photos
		WHERE photo_date >= ? ORDER BY photo_date DESC, imagn_id`, cutoffDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return a.scanPhotoRows(rows)
}

// SearchPhotos returns photos whose player name, headline or caption contains
// the query, newest first.
func (a *Archive) SearchPhotos(query string) ([]models.PhotoRecord, error) {
	pattern := "%" + query + "%"
	rows, err := a.searchStmt.Query(pattern, pattern, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return a.scanPhotoRows(rows)
}

// CountPhotos returns the total number of archived photos.
func (a *Archive) CountPhotos() (int, error) {
	var count int
	err := a.conn.QueryRow("SELECT COUNT(*) FROM photos").Scan(&count)
	return count, err
}

// AllPlayers returns one entry per player slug with photo counts, ordered by
// count descending then name. Photos without an identified player are skipped.
func (a *Archive) AllPlayers() ([]models.PlayerEntry, error) {
	rows, err := a.conn.Query(`
		SELECT player_slug, MAX(player_name), COUNT(*), MAX(photo_date)
		FROM photos
		WHERE player_slug != ''
		GROUP BY player_slug
		ORDER BY COUNT(*) DESC, MAX(player_name)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []models.PlayerEntry
	for rows.Next() {
		var p models.PlayerEntry
		if err := rows.Scan(&p.Slug, &p.Name, &p.Count, &p.LatestDate); err != nil {
			return nil, err
		}
		p.HasPage = true
		players = append(players, p)
	}
	return players, rows.Err()
}

// AllBrands returns one entry per brand slug with photo counts, ordered by
// count descending.
func (a *Archive) AllBrands() ([]models.BrandStat, error) {
	rows, err := a.conn.Query(`
		SELECT brand_slug, COUNT(*)
		FROM photos
		WHERE brand_slug != ''
		GROUP BY brand_slug
		ORDER BY COUNT(*) DESC, brand_slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []models.BrandStat
	for rows.Next() {
		var b models.BrandStat
		if err := rows.Scan(&b.Slug, &b.Count); err != nil {
			return nil, err
		}
		b.Name = BrandDisplayName(b.Slug)
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

// AllWeeks returns one bucket per ISO week with photo counts, newest week
// first. Photos without a parsable date are skipped.
func (a *Archive) AllWeeks() ([]models.WeekBucket, error) {
	rows, err := a.conn.Query(`
		SELECT week, COUNT(*)
		FROM photos
		WHERE week != ''
		GROUP BY week
		ORDER BY week DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var weeks []models.WeekBucket
	for rows.Next() {
		var w models.WeekBucket
		if err := rows.Scan(&w.Week, &w.Count); err != nil {
			return nil, err
		}
		weeks = append(weeks, w)
	}
	return weeks, rows.Err()
}

// Stats assembles archive-wide aggregate statistics. The "other" bucket is
// excluded from the brand total since it only collects unmatched photos.
func (a *Archive) Stats() (*models.ArchiveStats, error) {
	stats := &models.ArchiveStats{}

	var err error
	stats.TotalPhotos, err = a.CountPhotos()
	if err != nil {
		return nil, fmt.Errorf("failed to count photos: %w", err)
	}

	players, err := a.AllPlayers()
	if err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}
	stats.TotalPlayers = len(players)
	if len(players) > 10 {
		players = players[:10]
	}
	stats.TopPlayers = players

	brands, err := a.AllBrands()
	if err != nil {
		return nil, fmt.Errorf("failed to load brands: %w", err)
	}
	for _, b := range brands {
		if b.Slug != "other" {
			stats.TotalBrands++
		}
	}
	if len(brands) > 5 {
		brands = brands[:5]
	}
	stats.TopBrands = brands

	weeks, err := a.AllWeeks()
	if err != nil {
		return nil, fmt.Errorf("failed to load weeks: %w", err)
	}
	stats.TotalWeeks = len(weeks)
	if len(weeks) > 4 {
		weeks = weeks[:4]
	}
	stats.RecentWeeks = weeks

	return stats, nil
}

// scanPhotoRows is a helper to scan multiple photo rows
func (a *Archive) scanPhotoRows(rows *sql.Rows) ([]models.PhotoRecord, error) {
	var photos []models.PhotoRecord

	for rows.Next() {
		var photo models.PhotoRecord
		var keywords string

		err := rows.Scan(
			&photo.ImagnID, &photo.ImageURL, &photo.ThumbnailURL, &photo.HoverURL,
			&photo.Headline, &photo.Caption, &photo.Photographer, &photo.Source,
			&photo.PhotoDate, &photo.PlayerName, &photo.PlayerSlug, &photo.BrandSlug,
			&keywords, &photo.AddedAt)
		if err != nil {
			a.logger.WithError(err).Error("Failed to scan photo row")
			continue
		}

		photo.Keywords = decodeKeywords(keywords)
		photos = append(photos, photo)
	}

	return photos, rows.Err()
}
