package server

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"time"

	"courtside/internal/site"
	"courtside/pkg/models"
)

// handleHome serves the gallery index and any other static site file.
func (gs *GalleryServer) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" {
		http.ServeFile(w, r, filepath.Join(gs.config.Server.StaticDir, "index.html"))
		return
	}
	gs.staticFiles.ServeHTTP(w, r)
}

// handleGetPhotos returns photos, optionally filtered by player, brand,
// week, recency, or a caption search. Newest first.
func (gs *GalleryServer) handleGetPhotos(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	query := r.URL.Query()

	if vErr := gs.validateSearchQuery(query.Get("search")); vErr != nil {
		gs.respondWithValidationError(w, r, []ValidationError{*vErr})
		return
	}
	searchQuery := sanitizeInput(query.Get("search"))
	playerSlug := sanitizeInput(query.Get("player"))
	brandSlug := sanitizeInput(query.Get("brand"))
	week := sanitizeInput(query.Get("week"))
	limit, vErr := gs.validateLimit(query.Get("limit"))
	if vErr != nil {
		gs.respondWithValidationError(w, r, []ValidationError{*vErr})
		return
	}
	recentDays, vErr := gs.validateRecentDays(query.Get("recent"))
	if vErr != nil {
		gs.respondWithValidationError(w, r, []ValidationError{*vErr})
		return
	}

	cacheKey := r.URL.RawQuery
	if photos, ok := gs.cache.GetPhotos(cacheKey); ok {
		gs.respondJSON(w, photos)
		return
	}

	var photos []models.PhotoRecord
	var err error

	switch {
	case searchQuery != "":
		photos, err = gs.archive.SearchPhotos(searchQuery)
	case playerSlug != "":
		photos, err = gs.archive.PhotosByPlayer(playerSlug)
	case brandSlug != "":
		photos, err = gs.archive.PhotosByBrand(brandSlug)
	case week != "":
		photos, err = gs.archive.PhotosByWeek(week)
	case recentDays > 0:
		cutoff := time.Now().AddDate(0, 0, -recentDays).Format("2006-01-02")
		photos, err = gs.archive.RecentPhotos(cutoff)
	default:
		photos, err = gs.archive.AllPhotos(limit)
	}

	if err != nil {
		gs.respondWithError(w, r, http.StatusInternalServerError, "Error retrieving photos", err)
		return
	}

	if limit > 0 && len(photos) > limit {
		photos = photos[:limit]
	}

	gs.cache.SetPhotos(cacheKey, photos)
	gs.respondJSON(w, photos)
}

// handleGetPhotoCount responds with a JSON count of all archived photos.
func (gs *GalleryServer) handleGetPhotoCount(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	count, err := gs.archive.CountPhotos()
	if err != nil {
		gs.respondWithError(w, r, http.StatusInternalServerError, "Error retrieving photo count", err)
		return
	}

	gs.respondJSON(w, map[string]int{"count": count})
}

// handleGetPlayers returns every photographed player, most photos first.
func (gs *GalleryServer) handleGetPlayers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	players, err := gs.archive.AllPlayers()
	if err != nil {
		gs.respondWithError(w, r, http.StatusInternalServerError, "Error retrieving players", err)
		return
	}

	gs.respondJSON(w, players)
}

// handleGetBrands returns per-brand photo counts.
func (gs *GalleryServer) handleGetBrands(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	brands, err := gs.archive.AllBrands()
	if err != nil {
		gs.respondWithError(w, r, http.StatusInternalServerError, "Error retrieving brands", err)
		return
	}

	gs.respondJSON(w, brands)
}

// handleGetWeeks returns per-week photo counts, newest week first.
func (gs *GalleryServer) handleGetWeeks(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	weeks, err := gs.archive.AllWeeks()
	if err != nil {
		gs.respondWithError(w, r, http.StatusInternalServerError, "Error retrieving weeks", err)
		return
	}

	gs.respondJSON(w, weeks)
}

// handleGetStats returns the archive summary.
func (gs *GalleryServer) handleGetStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	stats, err := gs.archive.Stats()
	if err != nil {
		gs.respondWithError(w, r, http.StatusInternalServerError, "Error retrieving stats", err)
		return
	}

	gs.respondJSON(w, stats)
}

// handleSearchIndex serves the live player index the quick search box
// fetches. The same document is also written to disk as a static artifact.
func (gs *GalleryServer) handleSearchIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if index, ok := gs.cache.GetIndex(); ok {
		if err := site.EncodeSearchIndex(w, index); err != nil {
			gs.logger.WithError(err).Error("Failed to encode search index")
		}
		return
	}

	index, err := gs.builder.BuildSearchIndex()
	if err != nil {
		gs.respondWithError(w, r, http.StatusInternalServerError, "Error building search index", err)
		return
	}

	gs.cache.SetIndex(index)
	if err := site.EncodeSearchIndex(w, index); err != nil {
		gs.logger.WithError(err).Error("Failed to encode search index")
	}
}

// respondJSON writes data as a JSON response body.
func (gs *GalleryServer) respondJSON(w http.ResponseWriter, data interface{}) {
	if err := json.NewEncoder(w).Encode(data); err != nil {
		gs.logger.WithError(err).Error("Failed to encode JSON response")
	}
}
