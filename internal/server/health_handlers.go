package server

import (
	"encoding/json"
	"net/http"
	"os"
	"time"
)

// HealthStatus represents operational status for the /health endpoint.
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Database  string                 `json:"database"`
	Site      string                 `json:"site"`
	Photos    int                    `json:"photoCount"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// handleHealthCheck returns basic liveness + dependency checks.
func (gs *GalleryServer) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Database:  "ok",
		Site:      "ok",
		Details:   make(map[string]interface{}),
	}

	// Check archive connectivity
	count, err := gs.checkArchiveHealth()
	if err != nil {
		health.Status = "unhealthy"
		health.Database = "error"
		health.Details["database_error"] = err.Error()
	} else {
		health.Photos = count
	}

	// Check the static site directory is reachable
	if err := gs.checkSiteHealth(); err != nil {
		health.Status = "unhealthy"
		health.Site = "error"
		health.Details["site_error"] = err.Error()
	}

	// Set appropriate HTTP status code
	if health.Status == "unhealthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	json.NewEncoder(w).Encode(health)
}

// checkArchiveHealth performs a trivial query to validate archive access.
func (gs *GalleryServer) checkArchiveHealth() (int, error) {
	return gs.archive.CountPhotos()
}

// checkSiteHealth validates that the static directory exists.
func (gs *GalleryServer) checkSiteHealth() error {
	_, err := os.Stat(gs.config.Server.StaticDir)
	return err
}
