package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"courtside/pkg/models"
)

// ingestRequest is the POST /api/ingest body.
type ingestRequest struct {
	Path string `json:"path"`
}

// handleStartIngest kicks off an asynchronous import of one feed file.
func (gs *GalleryServer) handleStartIngest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		gs.respondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed", nil)
		return
	}

	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		gs.respondWithError(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if vErr := gs.validateFeedPath(req.Path); vErr != nil {
		gs.respondWithValidationError(w, r, []ValidationError{*vErr})
		return
	}

	job := gs.importer.StartImport(req.Path)
	go gs.refreshAfterIngest(job.ID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	gs.respondJSON(w, job)
}

// refreshAfterIngest waits for an import job to settle, then drops stale
// cached responses and rewrites the search index artifact.
func (gs *GalleryServer) refreshAfterIngest(jobID string) {
	deadline := time.Now().Add(2 * time.Minute)
	for time.Now().Before(deadline) {
		time.Sleep(500 * time.Millisecond)

		job, ok := gs.importer.GetJob(jobID)
		if !ok {
			return
		}
		if job.Status != models.IngestCompleted && job.Status != models.IngestFailed {
			continue
		}

		if job.PhotosAdded > 0 {
			gs.cache.Clear()
			if _, err := gs.builder.WriteSearchIndex(); err != nil {
				gs.logger.WithError(err).Warn("Could not refresh search index")
			}
		}
		return
	}
	gs.logger.WithField("job_id", jobID).Warn("Ingest job did not settle in time")
}

// handleIngestJobs serves import job listings:
// /api/ingest/jobs for this process's jobs, /api/ingest/jobs/{id} for one,
// /api/ingest/history for the persisted record of past runs.
func (gs *GalleryServer) handleIngestJobs(w http.ResponseWriter, r *http.Request) {
	pathParts := strings.Split(r.URL.Path, "/")
	if len(pathParts) < 4 {
		gs.respondWithError(w, r, http.StatusNotFound, "Not found", nil)
		return
	}

	switch pathParts[3] {
	case "jobs":
		if len(pathParts) >= 5 && pathParts[4] != "" {
			job, ok := gs.importer.GetJob(pathParts[4])
			if !ok {
				gs.respondWithError(w, r, http.StatusNotFound, "Job not found", nil)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			gs.respondJSON(w, job)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		gs.respondJSON(w, gs.importer.AllJobs())

	case "history":
		jobs, err := gs.archive.ListIngestJobs()
		if err != nil {
			gs.respondWithError(w, r, http.StatusInternalServerError, "Error retrieving ingest history", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		gs.respondJSON(w, jobs)

	default:
		gs.respondWithError(w, r, http.StatusNotFound, "Not found", nil)
	}
}
