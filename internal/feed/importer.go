package feed

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"courtside/internal/archive"
	"courtside/pkg/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Importer ingests feed drops into the archive and tracks a job record per
// imported file.
type Importer struct {
	archive *archive.Archive
	logger  *logrus.Logger

	jobs    map[string]*models.IngestJob
	jobsMux sync.RWMutex
}

// NewImporter creates an importer bound to an archive.
func NewImporter(arc *archive.Archive) *Importer {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return &Importer{
		archive: arc,
		logger:  logger,
		jobs:    make(map[string]*models.IngestJob),
	}
}

// IsFeedFile reports whether a path looks like a feed drop. Hidden files and
// editor temp files are ignored, mirroring the watcher's filtering.
func IsFeedFile(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".tmp") {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), ".json")
}

// ImportFile ingests a single feed drop synchronously and returns its job
// record. The record is also retained for later status queries.
func (imp *Importer) ImportFile(path string) (*models.IngestJob, error) {
	job := imp.newJob(path)
	err := imp.runJob(job, path)
	return job, err
}

// StartImport ingests a feed drop in the background and returns the job
// record immediately. Callers poll the job by ID for completion.
func (imp *Importer) StartImport(path string) *models.IngestJob {
	job := imp.newJob(path)

	go func() {
		if err := imp.runJob(job, path); err != nil {
			imp.logger.WithError(err).WithField("feed_file", path).Error("Feed import failed")
		}
	}()

	return job
}

// ImportDir walks a directory and imports every feed drop it finds using a
// worker pool. Returns the number of files imported and photos added.
func (imp *Importer) ImportDir(dir string) (int, int, error) {
	imp.logger.WithField("feed_dir", dir).Info("Importing feed drops")

	var wg sync.WaitGroup
	var filesImported, photosAdded int64
	jobs := make(chan string, 100)

	// Start worker pool
	numWorkers := runtime.NumCPU()
	for i := 0; i < numWorkers; i++ {
		go func() {
			for path := range jobs {
				job, err := imp.ImportFile(path)
				if err != nil {
					imp.logger.WithError(err).WithField("feed_file", path).Error("Feed import failed")
					wg.Done()
					continue
				}
				atomic.AddInt64(&filesImported, 1)
				atomic.AddInt64(&photosAdded, int64(job.PhotosAdded))
				wg.Done()
			}
		}()
	}

	// Walk directory and enqueue jobs
	walkErr := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && IsFeedFile(path) {
			wg.Add(1)
			jobs <- path
		}
		return nil
	})

	// Close jobs channel and wait for all workers
	close(jobs)
	wg.Wait()

	imp.logger.WithFields(logrus.Fields{
		"files_imported": filesImported,
		"photos_added":   photosAdded,
	}).Info("Feed import finished")

	return int(filesImported), int(photosAdded), walkErr
}

// runJob does the parse, normalize and archive work for one feed file.
func (imp *Importer) runJob(job *models.IngestJob, path string) error {
	imp.setRunning(job)

	images, err := ParseFile(path)
	if err != nil {
		imp.setFailed(job, err)
		return err
	}

	records := make([]models.PhotoRecord, 0, len(images))
	for _, img := range images {
		if record, ok := Normalize(img); ok {
			records = append(records, record)
		}
	}

	added, enriched, err := imp.archive.AddPhotos(records)
	if err != nil {
		imp.setFailed(job, err)
		return err
	}

	imp.setCompleted(job, len(images), added)

	imp.logger.WithFields(logrus.Fields{
		"feed_file":       path,
		"photos_seen":     len(images),
		"photos_added":    added,
		"photos_enriched": enriched,
	}).Info("Imported feed drop")

	return nil
}

// GetJob returns an ingest job by ID.
func (imp *Importer) GetJob(jobID string) (models.IngestJob, bool) {
	imp.jobsMux.RLock()
	defer imp.jobsMux.RUnlock()

	job, exists := imp.jobs[jobID]
	if !exists {
		return models.IngestJob{}, false
	}
	return *job, true
}

// AllJobs returns snapshots of all ingest jobs, newest first.
func (imp *Importer) AllJobs() []models.IngestJob {
	imp.jobsMux.RLock()
	defer imp.jobsMux.RUnlock()

	jobs := make([]models.IngestJob, 0, len(imp.jobs))
	for _, job := range imp.jobs {
		jobs = append(jobs, *job)
	}
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs
}

// CleanupFinishedJobs drops completed and failed jobs older than maxAge from
// the in-memory map. The archived rows are not touched.
func (imp *Importer) CleanupFinishedJobs(maxAge time.Duration) {
	imp.jobsMux.Lock()
	defer imp.jobsMux.Unlock()

	cutoff := time.Now().Add(-maxAge)
	for id, job := range imp.jobs {
		if job.Status == models.IngestCompleted || job.Status == models.IngestFailed {
			if job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
				delete(imp.jobs, id)
			}
		}
	}
}

func (imp *Importer) newJob(path string) *models.IngestJob {
	job := &models.IngestJob{
		ID:        uuid.New().String(),
		Source:    path,
		Status:    models.IngestPending,
		CreatedAt: time.Now(),
	}

	imp.jobsMux.Lock()
	imp.jobs[job.ID] = job
	imp.jobsMux.Unlock()

	return job
}

func (imp *Importer) setRunning(job *models.IngestJob) {
	imp.jobsMux.Lock()
	job.Status = models.IngestRunning
	imp.jobsMux.Unlock()
	imp.persistJob(job)
}

func (imp *Importer) setFailed(job *models.IngestJob, err error) {
	now := time.Now()
	imp.jobsMux.Lock()
	job.Status = models.IngestFailed
	job.Error = err.Error()
	job.CompletedAt = &now
	imp.jobsMux.Unlock()
	imp.persistJob(job)
}

func (imp *Importer) setCompleted(job *models.IngestJob, seen, added int) {
	now := time.Now()
	imp.jobsMux.Lock()
	job.Status = models.IngestCompleted
	job.PhotosSeen = seen
	job.PhotosAdded = added
	job.CompletedAt = &now
	imp.jobsMux.Unlock()
	imp.persistJob(job)
}

// persistJob mirrors the job record into the archive so import history
// survives restarts. Failures are logged, not fatal.
func (imp *Importer) persistJob(job *models.IngestJob) {
	imp.jobsMux.RLock()
	snapshot := *job
	imp.jobsMux.RUnlock()

	if err := imp.archive.RecordIngestJob(snapshot); err != nil {
		imp.logger.WithError(err).WithField("job_id", snapshot.ID).Warn("Failed to persist ingest job")
	}
}
