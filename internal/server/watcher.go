package server

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"courtside/internal/feed"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// feedSettleDelay is how long a feed file must go without writes before it
// is imported. Providers drop feeds with scp or rsync, which write in
// bursts.
const feedSettleDelay = 2 * time.Second

// startFeedWatcher initializes fsnotify watcher for recursive feed dir monitoring.
func (gs *GalleryServer) startFeedWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	gs.watcher = watcher

	// Start monitoring in a goroutine
	go gs.watchFeeds()

	// Add the incoming feed directory to the watcher
	err = gs.addDirectoryToWatcher(gs.config.Feeds.IncomingDir)
	if err != nil {
		return err
	}

	gs.logger.WithField("incoming_dir", gs.config.Feeds.IncomingDir).Info("Feed watcher started")
	return nil
}

// addDirectoryToWatcher recursively walks and adds subdirectories to watcher.
func (gs *GalleryServer) addDirectoryToWatcher(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return gs.watcher.Add(path)
		}
		return nil
	})
}

// watchFeeds selects on watcher channels and dispatches events.
func (gs *GalleryServer) watchFeeds() {
	defer gs.watcher.Close()

	for {
		select {
		case event, ok := <-gs.watcher.Events:
			if !ok {
				return
			}
			gs.handleFeedEvent(event)

		case err, ok := <-gs.watcher.Errors:
			if !ok {
				return
			}
			gs.logger.WithError(err).Error("Feed watcher error")
		}
	}
}

// handleFeedEvent applies filtering & schedules feed imports.
func (gs *GalleryServer) handleFeedEvent(event fsnotify.Event) {
	// Ignore temporary files and hidden files
	fileName := filepath.Base(event.Name)
	if strings.HasPrefix(fileName, ".") || strings.HasSuffix(fileName, ".tmp") {
		return
	}

	isFeed := feed.IsFeedFile(event.Name)

	switch {
	case (event.Has(fsnotify.Create) || event.Has(fsnotify.Write)) && isFeed:
		gs.scheduleFeedImport(event.Name)

	case event.Has(fsnotify.Create):
		// Check if it's a new directory
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			gs.watcher.Add(event.Name)
			gs.logger.WithField("directory", event.Name).Info("Watching new directory")
		}
	}
}

// scheduleFeedImport (re)arms the settle timer for a feed file. The import
// runs once the file has been quiet for feedSettleDelay.
func (gs *GalleryServer) scheduleFeedImport(path string) {
	gs.pendingMux.Lock()
	defer gs.pendingMux.Unlock()

	if timer, ok := gs.pendingFeeds[path]; ok {
		timer.Reset(feedSettleDelay)
		return
	}

	gs.pendingFeeds[path] = time.AfterFunc(feedSettleDelay, func() {
		gs.pendingMux.Lock()
		delete(gs.pendingFeeds, path)
		gs.pendingMux.Unlock()

		gs.handleNewFeed(path)
	})
}

// handleNewFeed imports a settled feed file and refreshes derived state.
func (gs *GalleryServer) handleNewFeed(path string) {
	gs.logger.WithField("feed_path", path).Info("New feed file detected")

	job, err := gs.importer.ImportFile(path)
	if err != nil {
		gs.logger.WithError(err).WithField("feed_path", path).Error("Error importing feed")
		return
	}

	gs.logger.WithFields(logrus.Fields{
		"feed_path":    path,
		"photos_seen":  job.PhotosSeen,
		"photos_added": job.PhotosAdded,
	}).Info("Imported feed")

	if job.PhotosAdded == 0 {
		return
	}

	gs.cache.Clear()
	if _, err := gs.builder.WriteSearchIndex(); err != nil {
		gs.logger.WithError(err).Warn("Could not refresh search index")
	}
}

// stopFeedWatcher closes the watcher and cancels pending imports (idempotent).
func (gs *GalleryServer) stopFeedWatcher() {
	gs.pendingMux.Lock()
	for path, timer := range gs.pendingFeeds {
		timer.Stop()
		delete(gs.pendingFeeds, path)
	}
	gs.pendingMux.Unlock()

	if gs.watcher != nil {
		gs.watcher.Close()
	}
}
