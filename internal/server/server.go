package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"courtside/internal/affiliate"
	"courtside/internal/archive"
	"courtside/internal/cache"
	"courtside/internal/config"
	"courtside/internal/feed"
	"courtside/internal/site"
	"courtside/internal/tunnel"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// GalleryServer serves the sneaker photo archive: the JSON API, the player
// search index, and the static gallery files.
type GalleryServer struct {
	archive     *archive.Archive
	config      *config.Config
	importer    *feed.Importer
	builder     *site.Builder
	shop        *affiliate.Router
	cache       *cache.PhotoCache
	tunnel      *tunnel.Service
	watcher     *fsnotify.Watcher
	logger      *logrus.Logger
	httpServer  *http.Server
	staticFiles http.Handler

	// settle timers for feed files still being written
	pendingMux   sync.Mutex
	pendingFeeds map[string]*time.Timer
}

// NewGalleryServer creates a new gallery server instance
func NewGalleryServer(cfg *config.Config, arc *archive.Archive) (*GalleryServer, error) {
	logger := newLogger(&cfg.Logging)

	// Create affiliate router when enabled; without credentials the shop
	// modules simply don't render
	var shop *affiliate.Router
	if cfg.Affiliate.Enabled {
		shop = affiliate.NewRouter(affiliate.LoadCredentials(cfg.Affiliate.EnvFile))
		if !shop.Enabled() {
			logger.Warn("Affiliate links enabled but no network credentials found, shop modules disabled")
			shop = nil
		}
	}

	// Create tunnel service
	tunnelSvc, err := tunnel.NewService(&cfg.Tunnel)
	if err != nil {
		logger.WithError(err).Warn("Tunnel service not available")
		tunnelSvc = nil
	}

	server := &GalleryServer{
		archive:      arc,
		config:       cfg,
		importer:     feed.NewImporter(arc),
		builder:      site.NewBuilder(arc, cfg.Site.OutputDir),
		shop:         shop,
		cache:        cache.NewPhotoCache(),
		tunnel:       tunnelSvc,
		logger:       logger,
		staticFiles:  http.FileServer(http.Dir(cfg.Server.StaticDir)),
		pendingFeeds: make(map[string]*time.Timer),
	}

	return server, nil
}

// newLogger builds the server logger from the logging config.
func newLogger(cfg *config.LoggingConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			logger.WithError(err).Warn("Could not open log file, logging to stderr")
		} else {
			logger.SetOutput(file)
		}
	}

	return logger
}

// ImportFeedDirectory ingests every feed file already sitting in the
// incoming directory and refreshes the search index.
func (gs *GalleryServer) ImportFeedDirectory() error {
	if !gs.config.Feeds.ImportOnStartup {
		gs.logger.Info("Skipping feed import (disabled in config)")
		return nil
	}

	gs.logger.WithField("incoming_dir", gs.config.Feeds.IncomingDir).Info("Importing feed directory")

	files, added, err := gs.importer.ImportDir(gs.config.Feeds.IncomingDir)
	if err != nil {
		return err
	}

	gs.logger.WithFields(logrus.Fields{
		"files":        files,
		"photos_added": added,
	}).Info("Feed import complete")

	if added > 0 {
		gs.cache.Clear()
	}
	if _, err := gs.builder.WriteSearchIndex(); err != nil {
		gs.logger.WithError(err).Warn("Could not write search index")
	}
	return nil
}

// Start starts the gallery server
func (gs *GalleryServer) Start() {
	// Start feed watcher if enabled
	if gs.config.Feeds.WatchForChanges {
		if err := gs.startFeedWatcher(); err != nil {
			gs.logger.WithError(err).Warn("Could not start feed watcher")
		} else {
			defer gs.stopFeedWatcher()
		}
	}

	mux := http.NewServeMux()
	gs.setupRoutes(mux)

	photoCount, err := gs.archive.CountPhotos()
	if err != nil {
		photoCount = 0
	}

	localAddress := fmt.Sprintf("http://%s", gs.config.GetAddress())

	gs.logger.WithField("port", gs.config.Server.Port).Info("Courtside server starting")
	gs.logger.WithField("photos", photoCount).Info("Photo archive loaded")
	if gs.config.Feeds.WatchForChanges {
		gs.logger.WithField("incoming_dir", gs.config.Feeds.IncomingDir).Info("Feed watcher monitoring")
	}
	gs.logger.WithField("url", localAddress).Info("Local access")

	// Start tunnel if enabled
	if gs.tunnel != nil {
		ctx := context.Background()
		if err := gs.tunnel.StartTunnel(ctx, localAddress); err != nil {
			gs.logger.WithError(err).Warn("Could not start tunnel")
		} else {
			defer gs.tunnel.Stop()
		}
	}

	handler := gs.panicRecoveryMiddleware(gs.corsMiddleware(gs.requestLoggingMiddleware(mux)))

	gs.httpServer = &http.Server{
		Addr:        gs.config.GetAddress(),
		Handler:     handler,
		ReadTimeout: time.Duration(gs.config.Server.ReadTimeout) * time.Second,
	}

	if err := gs.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		gs.logger.WithError(err).Fatal("Server failed to start")
	}
}

func (gs *GalleryServer) setupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", gs.handleHome)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(gs.config.Server.StaticDir))))

	// Photo API routes
	mux.HandleFunc("/api/photos", gs.handleGetPhotos)
	mux.HandleFunc("/api/photos/count", gs.handleGetPhotoCount)
	mux.HandleFunc("/api/players", gs.handleGetPlayers)
	mux.HandleFunc("/api/players/", gs.handlePlayerTimeline) // /api/players/{slug}/timeline
	mux.HandleFunc("/api/brands", gs.handleGetBrands)
	mux.HandleFunc("/api/weeks", gs.handleGetWeeks)
	mux.HandleFunc("/api/stats", gs.handleGetStats)

	// Search index consumed by the quick search box
	mux.HandleFunc("/search/players.json", gs.handleSearchIndex)

	// Ingest routes
	mux.HandleFunc("/api/ingest", gs.handleStartIngest)
	mux.HandleFunc("/api/ingest/", gs.handleIngestJobs)

	mux.HandleFunc("/health", gs.handleHealthCheck) // Health check endpoint
}

// Shutdown gracefully shuts down the gallery server
func (gs *GalleryServer) Shutdown() {
	gs.logger.Info("Shutting down gallery server...")

	gs.stopFeedWatcher()

	if gs.tunnel != nil {
		gs.tunnel.Stop()
	}

	if gs.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := gs.httpServer.Shutdown(ctx); err != nil {
			gs.logger.WithError(err).Warn("HTTP server shutdown error")
		}
	}

	gs.logger.Info("Gallery server shutdown complete")
}
