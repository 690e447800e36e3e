package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"courtside/internal/archive"
	"courtside/internal/config"
	"courtside/internal/server"

	"github.com/sirupsen/logrus"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./config.toml", "path to configuration file")
	flag.Parse()

	// Initialize basic logger for startup
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.WithError(err).Fatal("Error loading configuration")
	}

	// Make sure the feed drop directory exists so the watcher can bind to it
	if err := os.MkdirAll(cfg.Feeds.IncomingDir, 0755); err != nil {
		logger.WithField("incoming_dir", cfg.Feeds.IncomingDir).WithError(err).Fatal("Could not create feed directory")
	}

	// Open the photo archive
	arc, err := archive.NewArchive(cfg.Archive.DatabasePath)
	if err != nil {
		logger.WithError(err).Fatal("Error opening photo archive")
	}
	defer arc.Close()

	// Create and configure the gallery server
	galleryServer, err := server.NewGalleryServer(cfg, arc)
	if err != nil {
		logger.WithError(err).Fatal("Error creating gallery server")
	}

	// Ingest feed drops already waiting in the incoming directory
	if err := galleryServer.ImportFeedDirectory(); err != nil {
		logger.WithError(err).Fatal("Error importing feed directory")
	}

	// Check photo count and warn if empty
	count, err := arc.CountPhotos()
	if err != nil {
		logger.WithError(err).Warn("Could not get photo count")
	} else if count == 0 {
		logger.WithField("incoming_dir", cfg.Feeds.IncomingDir).Warn("No photos in archive. Drop Imagn feed files into the incoming directory.")
	}

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	// Start the server in a goroutine
	go func() {
		galleryServer.Start()
	}()

	// Wait for shutdown signal
	<-c

	logger.Info("Received shutdown signal")
	galleryServer.Shutdown()
}
