package main

import (
	"flag"
	"fmt"
	"os"

	"courtside/internal/config"
	"courtside/internal/search"
	"courtside/internal/tracker"
	"courtside/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	var configPath string
	var serverURL string
	var feedPath string
	var limit int
	flag.StringVar(&configPath, "config", "./config.toml", "path to configuration file")
	flag.StringVar(&serverURL, "server", "", "gallery server URL (default: viewer.server_url from config)")
	flag.StringVar(&feedPath, "feed", "", "browse a local feed file instead of the server")
	flag.IntVar(&limit, "limit", 0, "maximum photos to fetch (default: viewer.photo_limit from config)")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if serverURL == "" {
		serverURL = cfg.Viewer.ServerURL
	}
	if limit <= 0 {
		limit = cfg.Viewer.PhotoLimit
	}

	// Photos come from the gallery server unless a local feed file is given
	var source tui.PhotoSource
	if feedPath != "" {
		source = tui.NewFeedSource(feedPath)
	} else {
		source = tui.NewAPIClient(serverURL, limit)
	}

	index := search.NewIndexClient(config.PlayersIndexURL(serverURL))

	// Tracked shoes persist across viewer sessions
	store := tracker.NewFileStore(cfg.Tracker.StoragePath)
	toasts := tracker.NewToasts()
	trk := tracker.NewTracker(store, toasts)

	m := tui.NewModel(source, index, trk, toasts, serverURL)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", err)
		os.Exit(1)
	}
}
