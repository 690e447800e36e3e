package main

import (
	"flag"
	"log"

	"courtside/internal/archive"
	"courtside/internal/config"
	"courtside/internal/feed"
	"courtside/internal/site"
)

func main() {
	var configPath string
	var feedDir string
	var skipIndex bool
	flag.StringVar(&configPath, "config", "./config.toml", "path to configuration file")
	flag.StringVar(&feedDir, "dir", "", "feed directory to import (default: incoming_dir from config)")
	flag.BoolVar(&skipIndex, "no-index", false, "skip rebuilding the player search index")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	// Open the photo archive
	arc, err := archive.NewArchive(cfg.Archive.DatabasePath)
	if err != nil {
		log.Fatalf("Error opening photo archive: %v", err)
	}
	defer arc.Close()

	importer := feed.NewImporter(arc)

	// Positional args are individual feed files; otherwise sweep a directory
	if flag.NArg() > 0 {
		for _, path := range flag.Args() {
			job, err := importer.ImportFile(path)
			if err != nil {
				log.Fatalf("Error importing %s: %v", path, err)
			}
			log.Printf("Imported %s: %d photos seen, %d added", path, job.PhotosSeen, job.PhotosAdded)
		}
	} else {
		dir := feedDir
		if dir == "" {
			dir = cfg.Feeds.IncomingDir
		}
		files, added, err := importer.ImportDir(dir)
		if err != nil {
			log.Fatalf("Error importing feed directory: %v", err)
		}
		log.Printf("Imported %d feed files, %d photos added", files, added)
	}

	// Rebuild the player search index consumed by the quick search box
	if !skipIndex {
		builder := site.NewBuilder(arc, cfg.Site.OutputDir)
		indexPath, err := builder.WriteSearchIndex()
		if err != nil {
			log.Fatalf("Error writing search index: %v", err)
		}
		log.Printf("Search index written to %s", indexPath)
	}

	count, err := arc.CountPhotos()
	if err != nil {
		log.Printf("Warning: Could not get photo count: %v", err)
	} else {
		log.Printf("Archive now holds %d photos", count)
	}
}
