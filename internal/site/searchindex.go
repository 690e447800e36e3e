package site

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"courtside/internal/archive"
	"courtside/pkg/models"
)

// Builder assembles the static search artifacts the gallery fetches at
// runtime. Today that is the player index behind the quick search box.
type Builder struct {
	archive   *archive.Archive
	outputDir string
	logger    *logrus.Logger
	now       func() time.Time
}

// NewBuilder creates a builder that writes artifacts under outputDir.
func NewBuilder(arc *archive.Archive, outputDir string) *Builder {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	return &Builder{
		archive:   arc,
		outputDir: outputDir,
		logger:    logger,
		now:       time.Now,
	}
}

// BuildSearchIndex snapshots the archive's players into a search index
// document, most-photographed players first.
func (b *Builder) BuildSearchIndex() (*models.SearchIndex, error) {
	players, err := b.archive.AllPlayers()
	if err != nil {
		return nil, fmt.Errorf("failed to collect players for search index: %w", err)
	}
	return &models.SearchIndex{
		GeneratedAt: b.now().UTC(),
		Players:     players,
	}, nil
}

// WriteSearchIndex builds the index and writes it to
// <outputDir>/search/players.json, returning the written path.
func (b *Builder) WriteSearchIndex() (string, error) {
	index, err := b.BuildSearchIndex()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(b.outputDir, "search")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create search index directory: %w", err)
	}

	var buf bytes.Buffer
	if err := EncodeSearchIndex(&buf, index); err != nil {
		return "", err
	}

	path := filepath.Join(dir, "players.json")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write search index: %w", err)
	}

	b.logger.WithFields(logrus.Fields{
		"players": len(index.Players),
		"path":    path,
	}).Info("Search index written")
	return path, nil
}

// EncodeSearchIndex writes the index as indented JSON. Player names keep
// their literal characters; this is a data document, not embedded HTML.
func EncodeSearchIndex(w io.Writer, index *models.SearchIndex) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(index); err != nil {
		return fmt.Errorf("failed to encode search index: %w", err)
	}
	return nil
}
