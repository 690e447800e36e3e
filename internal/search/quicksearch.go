package search

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"courtside/pkg/models"

	"github.com/sirupsen/logrus"
)

const (
	// minQueryLength is the shortest query that shows results.
	minQueryLength = 2
	// maxResults caps how many matches are rendered per query.
	maxResults = 8
)

// LoadState tracks the one-shot fetch of the player index.
type LoadState int

const (
	LoadIdle LoadState = iota
	LoadLoading
	LoadReady
	LoadError
)

func (s LoadState) String() string {
	switch s {
	case LoadIdle:
		return "idle"
	case LoadLoading:
		return "loading"
	case LoadReady:
		return "ready"
	case LoadError:
		return "error"
	}
	return "unknown"
}

// IndexSource supplies the player list. *IndexClient implements it against a
// live server; tests substitute fixed lists.
type IndexSource interface {
	FetchPlayers() ([]models.PlayerEntry, error)
}

// ResultsView renders search output. ShowResults and ShowEmpty both imply
// the results panel becomes visible; Hide removes it.
type ResultsView interface {
	ShowResults(results []Result)
	ShowEmpty()
	Hide()
}

// Result is one rendered search match.
type Result struct {
	Name  string
	Slug  string
	Count int
	Link  string
}

// CountLabel renders the photo count the way result rows display it.
func (r Result) CountLabel() string {
	if r.Count > 1 {
		return fmt.Sprintf("%d photos", r.Count)
	}
	return fmt.Sprintf("%d photo", r.Count)
}

// QuickSearch filters a remotely loaded player list against keystrokes. The
// list loads once in the background; until it arrives every query simply
// finds nothing. A missing source or view leaves the component inert.
type QuickSearch struct {
	source   IndexSource
	view     ResultsView
	linkBase string
	logger   *logrus.Logger

	loadOnce sync.Once

	mu      sync.RWMutex
	state   LoadState
	players []models.PlayerEntry

	results []Result
}

// NewQuickSearch builds a search widget. linkBase is the site prefix result
// links point into, e.g. "http://localhost:8080".
func NewQuickSearch(source IndexSource, view ResultsView, linkBase string) *QuickSearch {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return &QuickSearch{
		source:   source,
		view:     view,
		linkBase: strings.TrimSuffix(linkBase, "/"),
		logger:   logger,
	}
}

func (qs *QuickSearch) disabled() bool {
	return qs.source == nil || qs.view == nil
}

// Load starts fetching the player index in the background. Only the first
// call does anything; later calls and queries never block on it.
func (qs *QuickSearch) Load() {
	if qs.disabled() {
		return
	}

	qs.loadOnce.Do(func() {
		qs.setState(LoadLoading)

		go func() {
			players, err := qs.source.FetchPlayers()
			if err != nil {
				qs.logger.WithError(err).Warn("Player index failed to load, search degrades to no matches")
				qs.setState(LoadError)
				return
			}

			qs.mu.Lock()
			qs.players = players
			qs.state = LoadReady
			qs.mu.Unlock()

			qs.logger.WithField("players", len(players)).Debug("Player index loaded")
		}()
	})
}

// State reports where the index load currently stands.
func (qs *QuickSearch) State() LoadState {
	qs.mu.RLock()
	defer qs.mu.RUnlock()
	return qs.state
}

func (qs *QuickSearch) setState(state LoadState) {
	qs.mu.Lock()
	qs.state = state
	qs.mu.Unlock()
}

// SetQuery reacts to one keystroke's worth of input. Queries shorter than
// two characters hide the panel; otherwise matches (or a "no players found"
// placeholder) are rendered.
func (qs *QuickSearch) SetQuery(raw string) {
	if qs.disabled() {
		return
	}

	query := strings.ToLower(strings.TrimSpace(raw))
	if utf8.RuneCountInString(query) < minQueryLength {
		qs.results = nil
		qs.view.Hide()
		return
	}

	qs.mu.RLock()
	players := qs.players
	qs.mu.RUnlock()

	matches := FilterPlayers(players, query, maxResults)
	qs.results = make([]Result, 0, len(matches))
	for _, p := range matches {
		qs.results = append(qs.results, Result{
			Name:  p.Name,
			Slug:  p.Slug,
			Count: p.Count,
			Link:  fmt.Sprintf("%s/players/%s/", qs.linkBase, p.Slug),
		})
	}

	if len(qs.results) == 0 {
		qs.view.ShowEmpty()
		return
	}
	qs.view.ShowResults(qs.results)
}

// Submit returns the first rendered result's link for Enter-key navigation,
// or false when nothing is rendered.
func (qs *QuickSearch) Submit() (string, bool) {
	if len(qs.results) == 0 {
		return "", false
	}
	return qs.results[0].Link, true
}

// Dismiss hides the results panel, e.g. on an outside click or Escape.
func (qs *QuickSearch) Dismiss() {
	if qs.disabled() {
		return
	}
	qs.results = nil
	qs.view.Hide()
}

// Results returns the currently rendered matches.
func (qs *QuickSearch) Results() []Result {
	return qs.results
}

// FilterPlayers returns players whose name contains the query, preserving
// list order and stopping at limit. The query must already be lowercased.
func FilterPlayers(players []models.PlayerEntry, query string, limit int) []models.PlayerEntry {
	if query == "" {
		return nil
	}

	var matches []models.PlayerEntry
	for _, p := range players {
		if strings.Contains(strings.ToLower(p.Name), query) {
			matches = append(matches, p)
			if len(matches) == limit {
				break
			}
		}
	}
	return matches
}
