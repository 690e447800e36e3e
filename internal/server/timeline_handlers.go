package server

import (
	"net/http"
	"strings"

	"courtside/internal/affiliate"
	"courtside/pkg/models"
)

// ShopModule is an affiliate block embedded in a player timeline.
type ShopModule struct {
	Placement  string               `json:"placement"`
	ShoeName   string               `json:"shoe_name"`
	Confidence affiliate.Confidence `json:"confidence"`
	Badge      string               `json:"badge"`
	Links      []affiliate.Link     `json:"links"`
}

// TimelineEntry is one row of a player timeline: a photo, or a shop module
// slotted in after it.
type TimelineEntry struct {
	Photo *models.PhotoRecord `json:"photo,omitempty"`
	Shop  *ShopModule         `json:"shop,omitempty"`
}

// TimelineResponse is the /api/players/{slug}/timeline document.
type TimelineResponse struct {
	Player   string          `json:"player"`
	Slug     string          `json:"slug"`
	Count    int             `json:"count"`
	Timeline []TimelineEntry `json:"timeline"`
}

// handlePlayerTimeline serves a player's photo history newest first, with
// shop modules at the configured positions.
func (gs *GalleryServer) handlePlayerTimeline(w http.ResponseWriter, r *http.Request) {
	// Expected path: /api/players/{slug}/timeline
	pathParts := strings.Split(r.URL.Path, "/")
	if len(pathParts) < 5 || pathParts[4] != "timeline" {
		gs.respondWithError(w, r, http.StatusNotFound, "Not found", nil)
		return
	}

	slug, vErr := gs.validatePlayerSlug(pathParts[3])
	if vErr != nil {
		gs.respondWithValidationError(w, r, []ValidationError{*vErr})
		return
	}

	photos, err := gs.archive.PhotosByPlayer(slug)
	if err != nil {
		gs.respondWithError(w, r, http.StatusInternalServerError, "Error retrieving timeline", err)
		return
	}
	if len(photos) == 0 {
		gs.respondWithError(w, r, http.StatusNotFound, "Player not found", nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	gs.respondJSON(w, TimelineResponse{
		Player:   photos[0].PlayerName,
		Slug:     slug,
		Count:    len(photos),
		Timeline: gs.buildTimeline(photos),
	})
}

// buildTimeline interleaves shop modules into the photo sequence. Position
// counting is 1-based over photos, so the module follows the photo whose
// shoe it links.
func (gs *GalleryServer) buildTimeline(photos []models.PhotoRecord) []TimelineEntry {
	entries := make([]TimelineEntry, 0, len(photos))
	for i := range photos {
		photo := photos[i]
		entries = append(entries, TimelineEntry{Photo: &photo})

		position := i + 1
		if gs.shop == nil || !affiliate.ShouldInsertAt(position) {
			continue
		}

		links := gs.shop.Links(photo.Caption, photo.PlayerName, gs.config.Affiliate.MaxLinks)
		if len(links) == 0 {
			continue
		}
		entries = append(entries, TimelineEntry{Shop: &ShopModule{
			Placement:  affiliate.PlacementFor(position),
			ShoeName:   links[0].ShoeName,
			Confidence: links[0].Confidence,
			Badge:      links[0].Confidence.Badge(),
			Links:      links,
		}})
	}
	return entries
}
