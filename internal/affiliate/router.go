package affiliate

import (
	"net/url"
	"strings"
)

// DefaultLinkCount is how many outlets a single photo links to.
const DefaultLinkCount = 3

// Link is one shop link routed through an affiliate program.
type Link struct {
	URL        string     `json:"url"`
	Program    string     `json:"program"`
	ShoeName   string     `json:"shoe_name"`
	PlayerName string     `json:"player_name"`
	Confidence Confidence `json:"confidence"`
	Commission float64    `json:"commission"`
}

// Router turns photo captions into ranked shop links.
type Router struct {
	programs []Program
}

// NewRouter builds a router over the programs the credentials unlock.
func NewRouter(creds Credentials) *Router {
	return &Router{programs: Programs(creds)}
}

// Enabled reports whether any affiliate program is configured.
func (r *Router) Enabled() bool {
	return len(r.programs) > 0
}

// Links returns up to numLinks shop links for a photo, best-paying program
// first. When no shoe can be identified the search falls back to
// "<player> basketball shoes" so a link always resolves to something
// sensible. Returns nil when no program is configured.
func (r *Router) Links(caption, player string, numLinks int) []Link {
	if len(r.programs) == 0 {
		return nil
	}
	if numLinks <= 0 {
		numLinks = DefaultLinkCount
	}
	if numLinks > len(r.programs) {
		numLinks = len(r.programs)
	}

	shoe, confidence := Identify(caption, player)
	if shoe == "" {
		shoe = strings.TrimSpace(player + " basketball shoes")
	}
	term := url.QueryEscape(shoe)

	links := make([]Link, 0, numLinks)
	for _, p := range r.programs[:numLinks] {
		links = append(links, Link{
			URL:        p.SearchURL + term,
			Program:    p.Name,
			ShoeName:   shoe,
			PlayerName: player,
			Confidence: confidence,
			Commission: p.Commission,
		})
	}
	return links
}

// BestLink returns the single top-priority link for a photo.
func (r *Router) BestLink(caption, player string) (Link, bool) {
	links := r.Links(caption, player, 1)
	if len(links) == 0 {
		return Link{}, false
	}
	return links[0], true
}

// TimelinePositions are the photo indices that carry a shop module on a
// player timeline. Sparse on purpose: the gallery reads as a gallery, not
// a storefront.
var TimelinePositions = []int{1, 20, 50, 100, 200, 500}

// ShouldInsertAt reports whether a shop module belongs at a timeline index.
func ShouldInsertAt(index int) bool {
	for _, pos := range TimelinePositions {
		if index == pos {
			return true
		}
	}
	return false
}

// PlacementFor returns the module style for a timeline index. The first
// slot gets the large featured treatment, the rest stay inline.
func PlacementFor(index int) string {
	if index == TimelinePositions[0] {
		return "featured"
	}
	return "inline"
}
