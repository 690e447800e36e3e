package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"courtside/pkg/models"
)

const cdnBase = "https://cdn.imagn.com/image/thumb"

// imagnID tolerates both numeric and string photo IDs in feed drops.
type imagnID string

func (v *imagnID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = imagnID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = imagnID(n.String())
	return nil
}

// RawImage is one photo entry as it appears in an Imagn feed drop. Field
// names follow the provider's JSON, camelCase quirks included.
type RawImage struct {
	ID           imagnID `json:"id"`
	ThumbnailURL string  `json:"thumbnail_url"`
	HoverURL     string  `json:"hover_url"`
	HeadLine     string  `json:"headLine"`
	Caption      string  `json:"caption"`
	CaptionClean string  `json:"captionClean"`
	Photographer string  `json:"photographer"`
	Source       string  `json:"source"`
	CreateDate   string  `json:"create_date"`
	Keywords     string  `json:"keywords"`
}

// ParseFile reads and parses a feed drop from disk.
func ParseFile(path string) ([]RawImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a feed drop. Drops come in two shapes: a bare JSON array of
// images, or the provider's search response envelope with an "allImages" key.
func Parse(data []byte) ([]RawImage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("feed is empty")
	}

	if trimmed[0] == '[' {
		var images []RawImage
		if err := json.Unmarshal(trimmed, &images); err != nil {
			return nil, fmt.Errorf("failed to parse feed: %w", err)
		}
		return images, nil
	}

	var envelope struct {
		AllImages []RawImage `json:"allImages"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	return envelope.AllImages, nil
}

// Normalize converts a raw feed entry into an archive record. Returns false
// when the entry has no usable ID. Display URLs are always derived from the
// ID since the feed only carries thumbnail sizes.
func Normalize(img RawImage) (models.PhotoRecord, bool) {
	id := strings.TrimSpace(string(img.ID))
	if id == "" {
		return models.PhotoRecord{}, false
	}

	caption := img.CaptionClean
	if caption == "" {
		caption = img.Caption
	}

	player := strings.TrimSpace(img.Keywords)
	if player == "" {
		player = ExtractPlayerFromCaption(caption)
	}

	photographer := img.Photographer
	if photographer == "" {
		photographer = "Imagn Images"
	}

	source := img.Source
	if source == "" {
		source = "USA TODAY Sports"
	}

	thumbnail := img.ThumbnailURL
	if thumbnail == "" {
		thumbnail = ThumbnailURL(id)
	}

	hover := img.HoverURL
	if hover == "" {
		hover = HoverURL(id)
	}

	return models.PhotoRecord{
		ImagnID:      id,
		ImageURL:     ImageURL(id),
		ThumbnailURL: thumbnail,
		HoverURL:     hover,
		Headline:     img.HeadLine,
		Caption:      caption,
		Photographer: photographer,
		Source:       source,
		PhotoDate:    NormalizeDate(img.CreateDate),
		PlayerName:   player,
		Keywords:     splitKeywords(img.Keywords),
	}, true
}

// ImageURL returns the full-size CDN URL for a photo ID.
func ImageURL(id string) string {
	return fmt.Sprintf("%s/800-750/%s.jpg", cdnBase, id)
}

// HoverURL returns the medium-size CDN URL for a photo ID.
func HoverURL(id string) string {
	return fmt.Sprintf("%s/450-425/%s.jpg", cdnBase, id)
}

// ThumbnailURL returns the thumbnail CDN URL for a photo ID.
func ThumbnailURL(id string) string {
	return fmt.Sprintf("%s/250-225/%s.jpg", cdnBase, id)
}

// dateLayouts are tried in order when normalizing feed dates.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC1123Z,
	"January 2, 2006",
	"Jan 2, 2006",
	"01/02/2006",
}

var isoDatePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// NormalizeDate reduces the provider's assorted date formats to YYYY-MM-DD.
// Empty input stays empty and unrecognized input passes through unchanged so
// nothing is invented downstream.
func NormalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}

	if match := isoDatePattern.FindString(raw); match != "" {
		return match
	}

	return raw
}

// Caption patterns seen in Imagn wire photos. Names are matched as two or
// three capitalized words followed by a jersey number in parentheses.
var (
	wornByPattern = regexp.MustCompile(`(?:worn by|of)\s+(?:\w+\s+){1,3}(?:forward|guard|center)?\s*([A-Z][a-z]+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\s*\(`)

	teamPositionPattern = regexp.MustCompile(`(?:Magic|Lakers|Celtics|Warriors|Heat|Bulls|Nets|Knicks|Bucks|Suns|Mavericks|Nuggets|Clippers|Kings|Hawks|Raptors|76ers|Cavaliers|Pacers|Hornets|Wizards|Pistons|Thunder|Timberwolves|Trail Blazers|Pelicans|Spurs|Jazz|Rockets|Grizzlies)\s+(?:forward|guard|center)\s+([A-Z][a-z]+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\s*\(`)
)

// ExtractPlayerFromCaption pulls a player name out of caption text, or ""
// when no pattern matches.
func ExtractPlayerFromCaption(caption string) string {
	if caption == "" {
		return ""
	}

	if match := wornByPattern.FindStringSubmatch(caption); match != nil {
		return strings.TrimSpace(match[1])
	}

	if match := teamPositionPattern.FindStringSubmatch(caption); match != nil {
		return strings.TrimSpace(match[1])
	}

	return ""
}

// splitKeywords breaks the provider's comma-separated keyword string into a
// clean list.
func splitKeywords(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		if kw := strings.TrimSpace(part); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) == 0 {
		return nil
	}
	return keywords
}
