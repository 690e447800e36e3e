package affiliate

import (
	"regexp"
	"strings"
)

// Confidence grades how a shoe was identified from a photo.
type Confidence string

const (
	// ExactMatch means the caption named the model outright.
	ExactMatch Confidence = "exact_match"
	// ClosestMatch means the caption named a brand and the player has a
	// signature line with it.
	ClosestMatch Confidence = "closest_match"
	// LatestModel means nothing in the caption helped and the player's
	// current signature shoe was assumed.
	LatestModel Confidence = "latest_model"
)

// Badge returns the label shown next to a shop link.
func (c Confidence) Badge() string {
	switch c {
	case ExactMatch:
		return "Exact Match"
	case ClosestMatch:
		return "Closest Match"
	case LatestModel:
		return "Latest Model"
	}
	return "Shop Now"
}

type shoePattern struct {
	re    *regexp.Regexp
	brand string
}

// shoePatterns match explicit model mentions in captions. Order matters:
// the specific Jordan lines must run before the bare "Jordan N" catch-all.
var shoePatterns = []shoePattern{
	{regexp.MustCompile(`(?i)Nike\s+(LeBron\s*\d+)`), "Nike"},
	{regexp.MustCompile(`(?i)Nike\s+(KD\s*\d+)`), "Nike"},
	{regexp.MustCompile(`(?i)Nike\s+(Zoom\s+Freak\s*\d+)`), "Nike"},
	{regexp.MustCompile(`(?i)Nike\s+(Book\s*\d*)`), "Nike"},
	{regexp.MustCompile(`(?i)Nike\s+(Ja\s*\d+)`), "Nike"},
	{regexp.MustCompile(`(?i)Nike\s+(Kobe\s*\d+)`), "Nike"},
	{regexp.MustCompile(`(?i)Nike\s+(PG\s*\d+)`), "Nike"},
	{regexp.MustCompile(`(?i)Nike\s+(Kyrie\s*\d+)`), "Nike"},
	{regexp.MustCompile(`(?i)(Jordan\s+Luka\s*\d*)`), "Jordan"},
	{regexp.MustCompile(`(?i)(Jordan\s+Tatum\s*\d*)`), "Jordan"},
	{regexp.MustCompile(`(?i)(Jordan\s+Zion\s*\d*)`), "Jordan"},
	{regexp.MustCompile(`(?i)(Air\s+Jordan\s*\d+)`), "Jordan"},
	{regexp.MustCompile(`(?i)(Jordan\s*\d+)`), "Jordan"},
	{regexp.MustCompile(`(?i)Adidas\s+(Harden\s+Vol\.?\s*\d+)`), "Adidas"},
	{regexp.MustCompile(`(?i)Adidas\s+(Dame\s*\d+)`), "Adidas"},
	{regexp.MustCompile(`(?i)Adidas\s+(AE\s*\d+)`), "Adidas"},
	{regexp.MustCompile(`(?i)(Curry\s+Flow\s*\d*)`), "Under Armour"},
	{regexp.MustCompile(`(?i)(Curry\s*\d+)`), "Under Armour"},
	{regexp.MustCompile(`(?i)Puma\s+(MB\.?\s*\d+)`), "Puma"},
	{regexp.MustCompile(`(?i)New\s+Balance\s+(Kawhi\s*\d*)`), "New Balance"},
	{regexp.MustCompile(`(?i)(Anta\s+KT\s*\d+)`), "Anta"},
	{regexp.MustCompile(`(?i)(Anta\s+Kai\s*\d*)`), "Anta"},
}

// brandMentions are checked when no model pattern hits. First mention wins.
var brandMentions = []string{
	"Nike", "Jordan", "Adidas", "Under Armour", "Puma",
	"New Balance", "Anta", "Converse", "Li-Ning",
}

// Identify names the shoe a photo most likely shows. It tries the caption
// for an explicit model, then a brand mention paired with the player's
// signature line, then falls back to the player's current signature shoe.
// The shoe is empty only when the player is unknown and the caption says
// nothing useful.
func Identify(caption, player string) (string, Confidence) {
	for _, p := range shoePatterns {
		m := p.re.FindStringSubmatch(caption)
		if m == nil {
			continue
		}
		model := strings.TrimSpace(m[1])
		if model == "" {
			continue
		}
		return composeShoeName(p.brand, model), ExactMatch
	}

	lowered := strings.ToLower(caption)
	for _, brand := range brandMentions {
		if !strings.Contains(lowered, strings.ToLower(brand)) {
			continue
		}
		if shoe, ok := SignatureForBrand(player, brand); ok {
			return shoe, ClosestMatch
		}
	}

	if shoe, ok := SignatureFor(player); ok {
		return shoe, LatestModel
	}
	return "", LatestModel
}
