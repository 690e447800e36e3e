package affiliate

import (
	"strings"

	"github.com/agext/levenshtein"
)

// signatureMatchThreshold is the minimum name similarity for a fuzzy
// signature lookup to count. Caption feeds spell names inconsistently, so
// exact lookups alone miss real athletes.
const signatureMatchThreshold = 0.85

// Signature is one shoe line a player is signed to.
type Signature struct {
	Line       string
	Brand      string
	SearchTerm string
}

// playerSignatures maps players to their signature shoe lines.
var playerSignatures = map[string][]Signature{
	// Nike athletes
	"LeBron James":          {{Line: "LeBron", Brand: "Nike", SearchTerm: "Nike LeBron"}},
	"Kevin Durant":          {{Line: "KD", Brand: "Nike", SearchTerm: "Nike KD"}},
	"Giannis Antetokounmpo": {{Line: "Zoom Freak", Brand: "Nike", SearchTerm: "Nike Zoom Freak"}},
	"Devin Booker":          {{Line: "Book 1", Brand: "Nike", SearchTerm: "Nike Book"}},
	"Ja Morant":             {{Line: "Ja", Brand: "Nike", SearchTerm: "Nike Ja"}},
	"Sabrina Ionescu":       {{Line: "Sabrina", Brand: "Nike", SearchTerm: "Nike Sabrina"}},

	// Jordan athletes
	"Luka Doncic":     {{Line: "Jordan Luka", Brand: "Jordan", SearchTerm: "Jordan Luka"}},
	"Jayson Tatum":    {{Line: "Jordan Tatum", Brand: "Jordan", SearchTerm: "Jordan Tatum"}},
	"Zion Williamson": {{Line: "Jordan Zion", Brand: "Jordan", SearchTerm: "Jordan Zion"}},

	// Adidas athletes
	"James Harden":    {{Line: "Harden", Brand: "Adidas", SearchTerm: "Adidas Harden"}},
	"Damian Lillard":  {{Line: "Dame", Brand: "Adidas", SearchTerm: "Adidas Dame"}},
	"Anthony Edwards": {{Line: "AE", Brand: "Adidas", SearchTerm: "Adidas AE1"}},
	"Trae Young":      {{Line: "Trae Young", Brand: "Adidas", SearchTerm: "Adidas Trae Young"}},

	// Under Armour athletes
	"Stephen Curry": {{Line: "Curry", Brand: "Under Armour", SearchTerm: "Under Armour Curry"}},
	"Joel Embiid":   {{Line: "Embiid", Brand: "Under Armour", SearchTerm: "Under Armour Embiid"}},

	// Puma athletes
	"LaMelo Ball":     {{Line: "MB", Brand: "Puma", SearchTerm: "Puma MB"}},
	"Scoot Henderson": {{Line: "Scoot", Brand: "Puma", SearchTerm: "Puma Scoot"}},

	// New Balance athletes
	"Kawhi Leonard": {{Line: "Kawhi", Brand: "New Balance", SearchTerm: "New Balance Kawhi"}},
	"Jamal Murray":  {{Line: "Two WXY", Brand: "New Balance", SearchTerm: "New Balance Two WXY"}},

	// Converse athletes
	"Draymond Green": {{Line: "All Star Pro BB", Brand: "Converse", SearchTerm: "Converse All Star BB"}},

	// Anta athletes
	"Kyrie Irving":  {{Line: "Anta Kai", Brand: "Anta", SearchTerm: "Anta Kyrie Kai"}},
	"Klay Thompson": {{Line: "KT", Brand: "Anta", SearchTerm: "Anta KT"}},
}

// SignatureFor returns a player's primary signature shoe, like "Nike
// LeBron". Names are matched exactly first, then fuzzily.
func SignatureFor(player string) (string, bool) {
	sigs := signaturesFor(player)
	if len(sigs) == 0 {
		return "", false
	}
	return composeShoeName(sigs[0].Brand, sigs[0].Line), true
}

// SignatureForBrand returns the player's signature line for one brand, used
// when a caption names a brand but no model.
func SignatureForBrand(player, brand string) (string, bool) {
	for _, sig := range signaturesFor(player) {
		if strings.EqualFold(sig.Brand, brand) {
			return composeShoeName(sig.Brand, sig.Line), true
		}
	}
	return "", false
}

func signaturesFor(player string) []Signature {
	if player == "" {
		return nil
	}
	if sigs, ok := playerSignatures[player]; ok {
		return sigs
	}
	return fuzzySignatures(player)
}

// fuzzySignatures finds the closest signed player by edit-distance
// similarity, or nil when nobody clears the threshold.
func fuzzySignatures(player string) []Signature {
	lower := strings.ToLower(player)

	var best []Signature
	var bestScore float64
	for name, sigs := range playerSignatures {
		score := levenshtein.Similarity(lower, strings.ToLower(name), nil)
		if score >= signatureMatchThreshold && score > bestScore {
			bestScore = score
			best = sigs
		}
	}
	return best
}

// composeShoeName joins a brand and model without doubling the brand when
// the model already carries it, as the Jordan lines do.
func composeShoeName(brand, model string) string {
	if strings.Contains(strings.ToLower(model), strings.ToLower(brand)) {
		return model
	}
	return brand + " " + model
}
