package archive

import "strings"

// brandKeywords maps caption text to brand slugs. Order matters: the first
// keyword found in the text wins, so "Nike Air Jordan" resolves to nike.
var brandKeywords = []struct {
	keyword string
	slug    string
}{
	{"nike", "nike"},
	{"jordan", "jordan"},
	{"adidas", "adidas"},
	{"under armour", "under-armour"},
	{"new balance", "new-balance"},
	{"puma", "puma"},
	{"converse", "converse"},
	{"anta", "anta"},
	{"li-ning", "li-ning"},
	{"peak", "peak"},
}

var brandDisplayNames = map[string]string{
	"nike":         "Nike",
	"jordan":       "Jordan Brand",
	"adidas":       "Adidas",
	"under-armour": "Under Armour",
	"new-balance":  "New Balance",
	"puma":         "Puma",
	"converse":     "Converse",
	"anta":         "Anta",
	"li-ning":      "Li-Ning",
	"peak":         "Peak",
	"other":        "Other",
}

// ExtractBrandSlug scans free text (headline plus caption) for a known
// sneaker brand and returns its slug, or "other" when nothing matches.
func ExtractBrandSlug(text string) string {
	text = strings.ToLower(text)
	for _, b := range brandKeywords {
		if strings.Contains(text, b.keyword) {
			return b.slug
		}
	}
	return "other"
}

// BrandDisplayName returns the human-readable name for a brand slug. Unknown
// slugs fall back to a title-cased form of the slug itself.
func BrandDisplayName(slug string) string {
	if name, ok := brandDisplayNames[slug]; ok {
		return name
	}
	if slug == "" {
		return ""
	}
	return strings.ToUpper(slug[:1]) + slug[1:]
}
