package archive

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespace   = regexp.MustCompile(`[\s_]+`)
	slugDashRuns     = regexp.MustCompile(`-+`)

	// Decompose, strip combining marks, recompose. Folds accented letters to
	// their ASCII base so "Dončić" and "Doncic" produce the same slug.
	diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Slugify converts a display name to a URL-safe slug.
func Slugify(name string) string {
	if name == "" {
		return ""
	}

	if folded, _, err := transform.String(diacriticFolder, name); err == nil {
		name = folded
	}

	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugWhitespace.ReplaceAllString(slug, "-")
	slug = slugDashRuns.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
