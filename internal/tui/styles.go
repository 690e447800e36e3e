// Package tui binds the gallery, search and tracker cores into a bubbletea
// terminal viewer: a browsable photo grid, a lightbox, a quick-search overlay
// and tracking toasts.
package tui

import "github.com/charmbracelet/lipgloss"

// Courtside terminal palette.
var (
	accentColor  = lipgloss.Color("#FF6B35") // basketball orange
	courtColor   = lipgloss.Color("#E8C547") // hardwood yellow
	textColor    = lipgloss.Color("#F2F2F2")
	mutedColor   = lipgloss.Color("#8A8F98")
	borderColor  = lipgloss.Color("#3A3F4B")
	successColor = lipgloss.Color("#4CAF50")
	dangerColor  = lipgloss.Color("#E53935")
)

// Styles holds every lipgloss style the viewer renders with.
type Styles struct {
	// Chrome
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	FilterChip lipgloss.Style
	Help       lipgloss.Style
	ErrorLine  lipgloss.Style

	// Browse grid
	Card        lipgloss.Style
	CardFocused lipgloss.Style
	CardTitle   lipgloss.Style
	CardMeta    lipgloss.Style

	// Lightbox
	LightboxBox lipgloss.Style
	PlayerLabel lipgloss.Style
	Headline    lipgloss.Style
	Credit      lipgloss.Style
	ImageURL    lipgloss.Style
	Counter     lipgloss.Style
	TrackHint   lipgloss.Style
	TrackDone   lipgloss.Style

	// Search overlay
	SearchBox   lipgloss.Style
	ResultFirst lipgloss.Style
	ResultRow   lipgloss.Style
	ResultCount lipgloss.Style
	ResultEmpty lipgloss.Style

	// Toasts
	ToastVisible lipgloss.Style
	ToastFading  lipgloss.Style
}

// DefaultStyles builds the viewer's style set.
func DefaultStyles() Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(cardInnerWidth)

	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(mutedColor),

		FilterChip: lipgloss.NewStyle().
			Background(courtColor).
			Foreground(lipgloss.Color("#1A1A1A")).
			Padding(0, 1).
			Bold(true),

		Help: lipgloss.NewStyle().
			Foreground(mutedColor),

		ErrorLine: lipgloss.NewStyle().
			Foreground(dangerColor).
			Bold(true),

		Card: card,

		CardFocused: card.
			BorderForeground(accentColor),

		CardTitle: lipgloss.NewStyle().
			Foreground(textColor).
			Bold(true),

		CardMeta: lipgloss.NewStyle().
			Foreground(mutedColor),

		LightboxBox: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accentColor).
			Padding(1, 3),

		PlayerLabel: lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true),

		Headline: lipgloss.NewStyle().
			Foreground(textColor),

		Credit: lipgloss.NewStyle().
			Foreground(mutedColor),

		ImageURL: lipgloss.NewStyle().
			Foreground(courtColor).
			Underline(true),

		Counter: lipgloss.NewStyle().
			Foreground(mutedColor).
			Bold(true),

		TrackHint: lipgloss.NewStyle().
			Foreground(textColor),

		TrackDone: lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true),

		SearchBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(courtColor).
			Padding(0, 1),

		ResultFirst: lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true),

		ResultRow: lipgloss.NewStyle().
			Foreground(textColor),

		ResultCount: lipgloss.NewStyle().
			Foreground(mutedColor),

		ResultEmpty: lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true),

		ToastVisible: lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true),

		ToastFading: lipgloss.NewStyle().
			Foreground(mutedColor),
	}
}
