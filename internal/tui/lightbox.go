package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"courtside/internal/gallery"
)

// lightboxScreen records the gallery controller's output. It satisfies
// gallery.View; the model reads the recorded slots when rendering.
type lightboxScreen struct {
	slots gallery.Slots
	open  bool
}

func (s *lightboxScreen) ShowPhoto(slots gallery.Slots) { s.slots = slots }

func (s *lightboxScreen) SetOpen(open bool) { s.open = open }

func (m Model) lightboxView() string {
	box := m.lightboxBox()

	height := m.height - 1
	if boxHeight := lipgloss.Height(box); height < boxHeight {
		height = boxHeight
	}
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) lightboxBox() string {
	slots := m.screen.slots

	width := m.width - 12
	if width > 76 {
		width = 76
	}
	if width < 30 {
		width = 30
	}
	textWidth := width - 8

	lines := []string{
		m.styles.PlayerLabel.Render(slots.PlayerLabel) + "  " + m.styles.Counter.Render(slots.Counter),
	}
	if slots.Headline != "" {
		lines = append(lines, m.styles.Headline.Width(textWidth).Render(slots.Headline))
	}
	lines = append(lines,
		m.styles.Credit.Render(slots.Credit),
		m.styles.ImageURL.Render(truncate(slots.ImageURL, textWidth)),
		"",
		m.trackLine(),
	)

	return m.styles.LightboxBox.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) trackLine() string {
	photo, ok := m.lightbox.CurrentPhoto()
	if ok && m.tracked[photo.ImagnID] {
		return m.styles.TrackDone.Render("✓ Tracking")
	}
	return m.styles.TrackHint.Render("[t] Track this shoe")
}

// onLightboxContent reports whether a terminal row falls on the lightbox box
// rather than the dimmed background around it.
func (m Model) onLightboxContent(y int) bool {
	boxHeight := lipgloss.Height(m.lightboxBox())
	top := (m.height - 1 - boxHeight) / 2
	if top < 0 {
		top = 0
	}
	return y >= top && y < top+boxHeight
}
