package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"courtside/internal/gallery"
)

// Card geometry. Width counts content cells inside the border; the border
// adds one cell per side.
const (
	cardInnerWidth = 28
	cardOuterWidth = cardInnerWidth + 2
	cardTextWidth  = cardInnerWidth - 2
	cardHeight     = 5
	chromeHeight   = 4
)

func gridColumns(width int) int {
	cols := width / cardOuterWidth
	if cols < 1 {
		cols = 1
	}
	return cols
}

func (m Model) browseView() string {
	var body string
	switch {
	case m.loading:
		body = m.styles.Subtitle.Render("Loading photos...")
	case m.loadErr != nil:
		body = m.styles.ErrorLine.Render("Could not load photos: " + m.loadErr.Error())
	case len(m.view) == 0:
		body = m.styles.Subtitle.Render("No photos to show")
	default:
		body = m.gridView()
	}

	sections := []string{m.headerView()}
	if m.searching {
		sections = append(sections, m.searchView())
	}
	sections = append(sections, body)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) headerView() string {
	parts := []string{
		m.styles.Title.Render("COURTSIDE"),
		m.styles.Subtitle.Render(fmt.Sprintf("%d photos", len(m.view))),
	}
	if m.filterName != "" {
		parts = append(parts, m.styles.FilterChip.Render(m.filterName))
	}
	return strings.Join(parts, "  ")
}

// gridView lays cards out in rows, windowed so the cursor's row stays on
// screen.
func (m Model) gridView() string {
	cols := m.cols
	total := len(m.view)
	rows := (total + cols - 1) / cols

	maxRows := (m.height - chromeHeight) / cardHeight
	if maxRows < 1 {
		maxRows = 1
	}

	cursorRow := m.cursor / cols
	startRow := 0
	if cursorRow >= maxRows {
		startRow = cursorRow - maxRows + 1
	}
	endRow := startRow + maxRows
	if endRow > rows {
		endRow = rows
	}

	rendered := make([]string, 0, endRow-startRow)
	for row := startRow; row < endRow; row++ {
		var cards []string
		for col := 0; col < cols; col++ {
			index := row*cols + col
			if index >= total {
				break
			}
			cards = append(cards, m.cardView(index))
		}
		rendered = append(rendered, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(rendered, "\n")
}

func (m Model) cardView(index int) string {
	photo := m.view[index]

	name := photo.PlayerName
	if name == "" {
		name = gallery.DefaultPlayerLabel
	}

	detail := photo.Headline
	if detail == "" {
		detail = photo.Caption
	}

	meta := gallery.FormatPhotoDate(photo.PhotoDate)
	if photo.BrandSlug != "" && photo.BrandSlug != "other" {
		if meta != "" {
			meta += " · "
		}
		meta += photo.BrandSlug
	}

	content := m.styles.CardTitle.Render(truncate(name, cardTextWidth)) + "\n" +
		truncate(detail, cardTextWidth) + "\n" +
		m.styles.CardMeta.Render(truncate(meta, cardTextWidth))

	if index == m.cursor {
		return m.styles.CardFocused.Render(content)
	}
	return m.styles.Card.Render(content)
}

func truncate(s string, width int) string {
	if width <= 1 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
