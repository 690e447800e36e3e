package tui

import (
	"strings"

	"courtside/internal/search"
)

// resultsPanel records the quick-search view state. It satisfies
// search.ResultsView; the model renders from it while the overlay is up.
type resultsPanel struct {
	rows    []search.Result
	empty   bool
	visible bool
}

func (p *resultsPanel) ShowResults(results []search.Result) {
	p.rows = results
	p.empty = false
	p.visible = true
}

func (p *resultsPanel) ShowEmpty() {
	p.rows = nil
	p.empty = true
	p.visible = true
}

func (p *resultsPanel) Hide() {
	p.rows = nil
	p.empty = false
	p.visible = false
}

func (m Model) searchView() string {
	content := m.input.View()

	if m.panel.visible {
		var rows []string
		if m.panel.empty {
			rows = append(rows, m.styles.ResultEmpty.Render("no players found"))
		}
		for i, result := range m.panel.rows {
			style := m.styles.ResultRow
			if i == 0 {
				style = m.styles.ResultFirst
			}
			rows = append(rows, style.Render(result.Name)+" "+m.styles.ResultCount.Render(result.CountLabel()))
		}
		content += "\n" + strings.Join(rows, "\n")
	}

	return m.styles.SearchBox.Render(content)
}
