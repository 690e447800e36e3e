package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"courtside/internal/affiliate"
	"courtside/internal/gallery"
	"courtside/internal/search"
	"courtside/internal/tracker"
	"courtside/pkg/models"
)

type photosLoadedMsg struct {
	photos []models.PhotoRecord
}

type photosFailedMsg struct {
	err error
}

type toastTickMsg time.Time

// toastTick drives toast phase transitions while any toast is alive.
func toastTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// Model is the courtview root model. Keys route by screen: grid keys while
// browsing, lightbox keys through the gallery router while a photo is open,
// and the search overlay capturing everything while visible.
type Model struct {
	styles Styles
	width  int
	height int
	cols   int

	source     PhotoSource
	photos     []models.PhotoRecord
	view       []models.PhotoRecord
	filterName string
	cursor     int
	loading    bool
	loadErr    error

	screen   *lightboxScreen
	lightbox *gallery.Lightbox
	router   *gallery.Router

	quick     *search.QuickSearch
	panel     *resultsPanel
	input     textinput.Model
	searching bool

	tracker *tracker.Tracker
	toasts  *tracker.Toasts
	tracked map[string]bool

	pressed bool
	pressX  int
}

// NewModel wires the viewer over its photo source, player index, and
// tracker. toasts must be the notifier the tracker was built with so
// confirmations surface in the footer.
func NewModel(source PhotoSource, index search.IndexSource, trk *tracker.Tracker, toasts *tracker.Toasts, linkBase string) Model {
	input := textinput.New()
	input.Placeholder = "Search players..."
	input.CharLimit = 50
	input.Width = 34

	panel := &resultsPanel{}

	m := Model{
		styles:  DefaultStyles(),
		cols:    3,
		source:  source,
		loading: source != nil,
		screen:  &lightboxScreen{},
		quick:   search.NewQuickSearch(index, panel, linkBase),
		panel:   panel,
		input:   input,
		tracker: trk,
		toasts:  toasts,
		tracked: make(map[string]bool),
	}
	m.applyView(nil, "")
	return m
}

// Init starts the player index load and, when a source is configured, the
// photo fetch.
func (m Model) Init() tea.Cmd {
	m.quick.Load()
	if m.source == nil {
		return nil
	}
	return m.fetchPhotos
}

func (m Model) fetchPhotos() tea.Msg {
	photos, err := m.source.FetchPhotos()
	if err != nil {
		return photosFailedMsg{err: err}
	}
	return photosLoadedMsg{photos: photos}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.cols = gridColumns(msg.Width)
		return m, nil

	case photosLoadedMsg:
		m.loading = false
		m.loadErr = nil
		m.photos = msg.photos
		m.applyView(m.photos, "")
		return m, nil

	case photosFailedMsg:
		m.loading = false
		m.loadErr = msg.err
		return m, nil

	case toastTickMsg:
		if m.toasts != nil && len(m.toasts.Active()) > 0 {
			return m, toastTick()
		}
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		if m.lightbox.IsOpen() {
			return m.updateLightbox(msg.String())
		}
		return m.updateBrowse(msg.String())
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeSearch()
		return m, nil
	case "enter":
		if _, ok := m.quick.Submit(); ok {
			first := m.quick.Results()[0]
			m.filterTo(first)
		}
		m.closeSearch()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.quick.SetQuery(m.input.Value())
	return m, cmd
}

func (m Model) updateLightbox(key string) (tea.Model, tea.Cmd) {
	if m.router.HandleKey(key) {
		return m, nil
	}

	switch key {
	case "t":
		return m, m.trackCurrent()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateBrowse(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return m, tea.Quit
	case "/":
		m.searching = true
		return m, m.input.Focus()
	case "esc":
		if m.filterName != "" {
			m.applyView(m.photos, "")
		}
	case "left", "h":
		m.moveCursor(-1)
	case "right", "l":
		m.moveCursor(1)
	case "up", "k":
		m.moveCursor(-m.cols)
	case "down", "j":
		m.moveCursor(m.cols)
	case "enter":
		m.router.HandleThumbnailClick(m.cursor)
	case "r":
		if m.source != nil && !m.loading {
			m.loading = true
			return m, m.fetchPhotos
		}
	}
	return m, nil
}

// updateMouse feeds drags into the router's swipe path. A short release is a
// tap: on the box it does nothing, on the background it closes the lightbox.
func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.lightbox.IsOpen() {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.pressed = true
			m.pressX = msg.X
			m.router.TouchStart(msg.X)
		}
	case tea.MouseActionRelease:
		if !m.pressed {
			return m, nil
		}
		m.pressed = false

		delta := msg.X - m.pressX
		if delta <= gallery.SwipeThreshold && delta >= -gallery.SwipeThreshold {
			m.router.HandleOverlayClick(m.onLightboxContent(msg.Y))
			return m, nil
		}
		m.router.TouchEnd(msg.X)
	}
	return m, nil
}

// trackCurrent identifies the open photo's shoe and starts tracking it.
// Each photo tracks once; afterwards the action reads as confirmed.
func (m *Model) trackCurrent() tea.Cmd {
	if m.tracker == nil {
		return nil
	}
	photo, ok := m.lightbox.CurrentPhoto()
	if !ok || m.tracked[photo.ImagnID] {
		return nil
	}

	shoe, _ := affiliate.Identify(photo.Caption, photo.PlayerName)
	if shoe == "" {
		shoe = strings.TrimSpace(photo.PlayerName + " basketball shoes")
	}

	if err := m.tracker.AddTrack(shoe, photo.PlayerName); err != nil {
		return nil
	}
	m.tracked[photo.ImagnID] = true
	return toastTick()
}

func (m *Model) applyView(photos []models.PhotoRecord, filterName string) {
	m.view = photos
	m.filterName = filterName
	m.cursor = 0
	m.lightbox = gallery.NewLightbox(photos, m.screen)
	m.router = gallery.NewRouter(m.lightbox)
}

func (m *Model) filterTo(result search.Result) {
	var filtered []models.PhotoRecord
	for _, p := range m.photos {
		if p.PlayerSlug == result.Slug {
			filtered = append(filtered, p)
		}
	}
	m.applyView(filtered, result.Name)
}

func (m *Model) closeSearch() {
	m.searching = false
	m.input.Blur()
	m.input.Reset()
	m.quick.Dismiss()
}

func (m *Model) moveCursor(delta int) {
	if len(m.view) == 0 {
		return
	}
	next := m.cursor + delta
	if next < 0 {
		next = 0
	}
	if next >= len(m.view) {
		next = len(m.view) - 1
	}
	m.cursor = next
}

// View renders the current screen with a one-line footer.
func (m Model) View() string {
	if m.width == 0 {
		return "Starting courtview..."
	}

	var screen string
	if m.lightbox.IsOpen() {
		screen = m.lightboxView()
	} else {
		screen = m.browseView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, screen, m.footerView())
}

// footerView shows live toasts when there are any, key hints otherwise.
func (m Model) footerView() string {
	if toast := m.toastView(); toast != "" {
		return toast
	}
	if m.lightbox.IsOpen() {
		return m.styles.Help.Render("esc close · ←/→ navigate · t track · q quit")
	}
	if m.searching {
		return m.styles.Help.Render("enter first result · esc dismiss")
	}
	return m.styles.Help.Render("←↑↓→ move · enter open · / search · r reload · q quit")
}
