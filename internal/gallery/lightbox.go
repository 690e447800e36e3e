package gallery

import (
	"fmt"
	"time"

	"courtside/pkg/models"
)

// Display defaults for photos missing optional fields.
const (
	DefaultPlayerLabel  = "NBA"
	DefaultPhotographer = "Imagn"
	DefaultSource       = "USA TODAY Sports"
)

// Slots holds the rendered values for the fixed display slots of the
// lightbox: one photo plus its labels and position counter.
type Slots struct {
	ImageURL    string
	PlayerLabel string
	Headline    string
	Credit      string
	Counter     string
}

// View receives lightbox output. The terminal viewer implements it for real
// display; tests substitute a recorder.
type View interface {
	ShowPhoto(slots Slots)
	SetOpen(open bool)
}

// Lightbox owns the current index and open state over an immutable photo
// sequence. With no photos or no view it is inert: every method becomes a
// no-op rather than an error.
type Lightbox struct {
	photos  []models.PhotoRecord
	view    View
	current int
	open    bool
}

// NewLightbox builds a lightbox over a photo sequence. The sequence is not
// copied and must not be mutated afterwards.
func NewLightbox(photos []models.PhotoRecord, view View) *Lightbox {
	return &Lightbox{
		photos: photos,
		view:   view,
	}
}

func (lb *Lightbox) disabled() bool {
	return len(lb.photos) == 0 || lb.view == nil
}

// Open shows the photo at index and marks the lightbox open. Out-of-range
// indices are ignored.
func (lb *Lightbox) Open(index int) {
	if lb.disabled() || index < 0 || index >= len(lb.photos) {
		return
	}
	lb.current = index
	lb.open = true
	lb.view.SetOpen(true)
	lb.showCurrent()
}

// Close marks the lightbox closed. Idempotent.
func (lb *Lightbox) Close() {
	if lb.disabled() {
		return
	}
	lb.open = false
	lb.view.SetOpen(false)
}

// Next advances to the following photo, wrapping past the end. No effect
// while closed.
func (lb *Lightbox) Next() {
	if lb.disabled() || !lb.open {
		return
	}
	lb.current = (lb.current + 1) % len(lb.photos)
	lb.showCurrent()
}

// Prev steps back to the preceding photo, wrapping before the start. No
// effect while closed.
func (lb *Lightbox) Prev() {
	if lb.disabled() || !lb.open {
		return
	}
	lb.current = (lb.current - 1 + len(lb.photos)) % len(lb.photos)
	lb.showCurrent()
}

// IsOpen reports whether the lightbox is currently showing.
func (lb *Lightbox) IsOpen() bool {
	return lb.open
}

// CurrentIndex returns the index of the photo being shown.
func (lb *Lightbox) CurrentIndex() int {
	return lb.current
}

// CurrentPhoto returns the record being shown, or false while the lightbox
// is inert.
func (lb *Lightbox) CurrentPhoto() (models.PhotoRecord, bool) {
	if lb.disabled() {
		return models.PhotoRecord{}, false
	}
	return lb.photos[lb.current], true
}

// Len returns the number of photos in the sequence.
func (lb *Lightbox) Len() int {
	return len(lb.photos)
}

func (lb *Lightbox) showCurrent() {
	lb.view.ShowPhoto(BuildSlots(lb.photos[lb.current], lb.current, len(lb.photos)))
}

// BuildSlots projects one photo record into display slots. Missing player,
// photographer and source fields get their display defaults; the credit line
// reads "photographer · source · date" with the date segment dropped when
// the photo has none.
func BuildSlots(photo models.PhotoRecord, index, total int) Slots {
	player := photo.PlayerName
	if player == "" {
		player = DefaultPlayerLabel
	}

	photographer := photo.Photographer
	if photographer == "" {
		photographer = DefaultPhotographer
	}

	source := photo.Source
	if source == "" {
		source = DefaultSource
	}

	credit := photographer + " · " + source
	if date := FormatPhotoDate(photo.PhotoDate); date != "" {
		credit += " · " + date
	}

	return Slots{
		ImageURL:    photo.ImageURL,
		PlayerLabel: player,
		Headline:    photo.Headline,
		Credit:      credit,
		Counter:     fmt.Sprintf("%d / %d", index+1, total),
	}
}

// FormatPhotoDate renders a YYYY-MM-DD date as "Jan 2, 2006". The input is
// treated as a plain calendar date at local midnight, never shifted across
// zones. Anything that does not parse comes back unchanged.
func FormatPhotoDate(raw string) string {
	if raw == "" {
		return ""
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return raw
	}
	return t.Format("Jan 2, 2006")
}
