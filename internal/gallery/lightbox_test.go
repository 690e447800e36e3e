package gallery

import (
	"testing"

	"courtside/pkg/models"
)

// fakeView records everything the lightbox renders.
type fakeView struct {
	shown     []Slots
	openCalls []bool
}

func (v *fakeView) ShowPhoto(slots Slots) { v.shown = append(v.shown, slots) }
func (v *fakeView) SetOpen(open bool)     { v.openCalls = append(v.openCalls, open) }

func (v *fakeView) lastShown(t *testing.T) Slots {
	t.Helper()
	if len(v.shown) == 0 {
		t.Fatal("nothing was rendered")
	}
	return v.shown[len(v.shown)-1]
}

func testPhotos(n int) []models.PhotoRecord {
	photos := make([]models.PhotoRecord, n)
	for i := range photos {
		photos[i] = models.PhotoRecord{
			ImagnID:  string(rune('a' + i)),
			ImageURL: "https://cdn.imagn.com/image/thumb/800-750/" + string(rune('a'+i)) + ".jpg",
		}
	}
	return photos
}

func TestOpenRendersPhotoFields(t *testing.T) {
	photos := []models.PhotoRecord{{
		ImageURL:     "https://cdn.imagn.com/image/thumb/800-750/1.jpg",
		PlayerName:   "LeBron James",
		Headline:     "Nike LeBron 21",
		Photographer: "Kirby Lee",
		Source:       "Imagn Images",
		PhotoDate:    "2025-01-15",
	}}
	view := &fakeView{}
	lb := NewLightbox(photos, view)

	lb.Open(0)

	if !lb.IsOpen() {
		t.Fatal("IsOpen() = false after Open")
	}
	slots := view.lastShown(t)
	if slots.ImageURL != photos[0].ImageURL {
		t.Errorf("ImageURL = %q", slots.ImageURL)
	}
	if slots.PlayerLabel != "LeBron James" {
		t.Errorf("PlayerLabel = %q", slots.PlayerLabel)
	}
	if slots.Headline != "Nike LeBron 21" {
		t.Errorf("Headline = %q", slots.Headline)
	}
	if slots.Credit != "Kirby Lee · Imagn Images · Jan 15, 2025" {
		t.Errorf("Credit = %q", slots.Credit)
	}
	if slots.Counter != "1 / 1" {
		t.Errorf("Counter = %q", slots.Counter)
	}
}

func TestOpenIgnoresOutOfRangeIndex(t *testing.T) {
	view := &fakeView{}
	lb := NewLightbox(testPhotos(3), view)

	lb.Open(-1)
	lb.Open(3)

	if lb.IsOpen() {
		t.Error("IsOpen() = true after out-of-range Open")
	}
	if len(view.shown) != 0 {
		t.Errorf("rendered %d photos, want 0", len(view.shown))
	}
}

func TestNavigationWrapsAround(t *testing.T) {
	tests := []struct {
		name      string
		openAt    int
		move      func(lb *Lightbox)
		wantIndex int
	}{
		{
			name:      "next advances",
			openAt:    0,
			move:      func(lb *Lightbox) { lb.Next() },
			wantIndex: 1,
		},
		{
			name:      "next wraps at end",
			openAt:    2,
			move:      func(lb *Lightbox) { lb.Next() },
			wantIndex: 0,
		},
		{
			name:      "prev retreats",
			openAt:    2,
			move:      func(lb *Lightbox) { lb.Prev() },
			wantIndex: 1,
		},
		{
			name:      "prev wraps at start",
			openAt:    0,
			move:      func(lb *Lightbox) { lb.Prev() },
			wantIndex: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := &fakeView{}
			lb := NewLightbox(testPhotos(3), view)
			lb.Open(tt.openAt)

			tt.move(lb)

			if got := lb.CurrentIndex(); got != tt.wantIndex {
				t.Errorf("CurrentIndex() = %d, want %d", got, tt.wantIndex)
			}
		})
	}
}

func TestNavigationIgnoredWhileClosed(t *testing.T) {
	view := &fakeView{}
	lb := NewLightbox(testPhotos(3), view)

	lb.Next()
	lb.Prev()

	if got := lb.CurrentIndex(); got != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", got)
	}
	if len(view.shown) != 0 {
		t.Errorf("rendered %d photos while closed, want 0", len(view.shown))
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	view := &fakeView{}
	lb := NewLightbox(testPhotos(1), view)

	lb.Open(0)
	lb.Close()
	lb.Close()

	if lb.IsOpen() {
		t.Error("IsOpen() = true after Close")
	}
}

func TestEmptySequenceIsInert(t *testing.T) {
	view := &fakeView{}
	lb := NewLightbox(nil, view)

	lb.Open(0)
	lb.Next()
	lb.Prev()
	lb.Close()

	if len(view.shown) != 0 || len(view.openCalls) != 0 {
		t.Error("empty lightbox touched its view")
	}
	if _, ok := lb.CurrentPhoto(); ok {
		t.Error("CurrentPhoto() ok = true for empty sequence")
	}
}

func TestMissingViewIsInert(t *testing.T) {
	lb := NewLightbox(testPhotos(2), nil)

	// Must not panic
	lb.Open(0)
	lb.Next()
	lb.Close()

	if lb.IsOpen() {
		t.Error("IsOpen() = true with no view attached")
	}
}

func TestBuildSlots(t *testing.T) {
	tests := []struct {
		name        string
		photo       models.PhotoRecord
		index       int
		total       int
		wantPlayer  string
		wantCredit  string
		wantCounter string
	}{
		{
			name: "all fields present",
			photo: models.PhotoRecord{
				PlayerName:   "Jayson Tatum",
				Photographer: "David Butler II",
				Source:       "Imagn Images",
				PhotoDate:    "2025-02-03",
			},
			index:       2,
			total:       7,
			wantPlayer:  "Jayson Tatum",
			wantCredit:  "David Butler II · Imagn Images · Feb 3, 2025",
			wantCounter: "3 / 7",
		},
		{
			name:        "defaults for missing fields",
			photo:       models.PhotoRecord{PhotoDate: "2025-01-15"},
			index:       0,
			total:       1,
			wantPlayer:  "NBA",
			wantCredit:  "Imagn · USA TODAY Sports · Jan 15, 2025",
			wantCounter: "1 / 1",
		},
		{
			name:        "unparsable date passes through",
			photo:       models.PhotoRecord{PhotoDate: "sometime in March"},
			index:       0,
			total:       1,
			wantPlayer:  "NBA",
			wantCredit:  "Imagn · USA TODAY Sports · sometime in March",
			wantCounter: "1 / 1",
		},
		{
			name:        "missing date drops the segment",
			photo:       models.PhotoRecord{Photographer: "Kirby Lee"},
			index:       0,
			total:       2,
			wantPlayer:  "NBA",
			wantCredit:  "Kirby Lee · USA TODAY Sports",
			wantCounter: "1 / 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := BuildSlots(tt.photo, tt.index, tt.total)
			if slots.PlayerLabel != tt.wantPlayer {
				t.Errorf("PlayerLabel = %q, want %q", slots.PlayerLabel, tt.wantPlayer)
			}
			if slots.Credit != tt.wantCredit {
				t.Errorf("Credit = %q, want %q", slots.Credit, tt.wantCredit)
			}
			if slots.Counter != tt.wantCounter {
				t.Errorf("Counter = %q, want %q", slots.Counter, tt.wantCounter)
			}
		})
	}
}

func TestFormatPhotoDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "iso date", raw: "2025-01-15", want: "Jan 15, 2025"},
		{name: "single digit day", raw: "2025-02-03", want: "Feb 3, 2025"},
		{name: "unparsable input unchanged", raw: "next Friday", want: "next Friday"},
		{name: "partial date unchanged", raw: "2025-01", want: "2025-01"},
		{name: "empty", raw: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPhotoDate(tt.raw); got != tt.want {
				t.Errorf("FormatPhotoDate(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
