package gallery

import "testing"

// fakeControls counts transitions and fakes the open flag.
type fakeControls struct {
	open       bool
	openedAt   []int
	closeCalls int
	nextCalls  int
	prevCalls  int
}

func (c *fakeControls) Open(index int) { c.openedAt = append(c.openedAt, index); c.open = true }
func (c *fakeControls) Close()         { c.closeCalls++; c.open = false }
func (c *fakeControls) Next()          { c.nextCalls++ }
func (c *fakeControls) Prev()          { c.prevCalls++ }
func (c *fakeControls) IsOpen() bool   { return c.open }

func TestHandleKey(t *testing.T) {
	tests := []struct {
		name        string
		open        bool
		key         string
		wantHandled bool
		wantClose   int
		wantNext    int
		wantPrev    int
	}{
		{
			name:        "escape closes",
			open:        true,
			key:         KeyEscape,
			wantHandled: true,
			wantClose:   1,
		},
		{
			name:        "right advances",
			open:        true,
			key:         KeyRight,
			wantHandled: true,
			wantNext:    1,
		},
		{
			name:        "left retreats",
			open:        true,
			key:         KeyLeft,
			wantHandled: true,
			wantPrev:    1,
		},
		{
			name:        "unknown key ignored",
			open:        true,
			key:         "enter",
			wantHandled: false,
		},
		{
			name:        "keys ignored while closed",
			open:        false,
			key:         KeyRight,
			wantHandled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controls := &fakeControls{open: tt.open}
			router := NewRouter(controls)

			if got := router.HandleKey(tt.key); got != tt.wantHandled {
				t.Errorf("HandleKey(%q) = %v, want %v", tt.key, got, tt.wantHandled)
			}
			if controls.closeCalls != tt.wantClose {
				t.Errorf("close calls = %d, want %d", controls.closeCalls, tt.wantClose)
			}
			if controls.nextCalls != tt.wantNext {
				t.Errorf("next calls = %d, want %d", controls.nextCalls, tt.wantNext)
			}
			if controls.prevCalls != tt.wantPrev {
				t.Errorf("prev calls = %d, want %d", controls.prevCalls, tt.wantPrev)
			}
		})
	}
}

func TestSwipeThresholdIsStrict(t *testing.T) {
	tests := []struct {
		name     string
		startX   int
		endX     int
		wantNext int
		wantPrev int
	}{
		{
			name:   "drag of exactly the threshold is a tap",
			startX: 100,
			endX:   150,
		},
		{
			name:     "one pixel past threshold rightward goes prev",
			startX:   100,
			endX:     151,
			wantPrev: 1,
		},
		{
			name:     "one pixel past threshold leftward goes next",
			startX:   200,
			endX:     149,
			wantNext: 1,
		},
		{
			name:   "short drag is ignored",
			startX: 100,
			endX:   120,
		},
		{
			name:   "leftward drag of exactly the threshold is a tap",
			startX: 150,
			endX:   100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controls := &fakeControls{open: true}
			router := NewRouter(controls)

			router.TouchStart(tt.startX)
			router.TouchEnd(tt.endX)

			if controls.nextCalls != tt.wantNext {
				t.Errorf("next calls = %d, want %d", controls.nextCalls, tt.wantNext)
			}
			if controls.prevCalls != tt.wantPrev {
				t.Errorf("prev calls = %d, want %d", controls.prevCalls, tt.wantPrev)
			}
		})
	}
}

func TestSwipeIgnoredWhileClosed(t *testing.T) {
	controls := &fakeControls{open: false}
	router := NewRouter(controls)

	router.TouchStart(100)
	router.TouchEnd(300)

	if controls.nextCalls != 0 || controls.prevCalls != 0 {
		t.Error("swipe navigated while lightbox was closed")
	}
}

func TestHandleThumbnailClick(t *testing.T) {
	controls := &fakeControls{}
	router := NewRouter(controls)

	router.HandleThumbnailClick(4)

	if len(controls.openedAt) != 1 || controls.openedAt[0] != 4 {
		t.Errorf("openedAt = %v, want [4]", controls.openedAt)
	}
}

func TestHandleOverlayClick(t *testing.T) {
	tests := []struct {
		name      string
		open      bool
		onContent bool
		wantClose int
	}{
		{
			name:      "background click closes",
			open:      true,
			onContent: false,
			wantClose: 1,
		},
		{
			name:      "content click stays open",
			open:      true,
			onContent: true,
			wantClose: 0,
		},
		{
			name:      "ignored while closed",
			open:      false,
			onContent: false,
			wantClose: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controls := &fakeControls{open: tt.open}
			router := NewRouter(controls)

			router.HandleOverlayClick(tt.onContent)

			if controls.closeCalls != tt.wantClose {
				t.Errorf("close calls = %d, want %d", controls.closeCalls, tt.wantClose)
			}
		})
	}
}
