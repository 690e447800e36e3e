package gallery

// Key names as bubbletea reports them.
const (
	KeyEscape = "esc"
	KeyRight  = "right"
	KeyLeft   = "left"
)

// SwipeThreshold is the minimum horizontal drag distance, in device pixels,
// that counts as a swipe. A drag of exactly this distance is still a tap.
const SwipeThreshold = 50

// Controls is the slice of lightbox behavior the router drives.
type Controls interface {
	Open(index int)
	Close()
	Next()
	Prev()
	IsOpen() bool
}

// Router translates key presses, clicks and touch drags into lightbox
// transitions. Navigation input only applies while the lightbox is open;
// thumbnail clicks open it.
type Router struct {
	controls    Controls
	touchStartX int
}

// NewRouter binds a router to a set of lightbox controls.
func NewRouter(controls Controls) *Router {
	return &Router{controls: controls}
}

// HandleKey routes a key press and reports whether it was consumed.
func (r *Router) HandleKey(key string) bool {
	if !r.controls.IsOpen() {
		return false
	}

	switch key {
	case KeyEscape:
		r.controls.Close()
	case KeyRight:
		r.controls.Next()
	case KeyLeft:
		r.controls.Prev()
	default:
		return false
	}
	return true
}

// HandleThumbnailClick opens the lightbox at the clicked thumbnail's
// position in the gallery.
func (r *Router) HandleThumbnailClick(index int) {
	r.controls.Open(index)
}

// HandleOverlayClick closes the lightbox when the click landed on the
// overlay background rather than on the photo content.
func (r *Router) HandleOverlayClick(onContent bool) {
	if !r.controls.IsOpen() || onContent {
		return
	}
	r.controls.Close()
}

// TouchStart records the horizontal coordinate where a drag began.
func (r *Router) TouchStart(x int) {
	r.touchStartX = x
}

// TouchEnd completes a drag. A rightward swipe shows the previous photo, a
// leftward swipe the next one. Drags at or below SwipeThreshold do nothing.
func (r *Router) TouchEnd(x int) {
	if !r.controls.IsOpen() {
		return
	}

	delta := x - r.touchStartX
	switch {
	case delta > SwipeThreshold:
		r.controls.Prev()
	case delta < -SwipeThreshold:
		r.controls.Next()
	}
}
