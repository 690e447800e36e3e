package tracker

import "time"

// Toast animation timings, all measured from creation.
const (
	// ToastAppearDelay is how long a toast stays invisible after insertion.
	ToastAppearDelay = 100 * time.Millisecond
	// ToastFadeStart is when the fade-out animation begins.
	ToastFadeStart = 3 * time.Second
	// ToastFadeLength is how long the fade-out runs before removal.
	ToastFadeLength = 300 * time.Millisecond
)

// ToastPhase is where a toast is in its lifecycle.
type ToastPhase int

const (
	ToastPending ToastPhase = iota
	ToastVisible
	ToastFading
	ToastExpired
)

// Toast is one tracking confirmation.
type Toast struct {
	Shoe      string
	CreatedAt time.Time
}

// Message is the toast's headline.
func (t Toast) Message() string {
	return "Now tracking: " + t.Shoe
}

// Detail is the toast's secondary line.
func (t Toast) Detail() string {
	return "We'll notify you of price drops"
}

// PhaseAt returns the toast's lifecycle phase at the given instant.
func (t Toast) PhaseAt(now time.Time) ToastPhase {
	elapsed := now.Sub(t.CreatedAt)
	switch {
	case elapsed < ToastAppearDelay:
		return ToastPending
	case elapsed < ToastFadeStart:
		return ToastVisible
	case elapsed < ToastFadeStart+ToastFadeLength:
		return ToastFading
	default:
		return ToastExpired
	}
}

// Toasts tracks live confirmations. There is no queueing: overlapping
// toasts coexist until each expires on its own.
type Toasts struct {
	active []Toast
	now    func() time.Time
}

// NewToasts creates an empty toast tracker.
func NewToasts() *Toasts {
	return &Toasts{now: time.Now}
}

// Notify inserts a toast for a newly tracked shoe. Satisfies Notifier.
func (ts *Toasts) Notify(shoe string) {
	ts.Push(shoe)
}

// Push inserts a toast for a shoe.
func (ts *Toasts) Push(shoe string) {
	ts.active = append(ts.active, Toast{
		Shoe:      shoe,
		CreatedAt: ts.now(),
	})
}

// Active prunes expired toasts and returns the live ones, oldest first.
func (ts *Toasts) Active() []Toast {
	now := ts.now()

	live := ts.active[:0]
	for _, toast := range ts.active {
		if toast.PhaseAt(now) != ToastExpired {
			live = append(live, toast)
		}
	}
	ts.active = live

	if len(live) == 0 {
		return nil
	}
	out := make([]Toast, len(live))
	copy(out, live)
	return out
}
