package tui

import (
	"strings"
	"time"

	"courtside/internal/tracker"
)

// toastView renders live tracking confirmations by lifecycle phase: pending
// toasts stay invisible, visible ones show in full, fading ones dim.
func (m Model) toastView() string {
	if m.toasts == nil {
		return ""
	}
	active := m.toasts.Active()
	if len(active) == 0 {
		return ""
	}

	now := time.Now()
	var lines []string
	for _, toast := range active {
		switch toast.PhaseAt(now) {
		case tracker.ToastVisible:
			lines = append(lines,
				m.styles.ToastVisible.Render("✓ "+toast.Message())+"  "+
					m.styles.ToastFading.Render(toast.Detail()))
		case tracker.ToastFading:
			lines = append(lines, m.styles.ToastFading.Render(toast.Message()))
		}
	}
	return strings.Join(lines, "\n")
}
