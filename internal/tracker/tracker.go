package tracker

import (
	"time"

	"courtside/pkg/models"

	"github.com/sirupsen/logrus"
)

// Notifier shows a confirmation when a shoe starts being tracked. The
// terminal viewer implements it with toasts; nil means no confirmations.
type Notifier interface {
	Notify(shoe string)
}

// Tracker owns the in-memory tracked-shoe sequence. The sequence is loaded
// once at construction and rewritten to the store in full on every append.
// Items are never removed or deduplicated.
type Tracker struct {
	store    Store
	notifier Notifier
	logger   *logrus.Logger
	items    []models.TrackedItem

	now func() time.Time
}

// NewTracker loads the persisted sequence and returns a ready tracker.
// Unreadable storage logs a warning and starts empty rather than failing.
func NewTracker(store Store, notifier Notifier) *Tracker {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	t := &Tracker{
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}

	items, err := store.Load()
	if err != nil {
		logger.WithError(err).Warn("Tracked items unreadable, starting with an empty list")
		items = nil
	}
	t.items = items

	return t
}

// AddTrack appends one tracked item stamped with the current time, persists
// the whole sequence and triggers a confirmation. The in-memory append
// survives even when persisting fails.
func (t *Tracker) AddTrack(shoe, player string) error {
	item := models.TrackedItem{
		Shoe:   shoe,
		Player: player,
		Added:  t.now(),
	}
	t.items = append(t.items, item)

	if err := t.store.Save(t.items); err != nil {
		t.logger.WithError(err).WithField("shoe", shoe).Error("Failed to persist tracked items")
		return err
	}

	if t.notifier != nil {
		t.notifier.Notify(shoe)
	}
	return nil
}

// Items returns a copy of the tracked sequence in append order.
func (t *Tracker) Items() []models.TrackedItem {
	items := make([]models.TrackedItem, len(t.items))
	copy(items, t.items)
	return items
}

// Len returns how many items are tracked.
func (t *Tracker) Len() int {
	return len(t.items)
}
