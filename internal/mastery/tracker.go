// Package mastery records answer outcomes per item.
package mastery

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vytor/bengalibuddy/internal/logger"
	"github.com/vytor/bengalibuddy/internal/models"
	"github.com/vytor/bengalibuddy/internal/store"
)

// Tracker keeps the mastery map of one device.
type Tracker struct {
	store store.Store
	now   func() time.Time
}

type Option func(*Tracker)

// WithClock overrides time.Now for LastSeen stamps.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

func NewTracker(s store.Store, opts ...Option) *Tracker {
	t := &Tracker{store: s, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Apply returns rec with one more correct or wrong answer seen at now.
func Apply(rec models.MasteryRecord, wasCorrect bool, now time.Time) models.MasteryRecord {
	if wasCorrect {
		rec.Correct++
	} else {
		rec.Wrong++
	}
	rec.LastSeen = now
	return rec
}

// RecordAnswer adds one outcome for itemID and persists the whole map.
// An unreadable stored map is replaced rather than reported.
func (t *Tracker) RecordAnswer(ctx context.Context, itemID string, wasCorrect bool) error {
	log := logger.FromContext(ctx).WithPrefix("mastery")

	err := t.store.Update(ctx, store.KeyMastery, func(cur []byte, found bool) ([]byte, error) {
		records := models.MasteryMap{}
		if found {
			m, err := store.Decode[models.MasteryMap](store.KeyMastery, cur)
			if err != nil {
				log.Debug("discarding unreadable mastery map: %v", err)
			} else if m != nil {
				records = m
			}
		}
		rec := Apply(records[itemID], wasCorrect, t.now())
		records[itemID] = rec
		log.Debug("item=%s correct=%d wrong=%d", itemID, rec.Correct, rec.Wrong)
		return json.Marshal(records)
	})
	if err != nil {
		return fmt.Errorf("recording answer for %s: %w", itemID, err)
	}
	return nil
}

// Records returns the full mastery map, empty when absent or corrupt.
func (t *Tracker) Records(ctx context.Context) models.MasteryMap {
	m := store.LoadOr(ctx, t.store, store.KeyMastery, models.MasteryMap{})
	if m == nil {
		return models.MasteryMap{}
	}
	return m
}

// Record returns the record for itemID; ok is false if it was never answered.
func (t *Tracker) Record(ctx context.Context, itemID string) (models.MasteryRecord, bool) {
	rec, ok := t.Records(ctx)[itemID]
	return rec, ok
}

// Accuracy returns the rounded percentage correct for itemID.
// ok is false when there is no data.
func (t *Tracker) Accuracy(ctx context.Context, itemID string) (pct int, ok bool) {
	rec, found := t.Record(ctx, itemID)
	if !found {
		return 0, false
	}
	return rec.Accuracy()
}
