package models

import (
	"encoding/json"
	"math"
	"time"
)

// MasteryRecord holds cumulative answer counts for one item.
type MasteryRecord struct {
	Correct  int       `json:"correct"`
	Wrong    int       `json:"wrong"`
	LastSeen time.Time `json:"-"`
}

type masteryRecordJSON struct {
	Correct  int   `json:"correct"`
	Wrong    int   `json:"wrong"`
	LastSeen int64 `json:"lastSeen"`
}

// MarshalJSON stores LastSeen as Unix milliseconds.
func (r MasteryRecord) MarshalJSON() ([]byte, error) {
	var ms int64
	if !r.LastSeen.IsZero() {
		ms = r.LastSeen.UnixMilli()
	}
	return json.Marshal(masteryRecordJSON{Correct: r.Correct, Wrong: r.Wrong, LastSeen: ms})
}

func (r *MasteryRecord) UnmarshalJSON(b []byte) error {
	var raw masteryRecordJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.Correct = raw.Correct
	r.Wrong = raw.Wrong
	r.LastSeen = time.Time{}
	if raw.LastSeen > 0 {
		r.LastSeen = time.UnixMilli(raw.LastSeen)
	}
	return nil
}

// Total returns the number of recorded attempts.
func (r MasteryRecord) Total() int {
	return r.Correct + r.Wrong
}

// Accuracy returns the rounded percentage of correct answers.
// ok is false when nothing has been recorded.
func (r MasteryRecord) Accuracy() (pct int, ok bool) {
	total := r.Total()
	if total <= 0 {
		return 0, false
	}
	return int(math.Round(float64(r.Correct) / float64(total) * 100)), true
}

// MasteryMap is keyed by item ID.
type MasteryMap map[string]MasteryRecord
