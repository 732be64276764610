// Package session holds the per-device lesson state used by the web layer:
// Idle, InRound(index) or Completed.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/vytor/bengalibuddy/internal/models"
)

var (
	ErrNotInRound    = errors.New("session: no round in progress")
	ErrUnknownOption = errors.New("session: option is not part of the question")
)

// State is one of Idle, InRound or Completed.
type State interface {
	state()
	Name() string
}

type Idle struct{}

type InRound struct {
	Index int
}

type Completed struct {
	Correct int
	Total   int
}

func (Idle) state()      {}
func (InRound) state()   {}
func (Completed) state() {}

func (Idle) Name() string      { return "idle" }
func (InRound) Name() string   { return "in_round" }
func (Completed) Name() string { return "completed" }

// Outcome describes one accepted answer.
type Outcome struct {
	Question  models.Question
	Correct   bool
	Completed bool
	// Score and Total are set when the answer completed the round.
	Score int
	Total int
}

// DefaultIdleTTL is how long an untouched lesson stays in a Registry.
const DefaultIdleTTL = 2 * time.Hour

// Lesson is safe for concurrent use.
type Lesson struct {
	mu      sync.Mutex
	state   State
	topic   string
	round   []models.Question
	correct int
	now     func() time.Time
	touched time.Time
}

func NewLesson() *Lesson {
	return newLesson(time.Now)
}

func newLesson(now func() time.Time) *Lesson {
	return &Lesson{state: Idle{}, now: now, touched: now()}
}

// Start discards any prior round and moves to InRound(0).
// An empty round completes immediately.
func (l *Lesson) Start(topic string, round []models.Question) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.topic = topic
	l.round = round
	l.correct = 0
	l.touched = l.now()
	if len(round) == 0 {
		l.state = Completed{}
		return
	}
	l.state = InRound{Index: 0}
}

// State returns the current state.
func (l *Lesson) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Lesson) Topic() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.topic
}

// Current returns the active question with its index and the round length.
func (l *Lesson) Current() (q models.Question, index, length int, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	in, inRound := l.state.(InRound)
	if !inRound {
		return models.Question{}, 0, len(l.round), false
	}
	return l.round[in.Index], in.Index, len(l.round), true
}

// Submit answers the active question with optionID and advances the state.
func (l *Lesson) Submit(optionID string) (Outcome, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	in, ok := l.state.(InRound)
	if !ok {
		return Outcome{}, ErrNotInRound
	}
	q := l.round[in.Index]
	if !q.HasOption(optionID) {
		return Outcome{}, ErrUnknownOption
	}
	l.touched = l.now()
	out := Outcome{Question: q, Correct: q.IsCorrect(optionID)}
	if out.Correct {
		l.correct++
	}
	if in.Index+1 < len(l.round) {
		l.state = InRound{Index: in.Index + 1}
	} else {
		l.state = Completed{Correct: l.correct, Total: len(l.round)}
		out.Completed = true
		out.Score = l.correct
		out.Total = len(l.round)
	}
	return out, nil
}

func (l *Lesson) inRound() bool {
	_, ok := l.state.(InRound)
	return ok
}

// Registry maps device IDs to their lesson. Only devices with a round in
// progress are kept; lessons untouched for the idle TTL are swept.
type Registry struct {
	mu        sync.Mutex
	lessons   map[string]*Lesson
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

type RegistryOption func(*Registry)

func WithIdleTTL(ttl time.Duration) RegistryOption {
	return func(r *Registry) { r.ttl = ttl }
}

// WithClock overrides time.Now for lesson activity stamps.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		lessons: make(map[string]*Lesson),
		ttl:     DefaultIdleTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.lastSweep = r.now()
	return r
}

// Get returns the device's lesson without creating one.
func (r *Registry) Get(deviceID string) (*Lesson, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lessons[deviceID]
	return l, ok
}

// Lesson returns the device's lesson, creating an Idle one on first use.
// Creation also sweeps stale lessons, at most once per TTL.
func (r *Registry) Lesson(deviceID string) *Lesson {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lessons[deviceID]
	if !ok {
		if r.now().Sub(r.lastSweep) >= r.ttl {
			r.sweepLocked()
		}
		l = newLesson(r.now)
		r.lessons[deviceID] = l
	}
	return l
}

// Release forgets l when it is still the device's lesson and has no round in progress.
func (r *Registry) Release(deviceID string, l *Lesson) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lessons[deviceID] != l {
		return false
	}
	l.mu.Lock()
	active := l.inRound()
	l.mu.Unlock()
	if active {
		return false
	}
	delete(r.lessons, deviceID)
	return true
}

// Sweep drops lessons untouched for longer than the TTL and returns how many.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweepLocked()
}

func (r *Registry) sweepLocked() int {
	now := r.now()
	r.lastSweep = now
	removed := 0
	for id, l := range r.lessons {
		l.mu.Lock()
		stale := now.Sub(l.touched) > r.ttl
		l.mu.Unlock()
		if stale {
			delete(r.lessons, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked devices.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.lessons)
}
