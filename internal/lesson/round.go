// Package lesson builds quiz rounds from catalog items.
package lesson

import (
	"math/rand/v2"
	"time"

	"github.com/vytor/bengalibuddy/internal/models"
)

const (
	// DefaultRoundSize is the number of questions in a lesson.
	DefaultRoundSize = 8
	// MaxDistractors caps the wrong options per question.
	MaxDistractors = 3
)

// NewRand returns a PCG-backed source. A zero seed draws from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// MakeRound samples min(size, len(items)) distinct targets and builds one
// question per target. Distractors come from the target's topic within items.
func MakeRound(items []models.Item, size int, rng *rand.Rand) []models.Question {
	if size <= 0 || len(items) == 0 {
		return []models.Question{}
	}
	targets := sample(items, size, rng)

	round := make([]models.Question, 0, len(targets))
	for _, target := range targets {
		pool := make([]models.Item, 0, len(items))
		for _, it := range items {
			if it.ID != target.ID && it.Topic == target.Topic {
				pool = append(pool, it)
			}
		}
		distractors := sample(pool, MaxDistractors, rng)

		options := make([]models.Item, 0, len(distractors)+1)
		options = append(options, target)
		options = append(options, distractors...)
		rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

		round = append(round, models.Question{
			Kind:    models.QuestionKinds[rng.IntN(len(models.QuestionKinds))],
			Target:  target,
			Options: options,
		})
	}
	return round
}

// sample draws up to n items uniformly without replacement.
func sample(items []models.Item, n int, rng *rand.Rand) []models.Item {
	if n > len(items) {
		n = len(items)
	}
	out := make([]models.Item, 0, n)
	for _, ix := range rng.Perm(len(items))[:n] {
		out = append(out, items[ix])
	}
	return out
}
