package lesson_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/bengalibuddy/internal/catalog"
	"github.com/vytor/bengalibuddy/internal/lesson"
	"github.com/vytor/bengalibuddy/internal/models"
)

func assertValidQuestion(t *testing.T, q models.Question) {
	t.Helper()
	seen := map[string]bool{}
	targets := 0
	for _, o := range q.Options {
		assert.False(t, seen[o.ID], "duplicate option %s", o.ID)
		seen[o.ID] = true
		if o.ID == q.Target.ID {
			targets++
		}
		assert.Equal(t, q.Target.Topic, o.Topic, "option from another topic")
	}
	assert.Equal(t, 1, targets, "target must appear exactly once")
	assert.Contains(t, models.QuestionKinds, q.Kind)
}

func TestMakeRound_EveryTopic(t *testing.T) {
	c := catalog.Default()
	rng := lesson.NewRand(42)

	for _, topic := range c.Topics() {
		items := c.ItemsByTopic(topic)
		for _, size := range []int{1, 3, 8, 20} {
			t.Run(fmt.Sprintf("%s/%d", topic, size), func(t *testing.T) {
				round := lesson.MakeRound(items, size, rng)
				require.Len(t, round, min(size, len(items)))

				targets := map[string]bool{}
				for _, q := range round {
					assertValidQuestion(t, q)
					assert.False(t, targets[q.Target.ID], "target repeated")
					targets[q.Target.ID] = true
					assert.Len(t, q.Options, 1+min(lesson.MaxDistractors, len(items)-1))
				}
			})
		}
	}
}

func TestMakeRound_NumbersScenario(t *testing.T) {
	items := catalog.Default().ItemsByTopic("Numbers")
	round := lesson.MakeRound(items, 8, lesson.NewRand(7))

	require.Len(t, round, 3)
	allowed := map[string]bool{"one": true, "two": true, "three": true}
	for _, q := range round {
		assert.LessOrEqual(t, len(q.Options), 3)
		for _, o := range q.Options {
			assert.True(t, allowed[o.ID], "unexpected option %s", o.ID)
		}
	}
}

func TestMakeRound_SingleItemTopic(t *testing.T) {
	items := []models.Item{{ID: "solo", English: "Solo", Bengali: "একা", Translit: "eka", Topic: "Lonely"}}

	round := lesson.MakeRound(items, 8, lesson.NewRand(1))

	require.Len(t, round, 1)
	require.Len(t, round[0].Options, 1)
	assert.Equal(t, "solo", round[0].Options[0].ID)
}

func TestMakeRound_DistractorsStayInTopic(t *testing.T) {
	items := catalog.Default().Items()
	round := lesson.MakeRound(items, len(items), lesson.NewRand(3))

	require.Len(t, round, len(items))
	for _, q := range round {
		assertValidQuestion(t, q)
	}
}

func TestMakeRound_EmptyInputs(t *testing.T) {
	rng := lesson.NewRand(1)
	assert.Empty(t, lesson.MakeRound(nil, 8, rng))
	assert.Empty(t, lesson.MakeRound(catalog.Default().Items(), 0, rng))
	assert.Empty(t, lesson.MakeRound(catalog.Default().Items(), -1, rng))
}

func TestMakeRound_Deterministic(t *testing.T) {
	items := catalog.Default().ItemsByTopic("Basics")

	a := lesson.MakeRound(items, 8, lesson.NewRand(99))
	b := lesson.MakeRound(items, 8, lesson.NewRand(99))

	assert.Equal(t, a, b)
}

func TestMakeRound_TargetPositionVaries(t *testing.T) {
	items := catalog.Default().ItemsByTopic("Basics")
	rng := lesson.NewRand(5)
	positions := map[int]int{}
	kinds := map[models.QuestionKind]int{}

	for i := 0; i < 200; i++ {
		for _, q := range lesson.MakeRound(items, 8, rng) {
			kinds[q.Kind]++
			for ix, o := range q.Options {
				if o.ID == q.Target.ID {
					positions[ix]++
				}
			}
		}
	}

	assert.Len(t, positions, 4, "target should land in every slot")
	assert.Len(t, kinds, 2, "both kinds should be drawn")
}

func TestMakeRound_DoesNotMutateInput(t *testing.T) {
	items := catalog.Default().ItemsByTopic("Food")
	before := append([]models.Item(nil), items...)

	lesson.MakeRound(items, 8, lesson.NewRand(11))

	assert.Equal(t, before, items)
}
