package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/bengalibuddy/internal/models"
	"github.com/vytor/bengalibuddy/internal/session"
)

func item(id string) models.Item {
	return models.Item{ID: id, English: id, Bengali: id, Translit: id, Topic: "T"}
}

func question(target string, others ...string) models.Question {
	opts := []models.Item{item(target)}
	for _, o := range others {
		opts = append(opts, item(o))
	}
	return models.Question{Kind: models.KindPicture, Target: item(target), Options: opts}
}

func TestLesson_StartsIdle(t *testing.T) {
	l := session.NewLesson()

	assert.Equal(t, session.Idle{}, l.State())
	_, err := l.Submit("x")
	assert.ErrorIs(t, err, session.ErrNotInRound)
	_, _, _, ok := l.Current()
	assert.False(t, ok)
}

func TestLesson_FullRound(t *testing.T) {
	l := session.NewLesson()
	l.Start("T", []models.Question{question("a", "b"), question("b", "a"), question("c")})

	assert.Equal(t, session.InRound{Index: 0}, l.State())
	q, idx, length, ok := l.Current()
	require.True(t, ok)
	assert.Equal(t, "a", q.Target.ID)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 3, length)

	out, err := l.Submit("a")
	require.NoError(t, err)
	assert.True(t, out.Correct)
	assert.False(t, out.Completed)
	assert.Equal(t, session.InRound{Index: 1}, l.State())

	out, err = l.Submit("a")
	require.NoError(t, err)
	assert.False(t, out.Correct)
	assert.Equal(t, "b", out.Question.Target.ID)

	out, err = l.Submit("c")
	require.NoError(t, err)
	assert.True(t, out.Completed)
	assert.Equal(t, 2, out.Score)
	assert.Equal(t, 3, out.Total)
	assert.Equal(t, session.Completed{Correct: 2, Total: 3}, l.State())

	_, err = l.Submit("c")
	assert.ErrorIs(t, err, session.ErrNotInRound)
}

func TestLesson_RejectsForeignOption(t *testing.T) {
	l := session.NewLesson()
	l.Start("T", []models.Question{question("a", "b")})

	_, err := l.Submit("zzz")

	assert.ErrorIs(t, err, session.ErrUnknownOption)
	assert.Equal(t, session.InRound{Index: 0}, l.State())
}

func TestLesson_RestartDiscardsRound(t *testing.T) {
	l := session.NewLesson()
	l.Start("T", []models.Question{question("a"), question("b")})
	_, err := l.Submit("a")
	require.NoError(t, err)

	l.Start("U", []models.Question{question("c")})

	assert.Equal(t, session.InRound{Index: 0}, l.State())
	assert.Equal(t, "U", l.Topic())
	out, err := l.Submit("c")
	require.NoError(t, err)
	assert.Equal(t, session.Completed{Correct: 1, Total: 1}, l.State())
	assert.True(t, out.Completed)
}

func TestLesson_EmptyRound(t *testing.T) {
	l := session.NewLesson()
	l.Start("T", nil)
	assert.Equal(t, "completed", l.State().Name())
}

func TestRegistry(t *testing.T) {
	r := session.NewRegistry()

	a := r.Lesson("a")
	assert.Same(t, a, r.Lesson("a"))
	assert.NotSame(t, a, r.Lesson("b"))
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_GetDoesNotCreate(t *testing.T) {
	r := session.NewRegistry()

	for _, id := range []string{"a", "b", "c"} {
		_, ok := r.Get(id)
		assert.False(t, ok)
	}
	assert.Equal(t, 0, r.Len())

	l := r.Lesson("a")
	got, ok := r.Get("a")
	require.True(t, ok)
	assert.Same(t, l, got)
}

func TestRegistry_ReleaseOnlyOutsideRound(t *testing.T) {
	r := session.NewRegistry()
	l := r.Lesson("a")
	l.Start("T", []models.Question{question("a")})

	assert.False(t, r.Release("a", l), "lesson in progress must be kept")
	assert.Equal(t, 1, r.Len())

	_, err := l.Submit("a")
	require.NoError(t, err)

	assert.False(t, r.Release("a", session.NewLesson()), "a different lesson must not evict")
	assert.True(t, r.Release("a", l))
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_SweepDropsStaleLessons(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	r := session.NewRegistry(
		session.WithIdleTTL(time.Hour),
		session.WithClock(func() time.Time { return now }),
	)

	r.Lesson("old").Start("T", []models.Question{question("a")})
	now = now.Add(30 * time.Minute)
	r.Lesson("recent").Start("T", []models.Question{question("a")})

	now = now.Add(45 * time.Minute)
	assert.Equal(t, 1, r.Sweep())
	_, ok := r.Get("old")
	assert.False(t, ok)
	_, ok = r.Get("recent")
	assert.True(t, ok)
}

func TestRegistry_CreationSweepsAfterTTL(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	r := session.NewRegistry(
		session.WithIdleTTL(time.Hour),
		session.WithClock(func() time.Time { return now }),
	)
	r.Lesson("abandoned")

	now = now.Add(2 * time.Hour)
	r.Lesson("new")

	assert.Equal(t, 1, r.Len())
}
