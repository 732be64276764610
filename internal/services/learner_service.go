package services

import (
	"context"
	stderrors "errors"
	"math/rand/v2"
	"sync"

	"github.com/vytor/bengalibuddy/internal/catalog"
	"github.com/vytor/bengalibuddy/internal/errors"
	"github.com/vytor/bengalibuddy/internal/lesson"
	"github.com/vytor/bengalibuddy/internal/logger"
	"github.com/vytor/bengalibuddy/internal/mastery"
	"github.com/vytor/bengalibuddy/internal/models"
	"github.com/vytor/bengalibuddy/internal/prefs"
	"github.com/vytor/bengalibuddy/internal/session"
	"github.com/vytor/bengalibuddy/internal/store"
)

// LearnerService is everything the web layer needs, scoped by device ID.
type LearnerService interface {
	Topics(ctx context.Context) []models.TopicSummary
	Items(ctx context.Context, topic string) ([]models.Item, error)
	Item(ctx context.Context, id string) (models.Item, error)
	NewRound(ctx context.Context, topic string, size int) ([]models.Question, error)

	StartLesson(ctx context.Context, deviceID, topic string, size int) (*models.QuestionView, error)
	CurrentQuestion(ctx context.Context, deviceID string) (*models.QuestionView, error)
	Answer(ctx context.Context, deviceID, optionID string) (*models.AnswerResult, error)

	Progress(ctx context.Context, deviceID string) []models.TopicProgress
	RecordAnswer(ctx context.Context, deviceID, itemID string, correct bool) error
	Accuracy(ctx context.Context, deviceID, itemID string) (pct int, ok bool)

	Preferences(ctx context.Context, deviceID string) models.Preferences
	SavePreferences(ctx context.Context, deviceID string, p models.Preferences) error
	TogglePreference(ctx context.Context, deviceID, name string) (models.Preferences, error)
	Streak(ctx context.Context, deviceID string) int
	IncrementStreak(ctx context.Context, deviceID string) (int, error)
}

type learnerService struct {
	catalog   *catalog.Catalog
	store     store.Store
	sessions  *session.Registry
	roundSize int

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewLearnerService wires the core components. base is scoped per device on each call.
func NewLearnerService(c *catalog.Catalog, base store.Store, rng *rand.Rand, roundSize int) LearnerService {
	if roundSize <= 0 {
		roundSize = lesson.DefaultRoundSize
	}
	return &learnerService{
		catalog:   c,
		store:     base,
		sessions:  session.NewRegistry(),
		roundSize: roundSize,
		rng:       rng,
	}
}

func (s *learnerService) tracker(deviceID string) *mastery.Tracker {
	return mastery.NewTracker(store.ForDevice(s.store, deviceID))
}

func (s *learnerService) prefs(deviceID string) *prefs.Store {
	return prefs.NewStore(store.ForDevice(s.store, deviceID))
}

func (s *learnerService) Topics(ctx context.Context) []models.TopicSummary {
	return s.catalog.Summaries()
}

func (s *learnerService) Items(ctx context.Context, topic string) ([]models.Item, error) {
	if topic == "" {
		return s.catalog.Items(), nil
	}
	if !s.catalog.HasTopic(topic) {
		return nil, errors.NewNotFoundError("topic", topic)
	}
	return s.catalog.ItemsByTopic(topic), nil
}

func (s *learnerService) Item(ctx context.Context, id string) (models.Item, error) {
	it, ok := s.catalog.Item(id)
	if !ok {
		return models.Item{}, errors.NewNotFoundError("item", id)
	}
	return it, nil
}

func (s *learnerService) NewRound(ctx context.Context, topic string, size int) ([]models.Question, error) {
	items, err := s.Items(ctx, topic)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		size = s.roundSize
	}
	if size < 0 {
		return nil, errors.NewValidationError("size", "must not be negative")
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return lesson.MakeRound(items, size, s.rng), nil
}

func (s *learnerService) StartLesson(ctx context.Context, deviceID, topic string, size int) (*models.QuestionView, error) {
	log := logger.FromContext(ctx).WithFields(map[string]any{"device": deviceID, "topic": topic})
	if topic == "" {
		return nil, errors.NewValidationError("topic", "required")
	}

	round, err := s.NewRound(ctx, topic, size)
	if err != nil {
		return nil, err
	}
	l := s.sessions.Lesson(deviceID)
	l.Start(topic, round)
	if len(round) == 0 {
		s.sessions.Release(deviceID, l)
	}
	log.Info("lesson started with %d questions", len(round))

	return s.CurrentQuestion(ctx, deviceID)
}

func (s *learnerService) CurrentQuestion(ctx context.Context, deviceID string) (*models.QuestionView, error) {
	l, found := s.sessions.Get(deviceID)
	if !found {
		return nil, nil
	}
	q, idx, length, ok := l.Current()
	if !ok {
		return nil, nil
	}
	return &models.QuestionView{
		Topic:       l.Topic(),
		Position:    idx + 1,
		Length:      length,
		Question:    q,
		Preferences: s.Preferences(ctx, deviceID),
	}, nil
}

// Answer advances the device's lesson. Persistence failures are logged and
// do not fail the answer.
func (s *learnerService) Answer(ctx context.Context, deviceID, optionID string) (*models.AnswerResult, error) {
	log := logger.FromContext(ctx).WithFields(map[string]any{"device": deviceID, "option": optionID})
	l, found := s.sessions.Get(deviceID)
	if !found {
		return nil, errors.NewConflictError("no lesson in progress", session.ErrNotInRound)
	}

	out, err := l.Submit(optionID)
	switch {
	case stderrors.Is(err, session.ErrNotInRound):
		return nil, errors.NewConflictError("no lesson in progress", err)
	case stderrors.Is(err, session.ErrUnknownOption):
		return nil, errors.NewValidationError("option", "not an option of the current question")
	case err != nil:
		return nil, errors.NewInternalError(err)
	}

	if err := s.tracker(deviceID).RecordAnswer(ctx, out.Question.Target.ID, out.Correct); err != nil {
		log.Warn("failed to record answer: %v", err)
	}

	p := s.prefs(deviceID)
	res := &models.AnswerResult{
		Correct:   out.Correct,
		TargetID:  out.Question.Target.ID,
		Completed: out.Completed,
	}
	if out.Completed {
		s.sessions.Release(deviceID, l)
		res.Score = out.Score
		res.Total = out.Total
		streak, err := p.IncrementStreak(ctx)
		if err != nil {
			log.Warn("failed to increment streak: %v", err)
			streak = p.LoadStreak(ctx)
		}
		res.Streak = streak
		log.Info("lesson completed: %d/%d, streak=%d", res.Score, res.Total, streak)
	} else {
		res.Streak = p.LoadStreak(ctx)
	}
	return res, nil
}

func (s *learnerService) Progress(ctx context.Context, deviceID string) []models.TopicProgress {
	records := s.tracker(deviceID).Records(ctx)
	out := make([]models.TopicProgress, 0, len(s.catalog.Topics()))
	for _, topic := range s.catalog.Topics() {
		tp := models.TopicProgress{Topic: topic}
		for _, it := range s.catalog.ItemsByTopic(topic) {
			rec := records[it.ID]
			pct, ok := rec.Accuracy()
			tp.Items = append(tp.Items, models.ItemProgress{Item: it, Record: rec, Accuracy: pct, HasData: ok})
		}
		out = append(out, tp)
	}
	return out
}

func (s *learnerService) RecordAnswer(ctx context.Context, deviceID, itemID string, correct bool) error {
	if itemID == "" {
		return errors.NewValidationError("item", "required")
	}
	return s.tracker(deviceID).RecordAnswer(ctx, itemID, correct)
}

func (s *learnerService) Accuracy(ctx context.Context, deviceID, itemID string) (int, bool) {
	return s.tracker(deviceID).Accuracy(ctx, itemID)
}

func (s *learnerService) Preferences(ctx context.Context, deviceID string) models.Preferences {
	return s.prefs(deviceID).LoadPreferences(ctx)
}

func (s *learnerService) SavePreferences(ctx context.Context, deviceID string, p models.Preferences) error {
	return s.prefs(deviceID).SavePreferences(ctx, p)
}

func (s *learnerService) TogglePreference(ctx context.Context, deviceID, name string) (models.Preferences, error) {
	return s.prefs(deviceID).TogglePreference(ctx, name)
}

func (s *learnerService) Streak(ctx context.Context, deviceID string) int {
	return s.prefs(deviceID).LoadStreak(ctx)
}

func (s *learnerService) IncrementStreak(ctx context.Context, deviceID string) (int, error) {
	return s.prefs(deviceID).IncrementStreak(ctx)
}
