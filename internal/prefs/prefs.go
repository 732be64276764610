// Package prefs persists the display toggles and the lesson streak.
package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/vytor/bengalibuddy/internal/errors"
	"github.com/vytor/bengalibuddy/internal/logger"
	"github.com/vytor/bengalibuddy/internal/models"
	"github.com/vytor/bengalibuddy/internal/store"
)

type Store struct {
	store store.Store
}

func NewStore(s store.Store) *Store {
	return &Store{store: s}
}

// LoadPreferences never fails: a missing or unreadable value yields the defaults,
// and fields absent from a stored object keep their default.
func (p *Store) LoadPreferences(ctx context.Context) models.Preferences {
	log := logger.FromContext(ctx).WithPrefix("prefs")
	raw, err := p.store.Get(ctx, store.KeyPrefs)
	if err != nil {
		log.Debug("preferences unavailable, using defaults: %v", err)
		return models.DefaultPreferences()
	}
	return decodePreferences(raw)
}

func decodePreferences(raw []byte) models.Preferences {
	var fields struct {
		Translit *bool `json:"translit"`
		Photos   *bool `json:"photos"`
	}
	out := models.DefaultPreferences()
	if err := json.Unmarshal(raw, &fields); err != nil {
		return out
	}
	if fields.Translit != nil {
		out.Translit = *fields.Translit
	}
	if fields.Photos != nil {
		out.Photos = *fields.Photos
	}
	return out
}

func (p *Store) SavePreferences(ctx context.Context, prefs models.Preferences) error {
	if err := store.SaveJSON(ctx, p.store, store.KeyPrefs, prefs); err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}
	return nil
}

// TogglePreference flips one named flag and persists the result.
func (p *Store) TogglePreference(ctx context.Context, name string) (models.Preferences, error) {
	var out models.Preferences
	err := p.store.Update(ctx, store.KeyPrefs, func(cur []byte, found bool) ([]byte, error) {
		prefs := models.DefaultPreferences()
		if found {
			prefs = decodePreferences(cur)
		}
		switch strings.ToLower(name) {
		case models.PrefTranslit:
			prefs.Translit = !prefs.Translit
		case models.PrefPhotos:
			prefs.Photos = !prefs.Photos
		default:
			return nil, errors.NewValidationError("preference", fmt.Sprintf("unknown preference %q", name))
		}
		out = prefs
		return json.Marshal(prefs)
	})
	if err != nil {
		return models.Preferences{}, err
	}
	return out, nil
}

// LoadStreak returns the completed-round counter; anything unusable reads as 0.
func (p *Store) LoadStreak(ctx context.Context) int {
	raw, err := p.store.Get(ctx, store.KeyStreak)
	if err != nil {
		return 0
	}
	return parseStreak(raw)
}

func parseStreak(raw []byte) int {
	n, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// IncrementStreak adds one completed round and returns the new value.
func (p *Store) IncrementStreak(ctx context.Context) (int, error) {
	var next int
	err := p.store.Update(ctx, store.KeyStreak, func(cur []byte, found bool) ([]byte, error) {
		next = 1
		if found {
			next = parseStreak(cur) + 1
		}
		return []byte(strconv.Itoa(next)), nil
	})
	if err != nil {
		return 0, fmt.Errorf("incrementing streak: %w", err)
	}
	logger.FromContext(ctx).WithPrefix("prefs").Debug("streak is now %d", next)
	return next, nil
}
