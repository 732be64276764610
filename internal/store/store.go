// Package store is the key-value accessor the mastery tracker and the
// preference store persist through. Values are JSON documents.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/vytor/bengalibuddy/internal/logger"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("store: key not found")

// UpdateFunc receives the current value (found=false on first write) and
// returns the value to store.
type UpdateFunc func(current []byte, found bool) ([]byte, error)

// Store is a namespaced key-value store. Update must be atomic per key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Update(ctx context.Context, key string, fn UpdateFunc) error
}

// ParseError reports a stored value that is not valid JSON for its type.
type ParseError struct {
	Key string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("store: parse %s: %v", e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Decode unmarshals raw into a T. A JSON null decodes to the zero value.
func Decode[T any](key string, raw []byte) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, &ParseError{Key: key, Err: err}
	}
	return v, nil
}

// TryLoad reads and decodes key. It returns ErrNotFound for a missing key
// and a *ParseError for malformed content.
func TryLoad[T any](ctx context.Context, s Store, key string) (T, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		var zero T
		return zero, err
	}
	return Decode[T](key, raw)
}

// LoadOr is TryLoad with any failure replaced by def.
func LoadOr[T any](ctx context.Context, s Store, key string, def T) T {
	v, err := TryLoad[T](ctx, s, key)
	if err != nil {
		logFallback(ctx, key, err)
		return def
	}
	return v
}

// SaveJSON marshals v and writes it under key.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return s.Set(ctx, key, b)
}

func logFallback(ctx context.Context, key string, err error) {
	log := logger.FromContext(ctx).WithPrefix("store")
	var perr *ParseError
	switch {
	case errors.Is(err, ErrNotFound):
		log.Debug("no value for %s, using default", key)
	case errors.As(err, &perr):
		log.Debug("unreadable value for %s, using default: %v", key, perr.Err)
	default:
		log.Warn("failed to read %s, using default: %v", key, err)
	}
}

type prefixed struct {
	base   Store
	prefix string
}

// WithPrefix scopes every key of base under prefix.
func WithPrefix(base Store, prefix string) Store {
	if prefix == "" {
		return base
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &prefixed{base: base, prefix: prefix}
}

// ForDevice scopes base to one device (browser profile).
func ForDevice(base Store, deviceID string) Store {
	return WithPrefix(base, "device/"+deviceID)
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.base.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key string, value []byte) error {
	return p.base.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Update(ctx context.Context, key string, fn UpdateFunc) error {
	return p.base.Update(ctx, p.prefix+key, fn)
}
