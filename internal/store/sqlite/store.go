// Package sqlite implements store.Store on the kv_entries table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/bengalibuddy/internal/logger"
	"github.com/vytor/bengalibuddy/internal/store"
)

const table = "kv_entries"

type kvStore struct {
	db *sql.DB
}

// NewStore returns a Store backed by db. The caller owns db.
func NewStore(db *sql.DB) store.Store {
	return &kvStore{db: db}
}

func (s *kvStore) Get(ctx context.Context, key string) ([]byte, error) {
	return get(ctx, s.db, key)
}

func (s *kvStore) Set(ctx context.Context, key string, value []byte) error {
	return set(ctx, s.db, key, value)
}

func (s *kvStore) Update(ctx context.Context, key string, fn store.UpdateFunc) error {
	return tx(ctx, s.db, func(tx *sql.Tx) error {
		cur, err := get(ctx, tx, key)
		found := err == nil
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
		next, err := fn(cur, found)
		if err != nil {
			return err
		}
		return set(ctx, tx, key, next)
	})
}

func get(ctx context.Context, q execer, key string) ([]byte, error) {
	log := logger.FromContext(ctx).WithPrefix("kv_store")

	query, args, err := sqlBuilder.Select("value").From(table).Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var value []byte
	err = q.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("key not found: %s", key)
		return nil, store.ErrNotFound
	}
	if err != nil {
		log.Error("failed to read key %s: %v", key, err)
		return nil, err
	}
	return value, nil
}

func set(ctx context.Context, q execer, key string, value []byte) error {
	log := logger.FromContext(ctx).WithPrefix("kv_store")
	log.Debug("writing key %s (%d bytes)", key, len(value))
	if value == nil {
		value = []byte{}
	}

	query, args, err := sqlBuilder.Insert(table).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to write key %s: %v", key, err)
		return err
	}
	return nil
}
