package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/bengalibuddy/internal/db"
)

func TestOpen_AppliesMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	database, err := db.Open("file:" + path)
	require.NoError(t, err)
	defer database.Close()

	var n int
	err = database.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = database.Exec(`INSERT INTO kv_entries (key, value) VALUES (?, ?)`, "k", []byte("1"))
	assert.NoError(t, err)
	assert.NoError(t, database.Ping(context.Background()))
}

func TestMigrate_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	first, err := db.Open("file:" + path)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background(), first.DB))
	require.NoError(t, first.Close())

	second, err := db.Open("file:" + path)
	require.NoError(t, err)
	defer second.Close()

	var n int
	require.NoError(t, second.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n))
	assert.Equal(t, 2, n)
}
