package sqlite_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/bengalibuddy/internal/store"
	"github.com/vytor/bengalibuddy/internal/store/sqlite"
	"github.com/vytor/bengalibuddy/internal/testutil"
)

type KVStoreSuite struct {
	suite.Suite
	db    *sql.DB
	store store.Store
}

func (s *KVStoreSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.store = sqlite.NewStore(s.db)
}

func (s *KVStoreSuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *KVStoreSuite) TestGetMissing() {
	_, err := s.store.Get(context.Background(), "nope")
	s.Assert().ErrorIs(err, store.ErrNotFound)
}

func (s *KVStoreSuite) TestSetAndOverwrite() {
	ctx := context.Background()

	s.Require().NoError(s.store.Set(ctx, "k", []byte(`{"a":1}`)))
	s.Require().NoError(s.store.Set(ctx, "k", []byte(`{"a":2}`)))

	v, err := s.store.Get(ctx, "k")
	s.Require().NoError(err)
	s.Assert().JSONEq(`{"a":2}`, string(v))

	var n int
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv_entries`).Scan(&n))
	s.Assert().Equal(1, n)
}

func (s *KVStoreSuite) TestSetEmptyValue() {
	ctx := context.Background()
	s.Require().NoError(s.store.Set(ctx, "k", nil))

	v, err := s.store.Get(ctx, "k")
	s.Require().NoError(err)
	s.Assert().Empty(v)
}

func (s *KVStoreSuite) TestUpdateCreatesAndIncrements() {
	ctx := context.Background()
	incr := func(cur []byte, found bool) ([]byte, error) {
		n := 0
		if found {
			s.Require().NoError(json.Unmarshal(cur, &n))
		}
		return json.Marshal(n + 1)
	}

	s.Require().NoError(s.store.Update(ctx, "n", incr))
	s.Require().NoError(s.store.Update(ctx, "n", incr))

	n, err := store.TryLoad[int](ctx, s.store, "n")
	s.Require().NoError(err)
	s.Assert().Equal(2, n)
}

func (s *KVStoreSuite) TestUpdateRollsBackOnError() {
	ctx := context.Background()
	s.Require().NoError(s.store.Set(ctx, "k", []byte("1")))

	err := s.store.Update(ctx, "k", func([]byte, bool) ([]byte, error) {
		return nil, errors.New("boom")
	})
	s.Assert().EqualError(err, "boom")

	v, err := s.store.Get(ctx, "k")
	s.Require().NoError(err)
	s.Assert().Equal("1", string(v))
}

func (s *KVStoreSuite) TestConcurrentUpdates() {
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.Update(ctx, "n", func(cur []byte, found bool) ([]byte, error) {
				n := 0
				if found {
					if err := json.Unmarshal(cur, &n); err != nil {
						return nil, err
					}
				}
				return json.Marshal(n + 1)
			})
			s.Assert().NoError(err)
		}()
	}
	wg.Wait()

	n, err := store.TryLoad[int](ctx, s.store, "n")
	s.Require().NoError(err)
	s.Assert().Equal(20, n)
}

func (s *KVStoreSuite) TestDeviceScoping() {
	ctx := context.Background()
	a := store.ForDevice(s.store, "dev-a")
	s.Require().NoError(a.Set(ctx, store.KeyStreak, []byte("4")))

	var key string
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT key FROM kv_entries`).Scan(&key))
	s.Assert().Equal("device/dev-a/bengali-buddy:streak", key)
}

func TestKVStoreSuite(t *testing.T) {
	suite.Run(t, new(KVStoreSuite))
}
