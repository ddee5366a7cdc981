package sqldoc

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"petcare/internal/ports/docstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	profile = "artifacts/app/users/u1/profile/data"
	animals = "artifacts/app/users/u1/animals"
)

func newSQLiteStore(t *testing.T) *Store {
	t.Helper()

	db, err := Open(SQLite, filepath.Join(t.TempDir(), "petcare.db"))
	require.NoError(t, err)
	require.NoError(t, Migrate(context.Background(), db, SQLite))

	s := New(db, SQLite, WithPollInterval(10*time.Millisecond))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRebind(t *testing.T) {
	assert.Equal(t, "a = $1 AND b = $2", Postgres.rebind("a = ? AND b = ?"))
	assert.Equal(t, "a = ? AND b = ?", SQLite.rebind("a = ? AND b = ?"))
}

func TestDialectByName(t *testing.T) {
	d, err := DialectByName("Postgres")
	require.NoError(t, err)
	assert.Equal(t, Postgres.Name, d.Name)

	d, err = DialectByName("sqlite3")
	require.NoError(t, err)
	assert.Equal(t, SQLite.Name, d.Name)

	_, err = DialectByName("mysql")
	assert.Error(t, err)
}

func TestCodec_RoundTripKeepsTypes(t *testing.T) {
	ts := time.Date(2025, 3, 1, 10, 30, 0, 123, time.UTC)
	raw, err := encodeData(map[string]any{
		"name":         "Milo",
		"lastHNNumber": int64(7),
		"weight":       4.5,
		"timestamp":    ts,
	})
	require.NoError(t, err)

	got, err := decodeData(raw)
	require.NoError(t, err)
	assert.Equal(t, "Milo", got["name"])
	assert.Equal(t, int64(7), got["lastHNNumber"])
	assert.Equal(t, 4.5, got["weight"])
	assert.True(t, ts.Equal(got["timestamp"].(time.Time)))
}

func TestStore_SQLite_CRUD(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	_, err := s.Get(ctx, profile)
	require.ErrorIs(t, err, docstore.ErrNotFound)

	require.NoError(t, s.Set(ctx, profile, map[string]any{"email": "a@b.c", "lastHNNumber": int64(0)}))
	require.NoError(t, s.Update(ctx, profile, map[string]any{"role": "user"}))

	doc, err := s.Get(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, "data", doc.ID)
	assert.Equal(t, "a@b.c", doc.Data["email"])
	assert.Equal(t, "user", doc.Data["role"])

	// Set sobre un path existente reemplaza
	require.NoError(t, s.Set(ctx, profile, map[string]any{"email": "z@b.c"}))
	doc, err = s.Get(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, "z@b.c", doc.Data["email"])
	assert.NotContains(t, doc.Data, "role")

	err = s.Update(ctx, "artifacts/app/users/u9/profile/data", map[string]any{"x": 1})
	assert.ErrorIs(t, err, docstore.ErrNotFound)

	_, err = s.Add(ctx, "artifacts/app/users/u1", nil)
	assert.ErrorIs(t, err, docstore.ErrInvalidPath)
}

func TestStore_SQLite_CreateDoesNotOverwrite(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	require.NoError(t, s.Create(ctx, profile, map[string]any{"lastHNNumber": int64(0)}))
	ok, err := s.CompareAndSet(ctx, profile, "lastHNNumber", 0, 3)
	require.NoError(t, err)
	require.True(t, ok)

	assert.ErrorIs(t, s.Create(ctx, profile, map[string]any{"lastHNNumber": int64(0)}), docstore.ErrExists)
	doc, err := s.Get(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, int64(3), doc.Data["lastHNNumber"])
}

func TestStore_SQLite_ListPushesDownEquality(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	for i, hn := range []string{"HN-AAAA-0001", "HN-AAAA-0002", "HN-AAAA-0003"} {
		_, err := s.Add(ctx, animals, map[string]any{"hn": hn, "order": int64(i)})
		require.NoError(t, err)
	}
	_, err := s.Add(ctx, "artifacts/app/users/u2/animals", map[string]any{"hn": "HN-AAAA-0002"})
	require.NoError(t, err)

	docs, err := s.List(ctx, animals, docstore.Query{Field: "hn", Value: "HN-AAAA-0002"})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "HN-AAAA-0002", docs[0].Data["hn"])

	docs, err = s.List(ctx, animals, docstore.Query{OrderBy: "order", Direction: docstore.Desc, Limit: 2})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "HN-AAAA-0003", docs[0].Data["hn"])
	assert.Equal(t, "HN-AAAA-0002", docs[1].Data["hn"])
}

func TestStore_SQLite_CompareAndSet(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	_, err := s.CompareAndSet(ctx, profile, "lastHNNumber", 0, 1)
	require.ErrorIs(t, err, docstore.ErrNotFound)

	require.NoError(t, s.Set(ctx, profile, map[string]any{"email": "a@b.c"}))

	ok, err := s.CompareAndSet(ctx, profile, "lastHNNumber", 0, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.CompareAndSet(ctx, profile, "lastHNNumber", 0, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.CompareAndSet(ctx, profile, "lastHNNumber", 1, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	doc, err := s.Get(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, int64(2), doc.Data["lastHNNumber"])
	assert.Equal(t, "a@b.c", doc.Data["email"])
}

func TestStore_SQLite_ConcurrentCASNeverSharesAValue(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)
	require.NoError(t, s.Set(ctx, profile, map[string]any{"lastHNNumber": int64(0)}))

	const writers = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = map[int64]bool{}
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				doc, err := s.Get(ctx, profile)
				if err != nil {
					t.Errorf("get: %v", err)
					return
				}
				cur, _ := docstore.Int64(doc.Data["lastHNNumber"])
				ok, err := s.CompareAndSet(ctx, profile, "lastHNNumber", cur, cur+1)
				if err != nil {
					t.Errorf("cas: %v", err)
					return
				}
				if ok {
					mu.Lock()
					seen[cur+1] = true
					mu.Unlock()
					return
				}
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, writers)
}

func TestStore_SQLite_WatchEmitsOnChange(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	sub, err := s.Watch(ctx, animals, docstore.Query{OrderBy: "name"})
	require.NoError(t, err)
	defer sub.Close()

	first := receive(t, sub)
	assert.Empty(t, first)

	_, err = s.Add(ctx, animals, map[string]any{"name": "Milo"})
	require.NoError(t, err)

	snap := receive(t, sub)
	require.Len(t, snap, 1)
	assert.Equal(t, "Milo", snap[0].Data["name"])

	sub.Close()
	sub.Close()
	_, ok := <-sub.Snapshots()
	assert.False(t, ok)
	assert.NoError(t, sub.Err())
}

func TestStore_SQLite_WatchEndsOnContextCancel(t *testing.T) {
	s := newSQLiteStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := s.Watch(ctx, animals, docstore.Query{})
	require.NoError(t, err)
	_ = receive(t, sub)

	cancel()
	select {
	case _, ok := <-sub.Snapshots():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription not closed after cancel")
	}
	sub.Close()
}

func receive(t *testing.T, sub docstore.Subscription) []docstore.Document {
	t.Helper()
	select {
	case snap, ok := <-sub.Snapshots():
		require.True(t, ok, "subscription closed")
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for snapshot")
		return nil
	}
}
