package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runStoreContract(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("Missing key", func(t *testing.T) {
		v, ok, err := s.Get(ctx, "if-tracker-log-2026-01-01")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("Put then Get", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "if-tracker-log-2026-01-02", []byte(`{"date":"2026-01-02","foods":[]}`)))
		v, ok, err := s.Get(ctx, "if-tracker-log-2026-01-02")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.JSONEq(t, `{"date":"2026-01-02","foods":[]}`, string(v))
	})

	t.Run("Put replaces", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "profile", []byte(`{"age":30}`)))
		require.NoError(t, s.Put(ctx, "profile", []byte(`{"age":31}`)))
		v, ok, err := s.Get(ctx, "profile")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `{"age":31}`, string(v))
	})

	t.Run("Keys by prefix", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "if-tracker-log-2026-01-03", []byte(`{}`)))
		keys, err := s.Keys(ctx, "if-tracker-log-")
		require.NoError(t, err)
		assert.Equal(t, []string{"if-tracker-log-2026-01-02", "if-tracker-log-2026-01-03"}, keys)
	})

	t.Run("Blank key rejected", func(t *testing.T) {
		assert.Error(t, s.Put(ctx, "  ", []byte(`{}`)))
		_, _, err := s.Get(ctx, "")
		assert.Error(t, err)
	})
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	runStoreContract(t, s)
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	s := NewMemoryStore()
	buf := []byte(`{"a":1}`)
	require.NoError(t, s.Put(context.Background(), "k", buf))
	buf[2] = 'b'

	v, _, err := s.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(v))
}

func TestSQLStore(t *testing.T) {
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "nested", "ifcalc.db"))
	require.NoError(t, err)
	defer s.Close()
	runStoreContract(t, s)
}

func TestSQLStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ifcalc.db")
	ctx := context.Background()

	s, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "if-tracker-log-2026-02-20", []byte(`{"date":"2026-02-20"}`)))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	defer reopened.Close()
	v, ok, err := reopened.Get(ctx, "if-tracker-log-2026-02-20")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"date":"2026-02-20"}`, string(v))
}

func TestOpenSelectsBackend(t *testing.T) {
	s, err := Open(context.Background(), app.Config{Store: app.StoreMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(context.Background(), app.Config{Store: app.StoreSQLite, DBPath: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &SQLStore{}, s)

	_, err = Open(context.Background(), app.Config{Store: "etcd"})
	assert.Error(t, err)
}

func TestRedisStore_Integration(t *testing.T) {
	addr := os.Getenv("IFCALC_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client, err := NewRedisClient(addr, os.Getenv("IFCALC_REDIS_PASSWORD"), 15)
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	ctx := context.Background()
	require.NoError(t, client.FlushDB(ctx).Err(), "Failed to flush test DB")

	s := NewRedisStore(client)
	defer s.Close()
	runStoreContract(t, s)
}

func TestScanPatternEscapesGlob(t *testing.T) {
	assert.Equal(t, "ifcalc:*", scanPattern(""))
	assert.Equal(t, "ifcalc:config-*", scanPattern("config-"))
	assert.Equal(t, `ifcalc:a\*b\?c\[d\]e\\f*`, scanPattern(`a*b?c[d]e\f`))
}
