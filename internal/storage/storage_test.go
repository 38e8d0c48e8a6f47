package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"musicstore/internal/database"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	gormKV, err := NewGormKV(db)
	require.NoError(t, err)

	boltKV, err := OpenBolt(filepath.Join(t.TempDir(), "store.bolt"))
	require.NoError(t, err)

	kvs := map[string]KV{
		"memory": NewMemoryKV(),
		"gorm":   gormKV,
		"bolt":   boltKV,
	}
	t.Cleanup(func() {
		for _, kv := range kvs {
			_ = kv.Close()
		}
	})
	return kvs
}

func TestKV_RoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := kv.Get(ctx, "musicstore.tutors")
			assert.ErrorIs(t, err, ErrKeyNotFound)

			require.NoError(t, kv.Put(ctx, "musicstore.tutors", []byte(`[{"id":"1"}]`)))
			got, err := kv.Get(ctx, "musicstore.tutors")
			require.NoError(t, err)
			assert.JSONEq(t, `[{"id":"1"}]`, string(got))

			// overwrite keeps a single entry
			require.NoError(t, kv.Put(ctx, "musicstore.tutors", []byte(`[]`)))
			require.NoError(t, kv.Put(ctx, "musicstore.news", []byte(`[]`)))
			keys, err := kv.Keys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"musicstore.news", "musicstore.tutors"}, keys)

			require.NoError(t, kv.Delete(ctx, "musicstore.tutors"))
			_, err = kv.Get(ctx, "musicstore.tutors")
			assert.ErrorIs(t, err, ErrKeyNotFound)
		})
	}
}

func TestMemoryKV_CopiesValues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	buf := []byte("abc")
	require.NoError(t, kv.Put(ctx, "k", buf))
	buf[0] = 'x'

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(Options{Driver: "redis"})
	assert.Error(t, err)
}

func TestOpen_Memory(t *testing.T) {
	kv, err := Open(Options{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryKV{}, kv)
}
