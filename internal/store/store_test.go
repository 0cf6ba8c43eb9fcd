package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the shared contract every backend must satisfy.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save(ctx, []byte(`{"name":"Ada"}`)))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ada"}`, string(got))

	require.NoError(t, s.Save(ctx, []byte(`{"name":"Grace"}`)))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Grace"}`, string(got))

	require.NoError(t, s.Close())
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	m := NewMemoryWith([]byte(`{"a":1}`))
	b, err := m.Load(context.Background())
	require.NoError(t, err)
	b[0] = 'x'
	b2, _ := m.Load(context.Background())
	assert.Equal(t, `{"a":1}`, string(b2))
}

func TestFileStore(t *testing.T) {
	s, err := NewFile(filepath.Join(t.TempDir(), "nested", "doc.json"))
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestFileStore_RequiresPath(t *testing.T) {
	_, err := NewFile("")
	assert.Error(t, err)
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "resuexpress.db"), DefaultKey)
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestSQLiteStore_KeysAreIsolated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resuexpress.db")
	a, err := NewSQLite(path, "a")
	require.NoError(t, err)
	defer a.Close()
	require.NoError(t, a.Save(context.Background(), []byte(`{"name":"A"}`)))

	b, err := NewSQLite(path, "b")
	require.NoError(t, err)
	defer b.Close()
	_, err = b.Load(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	exerciseStore(t, NewRedis(client, DefaultKey))
	assert.True(t, m.Exists("resuexpress:"+DefaultKey))
}

func TestRedisStore_FromURL(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	s, err := NewRedisFromURL("redis://"+m.Addr(), "k")
	require.NoError(t, err)
	exerciseStore(t, s)

	_, err = NewRedisFromURL("", "k")
	assert.Error(t, err)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), Options{Backend: "tape"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage backend")
}

func TestOpen_DefaultsToMemory(t *testing.T) {
	s, err := Open(context.Background(), Options{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)
}

func TestSequencedWriter_DropsStaleWrites(t *testing.T) {
	mem := NewMemory()
	w := NewSequencedWriter(mem)
	ctx := context.Background()

	first := w.Next()
	second := w.Next()

	ok, err := w.Write(ctx, second, []byte(`{"v":2}`))
	require.NoError(t, err)
	assert.True(t, ok)

	// The earlier snapshot completes late and must not replace the newer one.
	ok, err = w.Write(ctx, first, []byte(`{"v":1}`))
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := mem.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, string(got))
	assert.Equal(t, 1, mem.Saves())
}

type failingStore struct{ MemoryStore }

func (f *failingStore) Save(context.Context, []byte) error { return errors.New("quota exceeded") }

func TestSequencedWriter_FailureDoesNotAdvance(t *testing.T) {
	w := NewSequencedWriter(&failingStore{})
	ok, err := w.Write(context.Background(), w.Next(), []byte(`{}`))
	assert.False(t, ok)
	assert.EqualError(t, err, "quota exceeded")
}

func TestSequencedWriter_ConcurrentWritesKeepNewest(t *testing.T) {
	mem := NewMemory()
	w := NewSequencedWriter(mem)
	ctx := context.Background()

	seqs := make([]uint64, 50)
	for i := range seqs {
		seqs[i] = w.Next()
	}

	var wg sync.WaitGroup
	for i := len(seqs) - 1; i >= 0; i-- {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = w.Write(ctx, seqs[i], []byte{byte('a' + i%26)})
		}(i)
	}
	wg.Wait()

	got, err := mem.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte{byte('a' + 49%26)}, got)
}
