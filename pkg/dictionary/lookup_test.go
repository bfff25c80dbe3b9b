package dictionary

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapStore is an in-memory Store that records which words were asked for.
type mapStore struct {
	defs  map[string]string
	err   error
	asked []string
}

func (m *mapStore) Definition(_ context.Context, word string) (string, bool, error) {
	m.asked = append(m.asked, word)
	if m.err != nil {
		return "", false, m.err
	}
	d, ok := m.defs[word]
	return d, ok, nil
}

func TestCandidates(t *testing.T) {
	tests := []struct {
		term string
		want []string
	}{
		{"وكتاب", []string{"كتاب"}},
		{"الكتاب", []string{"كتاب"}},
		{"بالقلم", []string{"القلم"}},
		{"لله", nil},  // stem would be two letters
		{"ولد", nil},  // same
		{"book", nil}, // no Arabic at all
		{"كتب", nil},  // no clitic
		{"فكتب", []string{"كتب"}},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, Candidates(tt.term))
		})
	}
}

func TestLookup_Exact(t *testing.T) {
	store := &mapStore{defs: map[string]string{"كتاب": "الكتاب معروف"}}
	svc := NewService(store, nil)

	res, err := svc.Lookup(context.Background(), "  كتاب ")
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, "كتاب", res.Term)
	assert.Equal(t, "كتاب", res.Headword)
	assert.Equal(t, "الكتاب معروف", res.Definition)
	assert.Equal(t, []string{"كتاب"}, store.asked)
}

func TestLookup_PrefixFallback(t *testing.T) {
	store := &mapStore{defs: map[string]string{"كتاب": "الكتاب معروف"}}
	svc := NewService(store, nil)

	res, err := svc.Lookup(context.Background(), "وكتاب")
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, "وكتاب", res.Term)
	assert.Equal(t, "كتاب", res.Headword)
	assert.Equal(t, "الكتاب معروف", res.Definition)
}

func TestLookup_ExactWinsOverFallback(t *testing.T) {
	store := &mapStore{defs: map[string]string{
		"والد": "الأب",
		"الد":  "wrong",
	}}
	res, err := NewService(store, nil).Lookup(context.Background(), "والد")
	require.NoError(t, err)
	assert.Equal(t, "الأب", res.Definition)
	assert.Equal(t, []string{"والد"}, store.asked)
}

func TestLookup_NotFound(t *testing.T) {
	store := &mapStore{defs: map[string]string{}}
	res, err := NewService(store, nil).Lookup(context.Background(), "xyz")
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Empty(t, res.Definition)
	// Non-Arabic terms never try the clitic fallback.
	assert.Equal(t, []string{"xyz"}, store.asked)
}

func TestLookup_EmptyDefinitionIsNotFound(t *testing.T) {
	store := &mapStore{defs: map[string]string{"كتاب": ""}}
	res, err := NewService(store, nil).Lookup(context.Background(), "كتاب")
	require.NoError(t, err)
	assert.False(t, res.Found)
}

func TestLookup_EmptyTerm(t *testing.T) {
	_, err := NewService(&mapStore{}, nil).Lookup(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyTerm)
}

func TestLookup_StoreError(t *testing.T) {
	boom := errors.New("disk on fire")
	_, err := NewService(&mapStore{err: boom}, nil).Lookup(context.Background(), "كتاب")
	assert.ErrorIs(t, err, boom)
}

func writeTestShards(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := WriteShards(dir, Shard{
		"كتاب":  "الكتاب معروف",
		"قلم":   "القلم الذي يكتب به",
		"hello": "greeting",
	})
	require.NoError(t, err)
	return dir
}

func TestShardedStore_Lookup(t *testing.T) {
	dir := writeTestShards(t)
	cache, err := NewShardCache(2)
	require.NoError(t, err)
	svc := NewService(NewShardedStore(dir, cache, nil), nil)
	ctx := context.Background()

	res, err := svc.Lookup(ctx, "وكتاب")
	require.NoError(t, err)
	assert.Equal(t, "الكتاب معروف", res.Definition)

	res, err = svc.Lookup(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, "greeting", res.Definition)
	assert.True(t, cache.Contains(OtherShard))
}

func TestShardedStore_MissingShard(t *testing.T) {
	cache, err := NewShardCache(2)
	require.NoError(t, err)
	store := NewShardedStore(t.TempDir(), cache, nil)

	def, ok, err := store.Definition(context.Background(), "كتاب")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, def)
	assert.Zero(t, cache.Len())
}

func TestShardedStore_MalformedShard(t *testing.T) {
	dir := t.TempDir()
	name := ShardName("كتاب")
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{not json"), 0o644))

	cache, err := NewShardCache(2)
	require.NoError(t, err)
	store := NewShardedStore(dir, cache, nil)

	_, ok, err := store.Definition(context.Background(), "كتاب")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, cache.Contains(name), "a malformed shard must not be cached")

	// Once the file is fixed the next lookup succeeds.
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(`{"كتاب":"ok"}`), 0o644))
	def, ok, err := store.Definition(context.Background(), "كتاب")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ok", def)
}

func TestShardedStore_CanceledContext(t *testing.T) {
	cache, err := NewShardCache(1)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = NewShardedStore(t.TempDir(), cache, nil).Definition(ctx, "كتاب")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMonolithicStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index", "dictionary_index.json")
	require.NoError(t, WriteIndex(path, Shard{"كتاب": "الكتاب معروف"}))

	store, err := NewMonolithicStore(path, nil)
	require.NoError(t, err)
	res, err := NewService(store, nil).Lookup(context.Background(), "الكتاب")
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, "كتاب", res.Headword)

	missing, err := NewMonolithicStore(filepath.Join(t.TempDir(), "none.json"), nil)
	require.NoError(t, err)
	_, ok, err := missing.Definition(context.Background(), "كتاب")
	require.NoError(t, err)
	assert.False(t, ok)
}
