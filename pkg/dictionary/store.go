package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Store resolves one exact headword.
type Store interface {
	Definition(ctx context.Context, word string) (string, bool, error)
}

// errShardMissing marks a shard file that does not exist.
var errShardMissing = errors.New("shard missing")

// readShard makes a single read attempt; absence is reported as errShardMissing.
func readShard(path string) (Shard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errShardMissing
		}
		return nil, fmt.Errorf("read shard %s: %w", path, err)
	}
	var s Shard
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse shard %s: %w", path, err)
	}
	if s == nil {
		s = Shard{}
	}
	return s, nil
}

// ShardedStore serves headwords from a directory of per-letter shard files.
type ShardedStore struct {
	dir    string
	cache  *ShardCache
	logger *slog.Logger
}

// NewShardedStore creates a store over dir using cache for resident shards.
func NewShardedStore(dir string, cache *ShardCache, logger *slog.Logger) *ShardedStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShardedStore{dir: dir, cache: cache, logger: logger}
}

// Cache exposes the shard cache, mainly for health reporting.
func (s *ShardedStore) Cache() *ShardCache { return s.cache }

// Definition looks word up in its shard. Missing or malformed shards read as
// "not found"; malformed ones are logged.
func (s *ShardedStore) Definition(ctx context.Context, word string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	name := ShardName(word)
	shard, err := s.cache.Get(name, func() (Shard, error) {
		return readShard(filepath.Join(s.dir, name))
	})
	if err != nil {
		if !errors.Is(err, errShardMissing) {
			s.logger.WarnContext(ctx, "dictionary shard unavailable",
				slog.String("shard", name),
				slog.Any("error", err),
			)
		}
		return "", false, nil
	}
	def, ok := shard[word]
	return def, ok, nil
}

// MonolithicStore serves headwords from one global index file, loaded on first use.
type MonolithicStore struct {
	path   string
	cache  *ShardCache
	logger *slog.Logger
}

// NewMonolithicStore creates a store over the index file at path.
func NewMonolithicStore(path string, logger *slog.Logger) (*MonolithicStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cache, err := NewShardCache(1)
	if err != nil {
		return nil, err
	}
	return &MonolithicStore{path: path, cache: cache, logger: logger}, nil
}

// Definition looks word up in the global index.
func (m *MonolithicStore) Definition(ctx context.Context, word string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	index, err := m.cache.Get(m.path, func() (Shard, error) {
		return readShard(m.path)
	})
	if err != nil {
		if !errors.Is(err, errShardMissing) {
			m.logger.WarnContext(ctx, "dictionary index unavailable",
				slog.String("path", m.path),
				slog.Any("error", err),
			)
		}
		return "", false, nil
	}
	def, ok := index[word]
	return def, ok, nil
}
