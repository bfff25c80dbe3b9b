package server

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ghazali-project/ihya/pkg/config"
	"github.com/ghazali-project/ihya/pkg/db"
	"github.com/ghazali-project/ihya/pkg/dictionary"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenStore builds the dictionary backend selected by cfg.Mode. The returned
// closer releases the database in sqlite mode; cache is nil unless the
// backend is sharded.
func OpenStore(cfg config.DictionaryConfig, logger *slog.Logger) (store dictionary.Store, cache *dictionary.ShardCache, closer io.Closer, err error) {
	switch cfg.Mode {
	case config.ModeSharded, "":
		cache, err = dictionary.NewShardCache(cfg.CacheShards)
		if err != nil {
			return nil, nil, nil, err
		}
		return dictionary.NewShardedStore(cfg.ShardDir, cache, logger), cache, nopCloser{}, nil
	case config.ModeMonolithic:
		m, err := dictionary.NewMonolithicStore(cfg.IndexFile, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		return m, nil, nopCloser{}, nil
	case config.ModeSQLite:
		conn, err := db.Open(cfg.DatabasePath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open lexicon database: %w", err)
		}
		ls := db.NewLexiconStore(conn)
		return ls, nil, ls, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown dictionary mode %q", cfg.Mode)
	}
}
