package ingest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/ghazali-project/ihya/pkg/db"
	"github.com/ghazali-project/ihya/pkg/dictionary"
)

// WorkerPoolInterface abstracts the worker pool so tests can inject failing implementations.
type WorkerPoolInterface interface {
	Start(ctx context.Context)
	Submit(Job) error
	// SubmitCtx attempts to enqueue a job but returns promptly if ctx is canceled.
	SubmitCtx(ctx context.Context, job Job) error
	Close()
}

// LexiconIngester loads a Lisan al-Arab export into the lexicon table.
// Imports are checkpointed per file, so a rerun after an interruption picks
// up at the first unwritten headword.
type LexiconIngester struct {
	DB        *sql.DB
	BatchSize int
	Workers   int
	Logger    *slog.Logger
	// OnProgress is called with the number of headwords handed to the writer and the total.
	OnProgress func(current, total int)

	// PoolFactory allows tests to inject custom worker pool implementations.
	PoolFactory func(workers, queue int) WorkerPoolInterface
}

// NewLexiconIngester creates an ingester with default batching.
func NewLexiconIngester(conn *sql.DB) *LexiconIngester {
	return &LexiconIngester{
		DB:        conn,
		BatchSize: 500,
		Workers:   4,
		Logger:    slog.Default(),
	}
}

// ImportStats summarises one Import call.
type ImportStats struct {
	Total   int
	Skipped int
	Written int
	Resumed bool
}

// chunk is a contiguous run of headwords, ready to be written.
type chunk struct {
	Seq     int
	End     int
	Entries []db.Entry
}

// Import writes entries into the lexicon under the checkpoint key source.
// Entries are merged with dictionary.BuildIndex first, so duplicate
// headwords end up as one row.
func (ig *LexiconIngester) Import(ctx context.Context, source string, entries []dictionary.LisanEntry) (ImportStats, error) {
	logger := ig.Logger
	if logger == nil {
		logger = slog.Default()
	}
	batchSize := ig.BatchSize
	if batchSize <= 0 {
		batchSize = 500
	}
	workers := ig.Workers
	if workers <= 0 {
		workers = 1
	}

	if err := ctx.Err(); err != nil {
		return ImportStats{}, err
	}

	index := dictionary.BuildIndex(entries)
	words := make([]string, 0, len(index))
	for w := range index {
		words = append(words, w)
	}
	sort.Strings(words)

	stats := ImportStats{Total: len(words)}
	imp, err := db.CreateOrGetImport(ig.DB, source, len(words))
	if err != nil {
		return stats, fmt.Errorf("register import: %w", err)
	}
	if imp.Completed {
		logger.InfoContext(ctx, "lexicon already imported", slog.String("source", source))
		stats.Skipped = len(words)
		return stats, nil
	}

	start := imp.LastProcessed
	if start > 0 {
		stats.Resumed = true
		stats.Skipped = start
		logger.InfoContext(ctx, "resuming lexicon import",
			slog.String("source", source),
			slog.Int("from", start),
			slog.Int("total", len(words)),
		)
	}
	if start >= len(words) {
		return stats, db.CompleteImport(ig.DB, imp.ID)
	}

	var wp WorkerPoolInterface
	if ig.PoolFactory != nil {
		wp = ig.PoolFactory(workers, workers*2)
	} else {
		wp = NewWorkerPool(workers, workers*2)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bw := NewBatchWriter(ig.DB, 1, 0).WithLogger(logger)
	bw.OnError = func(error) { cancel() }

	resultCh := make(chan chunk, workers*2)
	doneCh := make(chan error, 1)

	// Consumer: restore chunk order, then hand each chunk to the writer
	// together with its checkpoint.
	go func() {
		defer close(doneCh)
		pending := make(map[int]chunk)
		next := 0
		var failed error
		for c := range resultCh {
			if failed != nil {
				continue
			}
			pending[c.Seq] = c
			for {
				item, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				if err := bw.Submit(writeChunk(imp.ID, item)); err != nil {
					failed = err
					cancel()
					break
				}
				stats.Written += len(item.Entries)
				if ig.OnProgress != nil {
					ig.OnProgress(item.End, len(words))
				}
				next++
			}
		}
		doneCh <- failed
	}()

	wp.Start(ctx)

	var submitErr error
	seq := 0
	for lo := start; lo < len(words); lo += batchSize {
		hi := min(lo+batchSize, len(words))
		job := normalizeJob(seq, words[lo:hi], hi, index, resultCh)
		if err := wp.SubmitCtx(ctx, job); err != nil {
			if !errors.Is(err, context.Canceled) && !errors.Is(err, ErrPoolClosed) {
				submitErr = err
			}
			cancel()
			break
		}
		seq++
	}

	// All workers have returned once Close does, so nothing sends on resultCh after this.
	wp.Close()
	close(resultCh)
	consumerErr := <-doneCh
	writeErr := bw.Close()

	switch {
	case submitErr != nil:
		return stats, fmt.Errorf("submit chunk: %w", submitErr)
	case consumerErr != nil:
		return stats, consumerErr
	case writeErr != nil:
		return stats, writeErr
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	if err := db.CompleteImport(ig.DB, imp.ID); err != nil {
		return stats, fmt.Errorf("complete import: %w", err)
	}

	_, batches := bw.Committed()
	logger.InfoContext(ctx, "lexicon import finished",
		slog.String("source", source),
		slog.Int("headwords", stats.Written),
		slog.Int64("transactions", batches),
	)
	return stats, nil
}

// normalizeJob trims one run of headwords and forwards it to out.
func normalizeJob(seq int, words []string, end int, index dictionary.Shard, out chan<- chunk) Job {
	return func(ctx context.Context) error {
		c := chunk{Seq: seq, End: end, Entries: make([]db.Entry, 0, len(words))}
		for _, w := range words {
			c.Entries = append(c.Entries, db.Entry{
				Word:       w,
				Definition: strings.TrimSpace(index[w]),
			})
		}
		select {
		case out <- c:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// writeChunk upserts a chunk and advances the checkpoint in the same transaction.
func writeChunk(importID int64, c chunk) WriteFunc {
	return func(ctx context.Context, tx *sql.Tx) error {
		for _, e := range c.Entries {
			if err := db.UpsertDefinition(tx, e.Word, e.Definition); err != nil {
				return err
			}
		}
		if err := db.UpdateImportProgress(tx, importID, c.End); err != nil {
			return fmt.Errorf("failed to save progress: %w", err)
		}
		return nil
	}
}

// ImportFile loads a lexicon file and imports it, keyed by its path.
func (ig *LexiconIngester) ImportFile(ctx context.Context, path string) (ImportStats, error) {
	entries, err := dictionary.LoadLisan(path)
	if err != nil {
		return ImportStats{}, fmt.Errorf("load lexicon: %w", err)
	}
	return ig.Import(ctx, path, entries)
}
