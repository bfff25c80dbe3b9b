package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// failingPool always returns an error on Submit to simulate producer error.
type failingPool struct{}

func (f *failingPool) Start(ctx context.Context) {}
func (f *failingPool) Submit(job Job) error      { return errors.New("submit failed") }
func (f *failingPool) SubmitCtx(ctx context.Context, job Job) error {
	return errors.New("submit failed")
}
func (f *failingPool) Close() {}

func TestImportHandlesSubmitError(t *testing.T) {
	conn := setupDB(t)
	defer conn.Close()

	ingester := NewLexiconIngester(conn)
	ingester.PoolFactory = func(workers, queue int) WorkerPoolInterface { return &failingPool{} }

	// Run import and expect it to return quickly with the submit error
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := ingester.Import(ctx, "submit-error.json", sampleEntries(10))
	if err == nil {
		t.Fatalf("expected submit error, got nil")
	}
}
