package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// isUniqueConstraintErr returns true when the error indicates a unique/constraint violation
func isUniqueConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "unique") || strings.Contains(s, "constraint failed")
}

// UpsertDefinition stores the definition of word, replacing any previous one.
func UpsertDefinition(db DBExecutor, word, definition string) error {
	trimmed := strings.TrimSpace(word)
	if trimmed == "" {
		return fmt.Errorf("word must be non-empty")
	}
	_, err := db.Exec(`INSERT INTO lexicon (word, definition, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(word) DO UPDATE SET
		  definition = excluded.definition,
		  updated_at = excluded.updated_at`,
		trimmed, definition, time.Now())
	if err != nil {
		return fmt.Errorf("upsert %q: %w", trimmed, err)
	}
	return nil
}

// GetDefinition returns the definition of word and whether the word exists.
func GetDefinition(db DBExecutor, word string) (string, bool, error) {
	var def string
	err := db.QueryRow(`SELECT definition FROM lexicon WHERE word = ?`, word).Scan(&def)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return def, true, nil
}

// CountDefinitions returns the number of headwords stored.
func CountDefinitions(db DBExecutor) (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM lexicon`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CreateOrGetImport returns the import record for path, creating it when absent.
func CreateOrGetImport(db DBExecutor, path string, entryCount int) (Import, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return Import{}, fmt.Errorf("path must be non-empty")
	}

	const maxRetries = 3

	for attempt := 0; attempt < maxRetries; attempt++ {
		imp, err := getImport(db, trimmed)
		if err == nil {
			if imp.EntryCount != entryCount {
				// The file changed since the last run; start over.
				if _, err := db.Exec(`UPDATE imports SET entry_count = ?, last_processed = 0, completed_at = NULL WHERE id = ?`,
					entryCount, imp.ID); err != nil {
					return Import{}, err
				}
				imp.EntryCount, imp.LastProcessed, imp.Completed = entryCount, 0, false
			}
			return imp, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return Import{}, err
		}

		_, err = db.Exec(`INSERT INTO imports (path, entry_count, imported_at) VALUES (?, ?, ?)`,
			trimmed, entryCount, time.Now())
		if err != nil {
			// Another importer registered the same file; read it back.
			if isUniqueConstraintErr(err) {
				continue
			}
			return Import{}, err
		}
	}
	return getImport(db, trimmed)
}

func getImport(db DBExecutor, path string) (Import, error) {
	var imp Import
	var completed sql.NullTime
	err := db.QueryRow(`SELECT id, path, entry_count, last_processed, imported_at, completed_at FROM imports WHERE path = ?`, path).
		Scan(&imp.ID, &imp.Path, &imp.EntryCount, &imp.LastProcessed, &imp.ImportedAt, &completed)
	if err != nil {
		return Import{}, err
	}
	imp.Completed = completed.Valid
	return imp, nil
}

// GetImportProgress returns the number of entries already written for an import.
func GetImportProgress(db DBExecutor, importID int64) (int, error) {
	var index int
	err := db.QueryRow("SELECT last_processed FROM imports WHERE id = ?", importID).Scan(&index)
	if err != nil {
		return 0, err
	}
	return index, nil
}

// UpdateImportProgress records how many entries of an import have been written.
func UpdateImportProgress(db DBExecutor, importID int64, index int) error {
	_, err := db.Exec("UPDATE imports SET last_processed = ? WHERE id = ?", index, importID)
	return err
}

// CompleteImport marks an import as finished.
func CompleteImport(db DBExecutor, importID int64) error {
	_, err := db.Exec("UPDATE imports SET completed_at = ?, last_processed = entry_count WHERE id = ?", time.Now(), importID)
	return err
}

// LexiconStore answers dictionary lookups from the lexicon table.
type LexiconStore struct {
	conn *sql.DB
}

// NewLexiconStore wraps an open database.
func NewLexiconStore(conn *sql.DB) *LexiconStore {
	return &LexiconStore{conn: conn}
}

// Definition returns the stored definition of word.
func (s *LexiconStore) Definition(ctx context.Context, word string) (string, bool, error) {
	var def string
	err := s.conn.QueryRowContext(ctx, `SELECT definition FROM lexicon WHERE word = ?`, word).Scan(&def)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query lexicon: %w", err)
	}
	return def, true, nil
}

// Close closes the underlying database.
func (s *LexiconStore) Close() error {
	return s.conn.Close()
}
