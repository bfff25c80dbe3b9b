// Package reader assembles the bilingual reading view of a book and runs the
// offline alignment of English translations against the Arabic text.
package reader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// ErrInvalidBookID is returned for ids outside [a-zA-Z0-9-]+.
	ErrInvalidBookID = errors.New("reader: invalid book id")
	// ErrBookNotFound is returned when the text of a book cannot be loaded.
	ErrBookNotFound = errors.New("reader: book not found")
)

var bookIDPattern = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

// ValidBookID reports whether id may be used to build a file path.
func ValidBookID(id string) bool {
	return bookIDPattern.MatchString(id)
}

// TranslationEntry is one Arabic line with its English rendering.
// An empty En means the line has no translation of its own.
type TranslationEntry struct {
	Ar string `json:"ar"`
	En string `json:"en"`
}

// Lecture is a recorded lecture on a book.
type Lecture struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// LectureEntry is the value stored per book in the lecture index.
type LectureEntry struct {
	Lectures []Lecture `json:"lectures"`
}

// Book is the composed reading view of one book.
type Book struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Number   string        `json:"number"`
	Lines    []string      `json:"lines"`
	Segments []Segment     `json:"segments"`
	Lecture  *LectureEntry `json:"lecture"`
}

// Library loads books from the processed text and translation directories.
type Library struct {
	TextDir        string
	TranslationDir string
	LecturesIndex  string
	Logger         *slog.Logger
}

// NewLibrary creates a library over the given directories. lecturesIndex may be empty.
func NewLibrary(textDir, translationDir, lecturesIndex string, logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.Default()
	}
	return &Library{
		TextDir:        textDir,
		TranslationDir: translationDir,
		LecturesIndex:  lecturesIndex,
		Logger:         logger,
	}
}

// Book loads and composes the book called id.
// Any failure to load the text, or a malformed translation or lecture file,
// is logged and reported as ErrBookNotFound.
func (l *Library) Book(ctx context.Context, id string) (*Book, error) {
	if !ValidBookID(id) {
		return nil, ErrInvalidBookID
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(l.TextDir, id+".txt"))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			l.Logger.ErrorContext(ctx, "read book text", slog.String("book", id), slog.Any("error", err))
		}
		return nil, fmt.Errorf("%w: %s", ErrBookNotFound, id)
	}
	lines := SplitLines(string(data))

	translations, err := l.translations(id)
	if err != nil {
		l.Logger.ErrorContext(ctx, "load translation", slog.String("book", id), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %s", ErrBookNotFound, id)
	}

	lecture, err := l.lecture(id)
	if err != nil {
		l.Logger.ErrorContext(ctx, "load lecture index", slog.String("book", id), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %s", ErrBookNotFound, id)
	}

	return &Book{
		ID:       id,
		Title:    Title(id),
		Number:   Number(id),
		Lines:    lines,
		Segments: Compose(lines, translations),
		Lecture:  lecture,
	}, nil
}

// SplitLines splits text on "\n" and drops lines that are blank after trimming.
// Kept lines are returned as they appear.
func SplitLines(text string) []string {
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

// translations returns nil when the book has no translation file.
func (l *Library) translations(id string) ([]TranslationEntry, error) {
	if l.TranslationDir == "" {
		return nil, nil
	}
	data, err := os.ReadFile(filepath.Join(l.TranslationDir, id+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []TranslationEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse translation %s: %w", id, err)
	}
	return entries, nil
}

func (l *Library) lecture(id string) (*LectureEntry, error) {
	if l.LecturesIndex == "" {
		return nil, nil
	}
	data, err := os.ReadFile(l.LecturesIndex)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var index map[string]LectureEntry
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("parse lecture index: %w", err)
	}
	entry, ok := index[id]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}
