// Package dictionary serves Lisan al-Arab definitions from pre-built shard
// files and builds those shards from the raw lexicon.
package dictionary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// ErrEmptyTerm is returned when the search term is blank.
var ErrEmptyTerm = errors.New("dictionary: search term is required")

// CliticPrefixes are stripped, in this order, when the exact term is not a headword:
// the definite article, the conjunction wa, then bi, fa, ka and li.
var CliticPrefixes = []string{"ال", "و", "ب", "ف", "ك", "ل"}

// MinStemLength is the number of characters that must remain after stripping a prefix.
const MinStemLength = 3

// Result is the outcome of a lookup.
type Result struct {
	// Term is the trimmed search term.
	Term string
	// Headword is the form that matched; it differs from Term when a prefix was stripped.
	Headword   string
	Definition string
	Found      bool
}

// Service answers lookups against a Store.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService creates a lookup service.
func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// Candidates returns the forms tried for term after the exact form fails,
// in priority order.
func Candidates(term string) []string {
	if !ContainsArabic(term) {
		return nil
	}
	n := utf8.RuneCountInString(term)
	var out []string
	for _, p := range CliticPrefixes {
		if !strings.HasPrefix(term, p) {
			continue
		}
		if n-utf8.RuneCountInString(p) < MinStemLength {
			continue
		}
		out = append(out, strings.TrimPrefix(term, p))
	}
	return out
}

// Lookup returns the definition of term. A term that is not in the dictionary,
// or whose entry is empty, yields Found=false and a nil error.
func (s *Service) Lookup(ctx context.Context, term string) (Result, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return Result{}, ErrEmptyTerm
	}
	res := Result{Term: term}

	def, ok, err := s.store.Definition(ctx, term)
	if err != nil {
		return res, fmt.Errorf("lookup %q: %w", term, err)
	}
	if ok && def != "" {
		res.Headword, res.Definition, res.Found = term, def, true
		return res, nil
	}

	for _, stem := range Candidates(term) {
		def, ok, err := s.store.Definition(ctx, stem)
		if err != nil {
			return res, fmt.Errorf("lookup %q: %w", stem, err)
		}
		if ok && def != "" {
			s.logger.DebugContext(ctx, "dictionary prefix fallback",
				slog.String("term", term),
				slog.String("headword", stem),
			)
			res.Headword, res.Definition, res.Found = stem, def, true
			return res, nil
		}
	}
	return res, nil
}
