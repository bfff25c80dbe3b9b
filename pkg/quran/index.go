// Package quran serves the Quranic cross-reference index: citations of
// verses found in the books, grouped by chapter for the tafsir view and
// looked up by exact key for search.
package quran

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Location pins a citation inside a book.
type Location struct {
	Start     int `json:"start"`
	End       int `json:"end"`
	WordStart int `json:"word_start"`
	WordEnd   int `json:"word_end"`
	LineIndex int `json:"line_index"`
}

// Match is one citation of a verse.
type Match struct {
	Book     string   `json:"book"`
	Snippet  string   `json:"snippet"`
	Context  string   `json:"context"`
	Location Location `json:"location"`
}

// Index maps "chapter:verse" keys to their citations and remembers the
// order in which keys appeared in the source file.
type Index struct {
	keys    []string
	entries map[string][]Match
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{entries: make(map[string][]Match)}
}

// Add appends key with its matches. A repeated key keeps its first position
// and takes the new matches.
func (ix *Index) Add(key string, matches []Match) {
	if _, ok := ix.entries[key]; !ok {
		ix.keys = append(ix.keys, key)
	}
	if matches == nil {
		matches = []Match{}
	}
	ix.entries[key] = matches
}

// Keys returns the keys in source order.
func (ix *Index) Keys() []string {
	return append([]string(nil), ix.keys...)
}

// Get returns the matches stored under key.
func (ix *Index) Get(key string) ([]Match, bool) {
	m, ok := ix.entries[key]
	return m, ok
}

// Len returns the number of keys.
func (ix *Index) Len() int { return len(ix.keys) }

// MarshalJSON writes the index as an object with keys in source order.
func (ix *Index) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, k := range ix.keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(ix.entries[k])
		if err != nil {
			return nil, err
		}
		buf = append(buf, kb...)
		buf = append(buf, ':')
		buf = append(buf, vb...)
	}
	return append(buf, '}'), nil
}

// LoadIndex reads the cross-reference index at path.
func LoadIndex(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ix, err := ParseIndex(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return ix, nil
}

// ParseIndex decodes an index object, keeping the key order of the input.
func ParseIndex(r io.Reader) (*Index, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("index must be a JSON object")
	}

	ix := NewIndex()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var matches []Match
		if err := dec.Decode(&matches); err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		ix.Add(key, matches)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return ix, nil
}
