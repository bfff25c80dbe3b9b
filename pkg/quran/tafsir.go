package quran

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Verse is one cited verse of a chapter.
type Verse struct {
	// Key is the index key the verse was grouped from.
	Key     string  `json:"key"`
	Number  string  `json:"verse"`
	Matches []Match `json:"matches"`
}

// Tafsir groups an index by chapter.
type Tafsir struct {
	chapters map[string][]Verse
	// order holds chapter names in first-seen order, for Flatten.
	order []string
}

// SplitKey splits "chapter:verse" at colons; the verse is the second field,
// or "" when the key has none.
func SplitKey(key string) (chapter, verse string) {
	parts := strings.Split(key, ":")
	if len(parts) > 1 {
		verse = parts[1]
	}
	return parts[0], verse
}

// Group collects the verses of each chapter, in index order.
func Group(ix *Index) *Tafsir {
	t := &Tafsir{chapters: make(map[string][]Verse)}
	for _, key := range ix.keys {
		chapter, verse := SplitKey(key)
		if _, ok := t.chapters[chapter]; !ok {
			t.order = append(t.order, chapter)
		}
		t.chapters[chapter] = append(t.chapters[chapter], Verse{
			Key:     key,
			Number:  verse,
			Matches: ix.entries[key],
		})
	}
	return t
}

// Chapters returns every chapter name, sorted.
func (t *Tafsir) Chapters() []string {
	names := append([]string(nil), t.order...)
	sort.Strings(names)
	return names
}

// Verses returns the verses of chapter in index order.
func (t *Tafsir) Verses(chapter string) []Verse {
	return t.chapters[chapter]
}

var lower = cases.Lower(language.Und)

// Filter returns the sorted chapter names that match query. An empty query
// matches everything. A chapter matches when its name contains the lowercased
// query, when a transliteration containing the query names it, or when any of
// its citations quotes the query verbatim.
func (t *Tafsir) Filter(query string) []string {
	all := t.Chapters()
	if query == "" {
		return all
	}
	q := lower.String(query)

	out := make([]string, 0, len(all))
	for _, name := range all {
		if t.matches(name, q, query) {
			out = append(out, name)
		}
	}
	return out
}

func (t *Tafsir) matches(name, q, raw string) bool {
	if strings.Contains(name, q) {
		return true
	}
	for _, tr := range Transliterations {
		if strings.Contains(tr.English, q) && strings.Contains(name, tr.Arabic) {
			return true
		}
	}
	for _, v := range t.chapters[name] {
		for _, m := range v.Matches {
			if strings.Contains(m.Snippet, raw) {
				return true
			}
		}
	}
	return false
}

// Flatten rebuilds an index from the grouping. Grouping the result again
// yields the same chapters and verses.
func (t *Tafsir) Flatten() *Index {
	ix := NewIndex()
	for _, chapter := range t.order {
		for _, v := range t.chapters[chapter] {
			ix.Add(v.Key, v.Matches)
		}
	}
	return ix
}

// English maps "chapterNumber:verse" to the English text of the verse.
type English map[string]string

// LoadEnglish reads a translation file shaped {"quran":[{chapter,verse,text}]}.
func LoadEnglish(path string) (English, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Quran []struct {
			Chapter int    `json:"chapter"`
			Verse   int    `json:"verse"`
			Text    string `json:"text"`
		} `json:"quran"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	en := make(English, len(doc.Quran))
	for _, v := range doc.Quran {
		en[strconv.Itoa(v.Chapter)+":"+strconv.Itoa(v.Verse)] = v.Text
	}
	return en, nil
}

// EnglishFor returns the English text of verse in the chapter with the given
// Arabic name. Unknown chapters and verse ranges have no text.
func (en English) EnglishFor(chapter, verse string) (string, bool) {
	id, ok := ChapterID(chapter)
	if !ok {
		return "", false
	}
	text, ok := en[strconv.Itoa(id)+":"+verse]
	return text, ok
}

// ChapterView is the tafsir view of one chapter.
type ChapterView struct {
	Name   string      `json:"name"`
	ID     int         `json:"id,omitempty"`
	Verses []VerseView `json:"verses"`
}

// VerseView is a verse with its English text, when known.
type VerseView struct {
	Verse
	English string `json:"english,omitempty"`
}

// View renders the named chapters with English verse text from en, which may be nil.
func (t *Tafsir) View(names []string, en English) []ChapterView {
	out := make([]ChapterView, 0, len(names))
	for _, name := range names {
		cv := ChapterView{Name: name, Verses: []VerseView{}}
		cv.ID, _ = ChapterID(name)
		for _, v := range t.chapters[name] {
			vv := VerseView{Verse: v}
			vv.English, _ = en.EnglishFor(name, v.Number)
			cv.Verses = append(cv.Verses, vv)
		}
		out = append(out, cv)
	}
	return out
}
