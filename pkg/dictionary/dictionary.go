package dictionary

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// LisanEntry matches the structure of the cleaned Lisan al-Arab export.
type LisanEntry struct {
	Word        string `json:"word"`
	Explanation string `json:"explanation"`
}

// Shard maps a headword to its definition. A loaded shard is never mutated.
type Shard map[string]string

// DefinitionSeparator joins explanations of a headword that appears more than once.
const DefinitionSeparator = "\n---\n"

// OtherShard holds every headword whose first character is outside the Arabic block.
const OtherShard = "shard_other.json"

// ManifestFile lists the shard keys written by WriteShards.
const ManifestFile = "manifest.json"

// IsArabic reports whether r lies in the Arabic Unicode block (U+0600..U+06FF).
func IsArabic(r rune) bool {
	return r >= 0x0600 && r <= 0x06FF
}

// ContainsArabic reports whether any rune of s is Arabic.
func ContainsArabic(s string) bool {
	for _, r := range s {
		if IsArabic(r) {
			return true
		}
	}
	return false
}

// ShardName returns the shard file holding word.
// Arabic headwords live in shard_<code>.json, where code is the decimal code
// point of the first character; everything else lives in shard_other.json.
func ShardName(word string) string {
	r, _ := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError || !IsArabic(r) {
		return OtherShard
	}
	return fmt.Sprintf("shard_%d.json", r)
}

// LoadLisan reads a raw lexicon file and returns its entries.
// Both a bare array [...] and an object wrapper { "entries": [...] } are accepted.
func LoadLisan(path string) ([]LisanEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapped struct {
		Entries []LisanEntry `json:"entries"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && len(wrapped.Entries) > 0 {
		return wrapped.Entries, nil
	}

	var entries []LisanEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon as object or array: %w", err)
	}
	return entries, nil
}

// BuildIndex flattens raw entries into a single headword index.
// Words and explanations are trimmed, entries without a word are skipped and
// repeated headwords have their explanations joined with DefinitionSeparator.
func BuildIndex(entries []LisanEntry) Shard {
	idx := make(Shard, len(entries))
	for _, e := range entries {
		word := strings.TrimSpace(e.Word)
		if word == "" {
			continue
		}
		explanation := strings.TrimSpace(e.Explanation)
		if prev, ok := idx[word]; ok {
			idx[word] = prev + DefinitionSeparator + explanation
			continue
		}
		idx[word] = explanation
	}
	return idx
}
