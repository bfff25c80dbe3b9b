package dictionary

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"
)

// manifestKey is the manifest label of the shard holding word: its first
// character when Arabic, "other" otherwise.
func manifestKey(word string) string {
	r, _ := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError || !IsArabic(r) {
		return "other"
	}
	return string(r)
}

// Partition splits a global index into shards keyed by file name.
func Partition(index Shard) map[string]Shard {
	shards := make(map[string]Shard)
	for word, def := range index {
		if word == "" {
			continue
		}
		name := ShardName(word)
		s, ok := shards[name]
		if !ok {
			s = make(Shard)
			shards[name] = s
		}
		s[word] = def
	}
	return shards
}

// WriteShards writes one JSON file per shard into dir, then the manifest, and
// returns the manifest keys in sorted order.
func WriteShards(dir string, index Shard) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create shard dir: %w", err)
	}

	keys := make(map[string]struct{})
	for word := range index {
		if word != "" {
			keys[manifestKey(word)] = struct{}{}
		}
	}
	manifest := make([]string, 0, len(keys))
	for k := range keys {
		manifest = append(manifest, k)
	}
	sort.Strings(manifest)

	for name, shard := range Partition(index) {
		if err := writeJSON(filepath.Join(dir, name), shard); err != nil {
			return nil, err
		}
	}
	// The manifest marks a complete shard set, so it goes last.
	if err := writeJSON(filepath.Join(dir, ManifestFile), manifest); err != nil {
		return nil, err
	}
	return manifest, nil
}

// ReadManifest returns the shard keys recorded in dir.
func ReadManifest(dir string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, err
	}
	var manifest []string
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return manifest, nil
}

// WriteIndex writes a monolithic index file.
func WriteIndex(path string, index Shard) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	return writeJSON(path, index)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// ReadIndex reads a monolithic index file written by WriteIndex.
func ReadIndex(path string) (Shard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var index Shard
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("parse index %s: %w", path, err)
	}
	return index, nil
}
