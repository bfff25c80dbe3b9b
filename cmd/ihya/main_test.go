package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghazali-project/ihya/pkg/db"
	"github.com/ghazali-project/ihya/pkg/dictionary"
)

const lisan = `[
  {"word": "كتاب", "explanation": "الكتاب معروف"},
  {"word": "قلم", "explanation": "القلم الذي يكتب به"},
  {"word": "كتاب", "explanation": "والجمع كتب"}
]`

// run parses args and runs the selected command, returning what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cli CLI
	var out bytes.Buffer
	cli.Stdout = &out

	parser, err := kong.New(&cli, kong.Name("ihya"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}
	err = kctx.Run(&cli.Globals)
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestBuildIndexShardLookup(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "lisan.json")
	index := filepath.Join(dir, "dictionary_index.json")
	shards := filepath.Join(dir, "dictionary")
	writeFile(t, source, lisan)

	out, err := run(t, "build-index", source, "--out", index)
	require.NoError(t, err)
	assert.Contains(t, out, "Indexed 2 headwords from 3 entries")

	out, err = run(t, "shard", index, "--out", shards)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 2 shards")

	cfgPath := filepath.Join(dir, "config.yaml")
	writeFile(t, cfgPath, fmt.Sprintf("dictionary:\n  mode: sharded\n  shard_dir: %q\nlog:\n  level: error\n", shards))

	out, err = run(t, "--config", cfgPath, "lookup", "وكتاب")
	require.NoError(t, err)
	assert.Contains(t, out, "وكتاب (كتاب):")
	assert.Contains(t, out, "الكتاب معروف"+dictionary.DefinitionSeparator+"والجمع كتب")

	out, err = run(t, "--config", cfgPath, "lookup", "حبر")
	require.NoError(t, err)
	assert.Equal(t, "حبر: not found\n", out)
}

func TestImportDict(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "lisan.json")
	dbPath := filepath.Join(dir, "ihya.db")
	writeFile(t, source, lisan)

	out, err := run(t, "import-dict", source, "--db", dbPath, "--workers", "2", "--batch", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 of 2 headwords")

	out, err = run(t, "import-dict", source, "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "already imported")

	conn, err := db.Open(dbPath)
	require.NoError(t, err)
	defer conn.Close()
	def, ok, err := db.GetDefinition(conn, "قلم")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "القلم الذي يكتب به", def)
}

func TestAlign(t *testing.T) {
	dir := t.TempDir()
	english := filepath.Join(dir, "english")
	arabic := filepath.Join(dir, "processed")
	outDir := filepath.Join(dir, "translations")

	writeFile(t, filepath.Join(arabic, "j1-k03.txt"), "السطر الأول\nالسطر الثاني\n")
	writeFile(t, filepath.Join(english, "ihya-vol1-C3.htm"),
		"<html><body><div>The first paragraph of the translated book text.\nThe second paragraph of the translated book text.</div></body></html>")
	writeFile(t, filepath.Join(english, "ihya-vol1-C9.htm"), "<html><body></body></html>")

	out, err := run(t, "align", "--english", english, "--arabic", arabic, "--out", outDir, "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Aligned 1 books, skipped 0, failed 0")

	data, err := os.ReadFile(filepath.Join(outDir, "j1-k03.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "السطر الأول")
	assert.Contains(t, string(data), "The first paragraph")
}

func TestFetchDictLocal(t *testing.T) {
	dir := t.TempDir()
	shards := filepath.Join(dir, "dictionary")
	_, err := dictionary.WriteShards(shards, dictionary.Shard{"كتاب": "x"})
	require.NoError(t, err)

	cfgPath := filepath.Join(dir, "config.yaml")
	writeFile(t, cfgPath, fmt.Sprintf("dictionary:\n  shard_dir: %q\nlog:\n  level: error\n", shards))

	out, err := run(t, "--config", cfgPath, "fetch-dict")
	require.NoError(t, err)
	assert.Contains(t, out, "(1 shards)")
}

func TestUnknownCommand(t *testing.T) {
	_, err := run(t, "frobnicate")
	assert.Error(t, err)
}
