package quran

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleIndex = `{
  "البقرة:255": [{"book":"j1-k02","snippet":"الله لا إله إلا هو الحي القيوم","context":"قال تعالى الله لا إله إلا هو","location":{"start":255,"end":255,"word_start":10,"word_end":16,"line_index":3}}],
  "الفاتحة:1": [{"book":"j1-k04","snippet":"بسم الله الرحمن الرحيم","context":"...","location":{"start":1,"end":1,"word_start":0,"word_end":3,"line_index":0}}],
  "البقرة:2": [
    {"book":"j1-k01","snippet":"ذلك الكتاب لا ريب فيه","context":"...","location":{"start":2,"end":2,"word_start":5,"word_end":9,"line_index":1}},
    {"book":"j3-k01","snippet":"ذلك الكتاب","context":"...","location":{"start":2,"end":2,"word_start":7,"word_end":8,"line_index":12}}
  ],
  "آل عمران:7-8": [{"book":"j1-k02","snippet":"هو الذي أنزل عليك الكتاب","context":"...","location":{"start":7,"end":8,"word_start":1,"word_end":40,"line_index":9}}],
  "الناس:1": []
}`

func loadSample(t *testing.T) *Index {
	t.Helper()
	ix, err := ParseIndex(strings.NewReader(sampleIndex))
	require.NoError(t, err)
	return ix
}

func TestParseIndexKeepsOrder(t *testing.T) {
	ix := loadSample(t)
	assert.Equal(t, []string{"البقرة:255", "الفاتحة:1", "البقرة:2", "آل عمران:7-8", "الناس:1"}, ix.Keys())

	m, ok := ix.Get("البقرة:2")
	require.True(t, ok)
	require.Len(t, m, 2)
	assert.Equal(t, 12, m[1].Location.LineIndex)

	out, err := json.Marshal(ix)
	require.NoError(t, err)
	again, err := ParseIndex(strings.NewReader(string(out)))
	require.NoError(t, err)
	assert.Equal(t, ix.Keys(), again.Keys())
}

func TestParseIndexRejectsArrays(t *testing.T) {
	_, err := ParseIndex(strings.NewReader(`[1,2]`))
	assert.Error(t, err)
	_, err = ParseIndex(strings.NewReader(`{"a:1": {"book": 1}}`))
	assert.Error(t, err)
}

func TestLoadIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quran_index.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleIndex), 0o644))
	ix, err := LoadIndex(path)
	require.NoError(t, err)
	assert.Equal(t, 5, ix.Len())

	_, err = LoadIndex(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGroup(t *testing.T) {
	tf := Group(loadSample(t))

	assert.Equal(t, []string{"آل عمران", "البقرة", "الفاتحة", "الناس"}, tf.Chapters())

	verses := tf.Verses("البقرة")
	require.Len(t, verses, 2)
	assert.Equal(t, "255", verses[0].Number)
	assert.Equal(t, "2", verses[1].Number)
	assert.Len(t, verses[1].Matches, 2)

	assert.Equal(t, "7-8", tf.Verses("آل عمران")[0].Number)
}

func TestSplitKey(t *testing.T) {
	c, v := SplitKey("البقرة:255")
	assert.Equal(t, "البقرة", c)
	assert.Equal(t, "255", v)

	c, v = SplitKey("نوح")
	assert.Equal(t, "نوح", c)
	assert.Equal(t, "", v)

	c, v = SplitKey("a:1:2")
	assert.Equal(t, "a", c)
	assert.Equal(t, "1", v)
}

func TestFlattenIsStable(t *testing.T) {
	tf := Group(loadSample(t))
	again := Group(tf.Flatten())
	assert.Equal(t, tf.Chapters(), again.Chapters())
	for _, c := range tf.Chapters() {
		assert.Equal(t, tf.Verses(c), again.Verses(c), c)
	}
}

func TestFilter(t *testing.T) {
	tf := Group(loadSample(t))

	assert.Equal(t, tf.Chapters(), tf.Filter(""))
	// Arabic chapter name.
	assert.Equal(t, []string{"البقرة"}, tf.Filter("بقر"))
	// English transliteration, any case.
	assert.Equal(t, []string{"البقرة"}, tf.Filter("Baqarah"))
	assert.Equal(t, []string{"آل عمران"}, tf.Filter("IMRAN"))
	// Snippet text.
	assert.Equal(t, []string{"الفاتحة"}, tf.Filter("الرحمن الرحيم"))
	assert.Empty(t, tf.Filter("zzz"))
}

func TestFilter_TransliterationSubstring(t *testing.T) {
	// "nas" is contained in "nasr" and "nas"; only chapters present in the index are returned.
	tf := Group(loadSample(t))
	assert.Equal(t, []string{"الناس"}, tf.Filter("nas"))
}

func TestEnglish(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quran-en.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"quran":[
		{"chapter":2,"verse":255,"text":"Allah - there is no deity except Him"},
		{"chapter":1,"verse":1,"text":"In the name of Allah"}
	]}`), 0o644))

	en, err := LoadEnglish(path)
	require.NoError(t, err)

	text, ok := en.EnglishFor("البقرة", "255")
	require.True(t, ok)
	assert.Equal(t, "Allah - there is no deity except Him", text)

	_, ok = en.EnglishFor("البقرة", "2")
	assert.False(t, ok)
	_, ok = en.EnglishFor("unknown", "1")
	assert.False(t, ok)
	_, ok = en.EnglishFor("آل عمران", "7-8")
	assert.False(t, ok)

	var none English
	_, ok = none.EnglishFor("الفاتحة", "1")
	assert.False(t, ok)
}

func TestView(t *testing.T) {
	tf := Group(loadSample(t))
	en := English{"2:255": "Ayat al-Kursi"}

	view := tf.View(tf.Filter("baqarah"), en)
	require.Len(t, view, 1)
	assert.Equal(t, 2, view[0].ID)
	require.Len(t, view[0].Verses, 2)
	assert.Equal(t, "Ayat al-Kursi", view[0].Verses[0].English)
	assert.Empty(t, view[0].Verses[1].English)
}

func TestChapterIDTable(t *testing.T) {
	assert.Len(t, Transliterations, 114)
	for i, tr := range Transliterations {
		id, ok := ChapterID(tr.Arabic)
		require.True(t, ok, tr.Arabic)
		assert.Equal(t, i+1, id, tr.English)
	}
}

func TestSearch(t *testing.T) {
	ix := loadSample(t)

	res := Search(ix, "")
	assert.Equal(t, NoQuery, res.State)
	assert.Empty(t, res.Results)

	res = Search(ix, "  ")
	assert.Equal(t, NoResults, res.State)
	assert.Equal(t, "  ", res.Query)

	// Keys are matched verbatim, padding included.
	res = Search(ix, " البقرة:2")
	assert.Equal(t, NoResults, res.State)

	res = Search(ix, "البقرة:2")
	assert.Equal(t, Found, res.State)
	assert.Len(t, res.Results, 2)

	res = Search(ix, "البقرة")
	assert.Equal(t, NoResults, res.State)

	// A key with no citations is treated as no results.
	res = Search(ix, "الناس:1")
	assert.Equal(t, NoResults, res.State)
}
