package reader

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// minBlockRunes is the length a block must exceed to count as English text.
const minBlockRunes = 20

// minParagraphs is the paragraph count above which <p> elements are trusted.
const minParagraphs = 5

// ExtractEnglishBlocks returns the English paragraphs of a translation page.
// Pages with more than five <p> elements yield their paragraphs; other pages
// fall back to the readable text split on newlines. Blocks of 20 characters
// or fewer are dropped.
func ExtractEnglishBlocks(content []byte, pageURL *url.URL) ([]string, error) {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	stripNoise(doc)

	paragraphs := findAll(doc, atom.P)
	if len(paragraphs) > minParagraphs {
		var blocks []string
		for _, p := range paragraphs {
			if text := nodeText(p, " "); utf8.RuneCountInString(text) > minBlockRunes {
				blocks = append(blocks, text)
			}
		}
		return blocks, nil
	}

	text := nodeText(doc, "\n")
	if pageURL != nil {
		if article, err := readability.FromReader(bytes.NewReader(content), pageURL); err == nil && article.Node != nil {
			// TextContent runs <br>-separated lines together; walk the nodes instead.
			if readable := nodeText(article.Node, "\n"); readable != "" {
				text = readable
			}
		}
	}
	var blocks []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); utf8.RuneCountInString(line) > minBlockRunes {
			blocks = append(blocks, line)
		}
	}
	return blocks, nil
}

var noiseTags = map[atom.Atom]bool{
	atom.Script: true,
	atom.Style:  true,
	atom.Head:   true,
	atom.Title:  true,
	atom.Meta:   true,
	atom.Iframe: true,
}

// stripNoise removes elements that never carry body text.
func stripNoise(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode && noiseTags[c.DataAtom] {
			n.RemoveChild(c)
		} else {
			stripNoise(c)
		}
		c = next
	}
}

func findAll(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == a {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// nodeText joins the trimmed, non-empty text nodes under n with sep.
func nodeText(n *html.Node, sep string) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, sep)
}

// Align spreads english blocks over arabic lines by ratio. Block i covers
// the lines up to int((i+1)*len(arabic)/len(english)); the first covered line
// carries the block and the rest carry "". Lines left over at the end carry "".
// No English yields nil.
func Align(arabic, english []string) []TranslationEntry {
	if len(english) == 0 {
		return nil
	}
	ratio := float64(len(arabic)) / float64(len(english))
	out := make([]TranslationEntry, 0, len(arabic))
	cur := 0
	for i, en := range english {
		target := min(int(float64(i+1)*ratio), len(arabic))
		for j := cur; j < target; j++ {
			e := TranslationEntry{Ar: arabic[j]}
			if j == cur {
				e.En = en
			}
			out = append(out, e)
		}
		cur = max(cur, target)
	}
	for ; cur < len(arabic); cur++ {
		out = append(out, TranslationEntry{Ar: arabic[cur]})
	}
	return out
}

var (
	canonicalName = regexp.MustCompile(`^j\d-k\d{2}\.txt$`)
	volBookName   = regexp.MustCompile(`(?i)^Vol(\d)-book-?(\d+)[a-z]?\.txt$`)
	shortKName    = regexp.MustCompile(`(?i)^j(\d)-k(\d)\.txt$`)
)

// NormalizeFilename maps a processed text file name onto the jX-kYY.txt form.
// It reports false when name is already canonical or not recognised.
func NormalizeFilename(name string) (string, bool) {
	if canonicalName.MatchString(name) {
		return "", false
	}
	for _, re := range []*regexp.Regexp{volBookName, shortKName} {
		if m := re.FindStringSubmatch(name); m != nil {
			vol, _ := strconv.Atoi(m[1])
			book, _ := strconv.Atoi(m[2])
			return fmt.Sprintf("j%d-k%02d.txt", vol, book), true
		}
	}
	return "", false
}

var (
	volBookRef = regexp.MustCompile(`(?i)Vol(\d)-book-?(\d+)`)
	jkRef      = regexp.MustCompile(`(?i)j(\d)-k(\d+)`)
)

// AbsoluteBookNumber returns the 1..40 number of the book a file or id names.
// Volumes hold ten books each; a k number above 10 is taken as absolute.
func AbsoluteBookNumber(name string) (int, bool) {
	if m := volBookRef.FindStringSubmatch(name); m != nil {
		vol, _ := strconv.Atoi(m[1])
		book, _ := strconv.Atoi(m[2])
		return (vol-1)*10 + book, true
	}
	if m := jkRef.FindStringSubmatch(name); m != nil {
		vol, _ := strconv.Atoi(m[1])
		k, _ := strconv.Atoi(m[2])
		if k <= 10 {
			return (vol-1)*10 + k, true
		}
		return k, true
	}
	return 0, false
}
