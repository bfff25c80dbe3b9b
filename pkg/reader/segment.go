package reader

import "strings"

// Segment is one English block shown beside the Arabic lines it covers.
type Segment struct {
	English     string   `json:"english"`
	ArabicLines []string `json:"arabicLines"`
	StartIndex  int      `json:"startIndex"`
}

// Compose groups lines under their translations. A line whose translation
// has non-blank English opens a new segment; every other line joins the open
// segment. Lines before the first translated one form a segment with empty
// English. translations may be shorter than lines.
func Compose(lines []string, translations []TranslationEntry) []Segment {
	segments := []Segment{}
	var cur *Segment
	for i, line := range lines {
		translated := i < len(translations) && strings.TrimSpace(translations[i].En) != ""
		switch {
		case translated:
			if cur != nil {
				segments = append(segments, *cur)
			}
			cur = &Segment{English: translations[i].En, ArabicLines: []string{line}, StartIndex: i}
		case cur != nil:
			cur.ArabicLines = append(cur.ArabicLines, line)
		default:
			cur = &Segment{ArabicLines: []string{line}, StartIndex: i}
		}
	}
	if cur != nil {
		segments = append(segments, *cur)
	}
	return segments
}
