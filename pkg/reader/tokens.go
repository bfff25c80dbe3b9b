package reader

import "strings"

// englishPunctuation is stripped from English words before they are looked up.
const englishPunctuation = ".,/#!$%^&*;:{}=-_`~()"

// Tokens splits a line into the words a reader can select for lookup.
func Tokens(line string) []string {
	return strings.Fields(line)
}

// CleanEnglishToken removes punctuation from an English word.
func CleanEnglishToken(word string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(englishPunctuation, r) {
			return -1
		}
		return r
	}, word)
}
