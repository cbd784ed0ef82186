package textindex

import (
	"regexp"
	"strings"
	"unicode"
)

// disallowed matches every character removed by CleanTitle.
var disallowed = regexp.MustCompile(`[^a-zA-Z0-9 ]`)

// CleanTitle removes every character that is not an ASCII letter,
// digit or space. It is idempotent.
func CleanTitle(title string) string {
	return disallowed.ReplaceAllString(title, "")
}

// minTokenLen is the shortest token kept. Single characters such as
// the "2" in "Toy Story 2" carry no weight.
const minTokenLen = 2

// Tokenize lowercases text and splits it into runs of letters and
// digits, dropping runs shorter than two characters.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	tokens := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= minTokenLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Terms returns the unigrams of text followed by its bigrams.
// Bigrams are formed from adjacent retained tokens.
func Terms(text string) []string {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	terms := make([]string, 0, 2*len(tokens)-1)
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}
