package nlp

import (
	"strings"
	"unicode"
)

// Tokenize splits text into word tokens. Whitespace separates tokens and is dropped.
// Runs of letters, digits and combining marks form a word; a hyphen or apostrophe stays
// inside the word when it sits between two word runes. Any other rune is emitted as a
// single-rune token so that punctuation never sticks to the word before it.
func Tokenize(text string) []string {
	runes := []rune(text)
	tokens := make([]string, 0, len(runes)/4+1)

	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for i, r := range runes {
		switch {
		case unicode.IsSpace(r):
			flush()
		case isWordRune(r):
			current.WriteRune(r)
		case isJoiner(r) && current.Len() > 0 && i+1 < len(runes) && isWordRune(runes[i+1]):
			current.WriteRune(r)
		default:
			flush()
			tokens = append(tokens, string(r))
		}
	}
	flush()

	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

func isJoiner(r rune) bool {
	return r == '-' || r == '\'' || r == '’'
}

// isAlpha reports whether token is non-empty and made of letters only.
func isAlpha(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
