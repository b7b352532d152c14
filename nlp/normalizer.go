// Package nlp turns raw Portuguese utterances into the stem sequences the classifier matches on.
package nlp

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalizer lowercases, tokenizes, filters and stems one utterance at a time.
type Normalizer struct {
	tag     language.Tag
	stemmer Stemmer
}

// NewNormalizer builds a Normalizer for the given BCP 47 language tag. Unparseable tags
// fall back to Brazilian Portuguese.
func NewNormalizer(lang string) *Normalizer {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.BrazilianPortuguese
	}
	return &Normalizer{
		tag:     tag,
		stemmer: NewRSLPStemmer(),
	}
}

// Lower applies NFC composition and language-aware lowercasing.
func (n *Normalizer) Lower(text string) string {
	// cases.Caser keeps state between calls, so each call gets its own.
	return cases.Lower(n.tag).String(norm.NFC.String(text))
}

// Normalize returns the ordered stems of every token that is neither a stop-word nor
// contains a non-letter rune. Duplicates are kept. Empty input yields an empty slice.
func (n *Normalizer) Normalize(text string) []string {
	tokens := Tokenize(n.Lower(text))
	stems := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if IsStopWord(token) || !isAlpha(token) {
			continue
		}
		stems = append(stems, n.stemmer.Stem(token))
	}
	return stems
}
