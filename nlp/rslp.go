package nlp

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Stemmer reduces a lowercased word to its stem.
type Stemmer interface {
	Stem(word string) string
}

// RSLPStemmer implements the Removedor de Sufixos da Lingua Portuguesa (Orengo & Huyck, 2001).
// It is stateless and safe for concurrent use.
type RSLPStemmer struct{}

func NewRSLPStemmer() *RSLPStemmer {
	return &RSLPStemmer{}
}

// Stem runs the reduction steps in order: plural, feminine, augmentative, adverb, noun,
// then verb only when the noun step left the word untouched, and vowel removal only when
// the verb step did too.
func (s *RSLPStemmer) Stem(word string) string {
	if word == "" {
		return word
	}

	if strings.HasSuffix(word, "s") {
		word = applyRules(word, pluralRules)
	}
	if strings.HasSuffix(word, "a") || strings.HasSuffix(word, "ã") {
		word = applyRules(word, feminineRules)
	}
	word = applyRules(word, augmentativeRules)
	word = applyRules(word, adverbRules)

	before := word
	word = applyRules(word, nounRules)
	if word == before {
		word = applyRules(word, verbRules)
		if word == before {
			word = applyRules(word, vowelRules)
		}
	}

	return word
}

// applyRules applies the first rule whose suffix matches, whose minimum stem length is
// met and for which the word is not an exception. A matching suffix that fails either
// condition falls through to the next rule.
func applyRules(word string, rules []suffixRule) string {
	length := utf8.RuneCountInString(word)
	for _, rule := range rules {
		if !strings.HasSuffix(word, rule.Suffix) {
			continue
		}
		if length < utf8.RuneCountInString(rule.Suffix)+rule.MinStem {
			continue
		}
		if slices.Contains(rule.Exceptions, word) {
			continue
		}
		return word[:len(word)-len(rule.Suffix)] + rule.Replacement
	}
	return word
}
