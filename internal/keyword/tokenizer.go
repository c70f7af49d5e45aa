// Package keyword provides title tokenization and commercial-value
// classification for search queries.
package keyword

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// MaxTokens caps extraction to the first N surviving tokens. Later words in
// a title are assumed less discriminative, and every extra token costs one
// corpus lookup downstream.
const MaxTokens = 6

const minTokenRunes = 2

// stopWords lists tokens too generic to carry matching signal: boilerplate
// title filler, year tokens, Korean particles, and English function words.
var stopWords = map[string]struct{}{
	"총정리": {}, "정리": {}, "신청방법": {}, "알아보기": {}, "확인": {},
	"2023": {}, "2024": {}, "2025": {}, "2026": {}, "2027": {},
	"2023년": {}, "2024년": {}, "2025년": {}, "2026년": {}, "2027년": {},
	"최신": {}, "완벽": {}, "가이드": {}, "정보": {}, "안내": {}, "소개": {},
	"그리고": {}, "그래서": {}, "하지만": {}, "그러나": {},
	"에서": {}, "으로": {}, "부터": {}, "까지": {}, "에게": {}, "이것": {}, "저것": {},
	"the": {}, "and": {}, "for": {}, "with": {}, "how": {}, "what": {},
	"this": {}, "that": {}, "your": {},
}

// IsStopWord reports whether the token is in the fixed stop-word set.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}

func isSeparator(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case ',', '.', '-', '/', '!', '?', '(', ')', '[', ']':
		return true
	}
	return false
}

// Tokenize splits a title into its content keywords: separators are
// whitespace and common punctuation, tokens shorter than two runes and
// stop words are dropped, and the result is capped to the first MaxTokens
// survivors in title order. Pure and deterministic.
//
// Full-width characters are folded to their narrow forms first; CSV exports
// from Korean portals mix full-width punctuation into titles.
func Tokenize(title string) []string {
	folded := width.Fold.String(title)
	words := strings.FieldsFunc(folded, isSeparator)

	tokens := make([]string, 0, MaxTokens)
	for _, w := range words {
		if utf8.RuneCountInString(w) < minTokenRunes {
			continue
		}
		if IsStopWord(w) {
			continue
		}
		tokens = append(tokens, w)
		if len(tokens) == MaxTokens {
			break
		}
	}
	return tokens
}
