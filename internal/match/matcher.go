// Package match implements fuzzy lexical overlap scoring: corpus items are
// ranked by how many extracted keywords they contain as substrings.
package match

import (
	"sort"
	"strings"
)

// Doc is one corpus item considered for matching.
type Doc struct {
	Key  string // stable identity for de-duplication
	Text string
	Ref  any // caller payload carried through untouched
}

// Result is a matched corpus item with its distinct-keyword hit count.
type Result struct {
	Doc        Doc
	MatchCount int
}

// DocKey returns the identity used for de-duplication: the URL when
// present, the title text otherwise.
func DocKey(url, text string) string {
	if url != "" {
		return url
	}
	return text
}

// Overlap counts how many distinct keywords the text contains as
// substrings. Containment is case-sensitive: titles may carry keywords
// inside larger compound words, and the corpus is matched exactly as
// stored.
func Overlap(text string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			count++
		}
	}
	return count
}

// Match ranks corpus items by distinct-keyword overlap. Duplicate keys keep
// their first occurrence, items below minOverlap are dropped, and the result
// is sorted by descending match count (discovery order preserved on ties)
// and truncated to limit. limit <= 0 means no truncation.
func Match(keywords []string, corpus []Doc, minOverlap, limit int) []Result {
	if len(keywords) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(corpus))
	results := make([]Result, 0, len(corpus))

	for _, doc := range corpus {
		if _, dup := seen[doc.Key]; dup {
			continue
		}
		seen[doc.Key] = struct{}{}

		count := Overlap(doc.Text, keywords)
		if count < minOverlap {
			continue
		}
		results = append(results, Result{Doc: doc, MatchCount: count})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchCount > results[j].MatchCount
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
