package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twinssn/blogdex/internal/match"
)

func doc(key, text string) match.Doc {
	return match.Doc{Key: key, Text: text}
}

func TestOverlap(t *testing.T) {
	keywords := []string{"전기차", "보조금", "신청"}

	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{name: "all keywords contained", text: "2026년 전기차 보조금 신청 총정리", expected: 3},
		{name: "compound word containment", text: "전기차보조금신청안내", expected: 3},
		{name: "partial overlap", text: "전기차 충전기 설치", expected: 1},
		{name: "no overlap", text: "강아지 사료 추천", expected: 0},
		{name: "case sensitive", text: "EV 보조금", expected: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, match.Overlap(tc.text, keywords))
		})
	}
}

func TestMatchRankingAndThreshold(t *testing.T) {
	keywords := []string{"전기차", "보조금", "신청"}
	corpus := []match.Doc{
		doc("a", "전기차 충전소 지도"),                 // 1 hit
		doc("b", "전기차 보조금 신청 방법 총정리"),    // 3 hits
		doc("c", "전기차 보조금 지역별 정리"),          // 2 hits
		doc("d", "강아지 사료 추천"),                   // 0 hits
	}

	results := match.Match(keywords, corpus, 2, 10)

	assert.Len(t, results, 2)
	assert.Equal(t, "b", results[0].Doc.Key)
	assert.Equal(t, 3, results[0].MatchCount)
	assert.Equal(t, "c", results[1].Doc.Key)
	assert.Equal(t, 2, results[1].MatchCount)
}

// Raising minOverlap can only shrink the result set.
func TestMatchMinOverlapMonotonic(t *testing.T) {
	keywords := []string{"전기차", "보조금", "신청"}
	corpus := []match.Doc{
		doc("a", "전기차 충전소 지도"),
		doc("b", "전기차 보조금 신청 방법"),
		doc("c", "전기차 보조금 지역별"),
	}

	loose := match.Match(keywords, corpus, 1, 0)
	strict := match.Match(keywords, corpus, 2, 0)

	assert.GreaterOrEqual(t, len(loose), len(strict))

	looseKeys := make(map[string]bool)
	for _, r := range loose {
		looseKeys[r.Doc.Key] = true
	}
	for _, r := range strict {
		assert.True(t, looseKeys[r.Doc.Key], "strict result %q missing from loose results", r.Doc.Key)
	}
}

func TestMatchDeduplicatesFirstWins(t *testing.T) {
	keywords := []string{"전기차", "보조금"}
	corpus := []match.Doc{
		doc("same-url", "전기차 보조금 신청"),
		doc("same-url", "전기차 보조금 신청 복사본"),
		doc("other", "전기차 보조금 정리"),
	}

	results := match.Match(keywords, corpus, 2, 0)

	assert.Len(t, results, 2)
	assert.Equal(t, "전기차 보조금 신청", results[0].Doc.Text)
}

func TestMatchTruncation(t *testing.T) {
	keywords := []string{"전기차"}
	corpus := []match.Doc{
		doc("a", "전기차 1"), doc("b", "전기차 2"), doc("c", "전기차 3"),
	}

	assert.Len(t, match.Match(keywords, corpus, 1, 2), 2)
	assert.Len(t, match.Match(keywords, corpus, 1, 0), 3)
}

func TestMatchEmptyKeywords(t *testing.T) {
	assert.Nil(t, match.Match(nil, []match.Doc{doc("a", "전기차")}, 1, 10))
}
