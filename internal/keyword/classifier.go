package keyword

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// Value labels the commercial intent of a search query.
type Value string

// Commercial-value classes.
const (
	ValueHigh   Value = "high"
	ValueMedium Value = "medium"
	ValueLow    Value = "low"
)

// highValuePatterns mark purchase, comparison, and benefit-seeking intent.
var highValuePatterns = []string{
	"추천", "비교", "가격", "후기", "리뷰", "순위", "top", "best",
	"신청", "방법", "절차", "가입", "등록", "발급",
	"할인", "쿠폰", "무료", "이벤트", "혜택",
	"보험", "대출", "적금", "예금", "투자", "연금",
	"보조금", "지원금", "환급", "세금", "공제",
	"vs", "차이", "장단점",
	"구매", "구입", "사는법", "파는법",
}

// lowValuePatterns mark definitional or trivia lookups with little revenue
// potential.
var lowValuePatterns = []string{
	"뜻", "의미", "영어로", "누구", "나이", "키", "몸무게",
	"생일", "mbti", "학력", "고향",
}

// Classifier tags queries as high/medium/low commercial value using fixed
// substring pattern lists. The high list is consulted first, then the low
// list; anything else is medium.
type Classifier struct {
	high *ahocorasick.Matcher
	low  *ahocorasick.Matcher
}

// NewClassifier builds the pattern automatons once; Classify is then a
// single pass per list.
func NewClassifier() *Classifier {
	return &Classifier{
		high: ahocorasick.NewStringMatcher(highValuePatterns),
		low:  ahocorasick.NewStringMatcher(lowValuePatterns),
	}
}

// Classify returns the commercial value of a query. Matching is
// case-insensitive substring containment.
func (c *Classifier) Classify(query string) Value {
	q := []byte(strings.ToLower(query))
	if len(c.high.Match(q)) > 0 {
		return ValueHigh
	}
	if len(c.low.Match(q)) > 0 {
		return ValueLow
	}
	return ValueMedium
}
