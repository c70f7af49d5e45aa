package keyword_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twinssn/blogdex/internal/keyword"
)

func TestClassify(t *testing.T) {
	c := keyword.NewClassifier()

	tests := []struct {
		query    string
		expected keyword.Value
	}{
		{query: "전기차 보험 비교", expected: keyword.ValueHigh},
		{query: "노트북 추천", expected: keyword.ValueHigh},
		{query: "전세 대출 금리", expected: keyword.ValueHigh},
		{query: "강아지 이름 뜻", expected: keyword.ValueLow},
		{query: "아이유 나이", expected: keyword.ValueLow},
		{query: "오늘 날씨", expected: keyword.ValueMedium},
		{query: "", expected: keyword.ValueMedium},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			assert.Equal(t, tc.expected, c.Classify(tc.query))
		})
	}
}

// Pattern matching is case-insensitive.
func TestClassifyCaseInsensitive(t *testing.T) {
	c := keyword.NewClassifier()
	assert.Equal(t, keyword.ValueHigh, c.Classify("아이폰 VS 갤럭시"))
	assert.Equal(t, keyword.ValueHigh, c.Classify("게이밍 마우스 BEST 5"))
	assert.Equal(t, keyword.ValueLow, c.Classify("연예인 MBTI 모음"))
}

// A query hitting both lists resolves to high; the high list is consulted
// first.
func TestClassifyHighWinsOverLow(t *testing.T) {
	c := keyword.NewClassifier()
	assert.Equal(t, keyword.ValueHigh, c.Classify("보험 뜻"))
}
