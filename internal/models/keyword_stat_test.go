package models_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twinssn/blogdex/internal/models"
)

func TestComputeCTR(t *testing.T) {
	testCases := []struct {
		name        string
		clicks      int64
		impressions int64
		want        float64
	}{
		{name: "normal ratio", clicks: 5, impressions: 100, want: 0.05},
		{name: "zero impressions yields zero, not NaN", clicks: 7, impressions: 0, want: 0},
		{name: "zero clicks", clicks: 0, impressions: 100, want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := models.ComputeCTR(tc.clicks, tc.impressions)
			assert.Equal(t, tc.want, got)
			assert.False(t, math.IsNaN(got), "CTR must never be NaN")
		})
	}
}

func TestTitleStatusNormalize(t *testing.T) {
	assert.Equal(t, models.StatusSaved, models.StatusSaved.Normalize())
	assert.Equal(t, models.StatusNew, models.TitleStatus("").Normalize())
	assert.Equal(t, models.StatusNew, models.TitleStatus("pending_review").Normalize())
}
