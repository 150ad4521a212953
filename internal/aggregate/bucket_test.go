package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "arson", NormalizeCategory(" arson "))
	assert.Equal(t, CauseUnknown, NormalizeCategory(""))
	assert.Equal(t, CauseUnknown, NormalizeCategory("   "))
}

func TestBucketCategories(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		topN   int
		want   []string
	}{
		{
			name:   "keeps top labels and collapses the rest",
			labels: []string{"a", "a", "a", "b", "b", "c"},
			topN:   2,
			want:   []string{"a", "a", "a", "b", "b", CauseOther},
		},
		{
			name:   "tie breaks by label ascending",
			labels: []string{"cigarette", "lightning"},
			topN:   1,
			want:   []string{"cigarette", CauseOther},
		},
		{
			name:   "zero disables bucketing",
			labels: []string{"a", "b", "c"},
			topN:   0,
			want:   []string{"a", "b", "c"},
		},
		{
			name:   "negative disables bucketing",
			labels: []string{"a", "b"},
			topN:   -3,
			want:   []string{"a", "b"},
		},
		{
			name:   "topN larger than distinct set keeps everything",
			labels: []string{"a", "b"},
			topN:   10,
			want:   []string{"a", "b"},
		},
		{
			name:   "unknown ranks like any other label",
			labels: []string{CauseUnknown, CauseUnknown, "arson"},
			topN:   1,
			want:   []string{CauseUnknown, CauseUnknown, CauseOther},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BucketCategories(tt.labels, tt.topN))
		})
	}
}
