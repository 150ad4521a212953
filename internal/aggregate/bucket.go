// Package aggregate implements the pure aggregation functions behind the
// report sections: dense hour/month series, the cause-by-hour matrix, the
// sparse region edge list, the mobilization roll-up, and the casualty
// reconciliation. All functions are synchronous and deterministic; the only
// errors they return are structural (a required column missing from the
// table). Defective rows are dropped silently.
package aggregate

import (
	"sort"
	"strings"
)

// Sentinel category labels. CauseUnknown stands in for blank or missing
// category values; CauseOther absorbs everything outside the top-N set.
const (
	CauseUnknown = "unknown"
	CauseOther   = "other"
)

// DefaultTopCauses is the number of cause categories kept before bucketing
// into CauseOther.
const DefaultTopCauses = 5

// NormalizeCategory trims a raw category value, substituting CauseUnknown for
// blank or whitespace-only input.
func NormalizeCategory(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return CauseUnknown
	}
	return raw
}

// BucketCategories maps each label to itself when it ranks among the topN
// most frequent labels, and to CauseOther otherwise. Ranking ties break by
// label ascending so the bucket set is deterministic. topN <= 0 disables
// bucketing and returns the input unchanged. Labels are expected to be
// normalized already (see NormalizeCategory).
func BucketCategories(labels []string, topN int) []string {
	if topN <= 0 {
		return labels
	}

	freq := make(map[string]int, len(labels))
	for _, l := range labels {
		freq[l]++
	}

	distinct := make([]string, 0, len(freq))
	for l := range freq {
		distinct = append(distinct, l)
	}
	sort.Slice(distinct, func(i, j int) bool {
		if freq[distinct[i]] != freq[distinct[j]] {
			return freq[distinct[i]] > freq[distinct[j]]
		}
		return distinct[i] < distinct[j]
	})

	kept := make(map[string]bool, topN)
	for i := 0; i < len(distinct) && i < topN; i++ {
		kept[distinct[i]] = true
	}

	out := make([]string, len(labels))
	for i, l := range labels {
		if kept[l] {
			out[i] = l
		} else {
			out[i] = CauseOther
		}
	}
	return out
}
