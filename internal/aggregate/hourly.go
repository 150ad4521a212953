package aggregate

import (
	"sort"

	"github.com/firewatch-kr/wildfire-report-service/internal/domain"
)

// HourlyCounts counts incidents per hour of day. The result always has
// exactly 24 rows, hours 0-23 ascending, zero-filled for hours with no
// incidents. Rows with an unparseable hour are dropped.
func HourlyCounts(t *domain.Table) ([]domain.HourlyCount, error) {
	hourCol, err := t.Resolve(domain.FieldHour)
	if err != nil {
		return nil, err
	}

	var counts [24]int
	for row := 0; row < t.NumRows(); row++ {
		hour, ok := domain.ParseHour(t.Value(row, hourCol))
		if !ok {
			continue
		}
		counts[hour]++
	}

	out := make([]domain.HourlyCount, 24)
	for h := range counts {
		out[h] = domain.HourlyCount{Hour: h, Count: counts[h]}
	}
	return out, nil
}

// CauseHourMatrix counts incidents per (cause bucket, hour) pair. Causes are
// normalized (blank -> CauseUnknown) and bucketed to the topN most frequent
// labels plus CauseOther; topN <= 0 keeps every label. The result is the full
// cartesian product of the realized bucket set (sorted ascending) and hours
// 0-23, zero-filled: len(result) == len(buckets) * 24. Rows with an
// unparseable hour are dropped before bucketing so the frequency ranking only
// sees rows that reach the matrix.
func CauseHourMatrix(t *domain.Table, topN int) ([]domain.CauseHourCount, error) {
	hourCol, err := t.Resolve(domain.FieldHour)
	if err != nil {
		return nil, err
	}
	causeCol, err := t.Resolve(domain.FieldCause)
	if err != nil {
		return nil, err
	}

	var labels []string
	var hours []int
	for row := 0; row < t.NumRows(); row++ {
		hour, ok := domain.ParseHour(t.Value(row, hourCol))
		if !ok {
			continue
		}
		labels = append(labels, NormalizeCategory(t.Value(row, causeCol)))
		hours = append(hours, hour)
	}

	buckets := BucketCategories(labels, topN)

	counts := make(map[string]*[24]int)
	for i, b := range buckets {
		cell := counts[b]
		if cell == nil {
			cell = new([24]int)
			counts[b] = cell
		}
		cell[hours[i]]++
	}

	names := make([]string, 0, len(counts))
	for b := range counts {
		names = append(names, b)
	}
	sort.Strings(names)

	out := make([]domain.CauseHourCount, 0, len(names)*24)
	for _, b := range names {
		for h := 0; h < 24; h++ {
			out = append(out, domain.CauseHourCount{Cause: b, Hour: h, Count: counts[b][h]})
		}
	}
	return out, nil
}
