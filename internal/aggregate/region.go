package aggregate

import (
	"sort"

	"github.com/firewatch-kr/wildfire-report-service/internal/domain"
)

// RegionYearCounts counts incidents per observed (year, region) pair. The
// series is deliberately sparse: the region map fragment consumes an edge
// list, not a dense grid, so pairs with no incidents are omitted. Output is
// sorted by year ascending, then region ascending. Blank regions count under
// CauseUnknown; rows with an unparseable year are dropped.
func RegionYearCounts(t *domain.Table) ([]domain.RegionYearCount, error) {
	extractYear, err := yearExtractor(t)
	if err != nil {
		return nil, err
	}
	regionCol, err := t.Resolve(domain.FieldRegion)
	if err != nil {
		return nil, err
	}

	type key struct {
		year   int
		region string
	}
	counts := make(map[key]int)
	for row := 0; row < t.NumRows(); row++ {
		year, ok := extractYear(row)
		if !ok {
			continue
		}
		region := NormalizeCategory(t.Value(row, regionCol))
		counts[key{year, region}]++
	}

	out := make([]domain.RegionYearCount, 0, len(counts))
	for k, count := range counts {
		out = append(out, domain.RegionYearCount{Year: k.year, Region: k.region, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Region < out[j].Region
	})
	return out, nil
}
