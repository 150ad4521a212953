package aggregate

import (
	"sort"

	"github.com/firewatch-kr/wildfire-report-service/internal/domain"
)

// CasualtyByYear reconciles the per-row death and injury counts into one
// record per observed year, sorted ascending. Per row the two counts are
// coerced leniently (non-numeric -> 0) and their sum is the row's casualty
// total; per year, injuries are recovered as casualtiesSum - deathsSum,
// clamped at zero. The recovery assumes the source death and injury columns
// count disjoint people; when a row double-counts, the derived injury figure
// absorbs the overlap. Rows with an unparseable year are dropped.
func CasualtyByYear(t *domain.Table) ([]domain.CasualtyRecord, error) {
	extractYear, err := yearExtractor(t)
	if err != nil {
		return nil, err
	}
	deathsCol, err := t.Resolve(domain.FieldDeaths)
	if err != nil {
		return nil, err
	}
	injuriesCol, err := t.Resolve(domain.FieldInjuries)
	if err != nil {
		return nil, err
	}

	type sums struct{ casualties, deaths int }
	byYear := make(map[int]sums)
	for row := 0; row < t.NumRows(); row++ {
		year, ok := extractYear(row)
		if !ok {
			continue
		}
		deaths := domain.ParseCount(t.Value(row, deathsCol))
		injuries := domain.ParseCount(t.Value(row, injuriesCol))

		s := byYear[year]
		s.casualties += deaths + injuries
		s.deaths += deaths
		byYear[year] = s
	}

	out := make([]domain.CasualtyRecord, 0, len(byYear))
	for year, s := range byYear {
		injuries := s.casualties - s.deaths
		if injuries < 0 {
			injuries = 0
		}
		out = append(out, domain.CasualtyRecord{Year: year, Deaths: s.deaths, Injuries: injuries})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}
