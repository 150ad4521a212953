package aggregate

import (
	"sort"

	"github.com/firewatch-kr/wildfire-report-service/internal/domain"
)

// YearRange is an inclusive year filter. A zero bound is unbounded on that
// side; the zero value admits every year.
type YearRange struct {
	From int
	To   int
}

// Contains reports whether year falls inside the range.
func (r YearRange) Contains(year int) bool {
	if r.From != 0 && year < r.From {
		return false
	}
	if r.To != 0 && year > r.To {
		return false
	}
	return true
}

// MonthlyCounts counts incidents per calendar month across the given year
// range. The result always has exactly 12 rows, months 1-12 ascending,
// zero-filled. Rows with an unparseable date or an out-of-range year are
// dropped.
func MonthlyCounts(t *domain.Table, years YearRange) ([]domain.MonthlyCount, error) {
	extract, err := yearMonthExtractor(t)
	if err != nil {
		return nil, err
	}

	var counts [13]int
	for row := 0; row < t.NumRows(); row++ {
		year, month, ok := extract(row)
		if !ok || !years.Contains(year) {
			continue
		}
		counts[month]++
	}

	out := make([]domain.MonthlyCount, 12)
	for m := 1; m <= 12; m++ {
		out[m-1] = domain.MonthlyCount{Month: m, Count: counts[m]}
	}
	return out, nil
}

// YearlyCounts counts incidents per observed year across the given range.
// Unlike the month series the result is sparse: only years with at least one
// incident appear, sorted ascending.
func YearlyCounts(t *domain.Table, years YearRange) ([]domain.YearlyCount, error) {
	extract, err := yearExtractor(t)
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int)
	for row := 0; row < t.NumRows(); row++ {
		year, ok := extract(row)
		if !ok || !years.Contains(year) {
			continue
		}
		counts[year]++
	}

	out := make([]domain.YearlyCount, 0, len(counts))
	for year, count := range counts {
		out = append(out, domain.YearlyCount{Year: year, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}
