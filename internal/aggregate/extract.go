package aggregate

import (
	"github.com/firewatch-kr/wildfire-report-service/internal/domain"
)

// yearExtractor returns a per-row year accessor for the table, preferring a
// dedicated year column (the national dataset carries one) and falling back
// to the leading digits of the date column. Structural absence of both is an
// error; per-row parse failures report ok=false.
func yearExtractor(t *domain.Table) (func(row int) (int, bool), error) {
	if col, _ := t.Resolve(domain.FieldYear); col >= 0 {
		return func(row int) (int, bool) {
			y, ok := domain.ParseCountStrict(t.Value(row, col))
			if !ok || y <= 0 {
				return 0, false
			}
			return y, true
		}, nil
	}

	col, err := t.Resolve(domain.FieldDate)
	if err != nil {
		return nil, err
	}
	return func(row int) (int, bool) {
		return domain.ParseYear(t.Value(row, col))
	}, nil
}

// yearMonthExtractor is yearExtractor's (year, month) counterpart, preferring
// dedicated year and month columns when both are present.
func yearMonthExtractor(t *domain.Table) (func(row int) (int, int, bool), error) {
	yearCol, _ := t.Resolve(domain.FieldYear)
	monthCol, _ := t.Resolve(domain.FieldMonth)
	if yearCol >= 0 && monthCol >= 0 {
		return func(row int) (int, int, bool) {
			y, okY := domain.ParseCountStrict(t.Value(row, yearCol))
			m, okM := domain.ParseCountStrict(t.Value(row, monthCol))
			if !okY || !okM || y <= 0 || m < 1 || m > 12 {
				return 0, 0, false
			}
			return y, m, true
		}, nil
	}

	col, err := t.Resolve(domain.FieldDate)
	if err != nil {
		return nil, err
	}
	return func(row int) (int, int, bool) {
		return domain.ParseYearMonth(t.Value(row, col))
	}, nil
}
