package aggregate

import (
	"github.com/firewatch-kr/wildfire-report-service/internal/domain"
)

// MobilizationRollup sums mobilized personnel per (year, month) across the
// primary total and the five role columns. Rows with an unparseable date or
// an unparseable primary total are dropped; role columns are lenient
// (non-numeric cells count as 0) and roles absent from the schema entirely
// are synthesized as all-zero, never an error. The result covers the
// continuous [minYear, maxYear] x months 1-12 domain zero-filled across all
// metrics, sorted by year then month, so an interior year with no rows still
// emits 12 records. An empty or fully-dropped input yields an empty slice.
func MobilizationRollup(t *domain.Table) ([]domain.MobilizationRecord, error) {
	dateCol, err := t.Resolve(domain.FieldDate)
	if err != nil {
		return nil, err
	}
	totalCol, err := t.Resolve(domain.FieldMobilizedTotal)
	if err != nil {
		return nil, err
	}

	// Optional role columns resolve to -1 when absent; Value reads them as "".
	policeCol, _ := t.Resolve(domain.FieldMobilizedPolice)
	militaryCol, _ := t.Resolve(domain.FieldMobilizedMilitary)
	staffCol, _ := t.Resolve(domain.FieldMobilizedGeneralStaff)
	otherCol, _ := t.Resolve(domain.FieldMobilizedOther)
	fireCol, _ := t.Resolve(domain.FieldMobilizedFirefighting)

	type key struct{ year, month int }
	sums := make(map[key]*domain.MobilizationRecord)
	minYear, maxYear := 0, 0

	for row := 0; row < t.NumRows(); row++ {
		year, month, ok := domain.ParseYearMonth(t.Value(row, dateCol))
		if !ok {
			continue
		}
		total, ok := domain.ParseCountStrict(t.Value(row, totalCol))
		if !ok {
			continue
		}

		k := key{year, month}
		rec := sums[k]
		if rec == nil {
			rec = &domain.MobilizationRecord{Year: year, Month: month}
			sums[k] = rec
		}
		rec.TotalPersonnel += total
		rec.Police += domain.ParseCount(t.Value(row, policeCol))
		rec.Military += domain.ParseCount(t.Value(row, militaryCol))
		rec.GeneralStaff += domain.ParseCount(t.Value(row, staffCol))
		rec.Other += domain.ParseCount(t.Value(row, otherCol))
		rec.Firefighting += domain.ParseCount(t.Value(row, fireCol))

		if minYear == 0 || year < minYear {
			minYear = year
		}
		if year > maxYear {
			maxYear = year
		}
	}

	if minYear == 0 {
		return []domain.MobilizationRecord{}, nil
	}

	out := make([]domain.MobilizationRecord, 0, (maxYear-minYear+1)*12)
	for year := minYear; year <= maxYear; year++ {
		for month := 1; month <= 12; month++ {
			if rec := sums[key{year, month}]; rec != nil {
				out = append(out, *rec)
			} else {
				out = append(out, domain.MobilizationRecord{Year: year, Month: month})
			}
		}
	}
	return out, nil
}
