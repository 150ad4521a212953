package aggregate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firewatch-kr/wildfire-report-service/internal/domain"
)

func TestMobilizationRollup(t *testing.T) {
	table := domain.NewTable(
		[]string{"OCRN_YMD", "WHOL_MNPW_CNT", "MBLZ_POLICEO_CNT", "MBLZ_FFPWR_CNT"},
		[][]string{
			{"20200301", "100", "10", "40"},
			{"20200315", "50", "5", "20"},
			{"20200701", "30", "abc", "10"}, // role cell lenient, counts as 0
			{"20200820", "25", "2", "xyz"},  // role cell lenient, counts as 0
			{"bad-date", "10", "1", "1"},    // dropped: date
			{"20200901", "", "1", "1"},      // dropped: missing total
		},
	)

	got, err := MobilizationRollup(table)
	require.NoError(t, err)

	// One observed year gives 12 dense rows.
	require.Len(t, got, 12)
	byMonth := make(map[int]domain.MobilizationRecord, 12)
	for _, rec := range got {
		require.Equal(t, 2020, rec.Year)
		byMonth[rec.Month] = rec
	}

	march := byMonth[3]
	assert.Equal(t, 150, march.TotalPersonnel)
	assert.Equal(t, 15, march.Police)
	assert.Equal(t, 60, march.Firefighting)
	assert.Zero(t, march.Military, "role column absent from schema reads as 0")
	assert.Zero(t, march.GeneralStaff)
	assert.Zero(t, march.Other)

	july := byMonth[7]
	assert.Equal(t, 30, july.TotalPersonnel)
	assert.Zero(t, july.Police, "non-numeric role cell counts as 0")

	august := byMonth[8]
	assert.Equal(t, 25, august.TotalPersonnel)
	assert.Zero(t, august.Firefighting)

	assert.Zero(t, byMonth[9].TotalPersonnel, "row without a primary total is dropped")
	assert.Equal(t, domain.MobilizationRecord{Year: 2020, Month: 1}, byMonth[1], "empty month is zero-filled")
}

func TestMobilizationRollupDenseAcrossYearGap(t *testing.T) {
	table := domain.NewTable(
		[]string{"OCRN_YMD", "WHOL_MNPW_CNT"},
		[][]string{
			{"20190301", "10"},
			{"20210701", "20"},
		},
	)

	got, err := MobilizationRollup(table)
	require.NoError(t, err)

	// 2019-2021 inclusive, 12 months each, even though 2020 has no rows.
	require.Len(t, got, 36)
	for i, rec := range got {
		assert.Equal(t, 2019+i/12, rec.Year)
		assert.Equal(t, i%12+1, rec.Month)
	}
	for _, rec := range got[12:24] {
		assert.Equal(t, domain.MobilizationRecord{Year: 2020, Month: rec.Month}, rec)
	}
}

func TestMobilizationRollupEmptyInput(t *testing.T) {
	table := domain.NewTable([]string{"OCRN_YMD", "WHOL_MNPW_CNT"}, nil)
	got, err := MobilizationRollup(table)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMobilizationRollupMissingTotalColumn(t *testing.T) {
	table := domain.NewTable([]string{"OCRN_YMD"}, nil)
	_, err := MobilizationRollup(table)
	assert.ErrorIs(t, err, domain.ErrMissingColumn)
}

func TestMobilizationRollupDeterministic(t *testing.T) {
	table := domain.NewTable(
		[]string{"OCRN_YMD", "WHOL_MNPW_CNT", "MBLZ_SOLD_CNT"},
		[][]string{
			{"20200301", "100", "7"},
			{"20200415", "50", "3"},
			{"20210101", "25", "1"},
		},
	)

	first, err := MobilizationRollup(table)
	require.NoError(t, err)
	second, err := MobilizationRollup(table)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(first, second))
}
