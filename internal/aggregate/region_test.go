package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firewatch-kr/wildfire-report-service/internal/domain"
)

func TestRegionYearCounts(t *testing.T) {
	table := domain.NewTable([]string{"OCRN_YMD", "SIDO_NM"}, [][]string{
		{"20210301", "Gangwon"},
		{"20210302", "Gangwon"},
		{"20200515", "Gyeongbuk"},
		{"20210801", ""},       // blank region counts under unknown
		{"bad-date", "Jeju"},   // dropped
	})

	got, err := RegionYearCounts(table)
	require.NoError(t, err)

	assert.Equal(t, []domain.RegionYearCount{
		{Year: 2020, Region: "Gyeongbuk", Count: 1},
		{Year: 2021, Region: "Gangwon", Count: 2},
		{Year: 2021, Region: CauseUnknown, Count: 1},
	}, got, "sparse edge list sorted by year then region")
}

func TestRegionYearCountsMissingRegionColumn(t *testing.T) {
	table := domain.NewTable([]string{"OCRN_YMD"}, nil)
	_, err := RegionYearCounts(table)
	assert.ErrorIs(t, err, domain.ErrMissingColumn)
}
