package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firewatch-kr/wildfire-report-service/internal/domain"
)

func casualtyTable(rows [][]string) *domain.Table {
	return domain.NewTable([]string{"OCRN_YMD", "DTH_NOPE", "INJPSN_NOPE"}, rows)
}

func TestCasualtyByYear(t *testing.T) {
	table := casualtyTable([][]string{
		{"20180115", "2", "17"},
		{"20180301", "1", "4"},
		{"20190601", "0", "3"},
		{"bad-date", "9", "9"}, // dropped
	})

	got, err := CasualtyByYear(table)
	require.NoError(t, err)
	assert.Equal(t, []domain.CasualtyRecord{
		{Year: 2018, Deaths: 3, Injuries: 21},
		{Year: 2019, Deaths: 0, Injuries: 3},
	}, got)
}

func TestCasualtyByYearSingleRow(t *testing.T) {
	got, err := CasualtyByYear(casualtyTable([][]string{
		{"20180115", "2", "17"},
	}))
	require.NoError(t, err)
	assert.Equal(t, []domain.CasualtyRecord{{Year: 2018, Deaths: 2, Injuries: 17}}, got)
}

func TestCasualtyByYearInjuriesNeverNegative(t *testing.T) {
	// Negative injury cells can push the casualty sum below the death sum;
	// the derived injuries clamp at zero.
	got, err := CasualtyByYear(casualtyTable([][]string{
		{"20200101", "5", "-9"},
	}))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Injuries)
	assert.Equal(t, 5, got[0].Deaths)
}

func TestCasualtyByYearLenientCells(t *testing.T) {
	got, err := CasualtyByYear(casualtyTable([][]string{
		{"20200101", "", "n/a"}, // both coerce to 0, row still counts under 2020
		{"20200102", "1.0", "2.0"},
	}))
	require.NoError(t, err)
	assert.Equal(t, []domain.CasualtyRecord{{Year: 2020, Deaths: 1, Injuries: 2}}, got)
}

func TestCasualtyByYearMissingColumns(t *testing.T) {
	table := domain.NewTable([]string{"OCRN_YMD", "DTH_NOPE"}, nil)
	_, err := CasualtyByYear(table)
	assert.ErrorIs(t, err, domain.ErrMissingColumn)
}
