package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableLookup(t *testing.T) {
	table := NewTable([]string{" OCRN_YMD ", "FIRE_OCRN_HR", "fire_ocrn_hr"}, nil)

	tests := []struct {
		name    string
		column  string
		wantIdx int
		wantOK  bool
	}{
		{name: "exact match", column: "OCRN_YMD", wantIdx: 0, wantOK: true},
		{name: "case-insensitive", column: "ocrn_ymd", wantIdx: 0, wantOK: true},
		{name: "trims whitespace", column: "  OCRN_YMD", wantIdx: 0, wantOK: true},
		{name: "duplicate header keeps first", column: "FIRE_OCRN_HR", wantIdx: 1, wantOK: true},
		{name: "absent column", column: "IGTN_HTSRC_LCLSF_NM", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := table.Lookup(tt.column)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantIdx, idx)
			}
		})
	}
}

func TestTableResolve(t *testing.T) {
	table := NewTable([]string{"startdate", "ocrn_hr", "SIDO_NM"}, nil)

	t.Run("first present candidate wins", func(t *testing.T) {
		idx, err := table.Resolve(FieldDate)
		require.NoError(t, err)
		assert.Equal(t, 0, idx)
	})

	t.Run("falls through to later candidate", func(t *testing.T) {
		idx, err := table.Resolve(FieldHour)
		require.NoError(t, err)
		assert.Equal(t, 1, idx)
	})

	t.Run("missing optional resolves to -1 without error", func(t *testing.T) {
		idx, err := table.Resolve(FieldMobilizedPolice)
		require.NoError(t, err)
		assert.Equal(t, -1, idx)
	})

	t.Run("missing required is ErrMissingColumn", func(t *testing.T) {
		_, err := table.Resolve(FieldCause)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingColumn)
		assert.Contains(t, err.Error(), "cause")
	})
}

func TestTableValue(t *testing.T) {
	table := NewTable(
		[]string{"a", "b", "c"},
		[][]string{
			{"1", "2", "3"},
			{"4"}, // ragged row, shorter than the header
		},
	)

	require.Equal(t, 2, table.NumRows())
	assert.Equal(t, "2", table.Value(0, 1))
	assert.Equal(t, "4", table.Value(1, 0))
	assert.Equal(t, "", table.Value(1, 2), "short row reads as empty cell")
	assert.Equal(t, "", table.Value(0, -1), "unresolved column reads as empty cell")
}
