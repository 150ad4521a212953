package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingColumn signals that a required logical field has no matching
// column in the batch. This is a structural failure of the caller's
// configuration, never a data-quality issue.
var ErrMissingColumn = errors.New("required column missing")

// Table is an immutable tabular batch of incident records: a header plus
// string-valued rows. Column lookup is case-insensitive because upstream
// exports disagree on casing.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewTable builds a Table from a header and rows. Header names are trimmed;
// when two columns share a name the first occurrence wins.
func NewTable(columns []string, rows [][]string) *Table {
	cols := make([]string, len(columns))
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		cols[i] = strings.TrimSpace(c)
		key := strings.ToLower(cols[i])
		if _, exists := index[key]; !exists {
			index[key] = i
		}
	}
	return &Table{columns: cols, index: index, rows: rows}
}

// Columns returns the header in original order.
func (t *Table) Columns() []string { return t.columns }

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return len(t.rows) }

// Value returns the cell at (row, col), or "" when the row is shorter than
// the header or the column index is negative.
func (t *Table) Value(row, col int) string {
	if col < 0 || col >= len(t.rows[row]) {
		return ""
	}
	return t.rows[row][col]
}

// Lookup finds a column position by name, case-insensitively.
func (t *Table) Lookup(name string) (int, bool) {
	i, ok := t.index[strings.ToLower(strings.TrimSpace(name))]
	return i, ok
}

// Field names a logical incident field and the column names that may carry
// it, in preference order. The mapping is resolved once per aggregation
// against the batch header rather than per-row.
type Field struct {
	Name       string
	Candidates []string
	Required   bool
}

// Resolve returns the position of the first candidate column present in the
// table. A missing optional field resolves to -1 with no error; a missing
// required field is an ErrMissingColumn.
func (t *Table) Resolve(f Field) (int, error) {
	for _, c := range f.Candidates {
		if i, ok := t.Lookup(c); ok {
			return i, nil
		}
	}
	if !f.Required {
		return -1, nil
	}
	return -1, fmt.Errorf("%w: %s (candidates: %s)",
		ErrMissingColumn, f.Name, strings.Join(f.Candidates, ", "))
}

// Logical fields of the wildfire incident schema with their default column
// candidates. Aggregation options override the candidate lists, not these
// definitions.
var (
	FieldDate   = Field{Name: "occurrence_date", Candidates: []string{"OCRN_YMD", "startdate"}, Required: true}
	FieldYear   = Field{Name: "occurrence_year", Candidates: []string{"startyear", "OCRN_YR"}}
	FieldMonth  = Field{Name: "occurrence_month", Candidates: []string{"startmonth", "OCRN_MM"}}
	FieldHour   = Field{Name: "occurrence_hour", Candidates: []string{"FIRE_OCRN_HR", "OCRN_HR"}, Required: true}
	FieldCause  = Field{Name: "cause", Candidates: []string{"IGTN_HTSRC_LCLSF_NM", "IGTN_CAUSE_NM"}, Required: true}
	FieldRegion = Field{Name: "region", Candidates: []string{"SIDO_NM", "CTPV_NM", "region"}, Required: true}

	FieldDeaths   = Field{Name: "death_count", Candidates: []string{"DTH_NOPE", "DPRS_NOPE"}, Required: true}
	FieldInjuries = Field{Name: "injury_count", Candidates: []string{"INJPSN_NOPE", "INJ_NOPE"}, Required: true}

	FieldMobilizedTotal        = Field{Name: "mobilized_total", Candidates: []string{"WHOL_MNPW_CNT"}, Required: true}
	FieldMobilizedPolice       = Field{Name: "mobilized_police", Candidates: []string{"MBLZ_POLICEO_CNT"}}
	FieldMobilizedMilitary     = Field{Name: "mobilized_military", Candidates: []string{"MBLZ_SOLD_CNT"}}
	FieldMobilizedGeneralStaff = Field{Name: "mobilized_general_staff", Candidates: []string{"MBLZ_GNRL_OCPT_NOPE"}}
	FieldMobilizedOther        = Field{Name: "mobilized_other", Candidates: []string{"ETC_MBLZ_NOPE"}}
	FieldMobilizedFirefighting = Field{Name: "mobilized_firefighting", Candidates: []string{"MBLZ_FFPWR_CNT"}}
)
