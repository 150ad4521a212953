// Package domain models Korea Forest Service (KFS) wildfire incident data.
//
// # Data Source
//
// Incident records originate from the KFS open-data wildfire status exports
// (산불현황), published as CSV or XLSX snapshots per province and per year.
// Each row is one wildfire incident; the dataset is an immutable batch loaded
// once per report build. Column casing varies between exports, so logical
// fields are resolved case-insensitively against a list of candidate column
// names (see [Field]).
//
// # KFS Data Conventions
//
// Occurrence date ("OCRN_YMD"):
//
//	8-digit YYYYMMDD encoding, e.g. "20220301" = 2022-03-01.
//	The leading four digits are the year and the following two the month.
//	Malformed or missing values drop the row from date-keyed aggregates.
//
// Occurrence hour ("FIRE_OCRN_HR"):
//
//	Free-form hour encoding: "9", "09", "930", "0930", "09:30", "093000"
//	all denote hour 9. Separators are stripped, odd-length values are
//	zero-left-padded so digit pairs align, and the leading pair is parsed
//	as the hour (0-23). Everything else drops the row.
//
// Ignition cause ("IGTN_HTSRC_LCLSF_NM"):
//
//	Free-text category, frequently blank. Blank or whitespace-only values
//	are reassigned the "unknown" sentinel before bucketing.
//
// Mobilization counts ("WHOL_MNPW_CNT" plus role columns):
//
//	Non-negative personnel counts. "WHOL_MNPW_CNT" is the primary total;
//	the five role sub-counts (police, military, general staff, other,
//	firefighting) may be absent from older exports and are synthesized
//	as zero in that case.
//
// Casualty counts ("DTH_NOPE", "INJPSN_NOPE"):
//
//	Deaths and injured persons per incident. Non-numeric or missing values
//	are treated as zero, never as a row failure.
//
// # Error Policy
//
// Only one condition is an error: a required logical field with no matching
// column in the batch ([ErrMissingColumn]), which signals misconfiguration
// between the caller and the dataset. Row-level defects (malformed dates,
// non-numeric counts, blank categories) are silently dropped or neutralized
// per field; the aggregate output is the only observable result.
package domain
