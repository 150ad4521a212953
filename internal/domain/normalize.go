package domain

import (
	"strconv"
	"strings"
)

// ParseYear extracts the leading 4-digit year from a YYYYMMDD-style date
// string. Returns false for anything that does not start with four digits.
func ParseYear(date string) (int, bool) {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil || year <= 0 {
		return 0, false
	}
	return year, true
}

// ParseYearMonth extracts the year and month from a YYYYMMDD-style date
// string. Returns false when either part fails numeric conversion or the
// month is outside 1-12.
func ParseYearMonth(date string) (int, int, bool) {
	date = strings.TrimSpace(date)
	if len(date) < 6 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil || year <= 0 {
		return 0, 0, false
	}
	month, err := strconv.Atoi(date[4:6])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}

// ParseHour normalizes a free-form hour encoding to an hour of day. Accepted
// shapes: "9", "09", "930", "0930", "09:30", "093000". Separators are
// stripped, odd-length values are zero-left-padded so digit pairs align, and
// the leading pair is the hour ("09" in "0930"). A bare one- or two-digit
// value is the hour itself. Results outside 0-23 are rejected.
func ParseHour(raw string) (int, bool) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ":", "")
	if raw == "" {
		return 0, false
	}
	if len(raw)%2 == 1 {
		raw = "0" + raw
	}
	if len(raw) > 2 {
		raw = raw[:2]
	}
	hour, err := strconv.Atoi(raw)
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	return hour, true
}

// ParseCount coerces a raw count field to an integer, treating missing or
// non-numeric values as zero. Decimal text ("12.0") is truncated toward zero.
func ParseCount(raw string) int {
	n, ok := ParseCountStrict(raw)
	if !ok {
		return 0
	}
	return n
}

// ParseCountStrict parses a raw count field, reporting whether the value was
// numeric at all. Used where the policy is drop-the-row rather than
// substitute-zero.
func ParseCountStrict(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f), true
	}
	return 0, false
}
