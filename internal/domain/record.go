package domain

// Aggregate output records. These are the unit of exchange with the rendering
// surface: flat, JSON-ready, with fixed field names. The chart fragments index
// hour- and month-keyed series positionally, so those aggregates must cover
// their full key domain (every hour 0-23, every month 1-12) with zero fills.

// HourlyCount is the total incident count for one hour of day.
type HourlyCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// CauseHourCount is the incident count for one (cause bucket, hour) pair.
type CauseHourCount struct {
	Cause string `json:"cause"`
	Hour  int    `json:"hour"`
	Count int    `json:"count"`
}

// MonthlyCount is the incident count for one calendar month (1-12).
type MonthlyCount struct {
	Month int `json:"month"`
	Count int `json:"count"`
}

// YearlyCount is the incident count for one observed year.
type YearlyCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// RegionYearCount is the incident count for one observed (year, region) pair.
// Unlike the hour- and month-keyed aggregates this series is sparse: the
// region map fragment consumes an edge list, not a dense grid.
type RegionYearCount struct {
	Year   int    `json:"year"`
	Region string `json:"region"`
	Count  int    `json:"count"`
}

// MobilizationRecord is the personnel roll-up for one (year, month) pair.
// All five role sub-counts are always present, defaulting to zero when the
// source schema lacks the column.
type MobilizationRecord struct {
	Year           int `json:"year"`
	Month          int `json:"month"`
	TotalPersonnel int `json:"total_personnel"`
	Police         int `json:"police"`
	Military       int `json:"military"`
	GeneralStaff   int `json:"general_staff"`
	Other          int `json:"other"`
	Firefighting   int `json:"firefighting"`
}

// CasualtyRecord is the reconciled casualty roll-up for one observed year.
// Injuries are derived, never negative.
type CasualtyRecord struct {
	Year     int `json:"year"`
	Deaths   int `json:"deaths"`
	Injuries int `json:"injuries"`
}
