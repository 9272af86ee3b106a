package models

// TripFilter represents filter parameters for the trip attribute table
type TripFilter struct {
	TripID       string  `form:"trip"`
	DriverID     string  `form:"driver"`
	Neighborhood string  `form:"neighborhood"`
	Hierarchy    string  `form:"hierarchy"`
	MinSpeed     float64 `form:"minSpeed"`
	MaxSpeed     float64 `form:"maxSpeed"`
	Page         int     `form:"page"`
	PageSize     int     `form:"pageSize"`
}

// RecordFilter selects records for the map pages by categorical selectors.
// Empty fields match everything.
type RecordFilter struct {
	TripID    string `form:"trip"`
	DriverID  string `form:"driver"`
	Hierarchy string `form:"hierarchy"`
}

// Match reports whether r passes every non-empty selector
func (f RecordFilter) Match(r GeometryRecord) bool {
	if f.TripID != "" && r.TripID != f.TripID {
		return false
	}
	if f.DriverID != "" && r.DriverID != f.DriverID {
		return false
	}
	if f.Hierarchy != "" && r.Hierarchy != f.Hierarchy {
		return false
	}
	return true
}

// Apply returns the records passing the filter, preserving order
func (f RecordFilter) Apply(records []GeometryRecord) []GeometryRecord {
	if f == (RecordFilter{}) {
		return records
	}
	out := make([]GeometryRecord, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
