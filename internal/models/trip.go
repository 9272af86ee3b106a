package models

// TripRow is one row of the trip attribute table
type TripRow struct {
	ID              int64   `json:"id" db:"id"`
	TrajectoryID    int64   `json:"trajectoryId" db:"id_traj"`
	TripID          string  `json:"tripId" db:"id_trip"`
	DriverID        string  `json:"driverId" db:"id_driver"`
	Sex             string  `json:"sex" db:"sexo"`
	Age             string  `json:"age" db:"idade"`
	Category        string  `json:"category" db:"categoria"`
	LicenseCategory string  `json:"licenseCategory" db:"categoria_cnh"`
	Speed           float64 `json:"speed" db:"speed"`
	Date            string  `json:"date,omitempty" db:"date_d"` // RFC3339, empty when unknown
	City            string  `json:"city" db:"cidade"`
	Neighborhood    string  `json:"neighborhood" db:"bairro"`
	Hierarchy       string  `json:"hierarchy,omitempty" db:"hierarquia"`
	LengthMeters    float64 `json:"lengthMeters" db:"length_m"`
}

// TripsResponse represents a paginated response of trip rows
type TripsResponse struct {
	Data       []TripRow `json:"data"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	TotalPages int       `json:"totalPages"`
}

// NeighborhoodCount is one bar of the trips-per-neighborhood chart
type NeighborhoodCount struct {
	Neighborhood string `json:"neighborhood"`
	Count        int64  `json:"count"`
}

// TrajectorySpeed is one bar of the per-trajectory speed chart
type TrajectorySpeed struct {
	TrajectoryID int64   `json:"trajectoryId"`
	Speed        float64 `json:"speed"`
}
