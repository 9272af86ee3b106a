package models

import (
	"time"

	"github.com/paulmach/orb"
)

// GeometryRecord is one trajectory feature of the study dataset.
// Geometry is expected to be an orb.LineString or orb.MultiLineString in
// EPSG:4326 (lon, lat); other kinds are rejected by the heat builder.
type GeometryRecord struct {
	Geometry  orb.Geometry `json:"-"`
	Speed     float64      `json:"speed"`               // km/h
	Timestamp *time.Time   `json:"timestamp,omitempty"` // date_d, nil when absent

	DriverID     string `json:"driverId"`     // id_driver
	TripID       string `json:"tripId"`       // id_trip
	TrajectoryID int64  `json:"trajectoryId"` // id_traj
	Neighborhood string `json:"neighborhood"` // bairro

	// Attributes carried by the source file
	City            string `json:"city,omitempty"`            // cidade
	Sex             string `json:"sex,omitempty"`             // sexo
	Age             string `json:"age,omitempty"`             // idade
	Category        string `json:"category,omitempty"`        // categoria
	LicenseCategory string `json:"licenseCategory,omitempty"` // categoria_cnh
	Hierarchy       string `json:"hierarchy,omitempty"`       // hierarquia (road hierarchy)
}

// HasTimestamp reports whether the record carries a resolved date-time.
func (r GeometryRecord) HasTimestamp() bool {
	return r.Timestamp != nil && !r.Timestamp.IsZero()
}
