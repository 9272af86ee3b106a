package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/estudo-naturalistico/dashboard-backend-go/internal/database"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/heat"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/models"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/spatial"
)

// TripRepository mirrors loaded trajectory attributes into the trips table
type TripRepository struct {
	db *sql.DB
}

// NewTripRepository creates a new trip repository
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{db: db}
}

const tripColumns = `id, id_traj, id_trip, id_driver, sexo, idade, categoria, categoria_cnh,
		speed, date_d, cidade, bairro, hierarquia, length_m`

// ReplaceDataset replaces every row of dataset with records
func (r *TripRepository) ReplaceDataset(dataset string, records []models.GeometryRecord) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM trips WHERE dataset = ?", dataset); err != nil {
			return fmt.Errorf("failed to clear dataset %s: %w", dataset, err)
		}

		stmt, err := tx.Prepare(`INSERT INTO trips (
			dataset, id_traj, id_trip, id_driver, sexo, idade, categoria, categoria_cnh,
			speed, date_d, cidade, bairro, hierarquia, length_m
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for i, rec := range records {
			date := ""
			if rec.HasTimestamp() {
				date = rec.Timestamp.UTC().Format(heat.TimestampLayout)
			}
			_, err := stmt.Exec(
				dataset, rec.TrajectoryID, rec.TripID, rec.DriverID, rec.Sex, rec.Age,
				rec.Category, rec.LicenseCategory, rec.Speed, date, rec.City,
				rec.Neighborhood, rec.Hierarchy, spatial.GeometryLength(rec.Geometry),
			)
			if err != nil {
				return fmt.Errorf("failed to insert record %d: %w", i, err)
			}
		}
		return nil
	})
}

// GetTrips retrieves trip rows with filtering and pagination
func (r *TripRepository) GetTrips(dataset string, filter models.TripFilter) ([]models.TripRow, int64, error) {
	conditions := []string{"dataset = ?"}
	args := []interface{}{dataset}

	if filter.TripID != "" {
		conditions = append(conditions, "id_trip = ?")
		args = append(args, filter.TripID)
	}
	if filter.DriverID != "" {
		conditions = append(conditions, "id_driver = ?")
		args = append(args, filter.DriverID)
	}
	if filter.Neighborhood != "" {
		conditions = append(conditions, "bairro = ?")
		args = append(args, filter.Neighborhood)
	}
	if filter.Hierarchy != "" {
		conditions = append(conditions, "hierarquia = ?")
		args = append(args, filter.Hierarchy)
	}
	if filter.MinSpeed > 0 {
		conditions = append(conditions, "speed >= ?")
		args = append(args, filter.MinSpeed)
	}
	if filter.MaxSpeed > 0 {
		conditions = append(conditions, "speed <= ?")
		args = append(args, filter.MaxSpeed)
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM trips"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count trips: %w", err)
	}

	// Add pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	offset := (filter.Page - 1) * filter.PageSize
	query := "SELECT " + tripColumns + " FROM trips" + where + " ORDER BY id ASC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	trips, err := scanTrips(rows)
	if err != nil {
		return nil, 0, err
	}
	return trips, total, nil
}

// GetTripRows returns every row of one trip in load order
func (r *TripRepository) GetTripRows(dataset, tripID string) ([]models.TripRow, error) {
	rows, err := r.db.Query("SELECT "+tripColumns+" FROM trips WHERE dataset = ? AND id_trip = ? ORDER BY id ASC",
		dataset, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trip %s: %w", tripID, err)
	}
	defer rows.Close()

	return scanTrips(rows)
}

// GetTripIDs returns the distinct trip ids of dataset, sorted
func (r *TripRepository) GetTripIDs(dataset string) ([]string, error) {
	rows, err := r.db.Query("SELECT DISTINCT id_trip FROM trips WHERE dataset = ? ORDER BY id_trip ASC", dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to query trip ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan trip id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetNeighborhoodCounts counts rows per neighborhood, most frequent first
func (r *TripRepository) GetNeighborhoodCounts(dataset string) ([]models.NeighborhoodCount, error) {
	query := `SELECT bairro, COUNT(*) AS total
		FROM trips
		WHERE dataset = ? AND bairro != ''
		GROUP BY bairro
		ORDER BY total DESC, bairro ASC`

	rows, err := r.db.Query(query, dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to query neighborhood counts: %w", err)
	}
	defer rows.Close()

	var counts []models.NeighborhoodCount
	for rows.Next() {
		var c models.NeighborhoodCount
		if err := rows.Scan(&c.Neighborhood, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan neighborhood count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func scanTrips(rows *sql.Rows) ([]models.TripRow, error) {
	var trips []models.TripRow
	for rows.Next() {
		var t models.TripRow
		err := rows.Scan(
			&t.ID, &t.TrajectoryID, &t.TripID, &t.DriverID, &t.Sex, &t.Age, &t.Category,
			&t.LicenseCategory, &t.Speed, &t.Date, &t.City, &t.Neighborhood, &t.Hierarchy,
			&t.LengthMeters,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}
