package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/estudo-naturalistico/dashboard-backend-go/internal/dataset"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/models"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/repository"
)

// ErrUnknownTrip is returned when a requested trip id is not in the dataset
var ErrUnknownTrip = errors.New("unknown trip")

// TripService handles business logic for the trip dataset and its
// attribute table
type TripService struct {
	cache       *dataset.Cache
	repo        *repository.TripRepository
	datasetPath string
}

// NewTripService creates a new trip service. Every dataset the cache loads
// is mirrored into the trips table before it becomes visible.
func NewTripService(cache *dataset.Cache, repo *repository.TripRepository, datasetPath string) *TripService {
	cache.OnLoad(func(ds *dataset.Dataset) error {
		return repo.ReplaceDataset(ds.Path, ds.Records)
	})
	return &TripService{
		cache:       cache,
		repo:        repo,
		datasetPath: datasetPath,
	}
}

// Dataset returns the loaded trajectory dataset
func (s *TripService) Dataset() (*dataset.Dataset, error) {
	ds, err := s.cache.Get(s.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return ds, nil
}

// Records returns the dataset records passing filter
func (s *TripService) Records(filter models.RecordFilter) ([]models.GeometryRecord, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}
	return filter.Apply(ds.Records), nil
}

// GetTrips retrieves trip rows with filtering and pagination
func (s *TripService) GetTrips(filter models.TripFilter) (*models.TripsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}

	rows, total, err := s.repo.GetTrips(ds.Path, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get trips: %w", err)
	}

	return &models.TripsResponse{
		Data:       rows,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.PageSize))),
	}, nil
}

// GetTripIDs returns the sorted distinct trip ids for the trip selector
func (s *TripService) GetTripIDs() ([]string, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}
	return s.repo.GetTripIDs(ds.Path)
}

// GetTripRows returns the attribute rows of one trip
func (s *TripService) GetTripRows(tripID string) ([]models.TripRow, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.GetTripRows(ds.Path, tripID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTrip, tripID)
	}
	return rows, nil
}

// GetNeighborhoodCounts returns the number of trajectories per neighborhood
func (s *TripService) GetNeighborhoodCounts() ([]models.NeighborhoodCount, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}
	return s.repo.GetNeighborhoodCounts(ds.Path)
}
