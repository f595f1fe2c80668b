package services

import (
	"context"
	"fmt"
	"math"

	"couple-companion-backend/internal/models"
	"couple-companion-backend/internal/repository"

	"github.com/google/uuid"
)

const earthRadiusKm = 6371

// LocationService handles live location business logic
type LocationService struct {
	locations repository.LocationStore
}

// NewLocationService creates a new location service
func NewLocationService(locations repository.LocationStore) *LocationService {
	return &LocationService{locations: locations}
}

// HaversineKm computes the great-circle distance between two
// coordinates in kilometers.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// roundKm rounds a distance to one decimal place
func roundKm(km float64) float64 {
	return math.Round(km*10) / 10
}

// UpdateMine overwrites the caller's location row and marks sharing on
func (s *LocationService) UpdateMine(ctx context.Context, coupleID, userID string,
	latitude, longitude, accuracy float64) (*models.Location, error) {

	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return nil, fmt.Errorf("coordinates out of range: %w", models.ErrValidation)
	}

	return s.locations.Upsert(ctx, &models.Location{
		ID:        uuid.New().String(),
		UserID:    userID,
		CoupleID:  coupleID,
		Latitude:  latitude,
		Longitude: longitude,
		Accuracy:  accuracy,
		IsSharing: true,
	})
}

// SetSharing flips the caller's persisted sharing flag
func (s *LocationService) SetSharing(ctx context.Context, userID string, sharing bool) (*models.Location, error) {
	return s.locations.SetSharing(ctx, userID, sharing)
}

// CoupleLocations is the location view for a couple: both rows plus
// the rounded distance when both partners are sharing.
type CoupleLocations struct {
	Mine       *models.Location `json:"mine,omitempty"`
	Partner    *models.Location `json:"partner,omitempty"`
	DistanceKm *float64         `json:"distance_km,omitempty"`
}

// ForCouple retrieves both partners' locations and the distance
// between them, rounded to one decimal place.
func (s *LocationService) ForCouple(ctx context.Context, coupleID, userID string) (*CoupleLocations, error) {
	rows, err := s.locations.ListByCoupleID(ctx, coupleID)
	if err != nil {
		return nil, err
	}

	view := &CoupleLocations{}
	for _, loc := range rows {
		if loc.UserID == userID {
			view.Mine = loc
		} else {
			view.Partner = loc
		}
	}

	if view.Mine != nil && view.Partner != nil && view.Mine.IsSharing && view.Partner.IsSharing {
		d := roundKm(HaversineKm(
			view.Mine.Latitude, view.Mine.Longitude,
			view.Partner.Latitude, view.Partner.Longitude,
		))
		view.DistanceKm = &d
	}
	return view, nil
}
