package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sireesha-siri/geotag-plants/internal/common"
	"github.com/sireesha-siri/geotag-plants/internal/logging"
	"github.com/sireesha-siri/geotag-plants/internal/server/cache"
	"github.com/sireesha-siri/geotag-plants/internal/server/models"
	"github.com/sireesha-siri/geotag-plants/internal/server/repositories/repomanager"
)

// PlantService owns the per-user plant collection: list reads go through the
// collection cache, mutations write to PostgreSQL and invalidate the cache.
type PlantService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       cache.PlantCache
	log         logging.Logger
}

func NewPlantService(db *sql.DB, m repomanager.RepositoryManager, c cache.PlantCache, log logging.Logger) *PlantService {
	return &PlantService{db: db, repomanager: m, cache: c, log: log}
}

// List returns the user's plants, newest first. A cache hit skips the
// database entirely; a miss repopulates the cache for the configured TTL.
func (s *PlantService) List(ctx context.Context, userID string) ([]*models.Plant, error) {
	if plants, ok := s.cache.Get(ctx, userID); ok {
		return plants, nil
	}

	repo := s.repomanager.Plants(s.db)
	plants, err := repo.GetAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing plants: %w", err)
	}

	s.cache.Set(ctx, userID, plants)
	return plants, nil
}

// Create validates and stores a new plant record. The server assigns the
// record id and upload timestamp.
func (s *PlantService) Create(ctx context.Context, userID string, plant *models.Plant) (*models.Plant, error) {
	if strings.TrimSpace(plant.ImageName) == "" {
		return nil, common.ErrEmptyImageName
	}
	if !validCoordinates(plant.Latitude, plant.Longitude) {
		return nil, common.ErrInvalidCoordinates
	}

	plant.ID = uuid.NewString()
	plant.UserID = userID
	plant.UploadedAt = time.Now().UTC()

	repo := s.repomanager.Plants(s.db)
	if err := repo.Insert(ctx, plant); err != nil {
		return nil, fmt.Errorf("error creating plant: %w", err)
	}

	s.invalidate(ctx, userID)
	return plant, nil
}

// Delete removes the user's plant with the given id. Missing records yield
// common.ErrNotFound.
func (s *PlantService) Delete(ctx context.Context, userID, plantID string) error {
	repo := s.repomanager.Plants(s.db)
	if err := repo.DeleteByID(ctx, userID, plantID); err != nil {
		return err
	}

	s.invalidate(ctx, userID)
	return nil
}

func (s *PlantService) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.log.Warn(ctx, "cache invalidation failed", "user_id", userID, "error", err)
	}
}

func validCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
