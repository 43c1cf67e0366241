// Package plants provides PostgreSQL-backed storage for plant records.
package plants

import (
	"context"

	"github.com/sireesha-siri/geotag-plants/internal/server/models"
)

// Repository describes the persistence operations the plant service needs.
type Repository interface {
	// Insert stores a new record.
	Insert(ctx context.Context, plant *models.Plant) error

	// GetAllByUser returns the user's records, newest upload first.
	GetAllByUser(ctx context.Context, userID string) ([]*models.Plant, error)

	// DeleteByID removes a record owned by userID. Returns
	// common.ErrNotFound when no such row exists.
	DeleteByID(ctx context.Context, userID, id string) error
}
