// Package cache provides the per-user plant collection cache that backs
// list reads. Entries expire after the configured TTL and are invalidated
// eagerly on every mutation so clients never observe a deleted record.
package cache

import (
	"context"
	"time"

	"github.com/sireesha-siri/geotag-plants/internal/server/models"
)

// PlantCache caches a user's full plant collection as one entry.
type PlantCache interface {
	Get(ctx context.Context, userID string) ([]*models.Plant, bool)
	Set(ctx context.Context, userID string, plants []*models.Plant)
	Invalidate(ctx context.Context, userID string) error
}

// Noop is a PlantCache that caches nothing. Used when Redis is not configured.
type Noop struct{}

func (Noop) Get(ctx context.Context, userID string) ([]*models.Plant, bool) { return nil, false }

func (Noop) Set(ctx context.Context, userID string, plants []*models.Plant) {}

func (Noop) Invalidate(ctx context.Context, userID string) error { return nil }

const defaultTTL = 2 * time.Minute
