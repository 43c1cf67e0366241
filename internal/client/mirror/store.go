// Package mirror persists a local, durable-but-best-effort copy of the
// plant collection. The synchronizer reads it once at startup for an
// instant first view and rewrites it after every successful mutation.
package mirror

import "github.com/sireesha-siri/geotag-plants/internal/client/models"

// Store is a synchronous read/write of the whole serialized collection.
type Store interface {
	// Load returns the persisted collection. A missing store yields an
	// empty collection and no error; malformed content yields an error.
	Load() ([]models.PlantRecord, error)

	// Save replaces the persisted collection.
	Save(records []models.PlantRecord) error
}
