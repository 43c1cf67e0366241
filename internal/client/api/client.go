// Package api is the client-side transport collaborator for the plant-data
// service. It owns the wire format, auth-token handling, and the retry
// policy; the synchronizer above it never retries.
package api

import (
	"context"

	"github.com/sireesha-siri/geotag-plants/internal/client/models"
)

// Client is the surface of the remote plant-data service as seen by the
// synchronizer and the CLI upload flow.
type Client interface {
	Close() error

	// Auth.
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) error
	Ping(ctx context.Context) error

	// Plant records.
	FetchPlants(ctx context.Context) ([]models.PlantRecord, error)
	SavePlant(ctx context.Context, draft models.PlantDraft) (*models.PlantRecord, error)
	DeletePlant(ctx context.Context, id string) error

	// Upload flow.
	ExtractCoordinates(ctx context.Context, imageName, imageURL string) (lat float64, lon float64, err error)
	PresignUpload(ctx context.Context, fileName string) (putURL string, publicURL string, err error)
}
