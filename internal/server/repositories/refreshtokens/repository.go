package refreshtokens

import (
	"context"

	"github.com/sireesha-siri/geotag-plants/internal/server/models"
)

type Repository interface {
	Insert(ctx context.Context, token *models.RefreshToken) error
	Get(ctx context.Context, token string) (*models.RefreshToken, error)
	Delete(ctx context.Context, token string) error
}
