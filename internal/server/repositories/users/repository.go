package users

import (
	"context"

	"github.com/sireesha-siri/geotag-plants/internal/server/models"
)

type Repository interface {
	Insert(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
