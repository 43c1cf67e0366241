package repomanager

import (
	"context"
	"database/sql"

	"github.com/sireesha-siri/geotag-plants/internal/dbx"
	"github.com/sireesha-siri/geotag-plants/internal/server/repositories/plants"
	"github.com/sireesha-siri/geotag-plants/internal/server/repositories/refreshtokens"
	"github.com/sireesha-siri/geotag-plants/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Plants(db dbx.DBTX) plants.Repository
}
