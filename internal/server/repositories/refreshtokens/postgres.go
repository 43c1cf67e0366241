package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sireesha-siri/geotag-plants/internal/common"
	"github.com/sireesha-siri/geotag-plants/internal/dbx"
	"github.com/sireesha-siri/geotag-plants/internal/server/models"
)

type PostgresRepository struct {
	conn dbx.DBTX
}

func NewPostgresRepository(conn dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{conn: conn}
}

func (r *PostgresRepository) Insert(ctx context.Context, token *models.RefreshToken) error {
	query := `INSERT INTO refresh_tokens (token, user_id, expires_at) VALUES ($1, $2, $3)`

	_, err := r.conn.ExecContext(ctx, query, token.Token, token.UserID, token.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to insert refresh token: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, token string) (*models.RefreshToken, error) {
	query := `SELECT token, user_id, expires_at FROM refresh_tokens WHERE token = $1`

	var rt models.RefreshToken
	row := r.conn.QueryRowContext(ctx, query, token)
	err := row.Scan(&rt.Token, &rt.UserID, &rt.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return &rt, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, token string) error {
	query := `DELETE FROM refresh_tokens WHERE token = $1`

	_, err := r.conn.ExecContext(ctx, query, token)
	if err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}

	return nil
}
