package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

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

func (r *PostgresRepository) Insert(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (id, username, password_hash, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.conn.ExecContext(ctx, query, user.ID, user.Username, user.PasswordHash, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT id, username, password_hash, created_at FROM users WHERE username = $1`

	var user models.User
	row := r.conn.QueryRowContext(ctx, query, username)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
