package plants

import (
	"context"
	"fmt"

	"github.com/sireesha-siri/geotag-plants/internal/common"
	"github.com/sireesha-siri/geotag-plants/internal/dbx"
	"github.com/sireesha-siri/geotag-plants/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, p *models.Plant) error {
	query := `
		INSERT INTO plants (id, user_id, image_name, image_url, latitude, longitude, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.UserID, p.ImageName, p.ImageURL, p.Latitude, p.Longitude, p.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to insert plant: %w", err)
	}
	return nil
}

// GetAllByUser lists the user's records ordered newest first, matching the
// ordering the client shows after a create.
func (r *PostgresRepository) GetAllByUser(ctx context.Context, userID string) ([]*models.Plant, error) {
	query := `
		SELECT id, user_id, image_name, image_url, latitude, longitude, uploaded_at
		FROM plants WHERE user_id = $1
		ORDER BY uploaded_at DESC;
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select plants: %w", err)
	}
	defer rows.Close()

	var result []*models.Plant
	for rows.Next() {
		var p models.Plant
		if err := rows.Scan(&p.ID, &p.UserID, &p.ImageName, &p.ImageURL, &p.Latitude, &p.Longitude, &p.UploadedAt); err != nil {
			return nil, err
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, userID, id string) error {
	query := `DELETE FROM plants WHERE user_id = $1 AND id = $2;`
	res, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete plant: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}
