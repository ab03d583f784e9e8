package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/afristar/helpdesk/internal/domain"
)

// ContentRepository manages public website content records.
type ContentRepository interface {
	List(ctx context.Context) ([]domain.ContentEntry, error)
	Upsert(ctx context.Context, entry *domain.ContentEntry) error
}

type contentRepository struct {
	pool *pgxpool.Pool
}

// NewContentRepository builds repository.
func NewContentRepository(pool *pgxpool.Pool) ContentRepository {
	return &contentRepository{pool: pool}
}

func (r *contentRepository) List(ctx context.Context) ([]domain.ContentEntry, error) {
	const query = `
        SELECT id, key, value, image_url, description, updated_at
        FROM website_content ORDER BY key ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ContentEntry
	for rows.Next() {
		var entry domain.ContentEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.Key,
			&entry.Value,
			&entry.ImageURL,
			&entry.Description,
			&entry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *contentRepository) Upsert(ctx context.Context, entry *domain.ContentEntry) error {
	const query = `
        INSERT INTO website_content (key, value, image_url, description)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (key) DO UPDATE SET
            value=EXCLUDED.value, image_url=EXCLUDED.image_url,
            description=EXCLUDED.description, updated_at=NOW()
        RETURNING id, updated_at`
	return r.pool.QueryRow(ctx, query,
		entry.Key,
		entry.Value,
		entry.ImageURL,
		entry.Description,
	).Scan(&entry.ID, &entry.UpdatedAt)
}
