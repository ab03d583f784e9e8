package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/afristar/helpdesk/internal/domain"
)

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Upsert(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByStaffID(ctx context.Context, staffID string) (*domain.User, error)
	ExistsByStaffIDOrEmail(ctx context.Context, staffID, email string) (bool, error)
	UpdatePassword(ctx context.Context, id, passwordHash string, temporary bool) error
	List(ctx context.Context, limit, offset int) ([]domain.User, int, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = "id, staff_id, email, name, password_hash, role, temporary_password, created_at, updated_at"

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (staff_id, email, name, password_hash, role, temporary_password)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		user.StaffID,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.Role,
		user.TemporaryPassword,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Upsert(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (staff_id, email, name, password_hash, role, temporary_password)
        VALUES ($1,$2,$3,$4,$5,$6)
        ON CONFLICT (staff_id) DO UPDATE SET
            email=EXCLUDED.email, name=EXCLUDED.name, role=EXCLUDED.role, updated_at=NOW()
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		user.StaffID,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.Role,
		user.TemporaryPassword,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) GetByStaffID(ctx context.Context, staffID string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE staff_id=$1`, staffID)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.StaffID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.Role,
		&user.TemporaryPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByStaffIDOrEmail(ctx context.Context, staffID, email string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM users WHERE staff_id=$1 OR email=$2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, staffID, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id, passwordHash string, temporary bool) error {
	const query = `
        UPDATE users SET password_hash=$1, temporary_password=$2, updated_at=NOW()
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, passwordHash, temporary, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]domain.User, int, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
        SELECT id, staff_id, email, name, role, created_at, updated_at
        FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.StaffID,
			&user.Email,
			&user.Name,
			&user.Role,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}
