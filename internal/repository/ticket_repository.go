package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/afristar/helpdesk/internal/domain"
)

// TicketFilter captures listing parameters. AuthorID scopes results to one
// author (customer listings); Search matches ticket title.
type TicketFilter struct {
	AuthorID *string
	Status   *domain.TicketStatus
	Search   *string
	Limit    int
	Offset   int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, int, error)
	CountByStatus(ctx context.Context, authorID *string) (map[domain.TicketStatus]int, error)
	// Mutate loads the ticket under a row lock, applies the callback, and
	// persists the result, all within one transaction. The callback sees the
	// current row, so authorize-then-write is race-free. A callback error
	// rolls back and is returned unchanged.
	Mutate(ctx context.Context, id string, apply func(*domain.Ticket) error) (*domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (title, description, status, priority, category, author_id, assigned_to_id, scheduled_for)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.Status,
		ticket.Priority,
		ticket.Category,
		ticket.AuthorID,
		ticket.AssignedToID,
		ticket.ScheduledFor,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

const ticketSelect = `
        SELECT t.id, t.title, t.description, t.status, t.priority, t.category,
               t.author_id, t.assigned_to_id, t.scheduled_for, t.created_at, t.updated_at,
               a.name, a.email, s.name
        FROM tickets t
        JOIN users a ON a.id = t.author_id
        LEFT JOIN users s ON s.id = t.assigned_to_id`

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, ticketSelect+` WHERE t.id=$1`, id).Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Status,
		&ticket.Priority,
		&ticket.Category,
		&ticket.AuthorID,
		&ticket.AssignedToID,
		&ticket.ScheduledFor,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.AuthorName,
		&ticket.AuthorEmail,
		&ticket.AssigneeName,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, int, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		clauses = append(clauses, fmt.Sprintf("t.author_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("t.status=$%d", len(args)))
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.Search))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(t.title) LIKE $%d", len(args)))
	}

	where := strings.Join(clauses, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM tickets t WHERE ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY t.created_at DESC LIMIT %d OFFSET %d`,
		ticketSelect, where, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Title,
			&ticket.Description,
			&ticket.Status,
			&ticket.Priority,
			&ticket.Category,
			&ticket.AuthorID,
			&ticket.AssignedToID,
			&ticket.ScheduledFor,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
			&ticket.AuthorName,
			&ticket.AuthorEmail,
			&ticket.AssigneeName,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, ticket)
	}
	return result, total, rows.Err()
}

func (r *ticketRepository) CountByStatus(ctx context.Context, authorID *string) (map[domain.TicketStatus]int, error) {
	query := `SELECT status, COUNT(*) FROM tickets GROUP BY status`
	args := []any{}
	if authorID != nil {
		query = `SELECT status, COUNT(*) FROM tickets WHERE author_id=$1 GROUP BY status`
		args = append(args, *authorID)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.TicketStatus]int)
	for rows.Next() {
		var status domain.TicketStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *ticketRepository) Mutate(ctx context.Context, id string, apply func(*domain.Ticket) error) (*domain.Ticket, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const lockQuery = `
        SELECT id, title, description, status, priority, category,
               author_id, assigned_to_id, scheduled_for, created_at, updated_at
        FROM tickets WHERE id=$1 FOR UPDATE`
	var ticket domain.Ticket
	if err := tx.QueryRow(ctx, lockQuery, id).Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Status,
		&ticket.Priority,
		&ticket.Category,
		&ticket.AuthorID,
		&ticket.AssignedToID,
		&ticket.ScheduledFor,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := apply(&ticket); err != nil {
		return nil, err
	}

	const updateQuery = `
        UPDATE tickets
        SET status=$1, priority=$2, category=$3, assigned_to_id=$4, scheduled_for=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING updated_at`
	if err := tx.QueryRow(ctx, updateQuery,
		ticket.Status,
		ticket.Priority,
		ticket.Category,
		ticket.AssignedToID,
		ticket.ScheduledFor,
		ticket.ID,
	).Scan(&ticket.UpdatedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &ticket, nil
}
