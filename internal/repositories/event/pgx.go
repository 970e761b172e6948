package event

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/class-gallery/internal/domain"
	"github.com/orgball2608/class-gallery/internal/repositories"
	"github.com/orgball2608/class-gallery/pkg/logger"
)

type PgxRepository struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

func NewPgxRepository(pool *pgxpool.Pool, logger logger.Logger) *PgxRepository {
	return &PgxRepository{
		pool:   pool,
		logger: logger.WithComponent("EventRepo"),
	}
}

var _ Repository = (*PgxRepository)(nil)

func (r *PgxRepository) List(ctx context.Context, opts domain.ListOptions) ([]*domain.EventItem, error) {
	order := repositories.OrderColumn(opts.OrderBy, "date_end", "date_end", "created_at")

	builder := repositories.SqBuilder.
		Select("id", "title", "date_end", "created_at").
		From("events").
		OrderBy(fmt.Sprintf("%s %s", order, repositories.Direction(opts.Ascending)), "id ASC")
	if opts.Offset > 0 {
		builder = builder.Offset(uint64(opts.Offset))
	}
	if opts.Limit > 0 {
		builder = builder.Limit(uint64(opts.Limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var items []*domain.EventItem
	for rows.Next() {
		var e domain.EventItem
		if err := rows.Scan(&e.ID, &e.Title, &e.DateEnd, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		items = append(items, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	return items, nil
}

func (r *PgxRepository) Create(ctx context.Context, item domain.EventItem) (int64, error) {
	query, args, err := repositories.SqBuilder.
		Insert("events").
		Columns("title", "date_end", "created_at").
		Values(item.Title, item.DateEnd, time.Now()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	var id int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to create event: %w", err)
	}

	return id, nil
}

func (r *PgxRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := repositories.SqBuilder.
		Delete("events").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete event %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgxRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return n, nil
}
