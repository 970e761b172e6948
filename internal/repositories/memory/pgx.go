package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
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
		logger: logger.WithComponent("MemoryRepo"),
	}
}

var _ Repository = (*PgxRepository)(nil)

var columns = []string{
	"id",
	"title",
	"COALESCE(short_desc, '')",
	"event_date",
	`"order"`,
	"visible",
	"photos",
	"created_at",
}

type row interface {
	Scan(dest ...any) error
}

func scanMemory(r row) (*domain.MemoryItem, error) {
	var m domain.MemoryItem
	if err := r.Scan(
		&m.ID,
		&m.Title,
		&m.ShortDescription,
		&m.EventDate,
		&m.Order,
		&m.Visible,
		&m.Photos,
		&m.CreatedAt,
	); err != nil {
		return nil, err
	}
	if m.Photos == nil {
		m.Photos = []domain.MemoryPhoto{}
	}
	return &m, nil
}

func (r *PgxRepository) List(ctx context.Context, opts domain.ListOptions) ([]*domain.MemoryItem, error) {
	order := repositories.OrderColumn(opts.OrderBy, `"order"`, "event_date", "created_at")

	builder := repositories.SqBuilder.
		Select(columns...).
		From("memories").
		Where(sq.Eq{"visible": true}).
		OrderBy(fmt.Sprintf("%s %s", order, repositories.Direction(opts.Ascending)), "id ASC")
	if opts.Filter.Query != "" {
		builder = builder.Where(sq.ILike{"title": repositories.Contains(opts.Filter.Query)})
	}
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
		return nil, fmt.Errorf("failed to query memories: %w", err)
	}
	defer rows.Close()

	var memories []*domain.MemoryItem
	for rows.Next() {
		m, err := scanMemory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan memory row: %w", err)
		}
		memories = append(memories, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating memory rows: %w", err)
	}

	return memories, nil
}

func (r *PgxRepository) GetByID(ctx context.Context, id int64) (*domain.MemoryItem, error) {
	query, args, err := repositories.SqBuilder.
		Select(columns...).
		From("memories").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	m, err := scanMemory(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get memory by id: %w", err)
	}

	return m, nil
}

func (r *PgxRepository) Create(ctx context.Context, memory domain.MemoryItem) (int64, error) {
	photos := memory.Photos
	if photos == nil {
		photos = []domain.MemoryPhoto{}
	}
	photosJSON, err := json.Marshal(photos)
	if err != nil {
		return 0, fmt.Errorf("failed to encode memory photos: %w", err)
	}

	query, args, err := repositories.SqBuilder.
		Insert("memories").
		Columns("title", "short_desc", "event_date", `"order"`, "visible", "photos", "created_at").
		Values(memory.Title, memory.ShortDescription, memory.EventDate, memory.Order, true, string(photosJSON), time.Now()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	var id int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, errors.Join(err, ErrCannotCreate)
	}

	return id, nil
}

func (r *PgxRepository) UpdateDetails(ctx context.Context, id int64, title, shortDesc string) error {
	query, args, err := repositories.SqBuilder.
		Update("memories").
		Set("title", title).
		Set("short_desc", shortDesc).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update memory %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgxRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := repositories.SqBuilder.
		Delete("memories").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete memory %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgxRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM memories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count memories: %w", err)
	}
	return n, nil
}
