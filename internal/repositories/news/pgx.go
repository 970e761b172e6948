package news

import (
	"context"
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
		logger: logger.WithComponent("NewsRepo"),
	}
}

var _ Repository = (*PgxRepository)(nil)

var columns = []string{
	"id",
	"title",
	"COALESCE(content, '')",
	"COALESCE(image_url, '')",
	"COALESCE(image_path, '')",
	"published_at",
	"created_at",
}

func (r *PgxRepository) List(ctx context.Context, opts domain.ListOptions) ([]*domain.NewsItem, error) {
	order := repositories.OrderColumn(opts.OrderBy, "created_at", "created_at", "published_at")

	builder := repositories.SqBuilder.
		Select(columns...).
		From("news").
		OrderBy(fmt.Sprintf("%s %s", order, repositories.Direction(opts.Ascending)), "id DESC")
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
		return nil, fmt.Errorf("failed to query news: %w", err)
	}
	defer rows.Close()

	var items []*domain.NewsItem
	for rows.Next() {
		var n domain.NewsItem
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.ImageURL, &n.ImagePath, &n.PublishedAt, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan news row: %w", err)
		}
		items = append(items, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating news rows: %w", err)
	}

	return items, nil
}

func (r *PgxRepository) GetByID(ctx context.Context, id int64) (*domain.NewsItem, error) {
	query, args, err := repositories.SqBuilder.
		Select(columns...).
		From("news").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var n domain.NewsItem
	err = r.pool.QueryRow(ctx, query, args...).Scan(&n.ID, &n.Title, &n.Content, &n.ImageURL, &n.ImagePath, &n.PublishedAt, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get news by id: %w", err)
	}

	return &n, nil
}

func (r *PgxRepository) Create(ctx context.Context, item domain.NewsItem) (int64, error) {
	now := time.Now()

	query, args, err := repositories.SqBuilder.
		Insert("news").
		Columns("title", "content", "image_url", "image_path", "published_at", "created_at").
		Values(item.Title, item.Content, item.ImageURL, item.ImagePath, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	var id int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to create news: %w", err)
	}

	return id, nil
}

func (r *PgxRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := repositories.SqBuilder.
		Delete("news").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete news %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgxRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM news`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count news: %w", err)
	}
	return n, nil
}
