package photo

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
		logger: logger.WithComponent("PhotoRepo"),
	}
}

var _ Repository = (*PgxRepository)(nil)

var columns = []string{
	"id",
	"COALESCE(title, '')",
	"COALESCE(description, '')",
	"COALESCE(tags, '{}')",
	"url",
	"COALESCE(path, '')",
	"created_at",
}

// filterSelect applies the gallery filter in SQL with the same semantics as
// gallery.Matches.
func filterSelect(b sq.SelectBuilder, f domain.Filter) sq.SelectBuilder {
	if f.Query != "" {
		pattern := repositories.Contains(f.Query)
		b = b.Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"description": pattern},
		})
	}
	if len(f.Tags) > 0 {
		if f.Mode == domain.TagModeAnd {
			b = b.Where(sq.Expr("tags @> ?", f.Tags))
		} else {
			b = b.Where(sq.Expr("tags && ?", f.Tags))
		}
	}
	return b
}

func (r *PgxRepository) List(ctx context.Context, opts domain.ListOptions) ([]*domain.MediaItem, error) {
	order := repositories.OrderColumn(opts.OrderBy, "created_at", "created_at", "title", "id")

	builder := repositories.SqBuilder.
		Select(columns...).
		From("photos").
		OrderBy(fmt.Sprintf("%s %s", order, repositories.Direction(opts.Ascending)), "id DESC")
	builder = filterSelect(builder, opts.Filter)
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

	return r.query(ctx, query, args...)
}

func (r *PgxRepository) ListByTag(ctx context.Context, tag string) ([]*domain.MediaItem, error) {
	query, args, err := repositories.SqBuilder.
		Select(columns...).
		From("photos").
		Where(sq.Expr("? = ANY(tags)", tag)).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	return r.query(ctx, query, args...)
}

func (r *PgxRepository) query(ctx context.Context, query string, args ...any) ([]*domain.MediaItem, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query photos: %w", err)
	}
	defer rows.Close()

	var items []*domain.MediaItem
	for rows.Next() {
		var item domain.MediaItem
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Description,
			&item.Tags,
			&item.URL,
			&item.StoragePath,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan photo row: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating photo rows: %w", err)
	}

	return items, nil
}

func (r *PgxRepository) GetByID(ctx context.Context, id int64) (*domain.MediaItem, error) {
	query, args, err := repositories.SqBuilder.
		Select(columns...).
		From("photos").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var item domain.MediaItem
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&item.ID,
		&item.Title,
		&item.Description,
		&item.Tags,
		&item.URL,
		&item.StoragePath,
		&item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get photo by id: %w", err)
	}

	return &item, nil
}

func (r *PgxRepository) Create(ctx context.Context, item domain.MediaItem) (int64, error) {
	if item.Tags == nil {
		item.Tags = []string{}
	}
	createdAt := item.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query, args, err := repositories.SqBuilder.
		Insert("photos").
		Columns("title", "description", "tags", "url", "path", "created_at").
		Values(item.Title, item.Description, item.Tags, item.URL, item.StoragePath, createdAt).
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

func (r *PgxRepository) Update(ctx context.Context, item domain.MediaItem) error {
	if item.Tags == nil {
		item.Tags = []string{}
	}

	query, args, err := repositories.SqBuilder.
		Update("photos").
		Set("title", item.Title).
		Set("description", item.Description).
		Set("tags", item.Tags).
		Set("url", item.URL).
		Set("path", item.StoragePath).
		Where(sq.Eq{"id": item.ID}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	return r.exec(ctx, query, args...)
}

func (r *PgxRepository) UpdateTags(ctx context.Context, id int64, tags []string) error {
	if tags == nil {
		tags = []string{}
	}

	query, args, err := repositories.SqBuilder.
		Update("photos").
		Set("tags", tags).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	return r.exec(ctx, query, args...)
}

func (r *PgxRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := repositories.SqBuilder.
		Delete("photos").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	return r.exec(ctx, query, args...)
}

func (r *PgxRepository) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgxRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM photos`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count photos: %w", err)
	}
	return n, nil
}
