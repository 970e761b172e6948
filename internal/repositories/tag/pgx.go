package tag

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
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
		logger: logger.WithComponent("TagRepo"),
	}
}

var _ Repository = (*PgxRepository)(nil)

func (r *PgxRepository) List(ctx context.Context) ([]string, error) {
	query, args, err := repositories.SqBuilder.
		Select("name").
		From("tags").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag rows: %w", err)
	}

	return names, nil
}

func (r *PgxRepository) Upsert(ctx context.Context, name string) error {
	query, args, err := repositories.SqBuilder.
		Insert("tags").
		Columns("name").
		Values(name).
		Suffix("ON CONFLICT (name) DO NOTHING").
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert tag %q: %w", name, err)
	}
	return nil
}

func (r *PgxRepository) Delete(ctx context.Context, name string) error {
	query, args, err := repositories.SqBuilder.
		Delete("tags").
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete tag %q: %w", name, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
