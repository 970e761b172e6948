package setting

import (
	"context"
	"fmt"
	"time"

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
		logger: logger.WithComponent("SettingRepo"),
	}
}

var _ Repository = (*PgxRepository)(nil)

func (r *PgxRepository) All(ctx context.Context) (map[string][]byte, error) {
	query, args, err := repositories.SqBuilder.
		Select("key", "value::text").
		From("site_settings").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query site settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string][]byte)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan site setting row: %w", err)
		}
		settings[key] = []byte(value)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating site setting rows: %w", err)
	}

	return settings, nil
}

func (r *PgxRepository) Upsert(ctx context.Context, key string, value []byte) error {
	query, args, err := repositories.SqBuilder.
		Insert("site_settings").
		Columns("key", "value", "updated_at").
		Values(key, string(value), time.Now()).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert site setting %q: %w", key, err)
	}
	return nil
}
