package message

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
		logger: logger.WithComponent("MessageRepo"),
	}
}

var _ Repository = (*PgxRepository)(nil)

func (r *PgxRepository) List(ctx context.Context, opts domain.ListOptions) ([]*domain.Message, error) {
	builder := repositories.SqBuilder.
		Select("id", "COALESCE(sender, '')", "COALESCE(recipient, '')", "COALESCE(content, '')", "created_at").
		From("messages").
		OrderBy(fmt.Sprintf("created_at %s", repositories.Direction(opts.Ascending)), "id DESC")
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
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var items []*domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.Sender, &m.Recipient, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		items = append(items, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}

	return items, nil
}

func (r *PgxRepository) Create(ctx context.Context, msg domain.Message) (*domain.Message, error) {
	query, args, err := repositories.SqBuilder.
		Insert("messages").
		Columns("sender", "recipient", "content", "created_at").
		Values(msg.Sender, msg.Recipient, msg.Content, time.Now()).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&msg.ID, &msg.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return &msg, nil
}

func (r *PgxRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := repositories.SqBuilder.
		Delete("messages").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete message %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgxRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM messages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return n, nil
}
