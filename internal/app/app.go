package app

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/orgball2608/class-gallery/internal/admin"
	"github.com/orgball2608/class-gallery/internal/admin/adminimpl"
	"github.com/orgball2608/class-gallery/internal/backend/backendimpl"
	"github.com/orgball2608/class-gallery/internal/media/mediaimpl"
	"github.com/orgball2608/class-gallery/internal/migrations"
	"github.com/orgball2608/class-gallery/internal/ratelimit"
	repositories "github.com/orgball2608/class-gallery/internal/repositories/fx"
	"github.com/orgball2608/class-gallery/internal/server"
	"github.com/orgball2608/class-gallery/internal/storage/diskimpl"
	"github.com/orgball2608/class-gallery/internal/viewer/viewerimpl"
	"github.com/orgball2608/class-gallery/pkg/config"
	"github.com/orgball2608/class-gallery/pkg/logger"
	"github.com/orgball2608/class-gallery/pkg/pgx"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		pgx.New,
	),
	repositories.Module,
	diskimpl.Module,
	mediaimpl.Module,
	backendimpl.Module,
	adminimpl.Module,
	ratelimit.Module,
	viewerimpl.Module,
	server.Module,
	fx.Invoke(migrate),
	fx.Invoke(run),
)

func migrate(c *config.Config, log logger.Logger) error {
	db, err := sql.Open("postgres", c.GetDSN())
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer db.Close()

	if err := migrations.Up(context.Background(), db); err != nil {
		return err
	}
	log.Info("Database migrations applied")
	return nil
}

func run(lc fx.Lifecycle, log logger.Logger, adm admin.Service) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := adm.ScheduleStorageReport(ctx); err != nil {
				log.Error("Storage report scheduling error", "error", err)
			}
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
