package adminimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/class-gallery/internal/domain"
	"github.com/orgball2608/class-gallery/internal/storage"
	"github.com/orgball2608/class-gallery/pkg/formatter"
)

// StorageUsage lists every bucket and sums its objects.
func (a *AdminImpl) StorageUsage(ctx context.Context) ([]domain.BucketUsage, error) {
	usage := make([]domain.BucketUsage, 0, len(storage.Buckets))
	for _, bucket := range storage.Buckets {
		files, err := a.Backend.ListFiles(ctx, bucket, "")
		if err != nil {
			return nil, fmt.Errorf("list bucket %s: %w", bucket, err)
		}

		u := domain.BucketUsage{Bucket: bucket, Files: len(files)}
		for _, f := range files {
			u.TotalBytes += f.Size
		}
		u.Human = formatter.FormatBytes(u.TotalBytes)
		usage = append(usage, u)
	}
	return usage, nil
}

// ScheduleStorageReport logs bucket usage on the configured cron schedule
// until ctx is done.
func (a *AdminImpl) ScheduleStorageReport(ctx context.Context) error {
	loc, err := time.LoadLocation(a.Config.Report.Timezone)
	if err != nil {
		loc = time.Local
		a.Logger.Warn("Failed to load report timezone, using local timezone", "timezone", a.Config.Report.Timezone, "error", err)
	}

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return fmt.Errorf("failed to create storage report scheduler: %w", err)
	}

	a.Logger.Info("Setting up storage report", "cron", a.Config.Report.StorageCron)
	_, err = scheduler.NewJob(
		gocron.CronJob(a.Config.Report.StorageCron, false),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				return
			}
			reportCtx, cancel := context.WithTimeout(ctx, time.Minute)
			defer cancel()
			a.reportStorage(reportCtx)
		}),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return fmt.Errorf("failed to schedule storage report: %w", err)
	}

	scheduler.Start()

	go func() {
		<-ctx.Done()
		a.Logger.Info("Stopping storage report scheduler")
		if err := scheduler.Shutdown(); err != nil {
			a.Logger.Error("Failed to shut down storage report scheduler", "error", err)
		}
	}()

	return nil
}

func (a *AdminImpl) reportStorage(ctx context.Context) {
	usage, err := a.StorageUsage(ctx)
	if err != nil {
		a.Logger.Error("Storage report failed", "error", err)
		return
	}

	var total int64
	for _, u := range usage {
		total += u.TotalBytes
		a.Logger.Info("Bucket usage", "bucket", u.Bucket, "files", formatter.FormatNumber(u.Files), "size", u.Human)
	}
	a.Logger.Info("Storage report completed", "total", formatter.FormatBytes(total))
}
