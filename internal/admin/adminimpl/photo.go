package adminimpl

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/orgball2608/class-gallery/internal/admin"
	"github.com/orgball2608/class-gallery/internal/domain"
	"github.com/orgball2608/class-gallery/internal/repositories/photo"
	apperrors "github.com/orgball2608/class-gallery/pkg/errors"
)

func (a *AdminImpl) UploadPhotos(ctx context.Context, files []admin.File, meta admin.PhotoMeta) []admin.UploadResult {
	meta.Tags = admin.NormalizeTags(meta.Tags)
	a.ensureTags(ctx, meta.Tags)

	results := make([]admin.UploadResult, len(files))
	var wg sync.WaitGroup

	for i, f := range files {
		wg.Add(1)
		idx, file := i, f

		err := a.pool.Submit(func() {
			defer wg.Done()
			select {
			case <-ctx.Done():
				results[idx] = admin.UploadResult{Name: file.Name, Error: ctx.Err().Error()}
				return
			default:
			}
			results[idx] = a.uploadPhoto(ctx, file, meta)
		})
		if err != nil {
			wg.Done()
			a.Logger.Error("Failed to submit upload to pool", "file", file.Name, "error", err)
			results[idx] = admin.UploadResult{Name: file.Name, Error: err.Error()}
		}
	}

	wg.Wait()
	return results
}

func (a *AdminImpl) uploadPhoto(ctx context.Context, f admin.File, meta admin.PhotoMeta) admin.UploadResult {
	res := admin.UploadResult{Name: f.Name}

	objectPath, url, err := a.storeImage(ctx, domain.BucketPhotos, f)
	if err != nil {
		a.Logger.Warn("Photo upload failed", "file", f.Name, "error", err)
		res.Error = apperrors.GetMessage(err)
		return res
	}

	id, err := a.Photos.Create(ctx, domain.MediaItem{
		Title:       meta.Title,
		Description: meta.Description,
		Tags:        meta.Tags,
		URL:         url,
		StoragePath: objectPath,
	})
	if err != nil {
		a.Logger.Error("Failed to insert photo, removing uploaded object", "file", f.Name, "path", objectPath, "error", err)
		a.removeObjects(ctx, domain.BucketPhotos, objectPath)
		res.Error = "failed to save photo"
		return res
	}

	a.Logger.Info("Photo uploaded", "id", id, "path", objectPath)
	res.ID = id
	res.URL = url
	return res
}

func (a *AdminImpl) UpdatePhoto(ctx context.Context, id int64, update admin.PhotoUpdate) error {
	current, err := a.Photos.GetByID(ctx, id)
	if err != nil {
		return a.photoErr(err, id)
	}

	item := *current
	item.Title = update.Title
	item.Description = update.Description
	item.Tags = admin.NormalizeTags(update.Tags)
	a.ensureTags(ctx, item.Tags)

	var oldPath string
	if update.File != nil {
		objectPath, url, err := a.storeImage(ctx, domain.BucketPhotos, *update.File)
		if err != nil {
			return err
		}
		oldPath = item.StoragePath
		item.StoragePath = objectPath
		item.URL = url
	}

	if err := a.Photos.Update(ctx, item); err != nil {
		if update.File != nil {
			a.removeObjects(ctx, domain.BucketPhotos, item.StoragePath)
		}
		return a.photoErr(err, id)
	}

	if oldPath != "" && oldPath != item.StoragePath {
		a.removeObjects(ctx, domain.BucketPhotos, oldPath)
	}
	return nil
}

func (a *AdminImpl) DeletePhoto(ctx context.Context, id int64) error {
	current, err := a.Photos.GetByID(ctx, id)
	if err != nil {
		return a.photoErr(err, id)
	}

	a.removeObjects(ctx, domain.BucketPhotos, current.StoragePath)
	if err := a.Photos.Delete(ctx, id); err != nil {
		return a.photoErr(err, id)
	}
	a.Logger.Info("Photo deleted", "id", id)
	return nil
}

func (a *AdminImpl) BulkTags(ctx context.Context, ids []int64, input string) (int, error) {
	ops := admin.ParseTagOps(input)
	if len(ids) == 0 || len(ops) == 0 {
		return 0, apperrors.WrapWithCode(apperrors.ErrInvalidInput, apperrors.CodeBadRequest, "select photos and at least one tag")
	}

	updated := 0
	for _, id := range ids {
		p, err := a.Photos.GetByID(ctx, id)
		if errors.Is(err, photo.ErrNotFound) {
			continue
		}
		if err != nil {
			return updated, fmt.Errorf("bulk tag photo %d: %w", id, err)
		}

		tags, added := admin.ApplyTagOps(p.Tags, ops)
		if err := a.Photos.UpdateTags(ctx, id, tags); err != nil {
			return updated, fmt.Errorf("bulk tag photo %d: %w", id, err)
		}
		a.ensureTags(ctx, added)
		updated++
	}

	a.Logger.Info("Bulk tag completed", "photos", updated, "ops", ops)
	return updated, nil
}

func (a *AdminImpl) BulkDelete(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, apperrors.WrapWithCode(apperrors.ErrInvalidInput, apperrors.CodeBadRequest, "no photos selected")
	}

	deleted := 0
	for _, id := range ids {
		err := a.DeletePhoto(ctx, id)
		if apperrors.IsNotFound(err) {
			continue
		}
		if err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

func (a *AdminImpl) photoErr(err error, id int64) error {
	if errors.Is(err, photo.ErrNotFound) {
		return apperrors.WrapWithCode(err, apperrors.CodeNotFound, fmt.Sprintf("photo %d not found", id))
	}
	return fmt.Errorf("photo %d: %w", id, err)
}
