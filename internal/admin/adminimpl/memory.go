package adminimpl

import (
	"context"
	"errors"
	"fmt"

	"github.com/orgball2608/class-gallery/internal/admin"
	"github.com/orgball2608/class-gallery/internal/domain"
	"github.com/orgball2608/class-gallery/internal/repositories/memory"
	apperrors "github.com/orgball2608/class-gallery/pkg/errors"
)

// CreateMemory uploads files in order and inserts the memory. Uploaded
// objects are removed again if any step fails.
func (a *AdminImpl) CreateMemory(ctx context.Context, input admin.MemoryInput, files []admin.File) (int64, error) {
	if input.Title == "" {
		return 0, apperrors.WrapWithCode(apperrors.ErrInvalidInput, apperrors.CodeBadRequest, "title is required")
	}

	photos := make([]domain.MemoryPhoto, 0, len(files))
	uploaded := make([]string, 0, len(files))
	for _, f := range files {
		objectPath, url, err := a.storeImage(ctx, domain.BucketMemories, f)
		if err != nil {
			a.removeObjects(ctx, domain.BucketMemories, uploaded...)
			return 0, err
		}
		uploaded = append(uploaded, objectPath)
		photos = append(photos, domain.MemoryPhoto{URL: url, StoragePath: objectPath})
	}

	id, err := a.Memories.Create(ctx, domain.MemoryItem{
		Title:            input.Title,
		ShortDescription: input.ShortDescription,
		EventDate:        input.EventDate,
		Order:            input.Order,
		Visible:          input.Visible,
		Photos:           photos,
	})
	if err != nil {
		a.Logger.Error("Failed to insert memory, removing uploaded photos", "title", input.Title, "error", err)
		a.removeObjects(ctx, domain.BucketMemories, uploaded...)
		return 0, fmt.Errorf("create memory: %w", err)
	}

	a.Logger.Info("Memory created", "id", id, "photos", len(photos))
	return id, nil
}

func (a *AdminImpl) UpdateMemory(ctx context.Context, id int64, title, shortDesc string) error {
	if title == "" {
		return apperrors.WrapWithCode(apperrors.ErrInvalidInput, apperrors.CodeBadRequest, "title is required")
	}
	if err := a.Memories.UpdateDetails(ctx, id, title, shortDesc); err != nil {
		return a.memoryErr(err, id)
	}
	return nil
}

func (a *AdminImpl) DeleteMemory(ctx context.Context, id int64) error {
	m, err := a.Memories.GetByID(ctx, id)
	if err != nil {
		return a.memoryErr(err, id)
	}

	paths := make([]string, 0, len(m.Photos))
	for _, p := range m.Photos {
		paths = append(paths, p.StoragePath)
	}
	a.removeObjects(ctx, domain.BucketMemories, paths...)

	if err := a.Memories.Delete(ctx, id); err != nil {
		return a.memoryErr(err, id)
	}
	a.Logger.Info("Memory deleted", "id", id, "photos", len(paths))
	return nil
}

func (a *AdminImpl) memoryErr(err error, id int64) error {
	if errors.Is(err, memory.ErrNotFound) {
		return apperrors.WrapWithCode(err, apperrors.CodeNotFound, fmt.Sprintf("memory %d not found", id))
	}
	return fmt.Errorf("memory %d: %w", id, err)
}
