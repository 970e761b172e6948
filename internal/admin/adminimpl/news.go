package adminimpl

import (
	"context"
	"errors"
	"fmt"

	"github.com/orgball2608/class-gallery/internal/admin"
	"github.com/orgball2608/class-gallery/internal/domain"
	"github.com/orgball2608/class-gallery/internal/repositories/event"
	"github.com/orgball2608/class-gallery/internal/repositories/news"
	apperrors "github.com/orgball2608/class-gallery/pkg/errors"
)

func (a *AdminImpl) CreateNews(ctx context.Context, input admin.NewsInput, image *admin.File) (int64, error) {
	if input.Title == "" {
		return 0, apperrors.WrapWithCode(apperrors.ErrInvalidInput, apperrors.CodeBadRequest, "title is required")
	}
	if input.PublishedAt.IsZero() {
		input.PublishedAt = a.clock.Now()
	}

	item := domain.NewsItem{
		Title:       input.Title,
		Content:     input.Content,
		PublishedAt: input.PublishedAt,
	}
	if image != nil {
		objectPath, url, err := a.storeImage(ctx, domain.BucketNews, *image)
		if err != nil {
			return 0, err
		}
		item.ImagePath = objectPath
		item.ImageURL = url
	}

	id, err := a.News.Create(ctx, item)
	if err != nil {
		a.removeObjects(ctx, domain.BucketNews, item.ImagePath)
		return 0, fmt.Errorf("create news: %w", err)
	}
	return id, nil
}

func (a *AdminImpl) DeleteNews(ctx context.Context, id int64) error {
	item, err := a.News.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, news.ErrNotFound) {
			return apperrors.WrapWithCode(err, apperrors.CodeNotFound, fmt.Sprintf("news %d not found", id))
		}
		return fmt.Errorf("news %d: %w", id, err)
	}

	if err := a.News.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete news %d: %w", id, err)
	}
	a.removeObjects(ctx, domain.BucketNews, item.ImagePath)
	return nil
}

func (a *AdminImpl) CreateEvent(ctx context.Context, input admin.EventInput) (int64, error) {
	if input.Title == "" || input.DateEnd.IsZero() {
		return 0, apperrors.WrapWithCode(apperrors.ErrInvalidInput, apperrors.CodeBadRequest, "title and end date are required")
	}
	id, err := a.Events.Create(ctx, domain.EventItem{Title: input.Title, DateEnd: input.DateEnd})
	if err != nil {
		return 0, fmt.Errorf("create event: %w", err)
	}
	return id, nil
}

func (a *AdminImpl) DeleteEvent(ctx context.Context, id int64) error {
	if err := a.Events.Delete(ctx, id); err != nil {
		if errors.Is(err, event.ErrNotFound) {
			return apperrors.WrapWithCode(err, apperrors.CodeNotFound, fmt.Sprintf("event %d not found", id))
		}
		return fmt.Errorf("delete event %d: %w", id, err)
	}
	return nil
}
