package adminimpl

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/orgball2608/class-gallery/internal/admin"
	"github.com/orgball2608/class-gallery/internal/repositories/tag"
	apperrors "github.com/orgball2608/class-gallery/pkg/errors"
)

func (a *AdminImpl) AddTag(ctx context.Context, name string) error {
	name = admin.NormalizeTag(name)
	if name == "" {
		return apperrors.WrapWithCode(apperrors.ErrInvalidInput, apperrors.CodeBadRequest, "tag name is required")
	}
	if err := a.Tags.Upsert(ctx, name); err != nil {
		return fmt.Errorf("add tag %q: %w", name, err)
	}
	return nil
}

// RenameTag moves every photo from oldName to newName and then drops
// oldName.
func (a *AdminImpl) RenameTag(ctx context.Context, oldName, newName string) error {
	newName = admin.NormalizeTag(newName)
	if newName == "" || newName == oldName {
		return apperrors.WrapWithCode(apperrors.ErrInvalidInput, apperrors.CodeBadRequest, "new tag name must differ")
	}

	if err := a.Tags.Upsert(ctx, newName); err != nil {
		return fmt.Errorf("rename tag %q: %w", oldName, err)
	}

	photos, err := a.Photos.ListByTag(ctx, oldName)
	if err != nil {
		return fmt.Errorf("rename tag %q: %w", oldName, err)
	}
	for _, p := range photos {
		if err := a.Photos.UpdateTags(ctx, p.ID, admin.RenameInSet(p.Tags, oldName, newName)); err != nil {
			return fmt.Errorf("rename tag %q on photo %d: %w", oldName, p.ID, err)
		}
	}

	if err := a.Tags.Delete(ctx, oldName); err != nil && !errors.Is(err, tag.ErrNotFound) {
		return fmt.Errorf("rename tag %q: %w", oldName, err)
	}

	a.Logger.Info("Tag renamed", "from", oldName, "to", newName, "photos", len(photos))
	return nil
}

// DeleteTag removes name from every photo and from the tag list.
func (a *AdminImpl) DeleteTag(ctx context.Context, name string) error {
	photos, err := a.Photos.ListByTag(ctx, name)
	if err != nil {
		return fmt.Errorf("delete tag %q: %w", name, err)
	}
	for _, p := range photos {
		tags := slices.DeleteFunc(slices.Clone(p.Tags), func(t string) bool { return t == name })
		if err := a.Photos.UpdateTags(ctx, p.ID, tags); err != nil {
			return fmt.Errorf("delete tag %q on photo %d: %w", name, p.ID, err)
		}
	}

	if err := a.Tags.Delete(ctx, name); err != nil {
		if errors.Is(err, tag.ErrNotFound) {
			return apperrors.WrapWithCode(err, apperrors.CodeNotFound, fmt.Sprintf("tag %q not found", name))
		}
		return fmt.Errorf("delete tag %q: %w", name, err)
	}

	a.Logger.Info("Tag deleted", "tag", name, "photos", len(photos))
	return nil
}

// ensureTags records tags in the tag list. Failures are logged only; the
// photo already carries the tag.
func (a *AdminImpl) ensureTags(ctx context.Context, tags []string) {
	for _, t := range tags {
		if err := a.Tags.Upsert(ctx, t); err != nil {
			a.Logger.Warn("Failed to record tag", "tag", t, "error", err)
		}
	}
}
