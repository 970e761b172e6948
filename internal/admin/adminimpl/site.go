package adminimpl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/orgball2608/class-gallery/internal/admin"
	"github.com/orgball2608/class-gallery/internal/domain"
	"github.com/orgball2608/class-gallery/internal/repositories/message"
	apperrors "github.com/orgball2608/class-gallery/pkg/errors"
)

func (a *AdminImpl) DeleteMessage(ctx context.Context, id int64) error {
	if err := a.Messages.Delete(ctx, id); err != nil {
		if errors.Is(err, message.ErrNotFound) {
			return apperrors.WrapWithCode(err, apperrors.CodeNotFound, fmt.Sprintf("message %d not found", id))
		}
		return fmt.Errorf("delete message %d: %w", id, err)
	}
	return nil
}

func (a *AdminImpl) SaveHero(ctx context.Context, input admin.HeroInput, image *admin.File) (domain.Hero, error) {
	current, err := a.currentSettings(ctx)
	if err != nil {
		return domain.Hero{}, err
	}

	hero := domain.Hero{
		Title:    strings.TrimSpace(input.Title),
		Subtitle: strings.TrimSpace(input.Subtitle),
		Image:    current.Hero.Image,
	}
	if image != nil {
		objectPath, url, err := a.storeImage(ctx, domain.BucketPhotos, *image)
		if err != nil {
			return domain.Hero{}, err
		}
		hero.Image = &domain.StoredImage{Path: objectPath, URL: url}
	}

	if err := a.saveSetting(ctx, domain.SettingHero, hero); err != nil {
		if image != nil {
			a.removeObjects(ctx, domain.BucketPhotos, hero.Image.Path)
		}
		return domain.Hero{}, err
	}

	if old := current.Hero.Image; image != nil && old != nil && old.Path != hero.Image.Path {
		a.removeObjects(ctx, domain.BucketPhotos, old.Path)
	}
	return hero, nil
}

func (a *AdminImpl) SaveFooter(ctx context.Context, text string) (domain.Footer, error) {
	footer := domain.Footer{Text: strings.TrimSpace(text)}
	if err := a.saveSetting(ctx, domain.SettingFooter, footer); err != nil {
		return domain.Footer{}, err
	}
	return footer, nil
}

// currentSettings reads the stored settings; a malformed section counts as
// empty so it can be overwritten.
func (a *AdminImpl) currentSettings(ctx context.Context) (domain.SiteSettings, error) {
	raw, err := a.Settings.All(ctx)
	if err != nil {
		return domain.SiteSettings{}, fmt.Errorf("read site settings: %w", err)
	}
	settings, err := domain.DecodeSiteSettings(raw)
	if err != nil {
		a.Logger.Warn("Overwriting malformed site settings", "error", err)
	}
	return settings, nil
}

func (a *AdminImpl) saveSetting(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode setting %q: %w", key, err)
	}
	if err := a.Settings.Upsert(ctx, key, data); err != nil {
		return fmt.Errorf("save setting %q: %w", key, err)
	}
	return nil
}
