package adminimpl

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/orgball2608/class-gallery/internal/admin"
	"github.com/orgball2608/class-gallery/internal/domain"
	"github.com/orgball2608/class-gallery/internal/repositories/event"
	"github.com/orgball2608/class-gallery/internal/repositories/memory"
	"github.com/orgball2608/class-gallery/internal/repositories/message"
	"github.com/orgball2608/class-gallery/internal/repositories/news"
	apperrors "github.com/orgball2608/class-gallery/pkg/errors"
	"go.uber.org/mock/gomock"
)

func TestCreateNewsRemovesImageWhenInsertFails(t *testing.T) {
	f := newFixture(t)
	f.expectStore(domain.BucketNews)

	var stored string
	f.news.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, item domain.NewsItem) (int64, error) {
			if item.ImagePath == "" || item.ImageURL != "/media/news/"+item.ImagePath {
				t.Errorf("image not attached: %+v", item)
			}
			if !item.PublishedAt.Equal(time.Date(2025, 11, 1, 8, 0, 0, 0, time.UTC)) {
				t.Errorf("published_at = %v, want clock time", item.PublishedAt)
			}
			stored = item.ImagePath
			return 0, errors.New("insert failed")
		})
	f.storage.EXPECT().Remove(gomock.Any(), domain.BucketNews, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, paths ...string) error {
			if len(paths) != 1 || paths[0] != stored {
				t.Errorf("removed %v, want [%s]", paths, stored)
			}
			return nil
		})

	img := file("banner.jpg")
	if _, err := f.admin.CreateNews(context.Background(), admin.NewsInput{Title: "Graduation"}, &img); err == nil {
		t.Fatal("expected error")
	}
}

func TestCreateNewsWithoutImage(t *testing.T) {
	f := newFixture(t)

	if _, err := f.admin.CreateNews(context.Background(), admin.NewsInput{}, nil); !apperrors.IsBadRequest(err) {
		t.Fatalf("err = %v, want bad request", err)
	}

	published := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	f.news.EXPECT().Create(gomock.Any(), domain.NewsItem{Title: "Trip", Content: "Bus at 7", PublishedAt: published}).Return(int64(4), nil)
	id, err := f.admin.CreateNews(context.Background(), admin.NewsInput{Title: "Trip", Content: "Bus at 7", PublishedAt: published}, nil)
	if err != nil || id != 4 {
		t.Fatalf("id=%d err=%v", id, err)
	}
}

func TestDeleteNews(t *testing.T) {
	f := newFixture(t)
	gomock.InOrder(
		f.news.EXPECT().GetByID(gomock.Any(), int64(2)).Return(&domain.NewsItem{ID: 2, ImagePath: "n.jpg"}, nil),
		f.news.EXPECT().Delete(gomock.Any(), int64(2)).Return(nil),
		f.storage.EXPECT().Remove(gomock.Any(), domain.BucketNews, "n.jpg").Return(nil),
	)
	if err := f.admin.DeleteNews(context.Background(), 2); err != nil {
		t.Fatal(err)
	}

	f.news.EXPECT().GetByID(gomock.Any(), int64(3)).Return(nil, news.ErrNotFound)
	if err := f.admin.DeleteNews(context.Background(), 3); !apperrors.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestDeleteNewsKeepsImageWhenDeleteFails(t *testing.T) {
	f := newFixture(t)
	f.news.EXPECT().GetByID(gomock.Any(), int64(2)).Return(&domain.NewsItem{ID: 2, ImagePath: "n.jpg"}, nil)
	f.news.EXPECT().Delete(gomock.Any(), int64(2)).Return(errors.New("db down"))

	if err := f.admin.DeleteNews(context.Background(), 2); err == nil {
		t.Fatal("expected error")
	}
}

func TestCreateEventValidates(t *testing.T) {
	f := newFixture(t)

	for _, input := range []admin.EventInput{
		{Title: "Exam"},
		{DateEnd: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)},
	} {
		if _, err := f.admin.CreateEvent(context.Background(), input); !apperrors.IsBadRequest(err) {
			t.Errorf("CreateEvent(%+v) err = %v, want bad request", input, err)
		}
	}

	end := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	f.events.EXPECT().Create(gomock.Any(), domain.EventItem{Title: "Exam", DateEnd: end}).Return(int64(8), nil)
	if id, err := f.admin.CreateEvent(context.Background(), admin.EventInput{Title: "Exam", DateEnd: end}); err != nil || id != 8 {
		t.Fatalf("id=%d err=%v", id, err)
	}
}

func TestDeleteEventNotFound(t *testing.T) {
	f := newFixture(t)
	f.events.EXPECT().Delete(gomock.Any(), int64(5)).Return(event.ErrNotFound)
	if err := f.admin.DeleteEvent(context.Background(), 5); !apperrors.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}

	f.events.EXPECT().Delete(gomock.Any(), int64(6)).Return(nil)
	if err := f.admin.DeleteEvent(context.Background(), 6); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateMemory(t *testing.T) {
	f := newFixture(t)

	if err := f.admin.UpdateMemory(context.Background(), 1, "", "desc"); !apperrors.IsBadRequest(err) {
		t.Fatalf("err = %v, want bad request", err)
	}

	f.memories.EXPECT().UpdateDetails(gomock.Any(), int64(1), "Camp", "Night hike").Return(nil)
	if err := f.admin.UpdateMemory(context.Background(), 1, "Camp", "Night hike"); err != nil {
		t.Fatal(err)
	}

	f.memories.EXPECT().UpdateDetails(gomock.Any(), int64(2), "Camp", "").Return(memory.ErrNotFound)
	if err := f.admin.UpdateMemory(context.Background(), 2, "Camp", ""); !apperrors.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	f.photos.EXPECT().Count(gomock.Any()).Return(int64(120), nil)
	f.news.EXPECT().Count(gomock.Any()).Return(int64(3), nil)
	f.events.EXPECT().Count(gomock.Any()).Return(int64(2), nil)
	f.memories.EXPECT().Count(gomock.Any()).Return(int64(5), nil)
	f.messages.EXPECT().Count(gomock.Any()).Return(int64(40), nil)

	got, err := f.admin.Dashboard(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := domain.DashboardCounts{Photos: 120, News: 3, Events: 2, Memories: 5, Messages: 40}
	if got != want {
		t.Fatalf("counts = %+v, want %+v", got, want)
	}
}

func TestDashboardStopsAtFirstError(t *testing.T) {
	f := newFixture(t)
	f.photos.EXPECT().Count(gomock.Any()).Return(int64(0), errors.New("db down"))

	if _, err := f.admin.Dashboard(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestAddTagNormalizes(t *testing.T) {
	f := newFixture(t)
	f.tags.EXPECT().Upsert(gomock.Any(), "kelas").Return(nil)

	if err := f.admin.AddTag(context.Background(), "  Kelas "); err != nil {
		t.Fatal(err)
	}
	if err := f.admin.AddTag(context.Background(), "   "); !apperrors.IsBadRequest(err) {
		t.Fatalf("err = %v, want bad request", err)
	}
}

func TestDeleteMessage(t *testing.T) {
	f := newFixture(t)
	f.messages.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil)
	f.messages.EXPECT().Delete(gomock.Any(), int64(2)).Return(message.ErrNotFound)

	if err := f.admin.DeleteMessage(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if err := f.admin.DeleteMessage(context.Background(), 2); !apperrors.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func storedHero(path string) map[string][]byte {
	b, _ := json.Marshal(domain.Hero{Title: "Old", Image: &domain.StoredImage{Path: path, URL: "/media/photos/" + path}})
	return map[string][]byte{domain.SettingHero: b}
}

func decodeHero(t *testing.T, value []byte) domain.Hero {
	t.Helper()
	var h domain.Hero
	if err := json.Unmarshal(value, &h); err != nil {
		t.Fatalf("stored hero: %v", err)
	}
	return h
}

func TestSaveHeroKeepsImageWithoutUpload(t *testing.T) {
	f := newFixture(t)
	f.settings.EXPECT().All(gomock.Any()).Return(storedHero("old.jpg"), nil)
	f.settings.EXPECT().Upsert(gomock.Any(), domain.SettingHero, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, value []byte) error {
			h := decodeHero(t, value)
			if h.Title != "Class of 2025" || h.Subtitle != "" || h.Image == nil || h.Image.Path != "old.jpg" {
				t.Errorf("stored hero = %+v", h)
			}
			return nil
		})

	hero, err := f.admin.SaveHero(context.Background(), admin.HeroInput{Title: " Class of 2025 "}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if hero.Image == nil || hero.Image.Path != "old.jpg" {
		t.Fatalf("hero = %+v", hero)
	}
}

func TestSaveHeroReplacesImage(t *testing.T) {
	f := newFixture(t)
	f.expectStore(domain.BucketPhotos)
	f.settings.EXPECT().All(gomock.Any()).Return(storedHero("old.jpg"), nil)
	f.settings.EXPECT().Upsert(gomock.Any(), domain.SettingHero, gomock.Any()).Return(nil)
	f.storage.EXPECT().Remove(gomock.Any(), domain.BucketPhotos, "old.jpg").Return(nil)

	img := file("hero.jpg")
	hero, err := f.admin.SaveHero(context.Background(), admin.HeroInput{Title: "New"}, &img)
	if err != nil {
		t.Fatal(err)
	}
	if hero.Image == nil || hero.Image.Path == "old.jpg" || hero.Image.URL != "/media/photos/"+hero.Image.Path {
		t.Fatalf("hero image = %+v", hero.Image)
	}
}

func TestSaveHeroRemovesUploadWhenSaveFails(t *testing.T) {
	f := newFixture(t)
	f.expectStore(domain.BucketPhotos)
	f.settings.EXPECT().All(gomock.Any()).Return(storedHero("old.jpg"), nil)

	var uploaded string
	f.settings.EXPECT().Upsert(gomock.Any(), domain.SettingHero, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, value []byte) error {
			uploaded = decodeHero(t, value).Image.Path
			return errors.New("db down")
		})
	f.storage.EXPECT().Remove(gomock.Any(), domain.BucketPhotos, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, paths ...string) error {
			if len(paths) != 1 || paths[0] != uploaded || uploaded == "old.jpg" {
				t.Errorf("removed %v, want only the new upload %q", paths, uploaded)
			}
			return nil
		})

	img := file("hero.jpg")
	if _, err := f.admin.SaveHero(context.Background(), admin.HeroInput{Title: "New"}, &img); err == nil {
		t.Fatal("expected error")
	}
}

func TestSaveHeroOverwritesMalformedSetting(t *testing.T) {
	f := newFixture(t)
	f.settings.EXPECT().All(gomock.Any()).Return(map[string][]byte{domain.SettingHero: []byte(`[]`)}, nil)
	f.settings.EXPECT().Upsert(gomock.Any(), domain.SettingHero, gomock.Any()).Return(nil)

	hero, err := f.admin.SaveHero(context.Background(), admin.HeroInput{Title: "Fresh"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if hero.Image != nil {
		t.Fatalf("image = %+v, want none", hero.Image)
	}
}

func TestSaveFooter(t *testing.T) {
	f := newFixture(t)
	f.settings.EXPECT().Upsert(gomock.Any(), domain.SettingFooter, []byte(`{"text":"See you"}`)).Return(nil)

	footer, err := f.admin.SaveFooter(context.Background(), "  See you\n")
	if err != nil {
		t.Fatal(err)
	}
	if footer.Text != "See you" {
		t.Fatalf("footer = %+v", footer)
	}
}
