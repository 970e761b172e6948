package adminimpl

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/class-gallery/internal/admin"
	mock_backend "github.com/orgball2608/class-gallery/internal/backend/mocks"
	"github.com/orgball2608/class-gallery/internal/domain"
	"github.com/orgball2608/class-gallery/internal/media"
	mock_media "github.com/orgball2608/class-gallery/internal/media/mocks"
	mock_event "github.com/orgball2608/class-gallery/internal/repositories/event/mocks"
	mock_memory "github.com/orgball2608/class-gallery/internal/repositories/memory/mocks"
	mock_message "github.com/orgball2608/class-gallery/internal/repositories/message/mocks"
	mock_news "github.com/orgball2608/class-gallery/internal/repositories/news/mocks"
	"github.com/orgball2608/class-gallery/internal/repositories/photo"
	mock_photo "github.com/orgball2608/class-gallery/internal/repositories/photo/mocks"
	mock_setting "github.com/orgball2608/class-gallery/internal/repositories/setting/mocks"
	mock_tag "github.com/orgball2608/class-gallery/internal/repositories/tag/mocks"
	mock_storage "github.com/orgball2608/class-gallery/internal/storage/mocks"
	"github.com/orgball2608/class-gallery/pkg/config"
	apperrors "github.com/orgball2608/class-gallery/pkg/errors"
	"github.com/orgball2608/class-gallery/pkg/logger"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	admin    *AdminImpl
	photos   *mock_photo.MockRepository
	memories *mock_memory.MockRepository
	tags     *mock_tag.MockRepository
	news     *mock_news.MockRepository
	events   *mock_event.MockRepository
	messages *mock_message.MockRepository
	settings *mock_setting.MockRepository
	storage  *mock_storage.MockClient
	media    *mock_media.MockClient
	backend  *mock_backend.MockClient
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	cfg := &config.Config{}
	cfg.Limits.UploadWorkers = 2
	cfg.Report.Timezone = "UTC"
	cfg.Report.StorageCron = "0 3 * * *"

	f := fixture{
		photos:   mock_photo.NewMockRepository(ctrl),
		memories: mock_memory.NewMockRepository(ctrl),
		tags:     mock_tag.NewMockRepository(ctrl),
		news:     mock_news.NewMockRepository(ctrl),
		events:   mock_event.NewMockRepository(ctrl),
		messages: mock_message.NewMockRepository(ctrl),
		settings: mock_setting.NewMockRepository(ctrl),
		storage:  mock_storage.NewMockClient(ctrl),
		media:    mock_media.NewMockClient(ctrl),
		backend:  mock_backend.NewMockClient(ctrl),
	}
	a, err := New(Opts{
		Config:   cfg,
		Logger:   logger.Nop(),
		Photos:   f.photos,
		Memories: f.memories,
		Tags:     f.tags,
		News:     f.news,
		Events:   f.events,
		Messages: f.messages,
		Settings: f.settings,
		Storage:  f.storage,
		Media:    f.media,
		Backend:  f.backend,
		Clock:    clockwork.NewFakeClockAt(time.Date(2025, 11, 1, 8, 0, 0, 0, time.UTC)),
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(a.Close)
	f.admin = a
	return f
}

func file(name string) admin.File {
	return admin.File{
		Name:        name,
		ContentType: "image/jpeg",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("raw " + name)), nil
		},
	}
}

// expectStore makes every compress and upload succeed, storing objects
// under their generated names.
func (f fixture) expectStore(bucket string) {
	f.media.EXPECT().Compress(gomock.Any(), "image/jpeg").Return(&media.Image{Data: []byte("jpeg"), Ext: ".jpg"}, nil).AnyTimes()
	f.storage.EXPECT().Upload(gomock.Any(), bucket, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, name string, _ io.Reader) (string, error) {
			return name, nil
		}).AnyTimes()
	f.storage.EXPECT().PublicURL(bucket, gomock.Any()).DoAndReturn(
		func(bucket, p string) string { return "/media/" + bucket + "/" + p }).AnyTimes()
}

func TestUploadPhotosRollsBackFailedInsert(t *testing.T) {
	f := newFixture(t)
	f.expectStore(domain.BucketPhotos)
	f.tags.EXPECT().Upsert(gomock.Any(), "kelas").Return(nil)

	f.photos.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, item domain.MediaItem) (int64, error) {
			if strings.Contains(item.StoragePath, "broken") {
				return 0, errors.New("insert failed")
			}
			if !slices.Equal(item.Tags, []string{"kelas"}) || item.Title != "Class day" {
				t.Errorf("unexpected item %+v", item)
			}
			return 10, nil
		}).Times(2)

	var mu sync.Mutex
	var removed []string
	f.storage.EXPECT().Remove(gomock.Any(), domain.BucketPhotos, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, paths ...string) error {
			mu.Lock()
			removed = append(removed, paths...)
			mu.Unlock()
			return nil
		}).Times(1)

	results := f.admin.UploadPhotos(context.Background(),
		[]admin.File{file("Day One.png"), file("broken.jpg")},
		admin.PhotoMeta{Title: "Class day", Tags: []string{" Kelas "}},
	)

	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].ID != 10 || results[0].Error != "" || !strings.HasSuffix(results[0].URL, "_day-one.jpg") {
		t.Fatalf("first result = %+v", results[0])
	}
	if results[1].Error == "" || results[1].ID != 0 {
		t.Fatalf("second result = %+v", results[1])
	}
	if len(removed) != 1 || !strings.Contains(removed[0], "broken") {
		t.Fatalf("removed = %v", removed)
	}
}

func TestUploadPhotosReportsBadImages(t *testing.T) {
	f := newFixture(t)
	f.media.EXPECT().Compress(gomock.Any(), gomock.Any()).Return(nil, media.ErrUnsupported)

	results := f.admin.UploadPhotos(context.Background(), []admin.File{file("notes.txt")}, admin.PhotoMeta{})
	if results[0].Error == "" {
		t.Fatal("expected a per file error")
	}
}

func TestUpdatePhotoReplacesImage(t *testing.T) {
	f := newFixture(t)
	f.expectStore(domain.BucketPhotos)
	f.photos.EXPECT().GetByID(gomock.Any(), int64(3)).Return(&domain.MediaItem{
		ID: 3, StoragePath: "old.jpg", URL: "/media/photos/old.jpg", Tags: []string{"a"},
	}, nil)
	f.tags.EXPECT().Upsert(gomock.Any(), "b").Return(nil)
	f.photos.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, item domain.MediaItem) error {
			if item.StoragePath == "old.jpg" || !slices.Equal(item.Tags, []string{"b"}) || item.Title != "New" {
				t.Errorf("unexpected update %+v", item)
			}
			return nil
		})
	f.storage.EXPECT().Remove(gomock.Any(), domain.BucketPhotos, "old.jpg").Return(nil)

	fresh := file("fresh.jpg")
	err := f.admin.UpdatePhoto(context.Background(), 3, admin.PhotoUpdate{
		PhotoMeta: admin.PhotoMeta{Title: "New", Tags: []string{"B"}},
		File:      &fresh,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestDeletePhotoNotFound(t *testing.T) {
	f := newFixture(t)
	f.photos.EXPECT().GetByID(gomock.Any(), int64(9)).Return(nil, photo.ErrNotFound)

	err := f.admin.DeletePhoto(context.Background(), 9)
	if !apperrors.IsNotFound(err) || apperrors.GetCode(err) != apperrors.CodeNotFound {
		t.Fatalf("err = %v", err)
	}
}

func TestBulkTags(t *testing.T) {
	f := newFixture(t)
	f.photos.EXPECT().GetByID(gomock.Any(), int64(1)).Return(&domain.MediaItem{ID: 1, Tags: []string{"a", "b"}}, nil)
	f.photos.EXPECT().GetByID(gomock.Any(), int64(2)).Return(nil, photo.ErrNotFound)
	f.photos.EXPECT().UpdateTags(gomock.Any(), int64(1), []string{"b", "c"}).Return(nil)
	f.tags.EXPECT().Upsert(gomock.Any(), "c").Return(nil)

	n, err := f.admin.BulkTags(context.Background(), []int64{1, 2}, "remove:a, C")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("updated = %d, want 1", n)
	}

	if _, err := f.admin.BulkTags(context.Background(), []int64{1}, " , "); !apperrors.IsBadRequest(err) {
		t.Fatalf("empty ops err = %v", err)
	}
}

func TestBulkDeleteSkipsMissing(t *testing.T) {
	f := newFixture(t)
	f.photos.EXPECT().GetByID(gomock.Any(), int64(1)).Return(&domain.MediaItem{ID: 1, StoragePath: "1.jpg"}, nil)
	f.photos.EXPECT().GetByID(gomock.Any(), int64(2)).Return(nil, photo.ErrNotFound)
	f.storage.EXPECT().Remove(gomock.Any(), domain.BucketPhotos, "1.jpg").Return(errors.New("gone"))
	f.photos.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil)

	n, err := f.admin.BulkDelete(context.Background(), []int64{1, 2})
	if err != nil || n != 1 {
		t.Fatalf("n=%d err=%v", n, err)
	}
}

func TestRenameTagPropagates(t *testing.T) {
	f := newFixture(t)
	gomock.InOrder(
		f.tags.EXPECT().Upsert(gomock.Any(), "lomba").Return(nil),
		f.photos.EXPECT().ListByTag(gomock.Any(), "contest").Return([]*domain.MediaItem{
			{ID: 1, Tags: []string{"contest", "x"}},
			{ID: 2, Tags: []string{"lomba", "contest"}},
		}, nil),
		f.photos.EXPECT().UpdateTags(gomock.Any(), int64(1), []string{"lomba", "x"}).Return(nil),
		f.photos.EXPECT().UpdateTags(gomock.Any(), int64(2), []string{"lomba"}).Return(nil),
		f.tags.EXPECT().Delete(gomock.Any(), "contest").Return(nil),
	)

	if err := f.admin.RenameTag(context.Background(), "contest", " Lomba "); err != nil {
		t.Fatal(err)
	}
	if err := f.admin.RenameTag(context.Background(), "lomba", "lomba"); !apperrors.IsBadRequest(err) {
		t.Fatalf("same name err = %v", err)
	}
}

func TestDeleteTagPropagates(t *testing.T) {
	f := newFixture(t)
	f.photos.EXPECT().ListByTag(gomock.Any(), "old").Return([]*domain.MediaItem{
		{ID: 4, Tags: []string{"a", "old", "b"}},
	}, nil)
	f.photos.EXPECT().UpdateTags(gomock.Any(), int64(4), []string{"a", "b"}).Return(nil)
	f.tags.EXPECT().Delete(gomock.Any(), "old").Return(nil)

	if err := f.admin.DeleteTag(context.Background(), "old"); err != nil {
		t.Fatal(err)
	}
}

func TestCreateMemoryRollsBackUploads(t *testing.T) {
	f := newFixture(t)
	f.expectStore(domain.BucketMemories)
	f.memories.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, m domain.MemoryItem) (int64, error) {
			if len(m.Photos) != 2 || m.Photos[0].URL == "" {
				t.Errorf("unexpected memory %+v", m)
			}
			return 0, errors.New("insert failed")
		})
	var removed []string
	f.storage.EXPECT().Remove(gomock.Any(), domain.BucketMemories, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, paths ...string) error {
			removed = paths
			return nil
		})

	_, err := f.admin.CreateMemory(context.Background(), admin.MemoryInput{Title: "Camp"}, []admin.File{file("a.jpg"), file("b.jpg")})
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(removed) != 2 {
		t.Fatalf("removed = %v", removed)
	}
}

func TestDeleteMemoryRemovesPhotos(t *testing.T) {
	f := newFixture(t)
	f.memories.EXPECT().GetByID(gomock.Any(), int64(5)).Return(&domain.MemoryItem{
		ID:     5,
		Photos: []domain.MemoryPhoto{{StoragePath: "m/1.jpg"}, {StoragePath: "m/2.jpg"}},
	}, nil)
	f.storage.EXPECT().Remove(gomock.Any(), domain.BucketMemories, "m/1.jpg", "m/2.jpg").Return(nil)
	f.memories.EXPECT().Delete(gomock.Any(), int64(5)).Return(nil)

	if err := f.admin.DeleteMemory(context.Background(), 5); err != nil {
		t.Fatal(err)
	}
}

func TestStorageUsage(t *testing.T) {
	f := newFixture(t)
	f.backend.EXPECT().ListFiles(gomock.Any(), domain.BucketPhotos, "").Return([]domain.FileInfo{{Size: 1024}, {Size: 512}}, nil)
	f.backend.EXPECT().ListFiles(gomock.Any(), domain.BucketNews, "").Return(nil, nil)
	f.backend.EXPECT().ListFiles(gomock.Any(), domain.BucketMemories, "").Return([]domain.FileInfo{{Size: 10}}, nil)

	usage, err := f.admin.StorageUsage(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(usage) != 3 {
		t.Fatalf("got %d buckets", len(usage))
	}
	if usage[0].Files != 2 || usage[0].TotalBytes != 1536 || usage[0].Human != "1.5 KB" {
		t.Fatalf("photos usage = %+v", usage[0])
	}
	if usage[1].Files != 0 || usage[2].Human != "10 B" {
		t.Fatalf("usage = %+v", usage)
	}
}

func TestScheduleStorageReportStopsWithContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	if err := f.admin.ScheduleStorageReport(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()

	f.admin.Config.Report.StorageCron = "not a cron"
	if err := f.admin.ScheduleStorageReport(context.Background()); err == nil {
		t.Fatal("expected an invalid cron error")
	}
}
