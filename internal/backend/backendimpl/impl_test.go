package backendimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/orgball2608/class-gallery/internal/backend"
	"github.com/orgball2608/class-gallery/internal/domain"
	"github.com/orgball2608/class-gallery/internal/repositories/memory"
	mock_memory "github.com/orgball2608/class-gallery/internal/repositories/memory/mocks"
	mock_message "github.com/orgball2608/class-gallery/internal/repositories/message/mocks"
	mock_photo "github.com/orgball2608/class-gallery/internal/repositories/photo/mocks"
	mock_setting "github.com/orgball2608/class-gallery/internal/repositories/setting/mocks"
	mock_storage "github.com/orgball2608/class-gallery/internal/storage/mocks"
	"github.com/orgball2608/class-gallery/pkg/config"
	"github.com/orgball2608/class-gallery/pkg/logger"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	backend  *BackendImpl
	photos   *mock_photo.MockRepository
	memories *mock_memory.MockRepository
	messages *mock_message.MockRepository
	settings *mock_setting.MockRepository
	storage  *mock_storage.MockClient
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	cfg := &config.Config{}
	cfg.Retry.Attempts = 2
	cfg.Retry.Delay = time.Millisecond

	f := fixture{
		photos:   mock_photo.NewMockRepository(ctrl),
		memories: mock_memory.NewMockRepository(ctrl),
		messages: mock_message.NewMockRepository(ctrl),
		settings: mock_setting.NewMockRepository(ctrl),
		storage:  mock_storage.NewMockClient(ctrl),
	}
	f.backend = New(Opts{
		Config:   cfg,
		Logger:   logger.Nop(),
		Photos:   f.photos,
		Memories: f.memories,
		Messages: f.messages,
		Settings: f.settings,
		Storage:  f.storage,
	})
	return f
}

func TestListPhotosRetriesTransientFailures(t *testing.T) {
	f := newFixture(t)
	opts := domain.ListOptions{Offset: 36, Limit: 36}

	gomock.InOrder(
		f.photos.EXPECT().List(gomock.Any(), opts).Return(nil, errors.New("connection reset")),
		f.photos.EXPECT().List(gomock.Any(), opts).Return(nil, errors.New("connection reset")),
		f.photos.EXPECT().List(gomock.Any(), opts).Return([]*domain.MediaItem{
			{ID: 1, StoragePath: "a.jpg"},
			{ID: 2, URL: "https://cdn/b.jpg", Tags: []string{"x"}},
		}, nil),
	)
	f.storage.EXPECT().PublicURL(domain.BucketPhotos, "a.jpg").Return("/media/photos/a.jpg")

	items, err := f.backend.ListPhotos(context.Background(), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items", len(items))
	}
	if items[0].URL != "/media/photos/a.jpg" || items[0].Tags == nil {
		t.Fatalf("defaults not applied: %+v", items[0])
	}
	if items[1].URL != "https://cdn/b.jpg" {
		t.Fatalf("stored url replaced: %q", items[1].URL)
	}
}

func TestListPhotosGivesUpAfterTwoRetries(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("unavailable")
	f.photos.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, boom).Times(3)

	_, err := f.backend.ListPhotos(context.Background(), domain.ListOptions{Limit: 36})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestListMemoriesStableByOrder(t *testing.T) {
	f := newFixture(t)
	f.memories.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*domain.MemoryItem{
		{ID: 1, Order: 2},
		{ID: 2, Order: 1},
		{ID: 3, Order: 2},
		{ID: 4, Order: 0, Photos: []domain.MemoryPhoto{{StoragePath: "m/1.jpg"}, {StoragePath: ""}}},
	}, nil)
	f.storage.EXPECT().PublicURL(domain.BucketMemories, "m/1.jpg").Return("/media/memories/m/1.jpg")
	f.storage.EXPECT().PublicURL(domain.BucketMemories, "").Return("")

	items, err := f.backend.ListMemories(context.Background(), domain.ListOptions{})
	if err != nil {
		t.Fatal(err)
	}
	var ids []int64
	for _, m := range items {
		ids = append(ids, m.ID)
	}
	want := []int64{4, 2, 1, 3}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("order = %v, want %v", ids, want)
		}
	}
	if len(items[0].Photos) != 1 {
		t.Fatalf("photos without a url should be dropped, got %d", len(items[0].Photos))
	}
}

func TestGetMemoryNotFoundIsNotRetried(t *testing.T) {
	f := newFixture(t)
	f.memories.EXPECT().GetByID(gomock.Any(), int64(7)).Return(nil, memory.ErrNotFound).Times(1)

	_, err := f.backend.GetMemory(context.Background(), 7)
	if !errors.Is(err, backend.ErrNotFound) {
		t.Fatalf("err = %v, want backend.ErrNotFound", err)
	}
}

func TestPublicURLPassesThrough(t *testing.T) {
	f := newFixture(t)
	f.storage.EXPECT().PublicURL(domain.BucketPhotos, "").Return("")

	if got := f.backend.PublicURL(domain.BucketPhotos, ""); got != "" {
		t.Fatalf("PublicURL(\"\") = %q", got)
	}
}
