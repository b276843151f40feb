package reaper_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/nurkanat-dev/lifelog/internal/domain"
	"github.com/nurkanat-dev/lifelog/internal/reaper"
)

type fakePostRepo struct {
	imageKeys []string
}

func (f *fakePostRepo) Create(context.Context, *domain.Post) (*domain.Post, error) {
	return nil, nil
}

func (f *fakePostRepo) ListByUser(context.Context, string) ([]*domain.FeedPost, error) {
	return nil, nil
}

func (f *fakePostRepo) ListImageKeys(context.Context) ([]string, error) {
	return f.imageKeys, nil
}

type fakeImageStore struct {
	keys    []string
	removed []string
}

func (f *fakeImageStore) Upload(context.Context, string, []byte, string) (string, error) {
	return "", nil
}

func (f *fakeImageStore) Remove(_ context.Context, key string) error {
	f.removed = append(f.removed, key)
	return nil
}

func (f *fakeImageStore) ListKeys(context.Context, time.Time) ([]string, error) {
	return f.keys, nil
}

func newReaper(t *testing.T, posts *fakePostRepo, images *fakeImageStore) *reaper.Reaper {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r, err := reaper.New(posts, images, logger, "@hourly")
	if err != nil {
		t.Fatalf("new reaper: %v", err)
	}
	return r
}

func TestNew_InvalidCronExpr(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if _, err := reaper.New(&fakePostRepo{}, &fakeImageStore{}, logger, "not a cron expr"); err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
}

func TestSweep_RemovesOnlyOrphans(t *testing.T) {
	posts := &fakePostRepo{imageKeys: []string{"a.jpg", "b.jpg"}}
	images := &fakeImageStore{keys: []string{"a.jpg", "b.jpg", "orphan1.jpg", "orphan2.jpg"}}

	removed, err := newReaper(t, posts, images).Sweep(context.Background())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	want := map[string]bool{"orphan1.jpg": true, "orphan2.jpg": true}
	for _, key := range images.removed {
		if !want[key] {
			t.Errorf("removed referenced image %q", key)
		}
	}
}

func TestSweep_NothingStored(t *testing.T) {
	images := &fakeImageStore{}
	removed, err := newReaper(t, &fakePostRepo{}, images).Sweep(context.Background())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if removed != 0 || len(images.removed) != 0 {
		t.Errorf("removed = %d (%v), want none", removed, images.removed)
	}
}
