package reaper

import (
	"context"
	"log/slog"
	"time"

	"github.com/nurkanat-dev/lifelog/internal/metrics"
	"github.com/nurkanat-dev/lifelog/internal/repository"
	"github.com/nurkanat-dev/lifelog/internal/storage"
	"github.com/robfig/cron/v3"
)

// gracePeriod keeps the reaper away from images whose post insert may
// still be in flight.
const gracePeriod = 1 * time.Hour

// Reaper removes stored images no post references. An orphan appears
// when the upload succeeds but the post insert fails.
type Reaper struct {
	posts    repository.PostRepository
	images   storage.ImageStore
	logger   *slog.Logger
	schedule cron.Schedule
}

func New(posts repository.PostRepository, images storage.ImageStore, logger *slog.Logger, cronExpr string) (*Reaper, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, err
	}
	return &Reaper{
		posts:    posts,
		images:   images,
		logger:   logger.With("component", "reaper"),
		schedule: schedule,
	}, nil
}

func (r *Reaper) Start(ctx context.Context) {
	r.logger.Info("reaper started")

	for {
		next := r.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			r.logger.Info("reaper shut down")
			return
		case <-timer.C:
			r.reap(ctx)
		}
	}
}

func (r *Reaper) reap(ctx context.Context) {
	start := time.Now()
	defer func() {
		metrics.ReaperCycleDuration.Observe(time.Since(start).Seconds())
	}()

	removed, err := r.Sweep(ctx)
	if err != nil {
		r.logger.Error("reaper sweep", "error", err)
		return
	}
	if removed > 0 {
		r.logger.Info("reaper removed orphaned images", "count", removed)
	}
}

// Sweep deletes every stored image older than the grace period that no
// post references, returning how many were removed.
func (r *Reaper) Sweep(ctx context.Context) (int, error) {
	stored, err := r.images.ListKeys(ctx, time.Now().Add(-gracePeriod))
	if err != nil {
		return 0, err
	}
	if len(stored) == 0 {
		return 0, nil
	}

	referenced, err := r.posts.ListImageKeys(ctx)
	if err != nil {
		return 0, err
	}
	inUse := make(map[string]struct{}, len(referenced))
	for _, key := range referenced {
		inUse[key] = struct{}{}
	}

	removed := 0
	for _, key := range stored {
		if _, ok := inUse[key]; ok {
			continue
		}
		if err := r.images.Remove(ctx, key); err != nil {
			r.logger.Error("reaper remove", "key", key, "error", err)
			continue
		}
		metrics.ReaperRemovedTotal.Inc()
		removed++
	}
	return removed, nil
}
