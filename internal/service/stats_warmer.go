package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/phrazzld/catalog-api/internal/events"
	"github.com/phrazzld/catalog-api/internal/task"
)

// statsRefresher is the part of StatsCache the warmer drives.
type statsRefresher interface {
	Invalidate()
	Warm(ctx context.Context) error
}

// StatsWarmer is an events.EventHandler that refreshes the stats cache in the
// background whenever the collection changes, so the next stats request is
// served from a fresh snapshot. Refreshes run as tasks on the given queue.
type StatsWarmer struct {
	cache  statsRefresher
	queue  task.TaskQueueWriter
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewStatsWarmer creates a warmer for cache that submits refreshes to queue.
func NewStatsWarmer(cache *StatsCache, queue task.TaskQueueWriter, logger *slog.Logger) *StatsWarmer {
	if cache == nil {
		// ALLOW-PANIC: constructor called only during wiring
		panic("cache cannot be nil")
	}
	return newStatsWarmer(cache, queue, logger)
}

func newStatsWarmer(cache statsRefresher, queue task.TaskQueueWriter, logger *slog.Logger) *StatsWarmer {
	if queue == nil {
		// ALLOW-PANIC: constructor called only during wiring
		panic("queue cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsWarmer{
		cache:  cache,
		queue:  queue,
		logger: logger.With("component", "stats_warmer"),
	}
}

// HandleEvent implements events.EventHandler. It returns once the refresh is
// queued; a full or closed queue is logged and skipped, since the next stats
// request recomputes on its own.
func (w *StatsWarmer) HandleEvent(_ context.Context, event *events.Event) error {
	switch event.Type {
	case events.EventTypeItemCreated:
		// The append may land within the file system's timestamp granularity.
		w.cache.Invalidate()
	case events.EventTypeStoreChanged:
	default:
		return nil
	}

	w.wg.Add(1)
	refresh := task.NewFuncTask(task.TaskTypeStatsRefresh, func(taskCtx context.Context) error {
		defer w.wg.Done()
		if err := w.cache.Warm(taskCtx); err != nil {
			w.logger.Warn("background stats refresh failed",
				"error", err,
				"event_id", event.ID,
				"event_type", event.Type)
			return nil
		}
		w.logger.Debug("stats refreshed", "event_id", event.ID, "event_type", event.Type)
		return nil
	})

	if err := w.queue.Enqueue(refresh); err != nil {
		w.wg.Done()
		w.logger.Warn("stats refresh not scheduled",
			"error", err,
			"task_id", refresh.ID(),
			"event_id", event.ID,
			"event_type", event.Type)
	}
	return nil
}

// Wait blocks until every refresh queued so far has finished. The worker
// pool must still be running.
func (w *StatsWarmer) Wait() {
	w.wg.Wait()
}
