package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/catalog-api/internal/config"
	"github.com/phrazzld/catalog-api/internal/events"
	"github.com/phrazzld/catalog-api/internal/platform/filestore"
	"github.com/phrazzld/catalog-api/internal/service"
	"github.com/phrazzld/catalog-api/internal/task"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	itemStore    *filestore.ItemStore
	itemService  service.ItemService
	statsCache   *service.StatsCache
	statsWarmer  *service.StatsWarmer
	eventEmitter *events.InMemoryEventEmitter

	taskQueue  *task.TaskQueue
	workerPool *task.WorkerPool

	// watcher is nil unless store.watch is enabled.
	watcher *filestore.Watcher
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	dataPath := cfg.Store.DataPath
	if cfg.Store.CreateIfMissing {
		created, err := filestore.EnsureFile(dataPath)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare data file: %w", err)
		}
		if created {
			logger.Info("Created empty data file", "path", dataPath)
		}
	}

	app.itemStore = filestore.NewItemStore(dataPath, logger)

	var err error
	app.statsCache, err = service.NewStatsCache(app.itemStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create stats cache: %w", err)
	}

	app.taskQueue = task.NewTaskQueue(cfg.Task.QueueSize, logger)
	app.workerPool = task.NewWorkerPool(app.taskQueue, task.WorkerPoolConfig{
		WorkerCount: cfg.Task.WorkerCount,
	}, logger)

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.statsWarmer = service.NewStatsWarmer(app.statsCache, app.taskQueue, logger)
	app.eventEmitter.RegisterHandler(app.statsWarmer,
		events.EventTypeItemCreated,
		events.EventTypeStoreChanged)

	app.itemService, err = service.NewItemService(
		app.itemStore,
		logger,
		service.WithEventEmitter(app.eventEmitter),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create item service: %w", err)
	}

	if cfg.Store.Watch {
		app.watcher, err = filestore.NewWatcher(dataPath, filestore.DefaultDebounce, app.onStoreChanged, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to watch data file: %w", err)
		}
		logger.Info("Watching data file for changes", "path", dataPath)
	}

	app.workerPool.Start()

	logger.Info("Application initialized successfully")
	return app, nil
}

// onStoreChanged is the watcher callback. It publishes a store-changed event
// so the warmer refreshes statistics before the next request asks for them.
func (app *application) onStoreChanged() {
	event, err := events.NewStoreChangedEvent(app.config.Store.DataPath)
	if err != nil {
		app.logger.Error("failed to build store changed event", "error", err)
		return
	}
	if err := app.eventEmitter.EmitEvent(context.Background(), event); err != nil {
		app.logger.Error("failed to emit store changed event", "error", err, "event_id", event.ID)
	}
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns once ctx is done and the server has shut down, or on failure.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.watcher != nil {
		if err := app.watcher.Stop(); err != nil {
			app.logger.Error("Error stopping data file watcher", "error", err)
		}
	}

	if app.statsWarmer != nil {
		app.statsWarmer.Wait()
	}
	if app.taskQueue != nil {
		app.taskQueue.Close()
	}
	if app.workerPool != nil {
		app.workerPool.Stop()
	}

	app.logger.Info("Application shutdown completed")
}
