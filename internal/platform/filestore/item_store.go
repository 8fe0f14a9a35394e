package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/platform/logger"
	"github.com/phrazzld/catalog-api/internal/store"
)

const (
	entityItem = "item"
	fileMode   = 0o644
)

// ItemStore implements store.ItemStore on top of a single JSON file.
// There is no locking between writers: concurrent appends race and the last
// rename wins.
type ItemStore struct {
	path   string
	logger *slog.Logger
}

// Ensure ItemStore implements store.ItemStore interface
var _ store.ItemStore = (*ItemStore)(nil)

// NewItemStore creates a file-backed item store for the JSON document at path.
// If logger is nil, a default logger will be used.
func NewItemStore(path string, logger *slog.Logger) *ItemStore {
	if path == "" {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("path cannot be empty for ItemStore")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ItemStore{
		path:   filepath.Clean(path),
		logger: logger.With(slog.String("component", "item_store")),
	}
}

// Path returns the location of the backing document.
func (s *ItemStore) Path() string {
	return s.path
}

// Load implements store.ItemStore.Load.
func (s *ItemStore) Load(ctx context.Context) ([]domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	items, err := s.read()
	if err != nil {
		log.Error("failed to load items", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("loaded items", slog.Int("count", len(items)))
	return items, nil
}

// Append implements store.ItemStore.Append.
func (s *ItemStore) Append(ctx context.Context, item domain.Item) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	items, err := s.read()
	if err != nil {
		log.Error("failed to read items before append",
			slog.String("error", err.Error()),
			slog.Int64("item_id", item.ID))
		return err
	}

	items = append(items, item)
	if err := s.write(items); err != nil {
		log.Error("failed to write items",
			slog.String("error", err.Error()),
			slog.Int64("item_id", item.ID))
		return err
	}

	log.Debug("appended item",
		slog.Int64("item_id", item.ID),
		slog.Int("count", len(items)))
	return nil
}

// LastModified implements store.ItemStore.LastModified.
// The token is the file's modification time and size; the content is not read.
func (s *ItemStore) LastModified(ctx context.Context) (store.FreshnessToken, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to stat data file", slog.String("error", err.Error()))
		return store.FreshnessToken{}, store.Unavailable(entityItem, "stat", "failed to stat data file", err)
	}

	return store.FreshnessToken{
		ModTime: info.ModTime(),
		Size:    info.Size(),
	}, nil
}

// read loads and decodes the whole document.
func (s *ItemStore) read() ([]domain.Item, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, store.Unavailable(entityItem, "load", "failed to read data file", err)
	}

	var items []domain.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, store.Unavailable(entityItem, "load", "failed to parse data file", err)
	}
	if items == nil {
		items = []domain.Item{}
	}
	return items, nil
}

// write replaces the document with items. The new content is written to a
// temporary file in the same directory and renamed over the original, so
// readers observe either the old or the new document.
func (s *ItemStore) write(items []domain.Item) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return store.Unavailable(entityItem, "append", "failed to encode items", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return store.Unavailable(entityItem, "append", "failed to create temporary file", err)
	}
	tmpName := tmp.Name()

	cleanup := func(cause error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return store.Unavailable(entityItem, "append", "failed to write data file", cause)
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return store.Unavailable(entityItem, "append", "failed to write data file", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return store.Unavailable(entityItem, "append", "failed to replace data file", err)
	}
	return nil
}

// EnsureFile creates the document at path, holding an empty collection, if it
// does not exist yet. Missing parent directories are created. An existing file
// is left untouched. Reports whether a new file was created.
func EnsureFile(path string) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create data directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fileMode)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("create data file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write([]byte("[]\n")); err != nil {
		return false, fmt.Errorf("write data file: %w", err)
	}
	return true, nil
}
