package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/store"
)

// fakeItemStore is an in-memory store.ItemStore that counts calls and can
// hold Load open until the test releases it.
type fakeItemStore struct {
	mu           sync.Mutex
	items        []domain.Item
	token        store.FreshnessToken
	loadErr      error
	lastModErr   error
	loadCalls    int
	lastModCalls int

	// gate, when non-nil, blocks Load until closed.
	gate chan struct{}
	// loadStarted receives a value each time Load is entered.
	loadStarted chan struct{}
}

var _ store.ItemStore = (*fakeItemStore)(nil)

func newFakeItemStore(items ...domain.Item) *fakeItemStore {
	return &fakeItemStore{
		items:       items,
		token:       store.FreshnessToken{ModTime: time.Unix(1700000000, 0), Size: 100},
		loadStarted: make(chan struct{}, 64),
	}
}

func (f *fakeItemStore) Load(ctx context.Context) ([]domain.Item, error) {
	f.mu.Lock()
	f.loadCalls++
	gate := f.gate
	f.mu.Unlock()

	f.loadStarted <- struct{}{}
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := make([]domain.Item, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeItemStore) Append(ctx context.Context, item domain.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, item)
	f.token = store.FreshnessToken{ModTime: f.token.ModTime.Add(time.Second), Size: f.token.Size + 50}
	return nil
}

func (f *fakeItemStore) LastModified(ctx context.Context) (store.FreshnessToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastModCalls++
	if f.lastModErr != nil {
		return store.FreshnessToken{}, f.lastModErr
	}
	return f.token, nil
}

// touch simulates an out-of-band edit of the backing file.
func (f *fakeItemStore) touch(items ...domain.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = items
	f.token = store.FreshnessToken{ModTime: f.token.ModTime.Add(time.Second), Size: f.token.Size + 1}
}

func (f *fakeItemStore) setGate(gate chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gate = gate
}

func (f *fakeItemStore) setLoadErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadErr = err
}

func (f *fakeItemStore) loads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loadCalls
}

func (f *fakeItemStore) lastModifiedCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastModCalls
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
