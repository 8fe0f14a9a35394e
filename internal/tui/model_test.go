package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/catalog-api/internal/client"
	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/domain/query"
)

type fakeCatalog struct {
	mu      sync.Mutex
	items   []domain.Item
	listErr error
	stats   domain.Stats
	calls   []client.ListParams
}

func (f *fakeCatalog) ListItems(_ context.Context, p client.ListParams) (query.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, p)
	if f.listErr != nil {
		return query.Result{}, f.listErr
	}
	return query.Apply(f.items, query.Params{Q: p.Q, Page: p.Page, Limit: p.Limit}), nil
}

func (f *fakeCatalog) GetItem(_ context.Context, id int64) (domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.items {
		if it.ID == id {
			return it, nil
		}
	}
	return domain.Item{}, &client.APIError{Op: "Failed to fetch item", StatusCode: 404}
}

func (f *fakeCatalog) GetStats(context.Context) (domain.Stats, error) {
	return f.stats, nil
}

func (f *fakeCatalog) lastCall() client.ListParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func catalogItems(n int) []domain.Item {
	items := make([]domain.Item, n)
	for i := range items {
		items[i] = domain.Item{
			ID:       int64(i + 1),
			Name:     fmt.Sprintf("Item %02d", i+1),
			Category: "Misc",
			Price:    float64(i + 1),
		}
	}
	return items
}

// collect runs cmd and returns the messages it produces, expanding batches
// and skipping spinner ticks.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg := msg.(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	case spinner.TickMsg:
		return nil
	default:
		return []tea.Msg{msg}
	}
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

// settle feeds every message produced by cmd back into the model.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range collect(cmd) {
		m, _ = step(t, m, msg)
	}
	return m
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	switch k {
	case "enter":
		return step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	case "left":
		return step(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	case "right":
		return step(t, m, tea.KeyMsg{Type: tea.KeyRight})
	case "down":
		return step(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	return step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func started(t *testing.T, fc *fakeCatalog) Model {
	t.Helper()
	m := New(context.Background(), fc)
	return settle(t, m, m.Init())
}

func TestInit_LoadsFirstPageAndStats(t *testing.T) {
	fc := &fakeCatalog{items: catalogItems(23), stats: domain.Stats{Total: 23, AveragePrice: 12}}
	m := started(t, fc)

	assert.False(t, m.loading)
	assert.Len(t, m.items, 10)
	assert.Equal(t, query.Pagination{Page: 1, Limit: 10, Total: 23, TotalPages: 3}, m.pagination)
	require.NotNil(t, m.stats)
	assert.Equal(t, 23, m.stats.Total)

	view := m.View()
	assert.Contains(t, view, "Page 1 of 3 (23 total)")
	assert.Contains(t, view, "Item 01")
	assert.Contains(t, view, "$12.00")
}

func TestPaging(t *testing.T) {
	fc := &fakeCatalog{items: catalogItems(23)}
	m := started(t, fc)

	// prev is disabled on the first page
	m, cmd := press(t, m, "left")
	assert.Nil(t, cmd)

	m, cmd = press(t, m, "right")
	m = settle(t, m, cmd)
	assert.Equal(t, 2, fc.lastCall().Page)
	assert.Equal(t, 2, m.pagination.Page)

	m, cmd = press(t, m, "right")
	m = settle(t, m, cmd)
	assert.Equal(t, 3, m.pagination.Page)
	assert.Len(t, m.items, 3)

	// next is disabled on the last page
	_, cmd = press(t, m, "right")
	assert.Nil(t, cmd)

	m, cmd = press(t, m, "left")
	m = settle(t, m, cmd)
	assert.Equal(t, 2, m.pagination.Page)
}

func TestPagingDisabledWhileLoading(t *testing.T) {
	fc := &fakeCatalog{items: catalogItems(23)}
	m := started(t, fc)

	m, cmd := press(t, m, "right")
	require.NotNil(t, cmd)
	require.True(t, m.loading)

	_, cmd = press(t, m, "right")
	assert.Nil(t, cmd)
}

func TestSearchResetsToFirstPage(t *testing.T) {
	fc := &fakeCatalog{items: append(catalogItems(23), domain.Item{ID: 100, Name: "Laptop", Category: "Electronics"})}
	m := started(t, fc)

	m, cmd := press(t, m, "right")
	m = settle(t, m, cmd)
	require.Equal(t, 2, m.pagination.Page)

	m, _ = press(t, m, "/")
	require.True(t, m.searching)
	m = typeText(t, m, "  lap ")

	m, cmd = press(t, m, "enter")
	assert.False(t, m.searching)
	m = settle(t, m, cmd)

	call := fc.lastCall()
	assert.Equal(t, "lap", call.Q)
	assert.Equal(t, 1, call.Page)
	require.Len(t, m.items, 1)
	assert.Equal(t, "Laptop", m.items[0].Name)
	assert.Contains(t, m.View(), "Page 1 of 1 (1 total)")
}

func TestSearchEscapeKeepsQuery(t *testing.T) {
	fc := &fakeCatalog{items: catalogItems(3)}
	m := started(t, fc)
	calls := len(fc.calls)

	m, _ = press(t, m, "/")
	m = typeText(t, m, "abc")
	m, cmd := press(t, m, "esc")

	assert.Nil(t, cmd)
	assert.False(t, m.searching)
	assert.Empty(t, m.input.Value())
	assert.Len(t, fc.calls, calls)
}

func TestClearSearch(t *testing.T) {
	fc := &fakeCatalog{items: catalogItems(12)}
	m := started(t, fc)

	m, _ = press(t, m, "/")
	m = typeText(t, m, "Item 1")
	m, cmd := press(t, m, "enter")
	m = settle(t, m, cmd)
	require.Equal(t, 3, m.pagination.Total)

	m, cmd = press(t, m, "c")
	m = settle(t, m, cmd)
	assert.Empty(t, fc.lastCall().Q)
	assert.Equal(t, 12, m.pagination.Total)
	assert.Empty(t, m.input.Value())
}

func TestPerPageCyclesAndResetsPage(t *testing.T) {
	fc := &fakeCatalog{items: catalogItems(60)}
	m := started(t, fc)

	m, cmd := press(t, m, "right")
	m = settle(t, m, cmd)
	require.Equal(t, 2, m.pagination.Page)

	for _, want := range []int{20, 50, 5, 10} {
		m, cmd = press(t, m, "p")
		m = settle(t, m, cmd)
		call := fc.lastCall()
		assert.Equal(t, want, call.Limit)
		assert.Equal(t, 1, call.Page)
		assert.Equal(t, want, m.pagination.Limit)
	}
}

func TestStaleResponseDropped(t *testing.T) {
	fc := &fakeCatalog{items: catalogItems(23)}
	m := started(t, fc)

	// two overlapping requests; the first resolves last
	m, first := press(t, m, "right")
	firstMsgs := collect(first)
	m, second := press(t, m, "p")
	secondMsgs := collect(second)

	for _, msg := range secondMsgs {
		m, _ = step(t, m, msg)
	}
	for _, msg := range firstMsgs {
		m, _ = step(t, m, msg)
	}

	assert.Equal(t, 1, m.pagination.Page)
	assert.Equal(t, 20, m.pagination.Limit)
	assert.Len(t, m.items, 20)
}

func TestFetchError(t *testing.T) {
	fc := &fakeCatalog{listErr: &client.APIError{Op: "Failed to fetch items", StatusCode: 500}}
	m := started(t, fc)

	assert.Equal(t, "Failed to fetch items (500)", m.err)
	assert.Contains(t, m.View(), "Failed to fetch items (500)")
	assert.NotContains(t, m.View(), "No items found.")
}

func TestCanceledFetchIgnored(t *testing.T) {
	fc := &fakeCatalog{listErr: fmt.Errorf("Failed to fetch items: %w", context.Canceled)}
	m := started(t, fc)

	assert.Empty(t, m.err)
	assert.False(t, m.loading)
}

func TestEmptyAndLoadingStates(t *testing.T) {
	fc := &fakeCatalog{}
	m := New(context.Background(), fc)
	assert.Contains(t, m.View(), "Loading...")

	m = settle(t, m, m.Init())
	assert.Contains(t, m.View(), "No items found.")
}

func TestDetailView(t *testing.T) {
	fc := &fakeCatalog{items: []domain.Item{
		{ID: 1, Name: "Desk", Category: "Office", Price: 300},
		{ID: 2, Name: "Chair", Category: "Office", Price: 45.5},
	}}
	m := started(t, fc)

	m, _ = press(t, m, "down")
	assert.Equal(t, 1, m.cursor)

	m, cmd := press(t, m, "enter")
	require.True(t, m.detail)
	assert.Contains(t, m.View(), "Loading...")

	m = settle(t, m, cmd)
	view := m.View()
	assert.Contains(t, view, "Chair")
	assert.Contains(t, view, "$45.50")
	assert.Contains(t, view, "Office")

	m, _ = press(t, m, "esc")
	assert.False(t, m.detail)
	assert.True(t, strings.Contains(m.View(), "Page 1 of 1"))
}

func TestDetailNotFound(t *testing.T) {
	fc := &fakeCatalog{items: []domain.Item{{ID: 1, Name: "Desk", Category: "Office"}}}
	m := started(t, fc)

	m, cmd := press(t, m, "enter")
	msgs := collect(cmd)
	require.Len(t, msgs, 1)

	m, _ = step(t, m, itemMsg{id: 1, err: &client.APIError{Op: "Failed to fetch item", StatusCode: 404}})
	assert.Equal(t, "Item not found", m.detailErr)

	m, _ = step(t, m, itemMsg{id: 1, err: errors.New("boom")})
	assert.Equal(t, "boom", m.detailErr)
}

func TestQuit(t *testing.T) {
	m := started(t, &fakeCatalog{})

	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
