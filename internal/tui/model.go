// Package tui is the terminal catalog browser.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phrazzld/catalog-api/internal/client"
	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/domain/query"
)

// PageSizes are the per-page choices, cycled in order.
var PageSizes = []int{5, 10, 20, 50}

const defaultRequestTimeout = 10 * time.Second

// Catalog is the subset of the API client the browser needs.
type Catalog interface {
	ListItems(ctx context.Context, p client.ListParams) (query.Result, error)
	GetItem(ctx context.Context, id int64) (domain.Item, error)
	GetStats(ctx context.Context) (domain.Stats, error)
}

type itemsMsg struct {
	seq    int
	result query.Result
	err    error
}

type itemMsg struct {
	id   int64
	item domain.Item
	err  error
}

type statsMsg struct {
	stats domain.Stats
	err   error
}

// Model is the bubbletea model for the browser.
type Model struct {
	catalog Catalog
	ctx     context.Context
	timeout time.Duration

	keys    keyMap
	help    help.Model
	input   textinput.Model
	spinner spinner.Model

	searching bool
	query     string
	page      int
	sizeIdx   int

	// seq identifies the latest list request; older responses are dropped.
	seq        int
	loading    bool
	err        string
	items      []domain.Item
	pagination query.Pagination
	cursor     int

	stats    *domain.Stats
	statsErr string

	detail       bool
	detailID     int64
	detailItem   *domain.Item
	detailErr    string
	detailLoaded bool

	width int
}

// New builds the browser model. The first page is requested by Init.
func New(ctx context.Context, catalog Catalog) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search by typing..."
	ti.CharLimit = 200
	ti.Cursor.SetMode(cursor.CursorStatic)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle

	sizeIdx := 0
	for i, n := range PageSizes {
		if n == query.DefaultLimit {
			sizeIdx = i
		}
	}

	return Model{
		catalog: catalog,
		ctx:     ctx,
		timeout: defaultRequestTimeout,
		keys:    defaultKeyMap(),
		help:    help.New(),
		input:   ti,
		spinner: sp,
		page:    query.DefaultPage,
		sizeIdx: sizeIdx,
		seq:     1,
		loading: true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listCmd(), m.statsCmd())
}

func (m Model) limit() int {
	return PageSizes[m.sizeIdx]
}

func (m Model) listCmd() tea.Cmd {
	catalog, parent, timeout := m.catalog, m.ctx, m.timeout
	seq := m.seq
	params := client.ListParams{Q: m.query, Page: m.page, Limit: m.limit()}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		res, err := catalog.ListItems(ctx, params)
		return itemsMsg{seq: seq, result: res, err: err}
	}
}

func (m Model) statsCmd() tea.Cmd {
	catalog, parent, timeout := m.catalog, m.ctx, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		stats, err := catalog.GetStats(ctx)
		return statsMsg{stats: stats, err: err}
	}
}

func (m Model) itemCmd(id int64) tea.Cmd {
	catalog, parent, timeout := m.catalog, m.ctx, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		item, err := catalog.GetItem(ctx, id)
		return itemMsg{id: id, item: item, err: err}
	}
}

// reload starts a new list request, superseding any in flight.
func (m Model) reload() (Model, tea.Cmd) {
	wasLoading := m.loading
	m.seq++
	m.loading = true
	m.err = ""

	cmds := []tea.Cmd{m.listCmd()}
	if !wasLoading {
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case itemsMsg:
		return m.handleItems(msg), nil

	case statsMsg:
		if msg.err != nil {
			m.statsErr = msg.err.Error()
			return m, nil
		}
		stats := msg.stats
		m.stats = &stats
		m.statsErr = ""
		return m, nil

	case itemMsg:
		if !m.detail || msg.id != m.detailID {
			return m, nil
		}
		m.detailLoaded = true
		if msg.err != nil {
			if errors.Is(msg.err, client.ErrNotFound) {
				m.detailErr = "Item not found"
			} else {
				m.detailErr = msg.err.Error()
			}
			return m, nil
		}
		item := msg.item
		m.detailItem = &item
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !(m.detail && !m.detailLoaded) {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		if m.detail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) handleItems(msg itemsMsg) Model {
	if msg.seq != m.seq {
		return m
	}
	m.loading = false
	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return m
		}
		m.err = msg.err.Error()
		m.items = nil
		m.cursor = 0
		return m
	}

	m.err = ""
	m.items = msg.result.Items
	m.pagination = msg.result.Pagination
	if m.pagination.Page > 0 {
		m.page = m.pagination.Page
	}
	if m.cursor >= len(m.items) {
		m.cursor = max(len(m.items)-1, 0)
	}
	return m
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.input.Blur()
		m.query = strings.TrimSpace(m.input.Value())
		m.page = 1
		m.cursor = 0
		return m.reload()
	case tea.KeyEsc:
		m.searching = false
		m.input.Blur()
		m.input.SetValue(m.query)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Open):
		m.detail = false
		m.detailItem = nil
		m.detailErr = ""
		m.detailLoaded = false
	}
	return m, nil
}

func (m Model) canPrev() bool {
	return !m.loading && m.pagination.Page > 1
}

func (m Model) canNext() bool {
	return !m.loading && m.pagination.Page < m.pagination.TotalPages
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Clear):
		m.input.SetValue("")
		m.query = ""
		m.page = 1
		m.cursor = 0
		return m.reload()

	case key.Matches(msg, m.keys.PerPage):
		m.sizeIdx = (m.sizeIdx + 1) % len(PageSizes)
		m.page = 1
		m.cursor = 0
		return m.reload()

	case key.Matches(msg, m.keys.Prev):
		if !m.canPrev() {
			return m, nil
		}
		m.page = m.pagination.Page - 1
		m.cursor = 0
		return m.reload()

	case key.Matches(msg, m.keys.Next):
		if !m.canNext() {
			return m, nil
		}
		m.page = m.pagination.Page + 1
		m.cursor = 0
		return m.reload()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if len(m.items) == 0 || m.err != "" {
			return m, nil
		}
		selected := m.items[m.cursor]
		m.detail = true
		m.detailID = selected.ID
		m.detailItem = nil
		m.detailErr = ""
		m.detailLoaded = false
		return m, tea.Batch(m.itemCmd(selected.ID), m.spinner.Tick)

	case key.Matches(msg, m.keys.Refresh):
		var cmd tea.Cmd
		m, cmd = m.reload()
		return m, tea.Batch(cmd, m.statsCmd())

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Catalog"))
	b.WriteString("   ")
	b.WriteString(m.statsLine())
	b.WriteString("\n\n")

	if m.detail {
		b.WriteString(m.detailView())
	} else {
		b.WriteString(m.listView())
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return panelStyle.Render(b.String())
}

func (m Model) statsLine() string {
	switch {
	case m.statsErr != "":
		return errorStyle.Render(m.statsErr)
	case m.stats == nil:
		return mutedStyle.Render("stats loading")
	default:
		return fmt.Sprintf("%s %d  %s %s",
			labelStyle.Render("Items"), m.stats.Total,
			labelStyle.Render("Avg price"), formatPrice(m.stats.AveragePrice))
	}
}

func (m Model) listView() string {
	var b strings.Builder

	if m.searching || m.input.Value() != "" {
		b.WriteString(m.input.View())
	} else {
		b.WriteString(mutedStyle.Render("press / to search"))
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("   Per page: %d", m.limit())))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " Loading...")
	case m.err != "":
		b.WriteString(errorStyle.Render(m.err))
	case len(m.items) == 0:
		b.WriteString(mutedStyle.Render("No items found."))
	default:
		lines := make([]string, 0, len(m.items))
		for i, it := range m.items {
			if i == m.cursor {
				lines = append(lines, selectedStyle.Render("> "+it.Name))
				continue
			}
			lines = append(lines, "  "+it.Name)
		}
		b.WriteString(strings.Join(lines, "\n"))
	}

	b.WriteString("\n\n")
	b.WriteString(m.pagerLine())
	return b.String()
}

func (m Model) pagerLine() string {
	prev, next := "‹ prev", "next ›"
	if !m.canPrev() {
		prev = mutedStyle.Render(prev)
	}
	if !m.canNext() {
		next = mutedStyle.Render(next)
	}
	page := m.pagination.Page
	if page == 0 {
		page = m.page
	}
	return fmt.Sprintf("%s  Page %d of %d (%d total)  %s",
		prev, page, m.pagination.TotalPages, m.pagination.Total, next)
}

func (m Model) detailView() string {
	switch {
	case !m.detailLoaded:
		return m.spinner.View() + " Loading..."
	case m.detailErr != "":
		return errorStyle.Render(m.detailErr)
	case m.detailItem == nil:
		return ""
	}

	it := m.detailItem
	rows := []string{
		titleStyle.Render(it.Name),
		labelStyle.Render("Category") + "  " + it.Category,
		labelStyle.Render("Price") + "     " + formatPrice(it.Price),
		labelStyle.Render("ID") + "        " + mutedStyle.Render(fmt.Sprintf("%d", it.ID)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func formatPrice(p float64) string {
	return fmt.Sprintf("$%.2f", p)
}
