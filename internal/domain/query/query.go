package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/phrazzld/catalog-api/internal/domain"
)

const (
	// DefaultPage is served when no valid page is requested.
	DefaultPage = 1
	// DefaultLimit is the page size used when no valid limit is requested.
	DefaultLimit = 10
	// MaxLimit caps the page size regardless of the request.
	MaxLimit = 100
)

// Params are the caller-supplied list parameters before normalization.
type Params struct {
	Q     string
	Page  int
	Limit int
}

// Pagination describes the page actually served.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Result is one page of a filtered collection.
type Result struct {
	Items      []domain.Item `json:"items"`
	Pagination Pagination    `json:"pagination"`
}

// ParseParams reads q, page and limit from URL query values.
// Missing, non-integer or non-positive numbers fall back to the defaults.
func ParseParams(values url.Values) Params {
	return Params{
		Q:     values.Get("q"),
		Page:  parsePositiveInt(values.Get("page"), DefaultPage),
		Limit: parsePositiveInt(values.Get("limit"), DefaultLimit),
	}
}

func parsePositiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Normalize coerces page and limit into their valid ranges and trims q.
func (p Params) Normalize() Params {
	page := p.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := p.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{
		Q:     strings.TrimSpace(p.Q),
		Page:  page,
		Limit: limit,
	}
}

// Apply filters items by p.Q and returns the requested page.
// The input slice is never modified and item order is preserved.
func Apply(items []domain.Item, p Params) Result {
	p = p.Normalize()

	filtered := Filter(items, p.Q)
	total := len(filtered)

	totalPages := TotalPages(total, p.Limit)
	page := p.Page
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * p.Limit
	end := start + p.Limit
	if end > total {
		end = total
	}

	out := make([]domain.Item, 0, end-start)
	out = append(out, filtered[start:end]...)

	return Result{
		Items: out,
		Pagination: Pagination{
			Page:       page,
			Limit:      p.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}

// Filter keeps the items whose name or category contains q, ignoring case.
// A blank q keeps everything.
func Filter(items []domain.Item, q string) []domain.Item {
	needle := strings.ToLower(strings.TrimSpace(q))
	if needle == "" {
		return items
	}

	matched := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), needle) ||
			strings.Contains(strings.ToLower(it.Category), needle) {
			matched = append(matched, it)
		}
	}
	return matched
}

// TotalPages returns max(1, ceil(total/limit)). limit must be positive.
func TotalPages(total, limit int) int {
	pages := (total + limit - 1) / limit
	if pages < 1 {
		return 1
	}
	return pages
}
