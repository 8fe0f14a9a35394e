// Package client is a typed HTTP client for the catalog API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/phrazzld/catalog-api/internal/api/shared"
	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/domain/query"
)

// DefaultTimeout bounds each request when no *http.Client is supplied.
const DefaultTimeout = 10 * time.Second

// ErrNotFound is matched by errors returned for 404 responses.
var ErrNotFound = errors.New("not found")

// APIError is returned for any non-2xx response.
type APIError struct {
	// Op is the user-facing description of the failed operation.
	Op         string
	StatusCode int
	// Message is the server-provided error text, if any.
	Message string
	TraceID string
}

// Error renders as "<Op> (<status>)".
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d)", e.Op, e.StatusCode)
}

// Is reports ErrNotFound for 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// ListParams selects one page of items. Zero Page or Limit are omitted and
// the server defaults apply.
type ListParams struct {
	Q     string
	Page  int
	Limit int
}

// Client talks to a catalog API server.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL must be http or https, got %q", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "catalog_client")
	return c, nil
}

// ListItems fetches one page of items. A blank Q is not sent.
func (c *Client) ListItems(ctx context.Context, p ListParams) (query.Result, error) {
	values := url.Values{}
	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}
	if q := strings.TrimSpace(p.Q); q != "" {
		values.Set("q", q)
	}

	var result query.Result
	if err := c.do(ctx, http.MethodGet, "/api/items", values, nil, http.StatusOK, "Failed to fetch items", &result); err != nil {
		return query.Result{}, err
	}
	if result.Items == nil {
		result.Items = []domain.Item{}
	}
	return result, nil
}

// GetItem fetches one item. Unknown IDs return an error matching ErrNotFound.
func (c *Client) GetItem(ctx context.Context, id int64) (domain.Item, error) {
	var item domain.Item
	path := "/api/items/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, http.StatusOK, "Failed to fetch item", &item); err != nil {
		return domain.Item{}, err
	}
	return item, nil
}

// CreateItem submits a new item and returns it with its assigned ID.
// Rejected input returns an *APIError with StatusCode 400 and the reason in Message.
func (c *Client) CreateItem(ctx context.Context, input domain.ItemInput) (domain.Item, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return domain.Item{}, fmt.Errorf("encode item: %w", err)
	}

	var item domain.Item
	if err := c.do(ctx, http.MethodPost, "/api/items", nil, body, http.StatusCreated, "Failed to create item", &item); err != nil {
		return domain.Item{}, err
	}
	return item, nil
}

// GetStats fetches collection statistics.
func (c *Client) GetStats(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, nil, http.StatusOK, "Failed to fetch stats", &stats); err != nil {
		return domain.Stats{}, err
	}
	return stats, nil
}

func (c *Client) do(
	ctx context.Context,
	method, path string,
	values url.Values,
	body []byte,
	wantStatus int,
	op string,
	out interface{},
) error {
	u := c.baseURL.JoinPath(path)
	if len(values) > 0 {
		u.RawQuery = values.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		apiErr := &APIError{Op: op, StatusCode: resp.StatusCode}
		var errBody shared.ErrorResponse
		if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&errBody); err == nil {
			apiErr.Message = errBody.Error
			apiErr.TraceID = errBody.TraceID
		}
		c.logger.Debug("request failed",
			"method", method,
			"path", path,
			"status_code", resp.StatusCode,
			"trace_id", apiErr.TraceID)
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
