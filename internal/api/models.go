package api

import (
	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/domain/query"
)

// ItemResponse represents an item in API responses.
type ItemResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// PaginationResponse describes the page actually served.
type PaginationResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ListItemsResponse is the body of GET /api/items.
type ListItemsResponse struct {
	Items      []ItemResponse     `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}

// StatsResponse is the body of GET /api/stats.
type StatsResponse struct {
	Total        int     `json:"total"`
	AveragePrice float64 `json:"averagePrice"`
}

func itemToResponse(item domain.Item) ItemResponse {
	return ItemResponse{
		ID:       item.ID,
		Name:     item.Name,
		Category: item.Category,
		Price:    item.Price,
	}
}

// resultToResponse converts a query result. Items is never nil so an empty
// page serializes as [].
func resultToResponse(result query.Result) ListItemsResponse {
	items := make([]ItemResponse, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, itemToResponse(item))
	}
	return ListItemsResponse{
		Items: items,
		Pagination: PaginationResponse{
			Page:       result.Pagination.Page,
			Limit:      result.Pagination.Limit,
			Total:      result.Pagination.Total,
			TotalPages: result.Pagination.TotalPages,
		},
	}
}

func statsToResponse(stats domain.Stats) StatsResponse {
	return StatsResponse{
		Total:        stats.Total,
		AveragePrice: stats.AveragePrice,
	}
}
