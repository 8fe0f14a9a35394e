package domain

import "math"

// Stats holds aggregate statistics over the whole item collection.
type Stats struct {
	Total        int     `json:"total"`
	AveragePrice float64 `json:"averagePrice"`
}

// ComputeStats counts the items and averages their prices.
// Non-finite prices count as 0 rather than failing the whole computation,
// and an empty collection averages to 0.
func ComputeStats(items []Item) Stats {
	if len(items) == 0 {
		return Stats{}
	}

	var sum float64
	for _, it := range items {
		if math.IsNaN(it.Price) || math.IsInf(it.Price, 0) {
			continue
		}
		sum += it.Price
	}

	return Stats{
		Total:        len(items),
		AveragePrice: sum / float64(len(items)),
	}
}
