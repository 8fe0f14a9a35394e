package domain

import "time"

// Item is a single catalog record as persisted by the item store.
type Item struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// ItemInput is a validated, normalized item payload that has not yet been
// assigned an ID. It is produced by ValidateItemPayload.
type ItemInput struct {
	Name     string  `json:"name"     validate:"required"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price"    validate:"gte=0"`
}

// NewItem builds an Item from validated input, assigning its ID from the
// creation time in milliseconds.
//
// IDs are only as unique as the clock: two items created within the same
// millisecond receive the same ID.
func NewItem(input ItemInput, createdAt time.Time) Item {
	return Item{
		ID:       createdAt.UnixMilli(),
		Name:     input.Name,
		Category: input.Category,
		Price:    input.Price,
	}
}

// FindItem returns the first item with the given ID.
func FindItem(items []Item, id int64) (Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}
