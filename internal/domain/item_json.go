package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// UnmarshalJSON decodes a persisted item. The price is read leniently so a
// single hand-edited record cannot make the whole collection unreadable:
// numbers and numeric strings are kept, booleans count as 1 or 0, and
// anything missing, unparseable or non-finite becomes 0.
func (it *Item) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var doc struct {
		ID       int64           `json:"id"`
		Name     string          `json:"name"`
		Category string          `json:"category"`
		Price    json.RawMessage `json:"price"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	*it = Item{
		ID:       doc.ID,
		Name:     doc.Name,
		Category: doc.Category,
		Price:    lenientPrice(doc.Price),
	}
	return nil
}

func lenientPrice(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return 0
	}

	var price float64
	switch x := v.(type) {
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0
		}
		price = f
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		price = f
	case bool:
		if x {
			price = 1
		}
	default:
		return 0
	}

	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0
	}
	return price
}
