package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Errors returned by catalog lookups.
var (
	ErrItemNotFound = errors.New("catalog item not found")
)

// Item is a sellable product: price, prep time, and whether the kitchen
// can currently make it.
type Item struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	PrepTimeMinutes int             `json:"prep_time_minutes"`
	Available       bool            `json:"available"`
}

// Catalog is the read-only menu for one service session. It is loaded once
// at startup and never mutated, so lookups need no locking.
type Catalog struct {
	items map[uuid.UUID]Item
	order []uuid.UUID
}

// New builds a Catalog from a slice of items. Insertion order is preserved
// for listing.
func New(items []Item) *Catalog {
	c := &Catalog{items: make(map[uuid.UUID]Item, len(items))}
	for _, it := range items {
		if _, ok := c.items[it.ID]; ok {
			continue
		}
		c.items[it.ID] = it
		c.order = append(c.order, it.ID)
	}
	return c
}

// Load reads a JSON menu file and builds a Catalog from it.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu file: %w", err)
	}
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse menu file: %w", err)
	}
	return New(items), nil
}

// Lookup returns the item with the given ID or ErrItemNotFound.
func (c *Catalog) Lookup(id uuid.UUID) (Item, error) {
	it, ok := c.items[id]
	if !ok {
		return Item{}, ErrItemNotFound
	}
	return it, nil
}

// List returns all items in menu order.
func (c *Catalog) List() []Item {
	out := make([]Item, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// ListByCategory returns items in the given category, in menu order.
func (c *Catalog) ListByCategory(category string) []Item {
	var out []Item
	for _, id := range c.order {
		if it := c.items[id]; it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

// ListAvailable returns only items the kitchen can currently make.
func (c *Catalog) ListAvailable() []Item {
	var out []Item
	for _, id := range c.order {
		if it := c.items[id]; it.Available {
			out = append(out, it)
		}
	}
	return out
}

// Len returns the number of items in the catalog.
func (c *Catalog) Len() int {
	return len(c.items)
}
