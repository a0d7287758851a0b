package cart

import (
	"errors"
	"fmt"

	"github.com/comanda-pos/api/internal/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultPrepBufferMinutes is added on top of the slowest dish's prep time.
// Stations work items in parallel, so the wait is bounded by the slowest
// dish, not the sum.
const DefaultPrepBufferMinutes = 5

// Errors returned by cart operations.
var (
	ErrItemNotFound    = errors.New("item not found in catalog")
	ErrItemUnavailable = errors.New("item is not available")
	ErrInvalidQuantity = errors.New("quantity must be >= 0")
	ErrLineNotFound    = errors.New("line item not found in cart")
)

// Line is one chosen catalog item with a quantity and an optional note
// for the kitchen ("no onions").
type Line struct {
	ID        uuid.UUID
	CatalogID uuid.UUID
	Name      string
	Quantity  int
	Note      string
}

// Cart accumulates and prices one pending order before submission. It is
// scoped to a single table/session and owned by a single writer, so it does
// its own bookkeeping without locking. Totals are always computed from the
// current catalog on read; nothing is cached.
type Cart struct {
	catalog    *catalog.Catalog
	lines      []Line
	prepBuffer int
}

// New creates an empty cart priced against the given catalog.
func New(cat *catalog.Catalog) *Cart {
	return &Cart{catalog: cat, prepBuffer: DefaultPrepBufferMinutes}
}

// NewWithPrepBuffer creates an empty cart with a custom prep-time buffer.
func NewWithPrepBuffer(cat *catalog.Catalog, bufferMinutes int) *Cart {
	return &Cart{catalog: cat, prepBuffer: bufferMinutes}
}

// AddItem adds one unit of a catalog item. Adding the same item again with
// no note bumps the existing note-less line's quantity instead of appending
// a duplicate row; a note always gets its own line.
func (c *Cart) AddItem(catalogID uuid.UUID, note string) (Line, error) {
	it, err := c.catalog.Lookup(catalogID)
	if err != nil {
		return Line{}, ErrItemNotFound
	}
	if !it.Available {
		return Line{}, fmt.Errorf("%s: %w", it.Name, ErrItemUnavailable)
	}

	if note == "" {
		for i := range c.lines {
			if c.lines[i].CatalogID == catalogID && c.lines[i].Note == "" {
				c.lines[i].Quantity++
				return c.lines[i], nil
			}
		}
	}

	line := Line{
		ID:        uuid.New(),
		CatalogID: catalogID,
		Name:      it.Name,
		Quantity:  1,
		Note:      note,
	}
	c.lines = append(c.lines, line)
	return line, nil
}

// SetQuantity sets a line's quantity. Zero removes the line; negative
// values are rejected before any mutation.
func (c *Cart) SetQuantity(lineID uuid.UUID, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			if quantity == 0 {
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
				return nil
			}
			c.lines[i].Quantity = quantity
			return nil
		}
	}
	return ErrLineNotFound
}

// RemoveItem removes a line unconditionally. Removing an absent line is a
// no-op, so callers can retry safely.
func (c *Cart) RemoveItem(lineID uuid.UUID) {
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the cart's lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Subtotal sums unit price × quantity over all lines, using current catalog
// prices. Pre-submission carts track live prices; snapshots only happen at
// order submission.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		it, err := c.catalog.Lookup(l.CatalogID)
		if err != nil {
			continue
		}
		sum = sum.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}

// UnitPrice returns the current catalog price for an item, or zero when
// the item is no longer in the catalog.
func (c *Cart) UnitPrice(catalogID uuid.UUID) decimal.Decimal {
	it, err := c.catalog.Lookup(catalogID)
	if err != nil {
		return decimal.Zero
	}
	return it.UnitPrice
}

// EstimatedTime returns the maximum prep time over the distinct items in
// the cart plus the prep buffer, in minutes. An empty cart estimates 0.
func (c *Cart) EstimatedTime() int {
	if len(c.lines) == 0 {
		return 0
	}
	max := 0
	for _, l := range c.lines {
		it, err := c.catalog.Lookup(l.CatalogID)
		if err != nil {
			continue
		}
		if it.PrepTimeMinutes > max {
			max = it.PrepTimeMinutes
		}
	}
	return max + c.prepBuffer
}

// Total returns subtotal × (1 + taxRate). The rate comes from the caller's
// configuration; the cart never bakes one in.
func (c *Cart) Total(taxRate decimal.Decimal) decimal.Decimal {
	return c.Subtotal().Mul(decimal.NewFromInt(1).Add(taxRate))
}

// Tax returns the tax portion of the total at the given rate.
func (c *Cart) Tax(taxRate decimal.Decimal) decimal.Decimal {
	return c.Subtotal().Mul(taxRate)
}
