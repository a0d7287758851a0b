package order

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/comanda-pos/api/internal/cart"
	"github.com/comanda-pos/api/internal/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultDelayBufferMinutes is the grace period past an order's estimate
// before the kitchen board flags it as delayed.
const DefaultDelayBufferMinutes = 5

// Errors returned by the tracker.
var (
	ErrEmptyCart         = errors.New("cart has no items")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrIllegalTransition = errors.New("illegal status transition")
)

// Line is an order line captured by value at submission time. Catalog price
// changes after submission never touch it.
type Line struct {
	CatalogID uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Note      string
}

// Order is an immutable snapshot of a submitted cart plus its lifecycle
// state. Only the tracker mutates status fields.
type Order struct {
	ID                   uuid.UUID
	OrderNumber          string
	Table                string
	StaffID              uuid.UUID
	Lines                []Line
	Subtotal             decimal.Decimal
	TaxAmount            decimal.Decimal
	TotalAmount          decimal.Decimal
	EstimatedTimeMinutes int
	Status               string
	SubmittedAt          time.Time
	StatusChangedAt      time.Time
	PreparingSince       time.Time
	DeliveredAt          time.Time
}

// StatusListener is notified after every successful status change,
// including the initial PENDING on submission (from is empty then).
type StatusListener func(orderID uuid.UUID, from, to string)

// allowedTransitions defines valid status transitions.
// Key is current status, value is the set of statuses it can transition to.
// DELIVERED is terminal; PREPARING may drop back to PENDING when the
// kitchen pauses a ticket.
var allowedTransitions = map[string][]string{
	enum.OrderStatusPending:   {enum.OrderStatusPreparing},
	enum.OrderStatusPreparing: {enum.OrderStatusPending, enum.OrderStatusReady},
	enum.OrderStatusReady:     {enum.OrderStatusDelivered},
}

// Tracker owns the canonical status of every submitted order. Mutations are
// serialized under a single lock so two terminals cannot apply conflicting
// transitions to the same order; reads work on copies.
type Tracker struct {
	mu          sync.RWMutex
	orders      map[uuid.UUID]*Order
	submitted   []uuid.UUID
	nextNumber  int
	taxRate     decimal.Decimal
	delayBuffer time.Duration
	listeners   []StatusListener
	now         func() time.Time
}

// NewTracker creates an empty tracker. taxRate and delayBufferMinutes come
// from configuration.
func NewTracker(taxRate decimal.Decimal, delayBufferMinutes int) *Tracker {
	return &Tracker{
		orders:      make(map[uuid.UUID]*Order),
		nextNumber:  1,
		taxRate:     taxRate,
		delayBuffer: time.Duration(delayBufferMinutes) * time.Minute,
		now:         time.Now,
	}
}

// OnStatusChanged registers a listener for status changes. Listeners run
// synchronously after the state change has been applied; they must not call
// back into mutating tracker methods.
func (t *Tracker) OnStatusChanged(fn StatusListener) {
	t.mu.Lock()
	t.listeners = append(t.listeners, fn)
	t.mu.Unlock()
}

// Submit converts a non-empty cart into a new PENDING order. Lines, prices,
// and the estimated time are captured by value at this instant; the caller
// is expected to clear or drop the cart afterwards.
func (t *Tracker) Submit(c *cart.Cart, table string, staffID uuid.UUID) (Order, error) {
	if c.IsEmpty() {
		return Order{}, ErrEmptyCart
	}

	cartLines := c.Lines()
	lines := make([]Line, 0, len(cartLines))
	subtotal := decimal.Zero
	for _, l := range cartLines {
		unitPrice := c.UnitPrice(l.CatalogID)
		lines = append(lines, Line{
			CatalogID: l.CatalogID,
			Name:      l.Name,
			UnitPrice: unitPrice,
			Quantity:  l.Quantity,
			Note:      l.Note,
		})
		subtotal = subtotal.Add(unitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	tax := subtotal.Mul(t.taxRate)
	estimated := c.EstimatedTime()

	t.mu.Lock()
	now := t.now()
	o := &Order{
		ID:                   uuid.New(),
		OrderNumber:          fmt.Sprintf("CMD-%03d", t.nextNumber),
		Table:                table,
		StaffID:              staffID,
		Lines:                lines,
		Subtotal:             subtotal,
		TaxAmount:            tax,
		TotalAmount:          subtotal.Add(tax),
		EstimatedTimeMinutes: estimated,
		Status:               enum.OrderStatusPending,
		SubmittedAt:          now,
		StatusChangedAt:      now,
	}
	t.nextNumber++
	t.orders[o.ID] = o
	t.submitted = append(t.submitted, o.ID)
	snapshot := copyOrder(o)
	listeners := t.snapshotListeners()
	t.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot.ID, "", enum.OrderStatusPending)
	}
	return snapshot, nil
}

// Get returns a copy of the order with the given ID.
func (t *Tracker) Get(id uuid.UUID) (Order, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	o, ok := t.orders[id]
	if !ok {
		return Order{}, ErrOrderNotFound
	}
	return copyOrder(o), nil
}

// UpdateStatus applies one edge of the lifecycle. Illegal edges are
// rejected before any mutation, leaving the order exactly as it was.
func (t *Tracker) UpdateStatus(id uuid.UUID, next string) (Order, error) {
	if !ValidStatus(next) {
		return Order{}, ErrInvalidStatus
	}

	t.mu.Lock()
	o, ok := t.orders[id]
	if !ok {
		t.mu.Unlock()
		return Order{}, ErrOrderNotFound
	}
	from := o.Status
	if !transitionAllowed(from, next) {
		t.mu.Unlock()
		return Order{}, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, next)
	}

	now := t.now()
	o.Status = next
	o.StatusChangedAt = now
	switch next {
	case enum.OrderStatusPreparing:
		o.PreparingSince = now
	case enum.OrderStatusDelivered:
		o.DeliveredAt = now
	}
	snapshot := copyOrder(o)
	listeners := t.snapshotListeners()
	t.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot.ID, from, next)
	}
	return snapshot, nil
}

// ListByStatus returns copies of all orders in the given status, ordered by
// submission time ascending.
func (t *Tracker) ListByStatus(status string) []Order {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []Order
	for _, id := range t.submitted {
		if o := t.orders[id]; o.Status == status {
			out = append(out, copyOrder(o))
		}
	}
	return out
}

// List returns copies of all orders, ordered by submission time ascending.
func (t *Tracker) List() []Order {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Order, 0, len(t.submitted))
	for _, id := range t.submitted {
		out = append(out, copyOrder(t.orders[id]))
	}
	return out
}

// IsDelayed reports whether an order in PREPARING has been cooking longer
// than its estimate plus the delay buffer. It drives urgency display only
// and never changes the state machine; orders in any other status are
// never delayed.
func (t *Tracker) IsDelayed(o Order, now time.Time) bool {
	if o.Status != enum.OrderStatusPreparing {
		return false
	}
	limit := time.Duration(o.EstimatedTimeMinutes)*time.Minute + t.delayBuffer
	return now.Sub(o.PreparingSince) > limit
}

// AverageCompletionTime returns the mean submission-to-delivery duration
// over all delivered orders, or zero when none have been delivered.
func (t *Tracker) AverageCompletionTime() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var total time.Duration
	var count int
	for _, o := range t.orders {
		if o.Status == enum.OrderStatusDelivered {
			total += o.DeliveredAt.Sub(o.SubmittedAt)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / time.Duration(count)
}

// ValidStatus reports whether s names a known order status.
func ValidStatus(s string) bool {
	switch s {
	case enum.OrderStatusPending, enum.OrderStatusPreparing,
		enum.OrderStatusReady, enum.OrderStatusDelivered:
		return true
	}
	return false
}

func transitionAllowed(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// snapshotListeners must be called with t.mu held.
func (t *Tracker) snapshotListeners() []StatusListener {
	out := make([]StatusListener, len(t.listeners))
	copy(out, t.listeners)
	return out
}

func copyOrder(o *Order) Order {
	cp := *o
	cp.Lines = make([]Line, len(o.Lines))
	copy(cp.Lines, o.Lines)
	return cp
}
