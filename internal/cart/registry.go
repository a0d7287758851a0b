package cart

import (
	"sync"

	"github.com/comanda-pos/api/internal/catalog"
)

// Registry hands out carts keyed by table/session ID. Each cart has a
// single owner (one terminal per table), but the map itself is shared by
// all HTTP handlers, so access to it is guarded.
type Registry struct {
	mu         sync.RWMutex
	catalog    *catalog.Catalog
	carts      map[string]*Cart
	prepBuffer int
}

// NewRegistry creates an empty registry backed by the given catalog.
func NewRegistry(cat *catalog.Catalog, prepBufferMinutes int) *Registry {
	return &Registry{
		catalog:    cat,
		carts:      make(map[string]*Cart),
		prepBuffer: prepBufferMinutes,
	}
}

// Get returns the cart for a session, creating an empty one on first use.
func (r *Registry) Get(sessionID string) *Cart {
	r.mu.RLock()
	c, ok := r.carts[sessionID]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.carts[sessionID]; ok {
		return c
	}
	c = NewWithPrepBuffer(r.catalog, r.prepBuffer)
	r.carts[sessionID] = c
	return c
}

// Drop removes a session's cart, typically after a successful submission.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	delete(r.carts, sessionID)
	r.mu.Unlock()
}
