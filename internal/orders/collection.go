package orders

import (
	"sync"

	"github.com/Weryck-Lemos/ElectroStock/internal/domain"
)

// Collection mirrors the server's order list. Fetches replace the whole
// mirror (the most recently completed fetch wins), transitions replace one
// entry with the server's projection. It never merges fields.
type Collection struct {
	mu       sync.RWMutex
	orders   []domain.Order
	inFlight map[int64]bool
}

func NewCollection() *Collection {
	return &Collection{
		inFlight: make(map[int64]bool),
	}
}

// Replace swaps the entire mirror. No incremental merge; a raced fetch is
// harmless because each call installs a complete collection.
func (c *Collection) Replace(orders []domain.Order) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orders = make([]domain.Order, len(orders))
	copy(c.orders, orders)
}

// All returns a copy of the mirrored orders.
func (c *Collection) All() []domain.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Order, len(c.orders))
	copy(out, c.orders)
	return out
}

func (c *Collection) Get(orderID int64) (domain.Order, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, o := range c.orders {
		if o.ID == orderID {
			return o, true
		}
	}
	return domain.Order{}, false
}

// reconcile replaces the entry matching updated.ID. Unknown IDs are ignored;
// the next full fetch will pick them up.
func (c *Collection) reconcile(updated domain.Order) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.orders {
		if c.orders[i].ID == updated.ID {
			c.orders[i] = updated
			return
		}
	}
}

func (c *Collection) remove(orderID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.orders {
		if c.orders[i].ID == orderID {
			c.orders = append(c.orders[:i], c.orders[i+1:]...)
			return
		}
	}
}

// begin marks orderID as having a transition in flight. Returns false when
// one is already outstanding, which disables the action client-side. This is
// a soft guard; the server's own status check is the authoritative one.
func (c *Collection) begin(orderID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight[orderID] {
		return false
	}
	c.inFlight[orderID] = true
	return true
}

func (c *Collection) end(orderID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, orderID)
}
