package cart

import (
	"encoding/json"
	"errors"

	"github.com/Weryck-Lemos/ElectroStock/internal/domain"
)

var ErrEmptyCart = errors.New("cart is empty, nothing to submit")

// Line pairs one catalog item with the quantity requested so far.
type Line struct {
	Item     domain.Item `json:"item"`
	Quantity int         `json:"quantity"`
}

// Cart collects the lines of an order before submission. At most one line
// exists per item; lines keep insertion order so the submitted payload
// matches what the user saw. Stock is never enforced here.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// Add puts item in the cart with quantity 1, or bumps the existing line.
func (c *Cart) Add(item domain.Item) {
	for i := range c.lines {
		if c.lines[i].Item.ID == item.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: 1})
}

// SetQuantity sets a line's quantity exactly. Zero or less removes the line.
func (c *Cart) SetQuantity(itemID int64, quantity int) {
	if quantity <= 0 {
		c.Remove(itemID)
		return
	}
	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// Remove drops the line for itemID. Removing an absent line is a no-op.
func (c *Cart) Remove(itemID int64) {
	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart wholesale, after a successful submission.
func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines returns a copy of the cart's lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// TotalQuantity sums the quantities across all lines.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// Payload produces the order submission, one {item_id, quantity} pair per
// line in insertion order. An empty cart refuses with ErrEmptyCart before
// any network call happens.
func (c *Cart) Payload() ([]domain.OrderItem, error) {
	if len(c.lines) == 0 {
		return nil, ErrEmptyCart
	}
	items := make([]domain.OrderItem, len(c.lines))
	for i, l := range c.lines {
		items[i] = domain.OrderItem{ItemID: l.Item.ID, Quantity: l.Quantity}
	}
	return items, nil
}

// MarshalJSON serializes the cart as its line slice so the session store can
// persist it.
func (c *Cart) MarshalJSON() ([]byte, error) {
	if c.lines == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.lines)
}

func (c *Cart) UnmarshalJSON(data []byte) error {
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	c.lines = lines
	return nil
}
