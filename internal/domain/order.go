package domain

import "encoding/json"

// OrderItem is the wire form of a cart line, frozen at submission time.
type OrderItem struct {
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

// Order mirrors a server-owned order. The requester arrives in two shapes
// depending on the endpoint (flat user_email or nested user object); both
// are folded into UserEmail on receipt so nothing downstream branches on
// shape again.
type Order struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"user_id"`
	UserEmail string      `json:"user_email,omitempty"`
	Status    Status      `json:"status"`
	Items     []OrderItem `json:"items"`
}

func (o *Order) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        int64       `json:"id"`
		UserID    int64       `json:"user_id"`
		UserEmail string      `json:"user_email"`
		User      *User       `json:"user"`
		Status    Status      `json:"status"`
		Items     []OrderItem `json:"items"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	o.ID = raw.ID
	o.UserID = raw.UserID
	o.UserEmail = raw.UserEmail
	o.Status = raw.Status
	o.Items = raw.Items

	if o.UserEmail == "" && raw.User != nil {
		o.UserEmail = raw.User.Email
		if o.UserID == 0 {
			o.UserID = raw.User.ID
		}
	}
	return nil
}

// TotalQuantity sums the requested quantities across the order's items.
func (o Order) TotalQuantity() int {
	total := 0
	for _, it := range o.Items {
		total += it.Quantity
	}
	return total
}
