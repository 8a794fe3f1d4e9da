// Package orders bridges local cart/order state and the external order
// service: it submits carts, mirrors the order collection, and applies
// lifecycle transitions. Nothing here retries; every failure is handed back
// to the caller as-is.
package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/Weryck-Lemos/ElectroStock/internal/cart"
	"github.com/Weryck-Lemos/ElectroStock/internal/domain"
)

var (
	ErrIllegalTransition  = errors.New("order status does not permit this action")
	ErrTransitionInFlight = errors.New("another update for this order is still in flight")
	ErrNotPending         = errors.New("only pending orders can be cancelled")
)

// Gateway is the slice of the upstream API the sync layer needs.
type Gateway interface {
	CreateOrder(ctx context.Context, token string, items []domain.OrderItem) (domain.Order, error)
	MyOrders(ctx context.Context, token string) ([]domain.Order, error)
	AllOrders(ctx context.Context, token string) ([]domain.Order, error)
	Transition(ctx context.Context, token string, orderID int64, action domain.Action) (domain.Order, error)
	DeleteOrder(ctx context.Context, token string, orderID int64) error
}

type Service struct {
	gw   Gateway
	coll *Collection
}

func NewService(gw Gateway) *Service {
	return &Service{
		gw:   gw,
		coll: NewCollection(),
	}
}

// Orders returns the current mirror.
func (s *Service) Orders() []domain.Order {
	return s.coll.All()
}

// Get looks a single order up in the mirror.
func (s *Service) Get(orderID int64) (domain.Order, bool) {
	return s.coll.Get(orderID)
}

// Submit turns the cart into an order. An empty cart is refused locally and
// never reaches the network. On success the cart is cleared; on failure it
// is left untouched so the user can retry.
func (s *Service) Submit(ctx context.Context, token string, c *cart.Cart) (domain.Order, error) {
	payload, err := c.Payload()
	if err != nil {
		return domain.Order{}, err
	}

	order, err := s.gw.CreateOrder(ctx, token, payload)
	if err != nil {
		return domain.Order{}, err
	}

	c.Clear()
	return order, nil
}

// FetchMine retrieves the requesting user's orders and replaces the mirror
// wholesale.
func (s *Service) FetchMine(ctx context.Context, token string) ([]domain.Order, error) {
	orders, err := s.gw.MyOrders(ctx, token)
	if err != nil {
		return nil, err
	}
	s.coll.Replace(orders)
	return orders, nil
}

// FetchAll retrieves every order (admin scope) and replaces the mirror
// wholesale.
func (s *Service) FetchAll(ctx context.Context, token string) ([]domain.Order, error) {
	orders, err := s.gw.AllOrders(ctx, token)
	if err != nil {
		return nil, err
	}
	s.coll.Replace(orders)
	return orders, nil
}

// Transition applies an admin action to an order. The local status check and
// the in-flight guard are advisory; the server re-validates and its projection
// replaces the local entry on success. The mirror is shared across sessions
// and another view's fetch may have replaced it, so an order absent from the
// mirror falls through to the server's authoritative check.
func (s *Service) Transition(ctx context.Context, token string, orderID int64, action domain.Action) (domain.Order, error) {
	if current, ok := s.coll.Get(orderID); ok && !current.Status.Allows(action) {
		return domain.Order{}, fmt.Errorf("%w: %s order cannot take %s", ErrIllegalTransition, current.Status, action)
	}
	if !s.coll.begin(orderID) {
		return domain.Order{}, ErrTransitionInFlight
	}
	defer s.coll.end(orderID)

	updated, err := s.gw.Transition(ctx, token, orderID, action)
	if err != nil {
		return domain.Order{}, err
	}

	s.coll.reconcile(updated)
	return updated, nil
}

// Cancel deletes the caller's own pending order, restoring its stock
// server-side. Only pending orders qualify; the pending check is advisory and
// only applies when the order is still mirrored, otherwise the server decides.
func (s *Service) Cancel(ctx context.Context, token string, orderID int64) error {
	if current, ok := s.coll.Get(orderID); ok && current.Status != domain.StatusPending {
		return fmt.Errorf("%w: order is %s", ErrNotPending, current.Status)
	}

	if err := s.gw.DeleteOrder(ctx, token, orderID); err != nil {
		return err
	}

	s.coll.remove(orderID)
	return nil
}
