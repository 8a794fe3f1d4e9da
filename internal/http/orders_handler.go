package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Weryck-Lemos/ElectroStock/internal/catalog"
	"github.com/Weryck-Lemos/ElectroStock/internal/domain"
	"github.com/Weryck-Lemos/ElectroStock/internal/orders"
	"github.com/Weryck-Lemos/ElectroStock/internal/report"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

// OrdersHandler serves the order pages: the user's own orders, the admin
// dashboard, lifecycle actions and reports.
type OrdersHandler struct {
	svc      *orders.Service
	resolver *catalog.Resolver
}

func NewOrdersHandler(svc *orders.Service, resolver *catalog.Resolver) *OrdersHandler {
	return &OrdersHandler{
		svc:      svc,
		resolver: resolver,
	}
}

type OrderItemViewDTO struct {
	ItemID   int64  `json:"item_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type OrderViewDTO struct {
	ID        int64              `json:"id"`
	UserEmail string             `json:"user_email,omitempty"`
	Status    domain.Status      `json:"status"`
	Actions   []domain.Action    `json:"actions,omitempty"`
	Items     []OrderItemViewDTO `json:"items"`
}

type OrdersResponseDTO struct {
	Orders []OrderViewDTO `json:"orders"`
}

// GET /orders/me
//
// The order list and the catalog (for item names) load concurrently and are
// joined before rendering.
func (h *OrdersHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	list, cat, err := h.fetchJoined(r, func() ([]domain.Order, error) {
		return h.svc.FetchMine(r.Context(), sess.Token)
	})
	if err != nil {
		handleUpstreamError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, OrdersResponseDTO{Orders: toViews(list, cat, false)})
}

// GET /admin/dashboard
func (h *OrdersHandler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	list, cat, err := h.fetchJoined(r, func() ([]domain.Order, error) {
		return h.svc.FetchAll(r.Context(), sess.Token)
	})
	if err != nil {
		handleUpstreamError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, OrdersResponseDTO{Orders: toViews(list, cat, true)})
}

// POST /admin/orders/{order_id}/{action}
func (h *OrdersHandler) TransitionOrder(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	orderID, err := strconv.ParseInt(chi.URLParam(r, "order_id"), 10, 64)
	if err != nil || orderID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be positive")
		return
	}
	action := domain.Action(chi.URLParam(r, "action"))
	if !action.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_action", "action must be approve, reject or finish")
		return
	}

	updated, err := h.svc.Transition(r.Context(), sess.Token, orderID, action)
	switch {
	case errors.Is(err, orders.ErrIllegalTransition):
		respondError(w, http.StatusConflict, "illegal_transition", err.Error())
		return
	case errors.Is(err, orders.ErrTransitionInFlight):
		respondError(w, http.StatusConflict, "transition_in_flight", "this order is already being updated")
		return
	case err != nil:
		handleUpstreamError(w, err)
		return
	}

	cat, err := h.resolver.Load(r.Context(), sess.Token)
	if err != nil {
		handleUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toView(updated, cat, true))
}

// DELETE /orders/{order_id}
//
// Cancels the caller's own pending order; the service restores the stock.
func (h *OrdersHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	orderID, err := strconv.ParseInt(chi.URLParam(r, "order_id"), 10, 64)
	if err != nil || orderID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be positive")
		return
	}

	if order, ok := h.svc.Get(orderID); ok {
		if !sess.User.IsAdmin() && order.UserID != sess.User.ID {
			respondError(w, http.StatusForbidden, "forbidden", "you cannot cancel another user's order")
			return
		}
	}

	err = h.svc.Cancel(r.Context(), sess.Token, orderID)
	switch {
	case errors.Is(err, orders.ErrNotPending):
		respondError(w, http.StatusConflict, "not_pending", err.Error())
		return
	case err != nil:
		handleUpstreamError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "order cancelled"})
}

// GET /admin/reports
func (h *OrdersHandler) Reports(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	list, err := h.svc.FetchAll(r.Context(), sess.Token)
	if err != nil {
		handleUpstreamError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, report.Build(list))
}

// fetchJoined runs the order fetch and the catalog load concurrently and
// waits for both. The two populate disjoint results, so completion order
// does not matter.
func (h *OrdersHandler) fetchJoined(r *http.Request, fetch func() ([]domain.Order, error)) ([]domain.Order, *catalog.Catalog, error) {
	sess := sessionFromContext(r.Context())

	var (
		list []domain.Order
		cat  *catalog.Catalog
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		list, err = fetch()
		return err
	})
	g.Go(func() error {
		var err error
		cat, err = h.resolver.Load(ctx, sess.Token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return list, cat, nil
}

func toViews(list []domain.Order, cat *catalog.Catalog, admin bool) []OrderViewDTO {
	views := make([]OrderViewDTO, 0, len(list))
	for _, o := range list {
		views = append(views, toView(o, cat, admin))
	}
	return views
}

// toView resolves item names and, for admins, attaches the actions the
// order's status permits. Non-admin views carry no actions at all.
func toView(o domain.Order, cat *catalog.Catalog, admin bool) OrderViewDTO {
	items := make([]OrderItemViewDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemViewDTO{
			ItemID:   it.ItemID,
			Name:     cat.Name(it.ItemID),
			Quantity: it.Quantity,
		})
	}

	view := OrderViewDTO{
		ID:     o.ID,
		Status: o.Status,
		Items:  items,
	}
	if admin {
		view.UserEmail = o.UserEmail
		view.Actions = o.Status.AllowedActions()
	}
	return view
}
