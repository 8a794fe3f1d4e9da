package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Weryck-Lemos/ElectroStock/internal/cart"
	"github.com/Weryck-Lemos/ElectroStock/internal/catalog"
	"github.com/Weryck-Lemos/ElectroStock/internal/domain"
	"github.com/Weryck-Lemos/ElectroStock/internal/orders"
	"github.com/Weryck-Lemos/ElectroStock/internal/session"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

// ShopHandler serves the ordering page: the catalog, the cart the user is
// composing, and order submission.
type ShopHandler struct {
	resolver *catalog.Resolver
	orders   *orders.Service
	sessions session.Store
}

func NewShopHandler(resolver *catalog.Resolver, orders *orders.Service, sessions session.Store) *ShopHandler {
	return &ShopHandler{
		resolver: resolver,
		orders:   orders,
		sessions: sessions,
	}
}

type ShopResponseDTO struct {
	Items      []domain.Item     `json:"items"`
	Categories []domain.Category `json:"categories"`
	Cart       []cart.Line       `json:"cart"`
}

type AddCartItemRequestDTO struct {
	ItemID int64 `json:"item_id"`
}

type SetQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

// GET /shop
//
// Catalog and categories are fetched concurrently and both awaited before
// the page renders; they populate disjoint fields, so completion order is
// irrelevant.
func (h *ShopHandler) GetShop(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	var (
		cat        *catalog.Catalog
		categories []domain.Category
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		cat, err = h.resolver.Load(ctx, sess.Token)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = h.resolver.Categories(ctx, sess.Token)
		return err
	})
	if err := g.Wait(); err != nil {
		handleUpstreamError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ShopResponseDTO{
		Items:      cat.Items(),
		Categories: categories,
		Cart:       sess.Cart.Lines(),
	})
}

// POST /shop/cart/items
func (h *ShopHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	var req AddCartItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ItemID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id must be positive")
		return
	}

	cat, err := h.resolver.Load(r.Context(), sess.Token)
	if err != nil {
		handleUpstreamError(w, err)
		return
	}
	item, ok := cat.Get(req.ItemID)
	if !ok {
		respondError(w, http.StatusNotFound, "unknown_item", "item is not in the catalog")
		return
	}

	sess.Cart.Add(item)
	h.saveSession(w, r, sess, http.StatusCreated)
}

// PUT /shop/cart/items/{item_id}
func (h *ShopHandler) SetCartQuantity(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	itemID, err := strconv.ParseInt(chi.URLParam(r, "item_id"), 10, 64)
	if err != nil || itemID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id must be positive")
		return
	}

	var req SetQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// zero or negative removes the line
	sess.Cart.SetQuantity(itemID, req.Quantity)
	h.saveSession(w, r, sess, http.StatusOK)
}

// DELETE /shop/cart/items/{item_id}
func (h *ShopHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	itemID, err := strconv.ParseInt(chi.URLParam(r, "item_id"), 10, 64)
	if err != nil || itemID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id must be positive")
		return
	}

	sess.Cart.Remove(itemID)
	h.saveSession(w, r, sess, http.StatusOK)
}

// POST /shop/orders
func (h *ShopHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	order, err := h.orders.Submit(r.Context(), sess.Token, sess.Cart)
	if errors.Is(err, cart.ErrEmptyCart) {
		respondError(w, http.StatusBadRequest, "empty_cart", "the cart needs at least one item")
		return
	}
	if err != nil {
		// cart stays as it was; the user can retry
		handleUpstreamError(w, err)
		return
	}

	if err := h.sessions.Put(r.Context(), sess); err != nil {
		log.Printf("session store put error: %v", err)
	}
	respondJSON(w, http.StatusCreated, order)
}

func (h *ShopHandler) saveSession(w http.ResponseWriter, r *http.Request, sess *session.Session, status int) {
	if err := h.sessions.Put(r.Context(), sess); err != nil {
		log.Printf("session store put error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	respondJSON(w, status, sess.Cart.Lines())
}
