package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Weryck-Lemos/ElectroStock/internal/catalog"
	"github.com/Weryck-Lemos/ElectroStock/internal/domain"
	"github.com/Weryck-Lemos/ElectroStock/internal/orders"
	"github.com/Weryck-Lemos/ElectroStock/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShopHandler(mock *upstreamMock, store session.Store) *ShopHandler {
	return NewShopHandler(catalog.NewResolver(mock), orders.NewService(mock), store)
}

func TestGetShopJoinsCatalogAndCategories(t *testing.T) {
	mock := &upstreamMock{
		items:      []domain.Item{{ID: 1, Name: "Mouse", Stock: 10}},
		categories: []domain.Category{{ID: 1, Name: "Periféricos"}},
	}
	store := session.NewMemoryStore()
	sess := testSession(regularUser())
	require.NoError(t, store.Put(context.Background(), sess))

	handler := newShopHandler(mock, store)
	req := withSession(httptest.NewRequest("GET", "/shop", nil), sess)
	rec := doRequest(handler.GetShop, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ShopResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 1)
	assert.Len(t, resp.Categories, 1)
	assert.Empty(t, resp.Cart)
}

func TestAddCartItemPersistsSession(t *testing.T) {
	mock := &upstreamMock{items: []domain.Item{{ID: 1, Name: "Mouse", Stock: 10}}}
	store := session.NewMemoryStore()
	sess := testSession(regularUser())
	require.NoError(t, store.Put(context.Background(), sess))

	handler := newShopHandler(mock, store)
	req := withSession(httptest.NewRequest("POST", "/shop/cart/items", strings.NewReader(`{"item_id":1}`)), sess)
	rec := doRequest(handler.AddCartItem, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	stored, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	require.Equal(t, 1, stored.Cart.Len())
	assert.Equal(t, "Mouse", stored.Cart.Lines()[0].Item.Name)
	assert.Equal(t, 1, stored.Cart.Lines()[0].Quantity)
}

func TestAddCartItemTwiceIncrements(t *testing.T) {
	mock := &upstreamMock{items: []domain.Item{{ID: 1, Name: "Mouse", Stock: 10}}}
	store := session.NewMemoryStore()
	sess := testSession(regularUser())
	require.NoError(t, store.Put(context.Background(), sess))

	handler := newShopHandler(mock, store)
	for i := 0; i < 2; i++ {
		req := withSession(httptest.NewRequest("POST", "/shop/cart/items", strings.NewReader(`{"item_id":1}`)), sess)
		rec := doRequest(handler.AddCartItem, req)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	assert.Equal(t, 2, sess.Cart.Lines()[0].Quantity)
}

func TestAddUnknownItem(t *testing.T) {
	mock := &upstreamMock{items: []domain.Item{{ID: 1, Name: "Mouse"}}}
	store := session.NewMemoryStore()
	sess := testSession(regularUser())
	require.NoError(t, store.Put(context.Background(), sess))

	handler := newShopHandler(mock, store)
	req := withSession(httptest.NewRequest("POST", "/shop/cart/items", strings.NewReader(`{"item_id":99}`)), sess)
	rec := doRequest(handler.AddCartItem, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, sess.Cart.Len())
}

func TestSetCartQuantityZeroRemoves(t *testing.T) {
	mock := &upstreamMock{items: []domain.Item{{ID: 1, Name: "Mouse"}}}
	store := session.NewMemoryStore()
	sess := testSession(regularUser())
	sess.Cart.Add(domain.Item{ID: 1, Name: "Mouse"})
	require.NoError(t, store.Put(context.Background(), sess))

	handler := newShopHandler(mock, store)
	req := withSession(httptest.NewRequest("PUT", "/shop/cart/items/1", strings.NewReader(`{"quantity":0}`)), sess)
	req = withURLParam(req, "item_id", "1")
	rec := doRequest(handler.SetCartQuantity, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, sess.Cart.Len())
}

func TestRemoveCartItemIdempotent(t *testing.T) {
	store := session.NewMemoryStore()
	sess := testSession(regularUser())
	require.NoError(t, store.Put(context.Background(), sess))

	handler := newShopHandler(&upstreamMock{}, store)
	for i := 0; i < 2; i++ {
		req := withSession(httptest.NewRequest("DELETE", "/shop/cart/items/1", nil), sess)
		req = withURLParam(req, "item_id", "1")
		rec := doRequest(handler.RemoveCartItem, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestSubmitEmptyCartIsLocalFailure(t *testing.T) {
	mock := &upstreamMock{}
	store := session.NewMemoryStore()
	sess := testSession(regularUser())
	require.NoError(t, store.Put(context.Background(), sess))

	handler := newShopHandler(mock, store)
	req := withSession(httptest.NewRequest("POST", "/shop/orders", nil), sess)
	rec := doRequest(handler.SubmitOrder, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, mock.createCalls, "empty cart must never reach the network")

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "empty_cart", resp.Code)
}

func TestSubmitSuccessClearsStoredCart(t *testing.T) {
	mock := &upstreamMock{created: domain.Order{ID: 10, Status: domain.StatusPending}}
	store := session.NewMemoryStore()
	sess := testSession(regularUser())
	sess.Cart.Add(domain.Item{ID: 1, Name: "Mouse"})
	sess.Cart.Add(domain.Item{ID: 1, Name: "Mouse"})
	sess.Cart.Add(domain.Item{ID: 2, Name: "Keyboard"})
	require.NoError(t, store.Put(context.Background(), sess))

	handler := newShopHandler(mock, store)
	req := withSession(httptest.NewRequest("POST", "/shop/orders", nil), sess)
	rec := doRequest(handler.SubmitOrder, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var order domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, []domain.OrderItem{{ItemID: 1, Quantity: 2}, {ItemID: 2, Quantity: 1}}, order.Items)

	stored, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.Cart.Len())
}

func TestSubmitUpstreamFailureKeepsCart(t *testing.T) {
	mock := &upstreamMock{err: errUpstream()}
	store := session.NewMemoryStore()
	sess := testSession(regularUser())
	sess.Cart.Add(domain.Item{ID: 1, Name: "Mouse"})
	require.NoError(t, store.Put(context.Background(), sess))

	handler := newShopHandler(mock, store)
	req := withSession(httptest.NewRequest("POST", "/shop/orders", nil), sess)
	rec := doRequest(handler.SubmitOrder, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Estoque insuficiente para 'Mouse'.", resp.Error)
	assert.Equal(t, 1, sess.Cart.Len())
}
