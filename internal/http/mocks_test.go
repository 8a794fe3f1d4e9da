package http

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/Weryck-Lemos/ElectroStock/internal/api"
	"github.com/Weryck-Lemos/ElectroStock/internal/domain"
	"github.com/Weryck-Lemos/ElectroStock/internal/session"
	"github.com/go-chi/chi/v5"
)

// --- upstream mock ---

type upstreamMock struct {
	user       domain.User
	token      api.TokenResponse
	items      []domain.Item
	categories []domain.Category
	mine       []domain.Order
	all        []domain.Order
	created    domain.Order
	updated    domain.Order
	err        error

	loginCalls  int
	createCalls int
}

func (m *upstreamMock) Register(context.Context, string, string, string) (domain.User, error) {
	if m.err != nil {
		return domain.User{}, m.err
	}
	return m.user, nil
}

func (m *upstreamMock) Login(context.Context, string, string) (api.TokenResponse, error) {
	m.loginCalls++
	if m.err != nil {
		return api.TokenResponse{}, m.err
	}
	return m.token, nil
}

func (m *upstreamMock) Me(context.Context, string) (domain.User, error) {
	if m.err != nil {
		return domain.User{}, m.err
	}
	return m.user, nil
}

func (m *upstreamMock) UpdateProfile(context.Context, string, string, string) (domain.User, error) {
	if m.err != nil {
		return domain.User{}, m.err
	}
	return m.user, nil
}

func (m *upstreamMock) ListItems(context.Context, string) ([]domain.Item, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

func (m *upstreamMock) ListCategories(context.Context, string) ([]domain.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.categories, nil
}

func (m *upstreamMock) MyOrders(context.Context, string) ([]domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.mine, nil
}

func (m *upstreamMock) AllOrders(context.Context, string) ([]domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.all, nil
}

func (m *upstreamMock) CreateOrder(_ context.Context, _ string, items []domain.OrderItem) (domain.Order, error) {
	m.createCalls++
	if m.err != nil {
		return domain.Order{}, m.err
	}
	order := m.created
	order.Items = items
	return order, nil
}

func (m *upstreamMock) Transition(context.Context, string, int64, domain.Action) (domain.Order, error) {
	if m.err != nil {
		return domain.Order{}, m.err
	}
	return m.updated, nil
}

func (m *upstreamMock) DeleteOrder(context.Context, string, int64) error {
	return m.err
}

// --- helpers ---

func testSession(user domain.User) *session.Session {
	return session.New("tok-test", user)
}

func withSession(r *http.Request, sess *session.Session) *http.Request {
	ctx := context.WithValue(r.Context(), sessionCtxKey, sess)
	return r.WithContext(ctx)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func adminUser() domain.User {
	return domain.User{ID: 1, Name: "Admin", Email: "admin@ufc.br", Role: domain.RoleAdmin}
}

func regularUser() domain.User {
	return domain.User{ID: 2, Name: "Ana", Email: "ana@ufc.br", Role: domain.RoleUser}
}

func errUpstream() error {
	return &api.Error{StatusCode: http.StatusBadRequest, Detail: "Estoque insuficiente para 'Mouse'."}
}

func doRequest(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, r)
	return rec
}
