package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Weryck-Lemos/ElectroStock/internal/domain"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client talks to the external ElectroStock REST service. It performs no
// retries and imposes no timeout of its own; cancellation comes from the
// caller's context.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	NewEmail    string `json:"new_email,omitempty"`
	NewPassword string `json:"new_password,omitempty"`
}

type createOrderRequest struct {
	Items []domain.OrderItem `json:"items"`
}

// Register creates an account. The service assigns the "user" role.
func (c *Client) Register(ctx context.Context, name, email, password string) (domain.User, error) {
	var user domain.User
	err := c.do(ctx, http.MethodPost, "/auth/register", "", registerRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, &user)
	return user, err
}

// Login exchanges credentials for a bearer token. The profile comes from a
// follow-up Me call; this endpoint returns only the token.
func (c *Client) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	var token TokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login-json", "", loginRequest{
		Email:    email,
		Password: password,
	}, &token)
	return token, err
}

// Me resolves the user the token belongs to.
func (c *Client) Me(ctx context.Context, token string) (domain.User, error) {
	var user domain.User
	err := c.do(ctx, http.MethodGet, "/users/me", token, nil, &user)
	return user, err
}

// UpdateProfile changes the caller's email and/or password. Empty fields are
// left untouched by the service.
func (c *Client) UpdateProfile(ctx context.Context, token, newEmail, newPassword string) (domain.User, error) {
	var user domain.User
	err := c.do(ctx, http.MethodPut, "/users/me", token, updateProfileRequest{
		NewEmail:    newEmail,
		NewPassword: newPassword,
	}, &user)
	return user, err
}

func (c *Client) ListItems(ctx context.Context, token string) ([]domain.Item, error) {
	var items []domain.Item
	err := c.do(ctx, http.MethodGet, "/items", token, nil, &items)
	return items, err
}

func (c *Client) ListCategories(ctx context.Context, token string) ([]domain.Category, error) {
	var categories []domain.Category
	err := c.do(ctx, http.MethodGet, "/categories", token, nil, &categories)
	return categories, err
}

// MyOrders lists the requesting user's orders.
func (c *Client) MyOrders(ctx context.Context, token string) ([]domain.Order, error) {
	var orders []domain.Order
	err := c.do(ctx, http.MethodGet, "/orders/me", token, nil, &orders)
	return orders, err
}

// AllOrders lists every order. Admin only; the service enforces.
func (c *Client) AllOrders(ctx context.Context, token string) ([]domain.Order, error) {
	var orders []domain.Order
	err := c.do(ctx, http.MethodGet, "/orders", token, nil, &orders)
	return orders, err
}

func (c *Client) CreateOrder(ctx context.Context, token string, items []domain.OrderItem) (domain.Order, error) {
	var order domain.Order
	err := c.do(ctx, http.MethodPost, "/orders", token, createOrderRequest{Items: items}, &order)
	return order, err
}

func (c *Client) GetOrder(ctx context.Context, token string, orderID int64) (domain.Order, error) {
	var order domain.Order
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", orderID), token, nil, &order)
	return order, err
}

// DeleteOrder cancels a pending order, restoring its stock server-side.
func (c *Client) DeleteOrder(ctx context.Context, token string, orderID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/orders/%d", orderID), token, nil, nil)
}

// Transition applies an admin lifecycle action. The response carries the
// full updated order, which replaces the local entry wholesale.
func (c *Client) Transition(ctx context.Context, token string, orderID int64, action domain.Action) (domain.Order, error) {
	var order domain.Order
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/orders/%d/%s", orderID, action), token, nil, &order)
	return order, err
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ConnectionError{Err: err}
	}

	if resp.StatusCode >= 400 {
		detail := normalizeDetail(data)
		if detail == "" {
			return &ConnectionError{Err: fmt.Errorf("status %d without detail", resp.StatusCode)}
		}
		return &Error{StatusCode: resp.StatusCode, Detail: detail}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &ConnectionError{Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}
