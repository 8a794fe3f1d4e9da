// Package session holds the authenticated state the browser used to keep in
// localStorage: the bearer token, the cached profile, and the cart being
// composed. Sessions are addressed by an opaque ID carried in a cookie.
package session

import (
	"context"
	"errors"

	"github.com/Weryck-Lemos/ElectroStock/internal/cart"
	"github.com/Weryck-Lemos/ElectroStock/internal/domain"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID    string      `json:"id"`
	Token string      `json:"token"`
	User  domain.User `json:"user"`
	Cart  *cart.Cart  `json:"cart"`
}

// New creates a session for a fresh login with an empty cart.
func New(token string, user domain.User) *Session {
	return &Session{
		ID:    uuid.New().String(),
		Token: token,
		User:  user,
		Cart:  cart.New(),
	}
}

// Store persists sessions. Put always overwrites the whole session, never a
// partial update; login and logout are the only places a session is created
// or destroyed.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
