package session

import (
	"context"
	"testing"

	"github.com/Weryck-Lemos/ElectroStock/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorePutGet(t *testing.T) {
	store := NewMemoryStore()
	s := New("tok-1", domain.User{ID: 1, Email: "ana@ufc.br", Role: "user"})
	s.Cart.Add(domain.Item{ID: 1, Name: "Mouse"})

	require.NoError(t, store.Put(context.Background(), s))

	got, err := store.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got.Token)
	assert.Equal(t, "ana@ufc.br", got.User.Email)
	require.NotNil(t, got.Cart)
	assert.Equal(t, 1, got.Cart.Len())
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	s := New("tok-1", domain.User{ID: 1})
	require.NoError(t, store.Put(context.Background(), s))

	first, err := store.Get(context.Background(), s.ID)
	require.NoError(t, err)
	first.Cart.Add(domain.Item{ID: 7})

	second, err := store.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Zero(t, second.Cart.Len(), "mutation of one copy must not leak into the store")
}

func TestMemoryStoreMissingSession(t *testing.T) {
	_, err := NewMemoryStore().Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	s := New("tok-1", domain.User{ID: 1})
	require.NoError(t, store.Put(context.Background(), s))

	require.NoError(t, store.Delete(context.Background(), s.ID))
	require.NoError(t, store.Delete(context.Background(), s.ID)) // idempotent

	_, err := store.Get(context.Background(), s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutOverwritesWholesale(t *testing.T) {
	store := NewMemoryStore()
	s := New("tok-1", domain.User{ID: 1, Email: "old@ufc.br"})
	require.NoError(t, store.Put(context.Background(), s))

	s.Token = "tok-2"
	s.User.Email = "new@ufc.br"
	require.NoError(t, store.Put(context.Background(), s))

	got, err := store.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", got.Token)
	assert.Equal(t, "new@ufc.br", got.User.Email)
}
