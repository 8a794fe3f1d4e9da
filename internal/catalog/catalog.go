// Package catalog fetches the orderable items once per page view and resolves
// item IDs to display names. There is no cross-request cache; concurrent
// loads for the same token are just collapsed into one upstream call.
package catalog

import (
	"context"
	"fmt"

	"github.com/Weryck-Lemos/ElectroStock/internal/domain"
	"golang.org/x/sync/singleflight"
)

// Gateway is the slice of the upstream API the resolver needs.
type Gateway interface {
	ListItems(ctx context.Context, token string) ([]domain.Item, error)
	ListCategories(ctx context.Context, token string) ([]domain.Category, error)
}

type Resolver struct {
	gw  Gateway
	sfg singleflight.Group
}

func NewResolver(gw Gateway) *Resolver {
	return &Resolver{gw: gw}
}

// Load fetches the catalog for one page view.
func (r *Resolver) Load(ctx context.Context, token string) (*Catalog, error) {
	v, err, _ := r.sfg.Do("items:"+token, func() (any, error) {
		items, err := r.gw.ListItems(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("list items: %w", err)
		}
		byID := make(map[int64]domain.Item, len(items))
		for _, it := range items {
			byID[it.ID] = it
		}
		return &Catalog{items: items, byID: byID}, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Catalog), nil
}

// Categories passes through the category list, collapsed the same way.
func (r *Resolver) Categories(ctx context.Context, token string) ([]domain.Category, error) {
	v, err, _ := r.sfg.Do("categories:"+token, func() (any, error) {
		return r.gw.ListCategories(ctx, token)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Category), nil
}

// Catalog is one page view's snapshot of the item list.
type Catalog struct {
	items []domain.Item
	byID  map[int64]domain.Item
}

func (c *Catalog) Items() []domain.Item {
	return c.items
}

func (c *Catalog) Get(id int64) (domain.Item, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// Name resolves an item ID to its display name, falling back to the
// placeholder the UI shows for items no longer in the catalog.
func (c *Catalog) Name(id int64) string {
	if it, ok := c.byID[id]; ok {
		return it.Name
	}
	return fmt.Sprintf("Item #%d", id)
}
