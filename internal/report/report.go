// Package report derives the admin dashboard's aggregate view from an order
// collection. Everything here is a pure function recomputed per request; no
// state is kept between calls.
package report

import (
	"sort"

	"github.com/Weryck-Lemos/ElectroStock/internal/domain"
)

// TopSize is how many items the ranking keeps.
const TopSize = 5

// ItemTotal is one row of the items-by-quantity ranking.
type ItemTotal struct {
	ItemID int64 `json:"item_id"`
	Total  int   `json:"total"`
}

type Summary struct {
	TotalOrders      int                   `json:"total_orders"`
	TotalItems       int                   `json:"total_items"`
	ByStatus         map[domain.Status]int `json:"by_status"`
	UniqueRequesters int                   `json:"unique_requesters"`
	TopItems         []ItemTotal           `json:"top_items"`
}

// Build computes the summary over orders. ByStatus always carries exactly the
// four known statuses, zero when absent; an order with a status outside that
// set still counts towards the totals but gets no bucket. TopItems ranks item
// IDs by summed quantity, descending, ties broken by first-encounter order.
func Build(orders []domain.Order) Summary {
	byStatus := make(map[domain.Status]int, 4)
	for _, s := range domain.Statuses() {
		byStatus[s] = 0
	}

	requesters := make(map[string]struct{})
	totals := make(map[int64]int)
	var encounter []int64
	totalItems := 0

	for _, o := range orders {
		if o.Status.Valid() {
			byStatus[o.Status]++
		}
		requesters[o.UserEmail] = struct{}{}
		for _, it := range o.Items {
			if _, seen := totals[it.ItemID]; !seen {
				encounter = append(encounter, it.ItemID)
			}
			totals[it.ItemID] += it.Quantity
			totalItems += it.Quantity
		}
	}

	top := make([]ItemTotal, len(encounter))
	for i, id := range encounter {
		top[i] = ItemTotal{ItemID: id, Total: totals[id]}
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Total > top[j].Total
	})
	if len(top) > TopSize {
		top = top[:TopSize]
	}

	return Summary{
		TotalOrders:      len(orders),
		TotalItems:       totalItems,
		ByStatus:         byStatus,
		UniqueRequesters: len(requesters),
		TopItems:         top,
	}
}
