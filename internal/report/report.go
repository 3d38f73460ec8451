package report

import (
	"sort"

	"github.com/example/fleet-inventory/internal/clock"
	"github.com/example/fleet-inventory/internal/domain/fleet"
	"github.com/example/fleet-inventory/internal/domain/item"
)

// UsageLine is one item's usage cost over the reporting window.
type UsageLine struct {
	Vessel     string  `json:"vessel"`
	ItemNumber string  `json:"item_number"`
	Name       string  `json:"name"`
	Cost       float64 `json:"cost"`
}

// UsageSummary aggregates usage costs across the fleet for one period.
type UsageSummary struct {
	Period item.Period `json:"period"`
	Lines  []UsageLine `json:"lines"`
	Total  float64     `json:"total"`
}

// UsageCost sums each item's usage cost over the period, per vessel, in
// sorted order. Items with no usage in the window are omitted.
func UsageCost(reg *fleet.Registry, period item.Period, clk clock.Clock) (*UsageSummary, error) {
	if _, err := period.Window(); err != nil {
		return nil, err
	}

	summary := &UsageSummary{Period: period, Lines: []UsageLine{}}
	for _, vessel := range reg.Vessels() {
		inv := reg.GetInventory(vessel)
		for _, number := range sortedKeys(inv) {
			it := inv[number]
			cost, err := it.UsageCost(period, clk)
			if err != nil {
				return nil, err
			}
			if cost == 0 {
				continue
			}
			summary.Lines = append(summary.Lines, UsageLine{
				Vessel:     vessel,
				ItemNumber: it.ItemNumber,
				Name:       it.Name,
				Cost:       cost,
			})
			summary.Total += cost
		}
	}
	return summary, nil
}

// ItemRef points at one item aboard one vessel.
type ItemRef struct {
	Vessel string          `json:"vessel"`
	Item   *item.StockItem `json:"item"`
}

// ExpiredItems lists every item past its expiry date.
func ExpiredItems(reg *fleet.Registry, clk clock.Clock) []ItemRef {
	var expired []ItemRef
	for _, vessel := range reg.Vessels() {
		inv := reg.GetInventory(vessel)
		for _, number := range sortedKeys(inv) {
			if it := inv[number]; it.IsExpired(clk) {
				expired = append(expired, ItemRef{Vessel: vessel, Item: it})
			}
		}
	}
	return expired
}

// LowStock lists every item at or below its reorder threshold, without
// touching alert state.
func LowStock(reg *fleet.Registry) []ItemRef {
	var low []ItemRef
	for _, vessel := range reg.Vessels() {
		inv := reg.GetInventory(vessel)
		for _, number := range sortedKeys(inv) {
			if it := inv[number]; it.CheckReorder() {
				low = append(low, ItemRef{Vessel: vessel, Item: it})
			}
		}
	}
	return low
}

func sortedKeys(inv map[string]*item.StockItem) []string {
	keys := make([]string, 0, len(inv))
	for k := range inv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
