package alert

import (
	"sort"

	"github.com/example/fleet-inventory/internal/domain/fleet"
	"github.com/example/fleet-inventory/internal/domain/item"
)

// Notifier delivers a reorder alert. Delivery is fire-and-forget; the
// engine does not inspect success or failure.
type Notifier interface {
	SendAlert(vessel string, it *item.StockItem)
}

// Alert is one item currently at or below its reorder threshold.
type Alert struct {
	Vessel string
	Item   *item.StockItem
}

// Engine drives the per-item alert state machine. Each item is either
// normal or alert-active; exactly one notification is sent per
// below-threshold episode.
type Engine struct {
	notifier Notifier
}

func NewEngine(notifier Notifier) *Engine {
	return &Engine{notifier: notifier}
}

// Scan walks every item of every vessel, in sorted order for stable
// output, and evaluates its reorder predicate.
//
// An item crossing to at-or-below threshold with no active alert gets one
// notification and its alert flag set. Items still below threshold with
// the flag already set stay silent. Items back above threshold have the
// flag cleared without a resolved notification.
//
// The returned slice lists everything currently below threshold whether
// or not a notification was just sent, so a second Scan with no stock
// change returns the same alerts and sends nothing.
func (e *Engine) Scan(reg *fleet.Registry) []Alert {
	var alerts []Alert
	for _, vessel := range reg.Vessels() {
		inv := reg.GetInventory(vessel)
		for _, number := range sortedItemNumbers(inv) {
			it := inv[number]
			if it.CheckReorder() {
				if !it.AlertActive {
					e.notifier.SendAlert(vessel, it)
					it.AlertActive = true
				}
				alerts = append(alerts, Alert{Vessel: vessel, Item: it})
			} else if it.AlertActive {
				it.AlertActive = false
			}
		}
	}
	return alerts
}

// ActiveAlerts lists everything currently below threshold without
// touching alert state or sending notifications.
func ActiveAlerts(reg *fleet.Registry) []Alert {
	var alerts []Alert
	for _, vessel := range reg.Vessels() {
		inv := reg.GetInventory(vessel)
		for _, number := range sortedItemNumbers(inv) {
			if it := inv[number]; it.CheckReorder() {
				alerts = append(alerts, Alert{Vessel: vessel, Item: it})
			}
		}
	}
	return alerts
}

func sortedItemNumbers(inv map[string]*item.StockItem) []string {
	numbers := make([]string, 0, len(inv))
	for number := range inv {
		numbers = append(numbers, number)
	}
	sort.Strings(numbers)
	return numbers
}
