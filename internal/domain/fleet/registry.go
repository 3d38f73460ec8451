package fleet

import (
	"errors"
	"fmt"
	"sort"

	"github.com/example/fleet-inventory/internal/clock"
	"github.com/example/fleet-inventory/internal/domain/item"
)

var (
	ErrDuplicateVessel = errors.New("vessel already registered")
	ErrUnknownVessel   = errors.New("vessel not registered")
	ErrUnknownItem     = errors.New("item not found")
)

// Registry holds the inventory of every vessel in the fleet: a mapping
// from vessel name to that vessel's items keyed by item number. A Registry
// assumes single-writer access; callers serving concurrent requests must
// serialize around it.
type Registry struct {
	vessels map[string]map[string]*item.StockItem
	clk     clock.Clock
}

// NewRegistry creates an empty registry. Stock removals stamp usage
// records with clk.
func NewRegistry(clk clock.Clock) *Registry {
	return &Registry{
		vessels: make(map[string]map[string]*item.StockItem),
		clk:     clk,
	}
}

// RegisterVessel creates an empty inventory for a new vessel.
func (r *Registry) RegisterVessel(name string) error {
	if _, ok := r.vessels[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateVessel, name)
	}
	r.vessels[name] = make(map[string]*item.StockItem)
	return nil
}

// Vessels returns the registered vessel names in sorted order.
func (r *Registry) Vessels() []string {
	names := make([]string, 0, len(r.vessels))
	for name := range r.vessels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Restock adds stock for an item aboard a vessel. If the item number is
// already present only its quantity grows; the stored descriptive
// attributes are left untouched (full edits go through UpdateItem).
// A new item number creates the item with the given attributes.
func (r *Registry) Restock(vessel, itemNumber string, attrs item.Attributes, quantity int) error {
	inv, ok := r.vessels[vessel]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVessel, vessel)
	}
	if existing, ok := inv[itemNumber]; ok {
		return existing.Add(quantity)
	}
	if quantity < 0 {
		return item.ErrInvalidQuantity
	}
	inv[itemNumber] = item.New(itemNumber, attrs, quantity)
	return nil
}

// UpdateItem replaces the descriptive attributes of an existing item.
// Quantity, usage history and alert state are preserved.
func (r *Registry) UpdateItem(vessel, itemNumber string, attrs item.Attributes) error {
	it, err := r.Item(vessel, itemNumber)
	if err != nil {
		return err
	}
	it.Name = attrs.Name
	it.Description = attrs.Description
	it.Location = attrs.Location
	it.Unit = attrs.Unit
	it.Vendor = attrs.Vendor
	it.Category = attrs.Category
	it.ImagePath = attrs.ImagePath
	if attrs.Documents != nil {
		it.Documents = attrs.Documents
	}
	it.Cost = attrs.Cost
	it.MinStock = attrs.MinStock
	it.SafetyStock = attrs.SafetyStock
	it.ExpiryDate = attrs.ExpiryDate
	return nil
}

// RestoreItem places a persisted item snapshot into a vessel's inventory,
// replacing any existing entry. Used when loading from storage.
func (r *Registry) RestoreItem(vessel string, it *item.StockItem) error {
	inv, ok := r.vessels[vessel]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVessel, vessel)
	}
	inv[it.ItemNumber] = it
	return nil
}

// RemoveStock removes quantity units of an item from a vessel's inventory,
// recording the removal in the item's usage history.
func (r *Registry) RemoveStock(vessel, itemNumber string, quantity int) error {
	it, err := r.Item(vessel, itemNumber)
	if err != nil {
		return err
	}
	return it.Remove(quantity, r.clk)
}

// Item looks up a single item aboard a vessel.
func (r *Registry) Item(vessel, itemNumber string) (*item.StockItem, error) {
	inv, ok := r.vessels[vessel]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVessel, vessel)
	}
	it, ok := inv[itemNumber]
	if !ok {
		return nil, fmt.Errorf("%w: %s aboard %s", ErrUnknownItem, itemNumber, vessel)
	}
	return it, nil
}

// GetInventory returns the live item map for a vessel. An unknown vessel
// yields an empty map, not an error; callers that need to distinguish an
// unregistered vessel from an empty one check registration separately.
func (r *Registry) GetInventory(vessel string) map[string]*item.StockItem {
	inv, ok := r.vessels[vessel]
	if !ok {
		return map[string]*item.StockItem{}
	}
	return inv
}

// ListAll returns the full fleet inventory for reporting.
func (r *Registry) ListAll() map[string]map[string]*item.StockItem {
	return r.vessels
}

// HasVessel reports whether the vessel is registered.
func (r *Registry) HasVessel(vessel string) bool {
	_, ok := r.vessels[vessel]
	return ok
}
