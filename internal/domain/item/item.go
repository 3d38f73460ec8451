package item

import (
	"errors"
	"time"

	"github.com/example/fleet-inventory/internal/clock"
)

var (
	ErrInvalidQuantity   = errors.New("quantity must not be negative")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidPeriod     = errors.New("invalid usage period")
)

// Period selects the lookback window for usage-cost reporting.
type Period string

const (
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodYearly    Period = "yearly"
)

// Window returns the lookback duration for the period.
func (p Period) Window() (time.Duration, error) {
	switch p {
	case PeriodMonthly:
		return 30 * 24 * time.Hour, nil
	case PeriodQuarterly:
		return 90 * 24 * time.Hour, nil
	case PeriodYearly:
		return 365 * 24 * time.Hour, nil
	default:
		return 0, ErrInvalidPeriod
	}
}

// UsageRecord is one stock removal. Records are append-only; once written
// they are never modified.
type UsageRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Quantity  int       `json:"quantity"`
}

// MaintenanceRecord is an opaque note attached to an item, e.g. an
// installation or inspection entry.
type MaintenanceRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note"`
}

// StockItem is one stocked part or consumable aboard one vessel.
// Quantity only changes through Add and Remove.
type StockItem struct {
	ItemNumber  string   `json:"item_number"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Unit        string   `json:"unit"`
	Vendor      string   `json:"vendor"`
	Category    string   `json:"category"`
	ImagePath   string   `json:"image_path,omitempty"`
	Documents   []string `json:"documents"`

	Cost     float64 `json:"cost"`
	Quantity int     `json:"quantity"`

	MinStock    int `json:"min_stock"`
	SafetyStock int `json:"safety_stock"`

	ExpiryDate         *time.Time          `json:"expiry_date,omitempty"`
	UsageHistory       []UsageRecord       `json:"usage_history"`
	MaintenanceRecords []MaintenanceRecord `json:"maintenance_records"`

	// AlertActive marks that a reorder notification has already been sent
	// for the current below-threshold episode.
	AlertActive bool `json:"alert_active"`
}

// Attributes carries the descriptive fields used when creating or editing
// an item. Quantity is handled separately so a restock never clobbers them.
type Attributes struct {
	Name        string
	Description string
	Location    string
	Unit        string
	Vendor      string
	Category    string
	ImagePath   string
	Documents   []string
	Cost        float64
	MinStock    int
	SafetyStock int
	ExpiryDate  *time.Time
}

// New constructs a StockItem with the given starting quantity.
func New(itemNumber string, attrs Attributes, quantity int) *StockItem {
	docs := attrs.Documents
	if docs == nil {
		docs = []string{}
	}
	return &StockItem{
		ItemNumber:         itemNumber,
		Name:               attrs.Name,
		Description:        attrs.Description,
		Location:           attrs.Location,
		Unit:               attrs.Unit,
		Vendor:             attrs.Vendor,
		Category:           attrs.Category,
		ImagePath:          attrs.ImagePath,
		Documents:          docs,
		Cost:               attrs.Cost,
		MinStock:           attrs.MinStock,
		SafetyStock:        attrs.SafetyStock,
		ExpiryDate:         attrs.ExpiryDate,
		Quantity:           quantity,
		UsageHistory:       []UsageRecord{},
		MaintenanceRecords: []MaintenanceRecord{},
	}
}

// Add increases the on-hand quantity. Additions are not recorded in the
// usage history.
func (s *StockItem) Add(quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	s.Quantity += quantity
	return nil
}

// Remove decrements the on-hand quantity and appends a usage record.
// The operation is all-or-nothing: on ErrInsufficientStock nothing changes.
// Removing zero succeeds without touching state or history.
func (s *StockItem) Remove(quantity int, clk clock.Clock) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	if s.Quantity < quantity {
		return ErrInsufficientStock
	}
	if quantity == 0 {
		return nil
	}
	s.Quantity -= quantity
	s.UsageHistory = append(s.UsageHistory, UsageRecord{
		Timestamp: clk.Now(),
		Quantity:  quantity,
	})
	return nil
}

// CheckReorder reports whether the item is at or below its reorder
// threshold (min stock plus safety stock).
func (s *StockItem) CheckReorder() bool {
	return s.Quantity <= s.MinStock+s.SafetyStock
}

// ReorderThreshold returns min stock plus safety stock.
func (s *StockItem) ReorderThreshold() int {
	return s.MinStock + s.SafetyStock
}

// AddMaintenanceRecord appends a maintenance entry.
func (s *StockItem) AddMaintenanceRecord(rec MaintenanceRecord) {
	s.MaintenanceRecords = append(s.MaintenanceRecords, rec)
}

// UsageCost sums quantity*cost over usage records no older than the
// period's window, measured from the clock's current time.
func (s *StockItem) UsageCost(period Period, clk clock.Clock) (float64, error) {
	window, err := period.Window()
	if err != nil {
		return 0, err
	}
	now := clk.Now()
	var total float64
	for _, rec := range s.UsageHistory {
		if now.Sub(rec.Timestamp) <= window {
			total += float64(rec.Quantity) * s.Cost
		}
	}
	return total, nil
}

// IsExpired reports whether the item is past its expiry date. Items
// without an expiry date never expire.
func (s *StockItem) IsExpired(clk clock.Clock) bool {
	if s.ExpiryDate == nil {
		return false
	}
	return clk.Now().After(*s.ExpiryDate)
}
