package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/fleet-inventory/internal/domain/item"
	"github.com/example/fleet-inventory/internal/domain/ticket"
)

// Column encoding shared by every backend: list fields are stored as JSON
// text, expiry dates as ISO calendar dates or NULL, booleans as 0/1.

const expiryDateLayout = "2006-01-02"

type itemRow struct {
	ItemNumber         string
	Name               string
	Description        string
	Location           string
	Unit               string
	Vendor             string
	Category           string
	ImagePath          string
	MinStock           int
	SafetyStock        int
	ExpiryDate         sql.NullString
	Documents          string
	Cost               float64
	Quantity           int
	UsageHistory       string
	MaintenanceRecords string
	AlertActive        int
}

func encodeItem(it *item.StockItem) (itemRow, error) {
	docs, err := json.Marshal(it.Documents)
	if err != nil {
		return itemRow{}, fmt.Errorf("encode documents: %w", err)
	}
	usage, err := json.Marshal(it.UsageHistory)
	if err != nil {
		return itemRow{}, fmt.Errorf("encode usage history: %w", err)
	}
	maint, err := json.Marshal(it.MaintenanceRecords)
	if err != nil {
		return itemRow{}, fmt.Errorf("encode maintenance records: %w", err)
	}

	row := itemRow{
		ItemNumber:         it.ItemNumber,
		Name:               it.Name,
		Description:        it.Description,
		Location:           it.Location,
		Unit:               it.Unit,
		Vendor:             it.Vendor,
		Category:           it.Category,
		ImagePath:          it.ImagePath,
		MinStock:           it.MinStock,
		SafetyStock:        it.SafetyStock,
		Documents:          string(docs),
		Cost:               it.Cost,
		Quantity:           it.Quantity,
		UsageHistory:       string(usage),
		MaintenanceRecords: string(maint),
		AlertActive:        boolToInt(it.AlertActive),
	}
	if it.ExpiryDate != nil {
		row.ExpiryDate = sql.NullString{String: it.ExpiryDate.Format(expiryDateLayout), Valid: true}
	}
	return row, nil
}

func decodeItem(row itemRow) (*item.StockItem, error) {
	it := &item.StockItem{
		ItemNumber:  row.ItemNumber,
		Name:        row.Name,
		Description: row.Description,
		Location:    row.Location,
		Unit:        row.Unit,
		Vendor:      row.Vendor,
		Category:    row.Category,
		ImagePath:   row.ImagePath,
		MinStock:    row.MinStock,
		SafetyStock: row.SafetyStock,
		Cost:        row.Cost,
		Quantity:    row.Quantity,
		AlertActive: row.AlertActive != 0,
	}
	if row.ExpiryDate.Valid {
		expiry, err := time.Parse(expiryDateLayout, row.ExpiryDate.String)
		if err != nil {
			return nil, fmt.Errorf("decode expiry date: %w", err)
		}
		it.ExpiryDate = &expiry
	}
	if err := decodeJSONList(row.Documents, &it.Documents); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	if err := decodeJSONList(row.UsageHistory, &it.UsageHistory); err != nil {
		return nil, fmt.Errorf("decode usage history: %w", err)
	}
	if err := decodeJSONList(row.MaintenanceRecords, &it.MaintenanceRecords); err != nil {
		return nil, fmt.Errorf("decode maintenance records: %w", err)
	}
	if it.Documents == nil {
		it.Documents = []string{}
	}
	if it.UsageHistory == nil {
		it.UsageHistory = []item.UsageRecord{}
	}
	if it.MaintenanceRecords == nil {
		it.MaintenanceRecords = []item.MaintenanceRecord{}
	}
	return it, nil
}

type ticketRow struct {
	ID            string
	Kind          string
	Vessel        string
	Description   string
	RequiredItems string
	Comments      string
	Documentation string
	Completed     int
}

func encodeTicket(t *ticket.Ticket) (ticketRow, error) {
	required, err := json.Marshal(t.RequiredItems)
	if err != nil {
		return ticketRow{}, fmt.Errorf("encode required items: %w", err)
	}
	comments, err := json.Marshal(t.Comments)
	if err != nil {
		return ticketRow{}, fmt.Errorf("encode comments: %w", err)
	}
	docs, err := json.Marshal(t.Documentation)
	if err != nil {
		return ticketRow{}, fmt.Errorf("encode documentation: %w", err)
	}
	return ticketRow{
		ID:            t.ID,
		Kind:          string(t.Kind),
		Vessel:        t.Vessel,
		Description:   t.Description,
		RequiredItems: string(required),
		Comments:      string(comments),
		Documentation: string(docs),
		Completed:     boolToInt(t.Completed),
	}, nil
}

func decodeTicket(row ticketRow) (*ticket.Ticket, error) {
	t := &ticket.Ticket{
		ID:          row.ID,
		Kind:        ticket.Kind(row.Kind),
		Vessel:      row.Vessel,
		Description: row.Description,
		Completed:   row.Completed != 0,
	}
	if err := decodeJSONList(row.RequiredItems, &t.RequiredItems); err != nil {
		return nil, fmt.Errorf("decode required items: %w", err)
	}
	if err := decodeJSONList(row.Comments, &t.Comments); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}
	if err := decodeJSONList(row.Documentation, &t.Documentation); err != nil {
		return nil, fmt.Errorf("decode documentation: %w", err)
	}
	if t.RequiredItems == nil {
		t.RequiredItems = []ticket.RequiredItem{}
	}
	if t.Comments == nil {
		t.Comments = []string{}
	}
	if t.Documentation == nil {
		t.Documentation = []string{}
	}
	return t, nil
}

func decodeJSONList(raw string, dst any) error {
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
