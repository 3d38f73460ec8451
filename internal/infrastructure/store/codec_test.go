package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/fleet-inventory/internal/domain/item"
	"github.com/example/fleet-inventory/internal/domain/ticket"
)

func TestItemCodec_RoundTrip(t *testing.T) {
	expiry := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	used := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)

	it := item.New("A1", item.Attributes{
		Name:        "Oil Filter",
		Description: "primary engine oil filter",
		Location:    "engine room, shelf 2",
		Unit:        "each",
		Vendor:      "Baldwin",
		Category:    "engine",
		ImagePath:   "images/a1.png",
		Documents:   []string{"datasheet.pdf"},
		Cost:        12.5,
		MinStock:    4,
		SafetyStock: 2,
		ExpiryDate:  &expiry,
	}, 9)
	it.UsageHistory = []item.UsageRecord{{Timestamp: used, Quantity: 3}}
	it.MaintenanceRecords = []item.MaintenanceRecord{{Timestamp: used, Note: "swapped during service"}}
	it.AlertActive = true

	row, err := encodeItem(it)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", row.ExpiryDate.String)
	assert.Equal(t, 1, row.AlertActive)

	decoded, err := decodeItem(row)
	require.NoError(t, err)

	assert.Equal(t, it.ItemNumber, decoded.ItemNumber)
	assert.Equal(t, it.Name, decoded.Name)
	assert.Equal(t, it.Location, decoded.Location)
	assert.Equal(t, it.Documents, decoded.Documents)
	assert.Equal(t, it.Cost, decoded.Cost)
	assert.Equal(t, it.Quantity, decoded.Quantity)
	assert.Equal(t, it.MinStock, decoded.MinStock)
	assert.Equal(t, it.SafetyStock, decoded.SafetyStock)
	assert.True(t, decoded.AlertActive)

	require.NotNil(t, decoded.ExpiryDate)
	assert.Equal(t, "2025-03-01", decoded.ExpiryDate.Format("2006-01-02"))

	require.Len(t, decoded.UsageHistory, 1)
	assert.Equal(t, 3, decoded.UsageHistory[0].Quantity)
	assert.True(t, decoded.UsageHistory[0].Timestamp.Equal(used))

	require.Len(t, decoded.MaintenanceRecords, 1)
	assert.Equal(t, "swapped during service", decoded.MaintenanceRecords[0].Note)
}

func TestItemCodec_RoundTrip_Minimal(t *testing.T) {
	it := item.New("B2", item.Attributes{Name: "Shackle"}, 0)

	row, err := encodeItem(it)
	require.NoError(t, err)
	assert.False(t, row.ExpiryDate.Valid, "no expiry encodes as NULL")
	assert.Equal(t, 0, row.AlertActive)

	decoded, err := decodeItem(row)
	require.NoError(t, err)

	assert.Nil(t, decoded.ExpiryDate)
	assert.False(t, decoded.AlertActive)
	assert.NotNil(t, decoded.Documents)
	assert.Empty(t, decoded.Documents)
	assert.NotNil(t, decoded.UsageHistory)
	assert.Empty(t, decoded.UsageHistory)
	assert.NotNil(t, decoded.MaintenanceRecords)
}

func TestDecodeItem_EmptyColumns(t *testing.T) {
	// Rows written by older tooling may carry empty strings instead of
	// JSON arrays; decoding yields empty slices, never nil.
	decoded, err := decodeItem(itemRow{ItemNumber: "C3"})
	require.NoError(t, err)

	assert.NotNil(t, decoded.Documents)
	assert.NotNil(t, decoded.UsageHistory)
	assert.NotNil(t, decoded.MaintenanceRecords)
}

func TestDecodeItem_BadExpiry(t *testing.T) {
	_, err := decodeItem(itemRow{
		ItemNumber: "C3",
		ExpiryDate: sql.NullString{String: "not-a-date", Valid: true},
	})
	assert.Error(t, err)
}

func TestTicketCodec_RoundTrip(t *testing.T) {
	tk := ticket.NewMaintenance("MV Orion", "replace impeller", []ticket.RequiredItem{
		{ItemNumber: "A1", Quantity: 2},
		{ItemNumber: "B2", Quantity: 1},
	})
	tk.AddComment("ordered parts")
	tk.AddDocumentation("work-order.pdf")
	tk.Completed = true

	row, err := encodeTicket(tk)
	require.NoError(t, err)
	assert.Equal(t, "maintenance", row.Kind)
	assert.Equal(t, 1, row.Completed)

	decoded, err := decodeTicket(row)
	require.NoError(t, err)

	assert.Equal(t, tk.ID, decoded.ID)
	assert.Equal(t, ticket.KindMaintenance, decoded.Kind)
	assert.Equal(t, tk.Vessel, decoded.Vessel)
	assert.Equal(t, tk.RequiredItems, decoded.RequiredItems,
		"required lines keep their order through storage")
	assert.Equal(t, []string{"ordered parts"}, decoded.Comments)
	assert.Equal(t, []string{"work-order.pdf"}, decoded.Documentation)
	assert.True(t, decoded.Completed)
}

func TestTicketCodec_RoundTrip_Safety(t *testing.T) {
	tk := ticket.NewSafety("MV Orion", "fire drill")

	row, err := encodeTicket(tk)
	require.NoError(t, err)

	decoded, err := decodeTicket(row)
	require.NoError(t, err)

	assert.Equal(t, ticket.KindSafety, decoded.Kind)
	assert.NotNil(t, decoded.RequiredItems)
	assert.Empty(t, decoded.RequiredItems)
	assert.False(t, decoded.Completed)
}
