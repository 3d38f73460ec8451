package ticket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/fleet-inventory/internal/clock"
	"github.com/example/fleet-inventory/internal/domain/fleet"
	"github.com/example/fleet-inventory/internal/domain/item"
)

func newTestFleet(t *testing.T) *fleet.Registry {
	t.Helper()
	reg := fleet.NewRegistry(clock.At(time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)))
	require.NoError(t, reg.RegisterVessel("MV Orion"))
	return reg
}

func TestNewMaintenance(t *testing.T) {
	tk := NewMaintenance("MV Orion", "replace impeller", []RequiredItem{{ItemNumber: "A1", Quantity: 2}})

	assert.NotEmpty(t, tk.ID)
	assert.Equal(t, KindMaintenance, tk.Kind)
	assert.Equal(t, "MV Orion", tk.Vessel)
	assert.False(t, tk.Completed)
	require.Len(t, tk.RequiredItems, 1)
	assert.NotNil(t, tk.Comments)
	assert.NotNil(t, tk.Documentation)
}

func TestNewMaintenance_NilRequired(t *testing.T) {
	tk := NewMaintenance("MV Orion", "inspection only", nil)
	assert.NotNil(t, tk.RequiredItems)
	assert.Empty(t, tk.RequiredItems)
}

func TestFulfillMaintenance_Success(t *testing.T) {
	reg := newTestFleet(t)
	require.NoError(t, reg.Restock("MV Orion", "A1", item.Attributes{Name: "Impeller"}, 5))
	tk := NewMaintenance("MV Orion", "replace impeller", []RequiredItem{{ItemNumber: "A1", Quantity: 2}})

	require.NoError(t, FulfillMaintenance(tk, reg, "MV Orion"))

	assert.True(t, tk.Completed)
	it, err := reg.Item("MV Orion", "A1")
	require.NoError(t, err)
	assert.Equal(t, 3, it.Quantity)
	require.Len(t, it.UsageHistory, 1)
	assert.Equal(t, 2, it.UsageHistory[0].Quantity)
}

func TestFulfillMaintenance_InsufficientStock(t *testing.T) {
	reg := newTestFleet(t)
	require.NoError(t, reg.Restock("MV Orion", "A1", item.Attributes{Name: "Impeller"}, 3))
	tk := NewMaintenance("MV Orion", "replace impeller", []RequiredItem{{ItemNumber: "A1", Quantity: 10}})

	err := FulfillMaintenance(tk, reg, "MV Orion")

	assert.ErrorIs(t, err, item.ErrInsufficientStock)
	assert.False(t, tk.Completed, "ticket stays pending on failure")
	it, lookupErr := reg.Item("MV Orion", "A1")
	require.NoError(t, lookupErr)
	assert.Equal(t, 3, it.Quantity)
	assert.Empty(t, it.UsageHistory)
}

func TestFulfillMaintenance_UnknownItem(t *testing.T) {
	reg := newTestFleet(t)
	tk := NewMaintenance("MV Orion", "replace impeller", []RequiredItem{{ItemNumber: "NOPE", Quantity: 1}})

	err := FulfillMaintenance(tk, reg, "MV Orion")

	assert.ErrorIs(t, err, fleet.ErrUnknownItem)
	assert.False(t, tk.Completed)
}

func TestFulfillMaintenance_PartialDeductionNotRolledBack(t *testing.T) {
	reg := newTestFleet(t)
	require.NoError(t, reg.Restock("MV Orion", "A1", item.Attributes{Name: "Impeller"}, 5))
	require.NoError(t, reg.Restock("MV Orion", "B2", item.Attributes{Name: "Gasket"}, 1))
	tk := NewMaintenance("MV Orion", "overhaul", []RequiredItem{
		{ItemNumber: "A1", Quantity: 2},
		{ItemNumber: "B2", Quantity: 5},
	})

	err := FulfillMaintenance(tk, reg, "MV Orion")

	assert.ErrorIs(t, err, item.ErrInsufficientStock)
	assert.False(t, tk.Completed)

	// The first line was deducted before the second failed and is kept.
	a1, lookupErr := reg.Item("MV Orion", "A1")
	require.NoError(t, lookupErr)
	assert.Equal(t, 3, a1.Quantity)
	assert.Len(t, a1.UsageHistory, 1)

	b2, lookupErr := reg.Item("MV Orion", "B2")
	require.NoError(t, lookupErr)
	assert.Equal(t, 1, b2.Quantity)
}

func TestFulfillMaintenance_AlreadyCompleted(t *testing.T) {
	reg := newTestFleet(t)
	require.NoError(t, reg.Restock("MV Orion", "A1", item.Attributes{Name: "Impeller"}, 5))
	tk := NewMaintenance("MV Orion", "replace impeller", []RequiredItem{{ItemNumber: "A1", Quantity: 2}})
	require.NoError(t, FulfillMaintenance(tk, reg, "MV Orion"))

	err := FulfillMaintenance(tk, reg, "MV Orion")

	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	it, lookupErr := reg.Item("MV Orion", "A1")
	require.NoError(t, lookupErr)
	assert.Equal(t, 3, it.Quantity, "no second deduction")
}

func TestFulfillSafety(t *testing.T) {
	tk := NewSafety("MV Orion", "fire drill")

	require.NoError(t, FulfillSafety(tk))
	assert.True(t, tk.Completed)

	err := FulfillSafety(tk)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestTicket_CommentsAfterCompletion(t *testing.T) {
	tk := NewSafety("MV Orion", "fire drill")
	require.NoError(t, FulfillSafety(tk))

	tk.AddComment("drill went fine")
	tk.AddDocumentation("drill-report.pdf")

	assert.Equal(t, []string{"drill went fine"}, tk.Comments)
	assert.Equal(t, []string{"drill-report.pdf"}, tk.Documentation)
}
