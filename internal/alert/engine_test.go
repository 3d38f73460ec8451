package alert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/fleet-inventory/internal/clock"
	"github.com/example/fleet-inventory/internal/domain/fleet"
	"github.com/example/fleet-inventory/internal/domain/item"
)

type recordingNotifier struct {
	sent []string
}

func (n *recordingNotifier) SendAlert(vessel string, it *item.StockItem) {
	n.sent = append(n.sent, vessel+"/"+it.ItemNumber)
}

func newAlertFixture(t *testing.T) (*fleet.Registry, *recordingNotifier, *Engine) {
	t.Helper()
	reg := fleet.NewRegistry(clock.At(time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)))
	require.NoError(t, reg.RegisterVessel("MV Orion"))
	notifier := &recordingNotifier{}
	return reg, notifier, NewEngine(notifier)
}

func stockItem(t *testing.T, reg *fleet.Registry, number string, quantity, minStock, safetyStock int) {
	t.Helper()
	require.NoError(t, reg.Restock("MV Orion", number, item.Attributes{
		Name:        "Part " + number,
		MinStock:    minStock,
		SafetyStock: safetyStock,
	}, quantity))
}

func TestEngine_Scan_FiresOnceAtThreshold(t *testing.T) {
	reg, notifier, engine := newAlertFixture(t)
	stockItem(t, reg, "A1", 10, 5, 5)

	alerts := engine.Scan(reg)

	require.Len(t, alerts, 1)
	assert.Equal(t, "MV Orion", alerts[0].Vessel)
	assert.Equal(t, "A1", alerts[0].Item.ItemNumber)
	assert.Equal(t, []string{"MV Orion/A1"}, notifier.sent)
	assert.True(t, alerts[0].Item.AlertActive)
}

func TestEngine_Scan_SecondScanStaysQuiet(t *testing.T) {
	reg, notifier, engine := newAlertFixture(t)
	stockItem(t, reg, "A1", 10, 5, 5)

	first := engine.Scan(reg)
	second := engine.Scan(reg)

	assert.Len(t, first, 1)
	assert.Len(t, second, 1, "item is still below threshold so it stays listed")
	assert.Len(t, notifier.sent, 1, "no duplicate notification without a stock change")
}

func TestEngine_Scan_RestockClearsSilently(t *testing.T) {
	reg, notifier, engine := newAlertFixture(t)
	stockItem(t, reg, "A1", 10, 5, 5)

	engine.Scan(reg)
	require.NoError(t, reg.Restock("MV Orion", "A1", item.Attributes{}, 1)) // now 11

	alerts := engine.Scan(reg)

	assert.Empty(t, alerts)
	assert.Len(t, notifier.sent, 1, "recovery does not notify")

	it, err := reg.Item("MV Orion", "A1")
	require.NoError(t, err)
	assert.False(t, it.AlertActive)
}

func TestEngine_Scan_NewEpisodeFiresAgain(t *testing.T) {
	reg, notifier, engine := newAlertFixture(t)
	stockItem(t, reg, "A1", 10, 5, 5)

	engine.Scan(reg)                                                       // fires
	require.NoError(t, reg.Restock("MV Orion", "A1", item.Attributes{}, 1)) // 11, above
	engine.Scan(reg)                                                       // clears
	require.NoError(t, reg.RemoveStock("MV Orion", "A1", 2))               // 9, below again

	alerts := engine.Scan(reg)

	require.Len(t, alerts, 1)
	assert.Equal(t, []string{"MV Orion/A1", "MV Orion/A1"}, notifier.sent,
		"a fresh below-threshold episode gets exactly one new notification")
}

func TestEngine_Scan_AboveThresholdNeverFires(t *testing.T) {
	reg, notifier, engine := newAlertFixture(t)
	stockItem(t, reg, "A1", 11, 5, 5)

	alerts := engine.Scan(reg)

	assert.Empty(t, alerts)
	assert.Empty(t, notifier.sent)
}

func TestEngine_Scan_SortedAcrossVesselsAndItems(t *testing.T) {
	reg, notifier, engine := newAlertFixture(t)
	require.NoError(t, reg.RegisterVessel("MV Aurora"))
	stockItem(t, reg, "B2", 0, 1, 0)
	stockItem(t, reg, "A1", 0, 1, 0)
	require.NoError(t, reg.Restock("MV Aurora", "C3", item.Attributes{MinStock: 1}, 0))

	alerts := engine.Scan(reg)

	require.Len(t, alerts, 3)
	assert.Equal(t, []string{"MV Aurora/C3", "MV Orion/A1", "MV Orion/B2"}, notifier.sent)
}

func TestActiveAlerts_ReadOnly(t *testing.T) {
	reg, notifier, _ := newAlertFixture(t)
	stockItem(t, reg, "A1", 10, 5, 5)

	alerts := ActiveAlerts(reg)

	require.Len(t, alerts, 1)
	assert.Empty(t, notifier.sent, "listing does not notify")

	it, err := reg.Item("MV Orion", "A1")
	require.NoError(t, err)
	assert.False(t, it.AlertActive, "listing does not change alert state")
}
