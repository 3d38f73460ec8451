package email

import "fmt"

// ReorderAlert carries the details of one low-stock warning.
type ReorderAlert struct {
	Vessel      string
	ItemNumber  string
	ItemName    string
	Quantity    int
	MinStock    int
	SafetyStock int
}

// BuildReorderAlertBody builds the plain-text body for a reorder alert.
func BuildReorderAlertBody(a ReorderAlert) string {
	return fmt.Sprintf(
		"Item %s (Item Number: %s) on vessel '%s' is below its reorder threshold.\n"+
			"Current Quantity: %d\n"+
			"Minimum Stock: %d | Safety Stock: %d\n"+
			"Please reorder as soon as possible.\n",
		a.ItemName, a.ItemNumber, a.Vessel, a.Quantity, a.MinStock, a.SafetyStock,
	)
}
