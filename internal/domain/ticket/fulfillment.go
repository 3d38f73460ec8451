package ticket

import (
	"fmt"

	"github.com/example/fleet-inventory/internal/domain/fleet"
)

// FulfillMaintenance completes a maintenance ticket by deducting each
// required line from the vessel's inventory, in line order.
//
// If any line fails (unknown item, insufficient stock) the ticket stays
// pending and the error is returned, but deductions already made for
// earlier lines are NOT rolled back. The caller reconciles by restocking
// or amending the ticket; the per-line usage history shows exactly what
// was taken.
func FulfillMaintenance(t *Ticket, reg *fleet.Registry, vessel string) error {
	if t.Completed {
		return ErrAlreadyCompleted
	}
	for _, line := range t.RequiredItems {
		if err := reg.RemoveStock(vessel, line.ItemNumber, line.Quantity); err != nil {
			return fmt.Errorf("required item %s: %w", line.ItemNumber, err)
		}
	}
	t.Completed = true
	return nil
}

// FulfillSafety completes a safety ticket. Safety work consumes no
// inventory.
func FulfillSafety(t *Ticket) error {
	if t.Completed {
		return ErrAlreadyCompleted
	}
	t.Completed = true
	return nil
}
