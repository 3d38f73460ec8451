package store

import (
	"context"

	"github.com/example/fleet-inventory/internal/domain/item"
	"github.com/example/fleet-inventory/internal/domain/ticket"
)

// ItemStore persists per-vessel stock items.
type ItemStore interface {
	SaveItem(ctx context.Context, vessel string, it *item.StockItem) error
	LoadVesselInventory(ctx context.Context, vessel string) ([]*item.StockItem, error)
}

// TicketStore persists maintenance and safety tickets. A zero-value kind
// loads every ticket.
type TicketStore interface {
	SaveTicket(ctx context.Context, t *ticket.Ticket) error
	LoadTickets(ctx context.Context, kind ticket.Kind) ([]*ticket.Ticket, error)
}
