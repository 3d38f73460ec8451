package store

import (
	"context"
	"database/sql"

	"github.com/example/fleet-inventory/internal/domain/ticket"
)

// PostgresTicketStore persists maintenance and safety tickets.
type PostgresTicketStore struct {
	db *sql.DB
}

func NewPostgresTicketStore(db *sql.DB) *PostgresTicketStore {
	return &PostgresTicketStore{db: db}
}

// SaveTicket inserts or updates a ticket row.
func (s *PostgresTicketStore) SaveTicket(ctx context.Context, t *ticket.Ticket) error {
	row, err := encodeTicket(t)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO tickets (id, kind, vessel_name, description, required_items, comments, documentation, completed)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 ON CONFLICT (id) DO UPDATE SET
			description = EXCLUDED.description,
			required_items = EXCLUDED.required_items,
			comments = EXCLUDED.comments,
			documentation = EXCLUDED.documentation,
			completed = EXCLUDED.completed`,
		row.ID, row.Kind, row.Vessel, row.Description, row.RequiredItems,
		row.Comments, row.Documentation, row.Completed,
	)
	return err
}

// LoadTickets returns stored tickets, optionally filtered by kind.
func (s *PostgresTicketStore) LoadTickets(ctx context.Context, kind ticket.Kind) ([]*ticket.Ticket, error) {
	query := `SELECT id, kind, vessel_name, description, required_items, comments, documentation, completed
		 FROM tickets`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = $1`
		args = append(args, string(kind))
	}
	query += ` ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []*ticket.Ticket
	for rows.Next() {
		var row ticketRow
		if err := rows.Scan(
			&row.ID, &row.Kind, &row.Vessel, &row.Description,
			&row.RequiredItems, &row.Comments, &row.Documentation, &row.Completed,
		); err != nil {
			return nil, err
		}
		t, err := decodeTicket(row)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}
