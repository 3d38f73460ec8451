package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/example/fleet-inventory/internal/audit"
	"github.com/example/fleet-inventory/internal/clock"
	"github.com/example/fleet-inventory/internal/infrastructure/kafka"
)

// PostgresAuditStore is an append-only audit recorder backed by the
// audit_logs table. Recorded events are also published to Kafka when a
// producer is attached.
type PostgresAuditStore struct {
	db       *sql.DB
	producer *kafka.Producer
	clk      clock.Clock
}

func NewPostgresAuditStore(db *sql.DB, producer *kafka.Producer, clk clock.Clock) *PostgresAuditStore {
	return &PostgresAuditStore{db: db, producer: producer, clk: clk}
}

// Record appends one audit event. Rows are never updated or deleted here;
// retention is handled outside the application.
func (s *PostgresAuditStore) Record(ctx context.Context, actor, role, action, details string) (*audit.Event, error) {
	event := audit.Event{
		ID:        uuid.New().String(),
		Timestamp: s.clk.Now(),
		Actor:     actor,
		Role:      role,
		Action:    action,
		Details:   details,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_logs (id, timestamp, actor, role, action, details)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		event.ID, event.Timestamp, event.Actor, event.Role, event.Action, event.Details,
	)
	if err != nil {
		return nil, err
	}

	if s.producer != nil {
		if err := s.producer.Publish(ctx, event.ID, event); err != nil {
			return nil, err
		}
	}

	return &event, nil
}

// Events returns the audit trail, oldest first.
func (s *PostgresAuditStore) Events(ctx context.Context) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, actor, role, action, details
		 FROM audit_logs
		 ORDER BY timestamp ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var e audit.Event
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Actor, &e.Role, &e.Action, &e.Details); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
