package audit

import (
	"context"
	"time"
)

// Event is one immutable audit record. Events are only ever appended;
// the system never mutates or removes them (retention is an operational
// concern outside the recorder).
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Role      string    `json:"role"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
}

// Recorder is an append-only audit sink. The domain core never calls it
// directly; the API layer wraps every stock mutation and ticket
// completion so each one lands here.
type Recorder interface {
	Record(ctx context.Context, actor, role, action, details string) (*Event, error)
	Events(ctx context.Context) ([]Event, error)
}
