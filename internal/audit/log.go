package audit

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/example/fleet-inventory/internal/clock"
	"github.com/example/fleet-inventory/internal/infrastructure/kafka"
)

// Log is an in-memory Recorder. If a Kafka producer is attached, every
// recorded event is also published for downstream consumers.
type Log struct {
	mu       sync.RWMutex
	events   []Event
	producer *kafka.Producer
	clk      clock.Clock
}

// NewLog creates an in-memory audit log. producer may be nil.
func NewLog(producer *kafka.Producer, clk clock.Clock) *Log {
	return &Log{producer: producer, clk: clk}
}

// Record appends an event and publishes it.
func (l *Log) Record(ctx context.Context, actor, role, action, details string) (*Event, error) {
	event := Event{
		ID:        uuid.New().String(),
		Timestamp: l.clk.Now(),
		Actor:     actor,
		Role:      role,
		Action:    action,
		Details:   details,
	}

	l.mu.Lock()
	l.events = append(l.events, event)
	l.mu.Unlock()

	if l.producer != nil {
		if err := l.producer.Publish(ctx, event.ID, event); err != nil {
			return nil, err
		}
	}

	return &event, nil
}

// Events returns a copy of everything recorded so far, oldest first.
func (l *Log) Events(ctx context.Context) ([]Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out, nil
}
