package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/example/fleet-inventory/internal/alert"
	"github.com/example/fleet-inventory/internal/email"
)

// Sender delivers a reorder alert to a list of recipients.
type Sender interface {
	SendReorderAlert(recipients []string, a email.ReorderAlert) error
}

// Handler consumes reorder alert events from the alerts topic and mails
// them to the configured recipients.
type Handler struct {
	sender     Sender
	recipients []string
}

func NewHandler(sender Sender, recipients []string) *Handler {
	return &Handler{
		sender:     sender,
		recipients: recipients,
	}
}

// HandleMessage processes one message from Kafka.
func (h *Handler) HandleMessage(ctx context.Context, key, value []byte) error {
	var event alert.RaisedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		log.Printf("[Notifier] Failed to unmarshal alert event: %v", err)
		return err
	}

	log.Printf("[Notifier] Reorder alert for %s (%s) on %s, quantity %d",
		event.ItemName, event.ItemNumber, event.Vessel, event.Quantity)

	err := h.sender.SendReorderAlert(h.recipients, email.ReorderAlert{
		Vessel:      event.Vessel,
		ItemNumber:  event.ItemNumber,
		ItemName:    event.ItemName,
		Quantity:    event.Quantity,
		MinStock:    event.MinStock,
		SafetyStock: event.SafetyStock,
	})
	if err != nil {
		log.Printf("[Notifier] Failed to send alert email: %v", err)
		return err
	}

	log.Printf("[Notifier] Alert email sent for %s on %s", event.ItemNumber, event.Vessel)
	return nil
}
