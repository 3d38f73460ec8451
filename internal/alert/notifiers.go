package alert

import (
	"context"
	"log"
	"time"

	"github.com/example/fleet-inventory/internal/domain/item"
	"github.com/example/fleet-inventory/internal/email"
	"github.com/example/fleet-inventory/internal/infrastructure/kafka"
)

// EventAlertRaised is the type tag on published alert events.
const EventAlertRaised = "ReorderAlertRaised"

// RaisedEvent is the wire form of a reorder alert, published for the
// standalone notifier.
type RaisedEvent struct {
	Vessel      string    `json:"vessel"`
	ItemNumber  string    `json:"item_number"`
	ItemName    string    `json:"item_name"`
	Quantity    int       `json:"quantity"`
	MinStock    int       `json:"min_stock"`
	SafetyStock int       `json:"safety_stock"`
	RaisedAt    time.Time `json:"raised_at"`
}

// KafkaNotifier publishes reorder alerts to the alerts topic. Delivery
// failures are logged and dropped; the alert engine never blocks on them.
type KafkaNotifier struct {
	producer *kafka.Producer
}

func NewKafkaNotifier(producer *kafka.Producer) *KafkaNotifier {
	return &KafkaNotifier{producer: producer}
}

func (n *KafkaNotifier) SendAlert(vessel string, it *item.StockItem) {
	event := RaisedEvent{
		Vessel:      vessel,
		ItemNumber:  it.ItemNumber,
		ItemName:    it.Name,
		Quantity:    it.Quantity,
		MinStock:    it.MinStock,
		SafetyStock: it.SafetyStock,
		RaisedAt:    time.Now(),
	}
	if err := n.producer.Publish(context.Background(), vessel+"/"+it.ItemNumber, event); err != nil {
		log.Printf("[Alert] Failed to publish alert for %s on %s: %v", it.ItemNumber, vessel, err)
	}
}

// EmailNotifier mails reorder alerts directly, for deployments without a
// broker.
type EmailNotifier struct {
	service    *email.Service
	recipients []string
}

func NewEmailNotifier(service *email.Service, recipients []string) *EmailNotifier {
	return &EmailNotifier{service: service, recipients: recipients}
}

func (n *EmailNotifier) SendAlert(vessel string, it *item.StockItem) {
	err := n.service.SendReorderAlert(n.recipients, email.ReorderAlert{
		Vessel:      vessel,
		ItemNumber:  it.ItemNumber,
		ItemName:    it.Name,
		Quantity:    it.Quantity,
		MinStock:    it.MinStock,
		SafetyStock: it.SafetyStock,
	})
	if err != nil {
		log.Printf("[Alert] Failed to send alert email for %s on %s: %v", it.ItemNumber, vessel, err)
	}
}
