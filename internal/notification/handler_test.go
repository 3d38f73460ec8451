package notification

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/fleet-inventory/internal/alert"
	"github.com/example/fleet-inventory/internal/email"
)

type fakeSender struct {
	recipients []string
	alerts     []email.ReorderAlert
	err        error
}

func (s *fakeSender) SendReorderAlert(recipients []string, a email.ReorderAlert) error {
	if s.err != nil {
		return s.err
	}
	s.recipients = recipients
	s.alerts = append(s.alerts, a)
	return nil
}

func TestHandler_HandleMessage(t *testing.T) {
	sender := &fakeSender{}
	handler := NewHandler(sender, []string{"office@example.com"})

	event := alert.RaisedEvent{
		Vessel:      "MV Orion",
		ItemNumber:  "A1",
		ItemName:    "Oil Filter",
		Quantity:    3,
		MinStock:    5,
		SafetyStock: 2,
		RaisedAt:    time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
	}
	value, err := json.Marshal(event)
	require.NoError(t, err)

	err = handler.HandleMessage(context.Background(), []byte("MV Orion/A1"), value)
	require.NoError(t, err)

	assert.Equal(t, []string{"office@example.com"}, sender.recipients)
	require.Len(t, sender.alerts, 1)
	assert.Equal(t, "MV Orion", sender.alerts[0].Vessel)
	assert.Equal(t, "A1", sender.alerts[0].ItemNumber)
	assert.Equal(t, 3, sender.alerts[0].Quantity)
	assert.Equal(t, 5, sender.alerts[0].MinStock)
}

func TestHandler_HandleMessage_BadPayload(t *testing.T) {
	sender := &fakeSender{}
	handler := NewHandler(sender, []string{"office@example.com"})

	err := handler.HandleMessage(context.Background(), []byte("key"), []byte("{not json"))

	assert.Error(t, err)
	assert.Empty(t, sender.alerts)
}

func TestHandler_HandleMessage_SendFailure(t *testing.T) {
	sender := &fakeSender{err: assert.AnError}
	handler := NewHandler(sender, []string{"office@example.com"})

	value, err := json.Marshal(alert.RaisedEvent{Vessel: "MV Orion", ItemNumber: "A1"})
	require.NoError(t, err)

	err = handler.HandleMessage(context.Background(), []byte("key"), value)
	assert.ErrorIs(t, err, assert.AnError)
}
