package rabbitmq_test

import (
	"encoding/json"
	"testing"
	"time"

	"swiftstock/internal/models"
	"swiftstock/pkg/rabbitmq"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeEvent(t *testing.T) {
	at := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	event := models.InventoryEvent{Entity: "product", Action: "created", ID: 7, Name: "Milk", OccurredAt: at}

	msg, err := rabbitmq.EncodeEvent(event)
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, "product.created", msg.Type)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, at, msg.Timestamp)

	var decoded models.InventoryEvent
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, event, decoded)
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := rabbitmq.NewClient(rabbitmq.Config{URL: "not-a-broker-url"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to RabbitMQ")
}
