package rabbitmq

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"testing"

	"swiftstock/internal/models"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// MockAcknowledger is a mock implementation of amqp.Acknowledger
type MockAcknowledger struct {
	mock.Mock
}

func (m *MockAcknowledger) Ack(tag uint64, multiple bool) error {
	args := m.Called(tag, multiple)
	return args.Error(0)
}

func (m *MockAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	args := m.Called(tag, multiple, requeue)
	return args.Error(0)
}

func (m *MockAcknowledger) Reject(tag uint64, requeue bool) error {
	args := m.Called(tag, requeue)
	return args.Error(0)
}

func deliveries(t *testing.T, ack amqp.Acknowledger, bodies ...[]byte) <-chan amqp.Delivery {
	t.Helper()
	ch := make(chan amqp.Delivery, len(bodies))
	for i, body := range bodies {
		ch <- amqp.Delivery{Acknowledger: ack, DeliveryTag: uint64(i + 1), Body: body}
	}
	close(ch)
	return ch
}

func encoded(t *testing.T, id int64) []byte {
	t.Helper()
	body, err := json.Marshal(models.InventoryEvent{Entity: "product", Action: "created", ID: id})
	require.NoError(t, err)
	return body
}

func TestHandleDeliveries(t *testing.T) {
	ack := new(MockAcknowledger)
	ack.On("Ack", uint64(1), false).Return(nil).Once()
	ack.On("Nack", uint64(2), false, false).Return(nil).Once()
	ack.On("Nack", uint64(3), false, true).Return(nil).Once()
	ack.On("Ack", uint64(4), false).Return(nil).Once()

	var seen []int64
	err := handleDeliveries(deliveries(t, ack, encoded(t, 1), []byte("{not json"), encoded(t, 3), encoded(t, 4)),
		func(event models.InventoryEvent) error {
			seen = append(seen, event.ID)
			if event.ID == 3 {
				return fmt.Errorf("temporary failure")
			}
			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 4}, seen)
	ack.AssertExpectations(t)
}

func TestHandleDeliveries_StopConsuming(t *testing.T) {
	ack := new(MockAcknowledger)
	ack.On("Nack", uint64(1), false, true).Return(nil).Once()

	calls := 0
	err := handleDeliveries(deliveries(t, ack, encoded(t, 1), encoded(t, 2)),
		func(event models.InventoryEvent) error {
			calls++
			return fmt.Errorf("%w: output closed", ErrStopConsuming)
		})

	assert.ErrorIs(t, err, ErrStopConsuming)
	assert.Equal(t, 1, calls, "the second message is left for another consumer")
	ack.AssertExpectations(t)
	ack.AssertNotCalled(t, "Ack", mock.Anything, mock.Anything)
}
