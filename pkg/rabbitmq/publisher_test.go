package rabbitmq

import (
	"context"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(exchange, key, msg.Body)
	return args.Error(0)
}

func (m *mockChannel) Close() error {
	return m.Called().Error(0)
}

type testEvent struct {
	payload []byte
	err     error
}

func (e testEvent) Subject() string { return "cart.item.added" }
func (e testEvent) Payload() ([]byte, error) { return e.payload, e.err }

func Test_Publisher_Publish(t *testing.T) {
	errBroker := errors.New("channel closed")
	errPayload := errors.New("bad payload")
	testCases := []struct {
		name      string
		event     testEvent
		setup     func(ch *mockChannel)
		expectErr error
	}{
		{
			name:  "published with subject as routing key",
			event: testEvent{payload: []byte(`{"product":"Charger"}`)},
			setup: func(ch *mockChannel) {
				ch.On("PublishWithContext", "cart.events", "cart.item.added", []byte(`{"product":"Charger"}`)).Return(nil).Once()
			},
		},
		{
			name:  "broker error is wrapped",
			event: testEvent{payload: []byte(`{}`)},
			setup: func(ch *mockChannel) {
				ch.On("PublishWithContext", "cart.events", "cart.item.added", []byte(`{}`)).Return(errBroker).Once()
			},
			expectErr: errBroker,
		},
		{
			name:      "payload error stops publishing",
			event:     testEvent{err: errPayload},
			setup:     func(*mockChannel) {},
			expectErr: errPayload,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			ch := new(mockChannel)
			tc.setup(ch)
			p := newPublisher(ch, "cart.events", time.Second)

			// when
			err := p.Publish(context.Background(), tc.event)

			// then
			if tc.expectErr != nil {
				require.ErrorIs(t, err, tc.expectErr)
			} else {
				require.NoError(t, err)
			}
			ch.AssertExpectations(t)
		})
	}
}

func Test_Publisher_Close(t *testing.T) {
	ch := new(mockChannel)
	ch.On("Close").Return(nil).Once()

	assert.NoError(t, newPublisher(ch, "cart.events", time.Second).Close())
	ch.AssertExpectations(t)
}
