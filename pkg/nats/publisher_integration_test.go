package nats

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcnats "github.com/testcontainers/testcontainers-go/modules/nats"
)

// skipIntegrationTests is the environment variable that controls whether to skip integration tests.
const skipIntegrationTests = "CART_SVC_SKIP_INTEGRATION_TESTS"
const natsImg = "nats:2.11.6-alpine"

type testEvent struct {
	subject string
	body    string
}

func (e testEvent) Subject() string          { return e.subject }
func (e testEvent) Payload() ([]byte, error) { return []byte(e.body), nil }

// PublisherSuite publishes cart events to a real JetStream server.
type PublisherSuite struct {
	suite.Suite
	ctx           context.Context
	logger        *slog.Logger
	natsContainer *tcnats.NATSContainer
	nc            *natsgo.Conn
	js            jetstream.JetStream
}

func (s *PublisherSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var err error
	s.natsContainer, err = tcnats.Run(s.ctx, natsImg)
	require.NoError(s.T(), err, "Failed to run NATS container")

	natsURL, err := s.natsContainer.ConnectionString(s.ctx)
	require.NoError(s.T(), err)
	s.nc, err = NewClient(natsURL, 5*time.Second)
	require.NoError(s.T(), err, "Failed to connect to NATS")

	s.js, err = NewJetStreamContext(s.nc)
	require.NoError(s.T(), err, "Failed to get JetStream context")

	require.NoError(s.T(), EnsureStream(s.ctx, s.js, "CART"))
	s.logger.Info("Initialization complete for PublisherSuite")
}

func (s *PublisherSuite) TearDownSuite() {
	if s.nc != nil {
		s.nc.Close()
	}
	if err := testcontainers.TerminateContainer(s.natsContainer); err != nil {
		s.logger.Error("Failed to terminate NATS container", "error", err)
	}
}

func TestPublisherIntegration(t *testing.T) {
	if os.Getenv(skipIntegrationTests) == "1" {
		t.Skip("Skipping integration tests based on " + skipIntegrationTests + " env var")
	}
	suite.Run(t, new(PublisherSuite))
}

func (s *PublisherSuite) TestPublishLandsInStream() {
	// given
	ctx, cancel := context.WithTimeout(s.ctx, 10*time.Second)
	defer cancel()
	publisher := NewNatsPublisher(s.js)
	event := testEvent{subject: "cart.item.added", body: `{"product":"Charger"}`}

	// when
	err := publisher.Publish(ctx, event)

	// then
	require.NoError(s.T(), err)
	consumer, err := s.js.OrderedConsumer(ctx, "CART", jetstream.OrderedConsumerConfig{
		FilterSubjects: []string{"cart.item.added"},
	})
	require.NoError(s.T(), err)
	msg, err := consumer.Next(jetstream.FetchMaxWait(5 * time.Second))
	require.NoError(s.T(), err)
	require.JSONEq(s.T(), `{"product":"Charger"}`, string(msg.Data()))
}

func (s *PublisherSuite) TestPublishOutsideStreamFails() {
	// given
	ctx, cancel := context.WithTimeout(s.ctx, 3*time.Second)
	defer cancel()
	publisher := NewNatsPublisher(s.js)

	// when
	err := publisher.Publish(ctx, testEvent{subject: "orders.created", body: `{}`})

	// then
	require.Error(s.T(), err, "no stream captures the subject")
}
