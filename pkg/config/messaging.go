package config

import (
	"fmt"
	"strings"
)

// Supported message brokers for cart events.
const (
	BrokerNone     = "none"
	BrokerNATS     = "nats"
	BrokerRabbitMQ = "rabbitmq"
)

type MessagingConfig struct {
	Broker string `koanf:"broker"`
}

// String returns a string representation of the messaging configuration.
func (c *MessagingConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Messaging ---\n")
	b.WriteString(fmt.Sprintf("  broker: %s\n", c.Broker))
	return b.String()
}

func (c *MessagingConfig) Validate() error {
	if c.Broker == "" {
		c.Broker = BrokerNone
	}
	switch c.Broker {
	case BrokerNone, BrokerNATS, BrokerRabbitMQ:
		return nil
	default:
		return fmt.Errorf("unknown message broker: %s", c.Broker)
	}
}
