package config

import (
	"fmt"
	"strings"
	"time"
)

type RabbitMQConfig struct {
	URL      string        `koanf:"url"`
	Exchange string        `koanf:"exchange"`
	Timeout  time.Duration `koanf:"timeout"`
}

// String returns a string representation of the RabbitMQ configuration.
func (c *RabbitMQConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- RabbitMQ ---\n")
	b.WriteString(fmt.Sprintf("  url: %s\n", MaskURL(c.URL)))
	b.WriteString(fmt.Sprintf("  exchange: %s\n", c.Exchange))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *RabbitMQConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("RabbitMQ URL is not configured")
	}
	if c.Exchange == "" {
		return fmt.Errorf("RabbitMQ exchange is not configured")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("RabbitMQ publish timeout is not configured")
	}
	return nil
}
