package config

import (
	"fmt"
	"strings"

	"github.com/abgdnv/gocart/pkg/config"
	"github.com/abgdnv/gocart/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig       `koanf:"server"`
	GrpcServer config.GrpcServerConfig `koanf:"grpc"`
	Log        config.LogConfig        `koanf:"log"`
	PProf      config.PProfConfig      `koanf:"pprof"`
	Shutdown   config.ShutdownConfig   `koanf:"shutdown"`
	Telemetry  config.TelemetryConfig  `koanf:"telemetry"`
	Storage    config.StorageConfig    `koanf:"storage"`
	Database   config.DatabaseConfig   `koanf:"database"`
	Redis      config.RedisConfig      `koanf:"redis"`
	MySQL      config.MySQLConfig      `koanf:"mysql"`
	Messaging  config.MessagingConfig  `koanf:"messaging"`
	Nats       config.NATSConfig       `koanf:"nats"`
	RabbitMQ   config.RabbitMQConfig   `koanf:"rabbitmq"`
	Resilience config.ResilienceConfig `koanf:"resilience"`
	Cart       config.CartConfig       `koanf:"cart"`
	UI         config.UIConfig         `koanf:"ui"`
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString("\n--- Server Configuration ---\n")
	b.WriteString(fmt.Sprintf("  server.port: %d\n", c.HTTPServer.Port))
	b.WriteString(fmt.Sprintf("  server.maxHeaderBytes: %d\n", c.HTTPServer.MaxHeaderBytes))
	b.WriteString(fmt.Sprintf("  server.timeout.read: %v\n", c.HTTPServer.Timeout.Read))
	b.WriteString(fmt.Sprintf("  server.timeout.write: %v\n", c.HTTPServer.Timeout.Write))
	b.WriteString(fmt.Sprintf("  server.timeout.idle: %v\n", c.HTTPServer.Timeout.Idle))
	b.WriteString(fmt.Sprintf("  server.timeout.readHeader: %v\n", c.HTTPServer.Timeout.ReadHeader))
	b.WriteString(fmt.Sprintf("  grpc.enabled: %t\n", c.GrpcServer.Enabled))
	b.WriteString(fmt.Sprintf("  grpc.port: %s\n", c.GrpcServer.Port))
	b.WriteString(fmt.Sprintf("  grpc.reflection: %t\n", c.GrpcServer.ReflectionEnabled))

	b.WriteString("\n--- Cart Storage ---\n")
	b.WriteString(fmt.Sprintf("  storage.backend: %s\n", c.Storage.Backend))
	b.WriteString(fmt.Sprintf("  storage.keyprefix: %s\n", c.Storage.KeyPrefix))
	b.WriteString(fmt.Sprintf("  storage.ttl: %v\n", c.Storage.TTL))
	switch c.Storage.Backend {
	case config.StoragePostgres:
		b.WriteString(fmt.Sprintf("  database.url: %s\n", config.MaskURL(c.Database.URL)))
		b.WriteString(fmt.Sprintf("  database.timeout: %s\n", c.Database.Timeout))
	case config.StorageRedis:
		b.WriteString(fmt.Sprintf("  redis.addr: %s\n", c.Redis.Addr))
		b.WriteString(fmt.Sprintf("  redis.db: %d\n", c.Redis.DB))
		b.WriteString(fmt.Sprintf("  redis.timeout: %s\n", c.Redis.Timeout))
	case config.StorageMySQL:
		b.WriteString(fmt.Sprintf("  mysql.dsn: %s\n", config.MaskURL(c.MySQL.DSN)))
		b.WriteString(fmt.Sprintf("  mysql.timeout: %s\n", c.MySQL.Timeout))
	}
	b.WriteString(fmt.Sprintf("  resilience.circuitbreaker.enabled: %t\n", c.Resilience.CircuitBreaker.Enabled))

	b.WriteString("\n--- Messaging ---\n")
	b.WriteString(fmt.Sprintf("  messaging.broker: %s\n", c.Messaging.Broker))
	switch c.Messaging.Broker {
	case config.BrokerNATS:
		b.WriteString(fmt.Sprintf("  nats.url: %s\n", c.Nats.Url))
		b.WriteString(fmt.Sprintf("  nats.stream: %s\n", c.Nats.Stream))
		b.WriteString(fmt.Sprintf("  nats.timeout: %s\n", c.Nats.Timeout))
	case config.BrokerRabbitMQ:
		b.WriteString(fmt.Sprintf("  rabbitmq.url: %s\n", config.MaskURL(c.RabbitMQ.URL)))
		b.WriteString(fmt.Sprintf("  rabbitmq.exchange: %s\n", c.RabbitMQ.Exchange))
		b.WriteString(fmt.Sprintf("  rabbitmq.timeout: %s\n", c.RabbitMQ.Timeout))
	}

	b.WriteString("\n--- Observability & Logging ---\n")
	b.WriteString(fmt.Sprintf("  log.level: %s\n", c.Log.Level))
	b.WriteString(fmt.Sprintf("  pprof.enabled: %t\n", c.PProf.Enabled))
	b.WriteString(fmt.Sprintf("  pprof.address: %s\n", c.PProf.Addr))
	b.WriteString(c.Telemetry.String())

	b.WriteString("\n--- Application Behavior ---\n")
	b.WriteString(fmt.Sprintf("  shutdown.timeout: %s\n", c.Shutdown.Timeout))
	b.WriteString(fmt.Sprintf("  cart.currencyprefix: %s\n", c.Cart.CurrencyPrefix))
	b.WriteString(fmt.Sprintf("  cart.strictrestore: %t\n", c.Cart.StrictRestore))
	b.WriteString(fmt.Sprintf("  cart.timeout: %s\n", c.Cart.Timeout))
	b.WriteString(fmt.Sprintf("  ui.display: %s\n", c.UI.Display))
	b.WriteString(fmt.Sprintf("  ui.mobilenav: %s\n", c.UI.MobileNav))
	b.WriteString(fmt.Sprintf("  ui.notificationdismiss: %s\n", c.UI.NotificationDismiss))
	b.WriteString(fmt.Sprintf("  ui.checkoutpage: %s\n", c.UI.CheckoutPage))

	return b.String()
}

// Validate checks if the configuration values are valid.
// Backend and broker sections are only checked when selected.
func (c *Config) Validate() error {
	if err := c.HTTPServer.Validate(); err != nil {
		return err
	}
	if err := c.GrpcServer.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.PProf.Validate(); err != nil {
		return err
	}
	if err := c.Shutdown.Validate(); err != nil {
		return err
	}
	if err := c.Telemetry.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	switch c.Storage.Backend {
	case config.StoragePostgres:
		if err := c.Database.Validate(); err != nil {
			return err
		}
	case config.StorageRedis:
		if err := c.Redis.Validate(); err != nil {
			return err
		}
	case config.StorageMySQL:
		if err := c.MySQL.Validate(); err != nil {
			return err
		}
	}
	if err := c.Messaging.Validate(); err != nil {
		return err
	}
	switch c.Messaging.Broker {
	case config.BrokerNATS:
		if err := c.Nats.Validate(); err != nil {
			return err
		}
	case config.BrokerRabbitMQ:
		if err := c.RabbitMQ.Validate(); err != nil {
			return err
		}
	}
	if err := c.Resilience.Validate(); err != nil {
		return err
	}
	if err := c.Cart.Validate(); err != nil {
		return err
	}
	if err := c.UI.Validate(); err != nil {
		return err
	}

	return nil
}
