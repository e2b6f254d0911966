package config

import (
	"fmt"
	"strings"
	"time"
)

// Supported snapshot storage backends.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
	StorageMySQL    = "mysql"
)

const defaultKeyPrefix = "lithiumRepublicCart"

type StorageConfig struct {
	Backend   string        `koanf:"backend"`
	KeyPrefix string        `koanf:"keyprefix"`
	TTL       time.Duration `koanf:"ttl"`
}

// String returns a string representation of the storage configuration.
func (c *StorageConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Storage ---\n")
	b.WriteString(fmt.Sprintf("  backend: %s\n", c.Backend))
	b.WriteString(fmt.Sprintf("  keyprefix: %s\n", c.KeyPrefix))
	b.WriteString(fmt.Sprintf("  ttl: %s\n", c.TTL))
	return b.String()
}

func (c *StorageConfig) Validate() error {
	if c.Backend == "" {
		c.Backend = StorageMemory
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = defaultKeyPrefix
	}
	switch c.Backend {
	case StorageMemory, StoragePostgres, StorageRedis, StorageMySQL:
	default:
		return fmt.Errorf("unknown storage backend: %s", c.Backend)
	}
	if c.TTL < 0 {
		return fmt.Errorf("storage ttl must not be negative")
	}
	return nil
}
