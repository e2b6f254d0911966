package config

import (
	"fmt"
	"strings"
	"time"
)

type MySQLConfig struct {
	DSN     string        `koanf:"dsn"`
	Timeout time.Duration `koanf:"timeout"`
}

// String returns a string representation of the MySQL configuration.
func (c *MySQLConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- MySQL ---\n")
	b.WriteString(fmt.Sprintf("  dsn: %s\n", MaskURL(c.DSN)))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *MySQLConfig) Validate() error {
	if c.DSN == "" {
		return fmt.Errorf("mysql DSN is not configured")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("mysql timeout is not configured")
	}
	return nil
}
