package config

import (
	"fmt"
	"strings"
	"time"
)

type CartConfig struct {
	CurrencyPrefix string        `koanf:"currencyprefix"`
	StrictRestore  bool          `koanf:"strictrestore"`
	Timeout        time.Duration `koanf:"timeout"`
}

// String returns a string representation of the cart configuration.
func (c *CartConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Cart ---\n")
	b.WriteString(fmt.Sprintf("  currencyprefix: %s\n", c.CurrencyPrefix))
	b.WriteString(fmt.Sprintf("  strictrestore: %t\n", c.StrictRestore))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *CartConfig) Validate() error {
	if c.CurrencyPrefix == "" {
		c.CurrencyPrefix = "RM"
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("cart operation timeout is not configured")
	}
	return nil
}
