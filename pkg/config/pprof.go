package config

import (
	"fmt"
	"net"
	"strings"
)

// PProfConfig controls the optional profiling listener. It runs apart from the cart API port.
type PProfConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

func (c *PProfConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Profiling ---\n")
	if !c.Enabled {
		b.WriteString("  disabled\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("  listen: %s\n", c.Addr))
	return b.String()
}

// Validate checks the listen address only when profiling is switched on.
func (c *PProfConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Addr == "" {
		return fmt.Errorf("pprof is enabled but addr is empty")
	}
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("pprof addr %q is not host:port: %w", c.Addr, err)
	}
	return nil
}
