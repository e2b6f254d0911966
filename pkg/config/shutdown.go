package config

import (
	"fmt"
	"strings"
	"time"
)

// maxShutdownTimeout caps the drain window.
const maxShutdownTimeout = 2 * time.Minute

// ShutdownConfig bounds how long the HTTP, gRPC and pprof servers drain in-flight cart requests on SIGTERM.
type ShutdownConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

func (c *ShutdownConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Shutdown ---\n")
	b.WriteString(fmt.Sprintf("  drain timeout: %s\n", c.Timeout))
	return b.String()
}

// Validate requires a positive drain window no longer than maxShutdownTimeout.
func (c *ShutdownConfig) Validate() error {
	switch {
	case c.Timeout <= 0:
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.Timeout)
	case c.Timeout > maxShutdownTimeout:
		return fmt.Errorf("shutdown timeout %s exceeds %s", c.Timeout, maxShutdownTimeout)
	}
	return nil
}
