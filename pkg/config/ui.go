package config

import (
	"fmt"
	"strings"
	"time"
)

// Cart markup detail levels.
const (
	DisplayCompact  = "compact"
	DisplayDetailed = "detailed"
)

// Mobile navigation toggle strategies.
const (
	MobileNavDynamic = "dynamic"
	MobileNavStatic  = "static"
)

type UIConfig struct {
	Display             string        `koanf:"display"`
	MobileNav           string        `koanf:"mobilenav"`
	MobileBreakpoint    int           `koanf:"mobilebreakpoint"`
	ScrollThreshold     int           `koanf:"scrollthreshold"`
	NavHideScrollDelta  int           `koanf:"navhidescrolldelta"`
	NotificationDismiss time.Duration `koanf:"notificationdismiss"`
	CheckoutPage        string        `koanf:"checkoutpage"`
}

// String returns a string representation of the UI configuration.
func (c *UIConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- UI ---\n")
	b.WriteString(fmt.Sprintf("  display: %s\n", c.Display))
	b.WriteString(fmt.Sprintf("  mobilenav: %s\n", c.MobileNav))
	b.WriteString(fmt.Sprintf("  mobilebreakpoint: %d\n", c.MobileBreakpoint))
	b.WriteString(fmt.Sprintf("  scrollthreshold: %d\n", c.ScrollThreshold))
	b.WriteString(fmt.Sprintf("  navhidescrolldelta: %d\n", c.NavHideScrollDelta))
	b.WriteString(fmt.Sprintf("  notificationdismiss: %s\n", c.NotificationDismiss))
	b.WriteString(fmt.Sprintf("  checkoutpage: %s\n", c.CheckoutPage))
	return b.String()
}

// Validate fills defaults matching the storefront pages and rejects unknown modes.
func (c *UIConfig) Validate() error {
	if c.Display == "" {
		c.Display = DisplayDetailed
	}
	if c.MobileNav == "" {
		c.MobileNav = MobileNavStatic
	}
	if c.MobileBreakpoint == 0 {
		c.MobileBreakpoint = 768
	}
	if c.ScrollThreshold == 0 {
		c.ScrollThreshold = 50
	}
	if c.NavHideScrollDelta == 0 {
		c.NavHideScrollDelta = 10
	}
	if c.NotificationDismiss == 0 {
		c.NotificationDismiss = 3 * time.Second
	}
	if c.CheckoutPage == "" {
		c.CheckoutPage = "checkout.html"
	}
	if c.Display != DisplayCompact && c.Display != DisplayDetailed {
		return fmt.Errorf("unknown cart display mode: %s", c.Display)
	}
	if c.MobileNav != MobileNavDynamic && c.MobileNav != MobileNavStatic {
		return fmt.Errorf("unknown mobile navigation strategy: %s", c.MobileNav)
	}
	if c.MobileBreakpoint < 0 || c.ScrollThreshold < 0 || c.NavHideScrollDelta < 0 {
		return fmt.Errorf("ui pixel thresholds must not be negative")
	}
	if c.NotificationDismiss < 0 {
		return fmt.Errorf("notification dismiss delay must not be negative")
	}
	return nil
}
