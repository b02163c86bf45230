package config

import (
	"fmt"
	"strings"
	"time"
)

// NATSConfig points at the JetStream server. Nothing is required while Enabled is false.
type NATSConfig struct {
	Enabled bool          `koanf:"enabled"`
	Url     string        `koanf:"url" validate:"required_if=Enabled true,omitempty,url"`
	Timeout time.Duration `koanf:"timeout" validate:"required_if=Enabled true,omitempty,gt=0"`
	Stream  string        `koanf:"stream" validate:"required_if=Enabled true,omitempty,excludesall=.*>"`
}

// String returns a string representation of the NATS configuration.
func (c *NATSConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- NATS ---\n")
	fmt.Fprintf(&b, "  enabled: %t\n", c.Enabled)
	fmt.Fprintf(&b, "  url: %s\n", c.Url)
	fmt.Fprintf(&b, "  timeout: %s\n", c.Timeout)
	fmt.Fprintf(&b, "  stream: %s\n", c.Stream)
	return b.String()
}

func (c *NATSConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid NATS configuration: %w", err)
	}
	return nil
}
