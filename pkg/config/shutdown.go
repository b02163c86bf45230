package config

import (
	"fmt"
	"strings"
	"time"
)

// ShutdownConfig bounds how long servers get to drain after a termination signal.
type ShutdownConfig struct {
	Timeout time.Duration `koanf:"timeout" validate:"gt=0,lte=5m"`
}

// String returns a string representation of the ShutdownConfig.
func (c *ShutdownConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Shutdown ---\n")
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *ShutdownConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid shutdown configuration: %w", err)
	}
	return nil
}

// ShutdownDefaults returns the default drain timeout.
func ShutdownDefaults() map[string]any {
	return map[string]any{
		"shutdown.timeout": "10s",
	}
}
