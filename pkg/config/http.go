package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type HTTPConfig struct {
	Port           int `koanf:"port" validate:"min=1,max=65535"`
	MaxHeaderBytes int `koanf:"maxheaderbytes" validate:"min=0"`
	Timeout        struct {
		Read       time.Duration `koanf:"read" validate:"gt=0"`
		Write      time.Duration `koanf:"write" validate:"gt=0"`
		Idle       time.Duration `koanf:"idle" validate:"gt=0"`
		ReadHeader time.Duration `koanf:"readheader" validate:"gt=0"`
	} `koanf:"timeout"`
}

// String returns a string representation of the HTTP server configuration.
func (c *HTTPConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Server ---\n")
	b.WriteString(fmt.Sprintf("  port: %d\n", c.Port))
	b.WriteString(fmt.Sprintf("  maxheaderbytes: %d\n", c.MaxHeaderBytes))
	b.WriteString(fmt.Sprintf("  timeout.read: %v\n", c.Timeout.Read))
	b.WriteString(fmt.Sprintf("  timeout.write: %v\n", c.Timeout.Write))
	b.WriteString(fmt.Sprintf("  timeout.idle: %v\n", c.Timeout.Idle))
	b.WriteString(fmt.Sprintf("  timeout.readheader: %v\n", c.Timeout.ReadHeader))
	return b.String()
}

func (c *HTTPConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid HTTP server configuration: %w", err)
	}
	return nil
}

// HTTPDefaults returns the default values of the HTTP server configuration for the given port.
func HTTPDefaults(port int) map[string]any {
	return map[string]any{
		"server.port":               port,
		"server.maxheaderbytes":     1 << 20,
		"server.timeout.read":       "10s",
		"server.timeout.write":      "10s",
		"server.timeout.idle":       "60s",
		"server.timeout.readheader": "5s",
	}
}
