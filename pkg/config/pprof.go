package config

import (
	"fmt"
	"net"
	"strings"
)

// PProfConfig controls the side listener serving net/http/pprof.
type PProfConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// String returns a string representation of the pprof configuration.
func (c *PProfConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- PProf ---\n")
	b.WriteString(fmt.Sprintf("  enabled: %t\n", c.Enabled))
	b.WriteString(fmt.Sprintf("  addr: %s\n", c.Addr))
	return b.String()
}

func (c *PProfConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("pprof.addr %q is not a host:port address: %w", c.Addr, err)
	}
	return nil
}

// PProfDefaults keeps the profiler off and bound to loopback when it is switched on.
func PProfDefaults() map[string]any {
	return map[string]any{
		"pprof.enabled": false,
		"pprof.addr":    "localhost:6060",
	}
}
