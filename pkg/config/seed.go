package config

import (
	"fmt"
	"strings"
)

// SeedConfig points at the static JSON snapshot the in-memory state is seeded from.
// An empty File means the service starts with empty state.
type SeedConfig struct {
	File string `koanf:"file"`
}

// String returns a string representation of the seed configuration.
func (c *SeedConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Seed ---\n")
	file := c.File
	if file == "" {
		file = "<none>"
	}
	b.WriteString(fmt.Sprintf("  file: %s\n", file))
	return b.String()
}

func (c *SeedConfig) Validate() error {
	if c.File != "" && !strings.HasSuffix(c.File, ".json") {
		return fmt.Errorf("seed file must be a .json file: %s", c.File)
	}
	return nil
}
