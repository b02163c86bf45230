// Package config holds the user service configuration.
package config

import (
	"errors"
	"maps"
	"strings"

	"github.com/abgdnv/gocrud/pkg/config"
	"github.com/abgdnv/gocrud/pkg/config/configloader"
	"github.com/abgdnv/gocrud/pkg/server"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig     `koanf:"server"`
	CORS       config.CORSConfig     `koanf:"cors"`
	Seed       config.SeedConfig     `koanf:"seed"`
	Log        config.LogConfig      `koanf:"log"`
	Shutdown   config.ShutdownConfig `koanf:"shutdown"`
}

// Defaults returns the values used when neither the config file nor the environment sets them.
func Defaults() map[string]any {
	defaults := map[string]any{
		"seed.file": "",
		"log.level": "info",
	}
	maps.Copy(defaults, config.HTTPDefaults(8080))
	maps.Copy(defaults, config.ShutdownDefaults())
	maps.Copy(defaults, server.CORSDefaults())
	return defaults
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.CORS.String())
	b.WriteString(c.Seed.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.Shutdown.String())
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	return errors.Join(
		c.HTTPServer.Validate(),
		c.CORS.Validate(),
		c.Seed.Validate(),
		c.Log.Validate(),
		c.Shutdown.Validate(),
	)
}
