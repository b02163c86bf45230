// Package config holds the product notifier configuration.
package config

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/abgdnv/gocrud/pkg/config"
	"github.com/abgdnv/gocrud/pkg/config/configloader"
	"github.com/abgdnv/gocrud/pkg/messaging/events"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	Log        config.LogConfig        `koanf:"log"`
	PProf      config.PProfConfig      `koanf:"pprof"`
	Nats       config.NATSConfig       `koanf:"nats"`
	Subscriber config.SubscriberConfig `koanf:"subscriber"`
	Shutdown   config.ShutdownConfig   `koanf:"shutdown"`
}

// Defaults returns the values used when neither the config file nor the environment sets them.
func Defaults() map[string]any {
	defaults := map[string]any{
		"log.level":               "info",
		"nats.enabled":            true,
		"nats.url":                "nats://localhost:4222",
		"nats.timeout":            "5s",
		"nats.stream":             "PRODUCTS",
		"subscriber.stream":       "PRODUCTS",
		"subscriber.subject":      events.ProductSubjects,
		"subscriber.durable":      "product-notifier",
		"subscriber.batch":        10,
		"subscriber.fetchtimeout": "5s",
		"subscriber.ackwait":      "30s",
		"subscriber.workers":      2,
	}
	maps.Copy(defaults, config.PProfDefaults())
	maps.Copy(defaults, config.ShutdownDefaults())
	return defaults
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.Nats.String())
	b.WriteString(c.Subscriber.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Shutdown.String())
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	var natsErr error
	if !c.Nats.Enabled {
		natsErr = fmt.Errorf("the notifier needs nats.enabled=true")
	}
	return errors.Join(
		natsErr,
		c.Nats.Validate(),
		c.Subscriber.Validate(),
		c.Log.Validate(),
		c.PProf.Validate(),
		c.Shutdown.Validate(),
	)
}
