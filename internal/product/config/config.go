// Package config holds the product service configuration.
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
	HTTPServer     config.HTTPConfig           `koanf:"server"`
	GRPC           config.GrpcServerConfig     `koanf:"grpc"`
	CORS           config.CORSConfig           `koanf:"cors"`
	Seed           config.SeedConfig           `koanf:"seed"`
	Log            config.LogConfig            `koanf:"log"`
	PProf          config.PProfConfig          `koanf:"pprof"`
	Shutdown       config.ShutdownConfig       `koanf:"shutdown"`
	Telemetry      config.TelemetryConfig      `koanf:"telemetry"`
	NATS           config.NATSConfig           `koanf:"nats"`
	CircuitBreaker config.CircuitBreakerConfig `koanf:"circuitbreaker"`
}

// Defaults returns the values used when neither the config file nor the environment sets them.
func Defaults() map[string]any {
	defaults := map[string]any{
		"grpc.port":                          "50051",
		"grpc.reflection":                    false,
		"seed.file":                          "",
		"log.level":                          "info",
		"telemetry.traces.enabled":           false,
		"telemetry.traces.otlphttp.endpoint": "localhost:4318",
		"telemetry.traces.otlphttp.insecure": true,
		"telemetry.traces.otlphttp.timeout":  "5s",
		"telemetry.metrics.enabled":          false,
		"telemetry.metrics.path":             "/metrics",
		"nats.enabled":                       false,
		"nats.url":                           "nats://localhost:4222",
		"nats.timeout":                       "5s",
		"nats.stream":                        "PRODUCTS",
		"circuitbreaker.consecutivefailures": 5,
		"circuitbreaker.errorratepercent":    50,
		"circuitbreaker.opentimeout":         "30s",
	}
	maps.Copy(defaults, config.HTTPDefaults(3000))
	maps.Copy(defaults, config.PProfDefaults())
	maps.Copy(defaults, config.ShutdownDefaults())
	maps.Copy(defaults, server.CORSDefaults())
	return defaults
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.GRPC.String())
	b.WriteString(c.CORS.String())
	b.WriteString(c.Seed.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Shutdown.String())
	b.WriteString(c.Telemetry.String())
	b.WriteString(c.NATS.String())
	b.WriteString(c.CircuitBreaker.String())
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	errs := []error{
		c.HTTPServer.Validate(),
		c.GRPC.Validate(),
		c.CORS.Validate(),
		c.Seed.Validate(),
		c.Log.Validate(),
		c.PProf.Validate(),
		c.Shutdown.Validate(),
		c.Telemetry.Validate(),
		c.NATS.Validate(),
	}
	if c.NATS.Enabled {
		errs = append(errs, c.CircuitBreaker.Validate())
	}
	return errors.Join(errs...)
}

