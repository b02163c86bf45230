package config

import (
	"fmt"
	"strings"
	"time"
)

// SubscriberConfig describes a durable JetStream pull consumer and its worker pool.
type SubscriberConfig struct {
	Stream       string        `koanf:"stream" validate:"required"`
	Subject      string        `koanf:"subject" validate:"required"`
	Durable      string        `koanf:"durable" validate:"required,excludesall=.*>"`
	Batch        int           `koanf:"batch" validate:"min=1,max=1000"`
	FetchTimeout time.Duration `koanf:"fetchtimeout" validate:"gt=0"`
	AckWait      time.Duration `koanf:"ackwait" validate:"gt=0"`
	Workers      int           `koanf:"workers" validate:"min=1"`
}

// String returns a string representation of the subscriber configuration.
func (c *SubscriberConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Subscriber ---\n")
	b.WriteString(fmt.Sprintf("  stream: %s\n", c.Stream))
	b.WriteString(fmt.Sprintf("  subject: %s\n", c.Subject))
	b.WriteString(fmt.Sprintf("  durable: %s\n", c.Durable))
	b.WriteString(fmt.Sprintf("  batch: %d\n", c.Batch))
	b.WriteString(fmt.Sprintf("  fetchtimeout: %s\n", c.FetchTimeout))
	b.WriteString(fmt.Sprintf("  ackwait: %s\n", c.AckWait))
	b.WriteString(fmt.Sprintf("  workers: %d\n", c.Workers))
	return b.String()
}

func (c *SubscriberConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid subscriber configuration: %w", err)
	}
	return nil
}
