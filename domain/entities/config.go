package entities

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// validate is a package-level singleton; constructing a validator per call
// is expensive and the instance is safe for concurrent use.
var validate = validator.New()

// Config holds the tunables of the host link.
// All durations and counts bound the shutdown handshake only; the
// steady-state fetch path has no timeouts.
type Config struct {
	// QueueCapacity is the fixed size of the outbound message queue.
	QueueCapacity int `json:"queue_capacity" validate:"gte=1"`

	// ShutdownPushAttempts bounds how many times the shutdown marker is
	// pushed onto a full queue before giving up.
	ShutdownPushAttempts int `json:"shutdown_push_attempts" validate:"gte=1"`

	// ShutdownPushInterval is the sleep between shutdown push attempts.
	ShutdownPushInterval time.Duration `json:"shutdown_push_interval" validate:"gt=0"`

	// DrainWaitAttempts bounds how many times queue emptiness is polled
	// while waiting for the host to drain the queue during teardown.
	DrainWaitAttempts int `json:"drain_wait_attempts" validate:"gte=1"`

	// DrainWaitInterval is the sleep between drain polls.
	DrainWaitInterval time.Duration `json:"drain_wait_interval" validate:"gt=0"`
}

// DefaultConfig returns the reference sizing: a 32-slot queue and
// 5 attempts x 5ms for both shutdown phases.
func DefaultConfig() Config {
	return Config{
		QueueCapacity:        32,
		ShutdownPushAttempts: 5,
		ShutdownPushInterval: 5 * time.Millisecond,
		DrainWaitAttempts:    5,
		DrainWaitInterval:    5 * time.Millisecond,
	}
}

// Validate checks the configuration against its struct tags.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("hostlink config validation failed: %w", err)
	}
	return nil
}

// ConfigOption is a functional option for adjusting a Config.
type ConfigOption func(*Config)

// WithQueueCapacity sets the outbound queue capacity.
func WithQueueCapacity(n int) ConfigOption {
	return func(c *Config) {
		c.QueueCapacity = n
	}
}

// WithShutdownRetry sets the bound and interval for pushing the shutdown
// marker onto a possibly-full queue.
func WithShutdownRetry(attempts int, interval time.Duration) ConfigOption {
	return func(c *Config) {
		c.ShutdownPushAttempts = attempts
		c.ShutdownPushInterval = interval
	}
}

// WithDrainWait sets the bound and interval for the teardown drain poll.
func WithDrainWait(attempts int, interval time.Duration) ConfigOption {
	return func(c *Config) {
		c.DrainWaitAttempts = attempts
		c.DrainWaitInterval = interval
	}
}
