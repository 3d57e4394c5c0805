// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	// ------------------------------------------------------------
	// GPIO
	// ------------------------------------------------------------

	g := cfg.GPIO
	switch g.Backend {
	case BackendPeriph, BackendRpio:
		if g.Chip != "" {
			return fmt.Errorf("gpio.chip is only valid with the %q backend", BackendCdev)
		}
	case BackendCdev:
	default:
		return fmt.Errorf("gpio.backend %q: want %s, %s or %s", g.Backend, BackendPeriph, BackendCdev, BackendRpio)
	}

	seen := make(map[string]string)
	for _, l := range []struct{ role, name string }{
		{"data", g.Data},
		{"clock", g.Clock},
		{"latch", g.Latch},
	} {
		if l.name == "" {
			return fmt.Errorf("gpio.%s: line name is empty", l.role)
		}
		if prev, exists := seen[l.name]; exists {
			return fmt.Errorf("gpio.%s: line %q already used by gpio.%s", l.role, l.name, prev)
		}
		seen[l.name] = l.role
	}

	if g.DelayNs < 0 {
		return fmt.Errorf("gpio.delay_ns must not be negative")
	}

	// ------------------------------------------------------------
	// CHANNEL
	// ------------------------------------------------------------

	if cfg.Channel.Capacity < 1 || cfg.Channel.Capacity > 4096 {
		return fmt.Errorf("channel.capacity %d out of range 1..4096", cfg.Channel.Capacity)
	}
	if cfg.Channel.StepMs < 0 {
		return fmt.Errorf("channel.step_ms must not be negative")
	}

	// ------------------------------------------------------------
	// TRANSPORT
	// ------------------------------------------------------------

	if cfg.Transport.Serial.Baud < 0 {
		return fmt.Errorf("transport.serial.baud must not be negative")
	}

	// ------------------------------------------------------------
	// LOG
	// ------------------------------------------------------------

	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch cfg.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format %q: want console or json", cfg.Log.Format)
	}

	return nil
}
