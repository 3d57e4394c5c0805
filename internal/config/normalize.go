// internal/config/normalize.go
package config

import "strings"

// Defaults mirror the reference wiring: a 74HC595 on BCM 17/18/27.
const (
	DefaultBackend  = BackendPeriph
	DefaultData     = "GPIO17"
	DefaultClock    = "GPIO18"
	DefaultLatch    = "GPIO27"
	DefaultDelayNs  = 100
	DefaultCapacity = 50
	DefaultStepMs   = 1000
	DefaultBaud     = 115200
	DefaultLogLevel = "info"
	DefaultFormat   = "console"
)

// Normalize fills in defaults.
// It is allowed to mutate configuration.
// It MUST be called before Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	g := &cfg.GPIO
	g.Backend = strings.ToLower(strings.TrimSpace(g.Backend))
	if g.Backend == "" {
		g.Backend = DefaultBackend
	}
	if g.Data == "" {
		g.Data = DefaultData
	}
	if g.Clock == "" {
		g.Clock = DefaultClock
	}
	if g.Latch == "" {
		g.Latch = DefaultLatch
	}
	if g.DelayNs == 0 {
		g.DelayNs = DefaultDelayNs
	}

	if cfg.Channel.Capacity == 0 {
		cfg.Channel.Capacity = DefaultCapacity
	}
	if cfg.Channel.StepMs == 0 {
		cfg.Channel.StepMs = DefaultStepMs
	}

	if cfg.Transport.Serial.Port != "" && cfg.Transport.Serial.Baud == 0 {
		cfg.Transport.Serial.Baud = DefaultBaud
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultFormat
	}
}
