// internal/config/config.go
package config

type Config struct {
	GPIO      GPIOConfig      `yaml:"gpio"`
	Channel   ChannelConfig   `yaml:"channel"`
	Transport TransportConfig `yaml:"transport"`
	Log       LogConfig       `yaml:"log"`
}

// ---- GPIO ----

type GPIOConfig struct {
	Backend  string `yaml:"backend"`  // periph | cdev | rpio
	Chip     string `yaml:"chip"`     // cdev only; empty = look up by line name
	Consumer string `yaml:"consumer"` // cdev only

	Data  string `yaml:"data"`
	Clock string `yaml:"clock"`
	Latch string `yaml:"latch"`

	DelayNs int `yaml:"delay_ns"`
}

// ---- CHANNEL ----

type ChannelConfig struct {
	Capacity int `yaml:"capacity"`
	StepMs   int `yaml:"step_ms"` // pause between counting steps
}

// ---- TRANSPORT ----

type TransportConfig struct {
	Serial SerialConfig `yaml:"serial"`
}

// SerialConfig selects the serial device. An empty Port means stdin/stdout.
type SerialConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// ---- LOG ----

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console | json
}

// Backends accepted in gpio.backend.
const (
	BackendPeriph = "periph"
	BackendCdev   = "cdev"
	BackendRpio   = "rpio"
)
