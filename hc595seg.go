// Package hc595seg drives a seven-segment display through a 74HC595 shift
// register, bit-banged over three GPIO lines.
//
// See the examples for how to use this package.
package hc595seg

import (
	"errors"
	"fmt"
	"time"

	"github.com/flavioheleno/hc595seg/gpioline"
	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/gpio"
)

// ErrConfiguration is reported by Dev.Err when the lines could not be set up.
var ErrConfiguration = errors.New("hc595seg: gpio configuration failed")

// Opts is the configuration for the shift register.
type Opts struct {
	// Line names passed to the gpioline.Service
	Data  string // Serial data input (DS), default "GPIO17"
	Clock string // Shift register clock (SHCP), default "GPIO18"
	Latch string // Storage register clock (STCP), default "GPIO27"

	// Delay between signal edges (default: 100ns)
	Delay time.Duration

	// Diagnostics sink (default: disabled)
	Logger *zerolog.Logger
}

// Dev is the device handle for the shift register.
//
// Dev is not safe for concurrent use; callers serialize access.
type Dev struct {
	// Lines, nil while inert
	data  gpioline.Line
	clock gpioline.Line
	latch gpioline.Line

	names [3]string
	delay time.Duration
	log   zerolog.Logger

	// Configuration failure, nil when healthy
	err error
}

// New acquires the data, clock and latch lines and drives them low.
//
// If any line cannot be acquired or configured, New logs the failure, releases
// whatever it already holds and returns an inert Dev: every write becomes a
// no-op. Use Healthy or Err to find out.
//
// opts can be nil to use defaults.
func New(svc gpioline.Service, opts *Opts) *Dev {
	if opts == nil {
		opts = &Opts{}
	}
	d := &Dev{
		names: [3]string{
			defaultString(opts.Data, "GPIO17"),
			defaultString(opts.Clock, "GPIO18"),
			defaultString(opts.Latch, "GPIO27"),
		},
		delay: opts.Delay,
		log:   zerolog.Nop(),
	}
	if d.delay <= 0 {
		d.delay = 100 * time.Nanosecond
	}
	if opts.Logger != nil {
		d.log = *opts.Logger
	}

	if err := d.init(svc); err != nil {
		d.err = fmt.Errorf("%w: %v", ErrConfiguration, err)
		d.log.Warn().Err(err).Strs("lines", d.names[:]).Msg("shift register gpio unavailable, display disabled")
	}
	return d
}

// init acquires all three lines or none of them.
func (d *Dev) init(svc gpioline.Service) error {
	if svc == nil {
		return errors.New("no gpio line service")
	}
	var held []gpioline.Line
	for _, name := range d.names {
		l, err := svc.Acquire(name)
		if err == nil {
			held = append(held, l)
			err = l.SetOutput(gpio.Low)
		}
		if err != nil {
			for _, h := range held {
				_ = h.Release()
			}
			return fmt.Errorf("line %s: %w", name, err)
		}
	}
	d.data, d.clock, d.latch = held[0], held[1], held[2]
	return nil
}

// Healthy reports whether the lines are held and writes reach the register.
func (d *Dev) Healthy() bool {
	return d.data != nil
}

// Err returns the configuration failure that made the device inert, if any.
func (d *Dev) Err() error {
	return d.err
}

// WriteDigit shows digit v (0-15) on the display.
// Out of range values and an inert device are ignored.
func (d *Dev) WriteDigit(v int) {
	p, ok := Pattern(v)
	if !ok {
		d.log.Debug().Int("digit", v).Msg("digit out of range, ignored")
		return
	}
	d.WritePattern(p)
}

// WritePattern shifts the raw segment mask p into the register, least
// significant bit first, then latches it onto the outputs.
func (d *Dev) WritePattern(p byte) {
	if !d.Healthy() {
		return
	}
	for bit := 0; bit < 8; bit++ {
		d.writeBit(p&(1<<bit) != 0)
		spin(d.delay)
	}
	d.update()
}

// writeBit presents b on the data line and clocks it in.
func (d *Dev) writeBit(b bool) {
	_ = d.data.Set(gpio.Level(b))
	spin(d.delay)

	_ = d.clock.Set(gpio.High)
	spin(d.delay)
	_ = d.clock.Set(gpio.Low)
}

// update pulses the latch, copying the shift register to the outputs.
func (d *Dev) update() {
	spin(d.delay)
	_ = d.latch.Set(gpio.High)

	spin(d.delay)
	_ = d.latch.Set(gpio.Low)
}

// Halt releases the lines. After calling Halt the device is inert.
func (d *Dev) Halt() error {
	if !d.Healthy() {
		return nil
	}
	var errs []error
	for _, l := range []gpioline.Line{d.data, d.clock, d.latch} {
		if err := l.Release(); err != nil {
			errs = append(errs, err)
		}
	}
	d.data, d.clock, d.latch = nil, nil, nil
	return errors.Join(errs...)
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("hc595seg.Dev{data=%s clock=%s latch=%s}", d.names[0], d.names[1], d.names[2])
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// spin busy-waits for d. The edge delays are far below scheduler resolution,
// so they must not yield.
func spin(d time.Duration) {
	for start := time.Now(); time.Since(start) < d; {
	}
}
