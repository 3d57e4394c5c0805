// Package gpioline defines the minimal GPIO line service the shift register
// driver needs, and backends for the common Linux GPIO access paths.
//
// Three backends are provided:
//
//   - Periph uses the periph.io pin registry (call host.Init first).
//   - Cdev uses the GPIO character device through go-gpiocdev.
//   - Rpio maps the Raspberry Pi GPIO registers through go-rpio.
package gpioline

import (
	"errors"

	"periph.io/x/conn/v3/gpio"
)

// ErrUnavailable is returned by Acquire when the named line does not exist or
// cannot be claimed.
var ErrUnavailable = errors.New("gpioline: line unavailable")

// Service hands out exclusive line handles by name.
type Service interface {
	Acquire(name string) (Line, error)
}

// Line is an acquired GPIO line.
type Line interface {
	// SetOutput switches the line to output mode driving initial.
	SetOutput(initial gpio.Level) error
	// Set drives the line to l. The line must already be an output.
	Set(l gpio.Level) error
	// Release gives the line back. The handle must not be used afterwards.
	Release() error
}
