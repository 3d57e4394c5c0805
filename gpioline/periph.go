package gpioline

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// Periph resolves lines through the periph.io pin registry.
//
// Names are anything gpioreg.ByName accepts, e.g. "GPIO17", "17" or an alias.
type Periph struct {
	// ByName overrides the registry lookup. Nil means gpioreg.ByName.
	ByName func(name string) gpio.PinIO
}

// Acquire implements Service.
func (p *Periph) Acquire(name string) (Line, error) {
	lookup := p.ByName
	if lookup == nil {
		lookup = gpioreg.ByName
	}
	pin := lookup(name)
	if pin == nil {
		return nil, fmt.Errorf("%w: %s not found in periph registry", ErrUnavailable, name)
	}
	return &periphLine{pin: pin}, nil
}

type periphLine struct {
	pin gpio.PinIO
}

func (l *periphLine) SetOutput(initial gpio.Level) error {
	return l.pin.Out(initial)
}

func (l *periphLine) Set(level gpio.Level) error {
	return l.pin.Out(level)
}

func (l *periphLine) Release() error {
	return l.pin.Halt()
}

var _ Service = &Periph{}
