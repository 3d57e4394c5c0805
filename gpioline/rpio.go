package gpioline

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/stianeikeland/go-rpio/v4"
	"periph.io/x/conn/v3/gpio"
)

// Rpio drives BCM pins through /dev/gpiomem using go-rpio.
//
// Names are BCM numbers, optionally prefixed with "GPIO" ("17", "GPIO17").
// The register mapping is opened on the first Acquire and closed when the
// last acquired line is released.
type Rpio struct {
	mu    sync.Mutex
	held  map[rpio.Pin]bool
	open  bool
	openf func() error
	close func() error
}

// Acquire implements Service.
func (r *Rpio) Acquire(name string) (Line, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.ToUpper(name), "GPIO"))
	if err != nil || n < 0 || n > 53 {
		return nil, fmt.Errorf("%w: %q is not a BCM pin", ErrUnavailable, name)
	}
	pin := rpio.Pin(n)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.held[pin] {
		return nil, fmt.Errorf("%w: %s already acquired", ErrUnavailable, name)
	}
	if !r.open {
		openf := r.openf
		if openf == nil {
			openf = rpio.Open
		}
		if err := openf(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		r.open = true
	}
	if r.held == nil {
		r.held = make(map[rpio.Pin]bool)
	}
	r.held[pin] = true
	return &rpioLine{pin: pin, num: pin, owner: r}, nil
}

func (r *Rpio) release(pin rpio.Pin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.held, pin)
	if len(r.held) > 0 || !r.open {
		return nil
	}
	r.open = false
	closef := r.close
	if closef == nil {
		closef = rpio.Close
	}
	return closef()
}

// rpioPin is the part of rpio.Pin a line uses.
type rpioPin interface {
	Output()
	Input()
	Write(state rpio.State)
}

type rpioLine struct {
	pin   rpioPin
	num   rpio.Pin
	owner *Rpio
}

// SetOutput loads the output latch before switching direction, so the pin
// never drives a stale level.
func (l *rpioLine) SetOutput(initial gpio.Level) error {
	if err := l.Set(initial); err != nil {
		return err
	}
	l.pin.Output()
	return nil
}

func (l *rpioLine) Set(level gpio.Level) error {
	if level {
		l.pin.Write(rpio.High)
	} else {
		l.pin.Write(rpio.Low)
	}
	return nil
}

func (l *rpioLine) Release() error {
	l.pin.Input()
	return l.owner.release(l.num)
}

var _ Service = &Rpio{}
