package gpioline

import (
	"fmt"
	"strconv"

	"github.com/warthog618/go-gpiocdev"
	"periph.io/x/conn/v3/gpio"
)

// Cdev requests lines from the GPIO character device (/dev/gpiochipN).
//
// When Chip is empty the name is looked up across all chips by line name
// (e.g. "GPIO17" on a Raspberry Pi). When Chip is set the name must be the
// numeric line offset on that chip.
type Cdev struct {
	Chip     string
	Consumer string
}

// Acquire implements Service.
func (c *Cdev) Acquire(name string) (Line, error) {
	chip, offset, err := c.locate(name)
	if err != nil {
		return nil, err
	}
	consumer := c.Consumer
	if consumer == "" {
		consumer = "hc595seg"
	}
	l, err := gpiocdev.RequestLine(chip, offset, gpiocdev.WithConsumer(consumer))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, name, err)
	}
	return &cdevLine{line: l}, nil
}

func (c *Cdev) locate(name string) (string, int, error) {
	if c.Chip == "" {
		chip, offset, err := gpiocdev.FindLine(name)
		if err != nil {
			return "", 0, fmt.Errorf("%w: %s: %v", ErrUnavailable, name, err)
		}
		return chip, offset, nil
	}
	offset, err := strconv.Atoi(name)
	if err != nil || offset < 0 {
		return "", 0, fmt.Errorf("%w: %q is not a line offset on %s", ErrUnavailable, name, c.Chip)
	}
	return c.Chip, offset, nil
}

type cdevLine struct {
	line *gpiocdev.Line
}

func (l *cdevLine) SetOutput(initial gpio.Level) error {
	return l.line.Reconfigure(gpiocdev.AsOutput(levelInt(initial)))
}

func (l *cdevLine) Set(level gpio.Level) error {
	return l.line.SetValue(levelInt(level))
}

func (l *cdevLine) Release() error {
	return l.line.Close()
}

func levelInt(l gpio.Level) int {
	if l {
		return 1
	}
	return 0
}

var _ Service = &Cdev{}
