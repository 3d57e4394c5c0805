package hc595seg

import (
	"context"
	"time"

	"github.com/flavioheleno/hc595seg/command"
	"github.com/rs/zerolog"
)

// DigitWriter is what the Controller drives. *Dev implements it.
type DigitWriter interface {
	WriteDigit(v int)
}

// ControllerOpts is the configuration for a Controller.
type ControllerOpts struct {
	// Pause between counting steps (default: 1s)
	Step time.Duration

	// Diagnostics sink (default: disabled)
	Logger *zerolog.Logger
}

// Controller executes commands against a display.
//
// Counting commands block the caller until the last digit is written.
type Controller struct {
	w     DigitWriter
	step  time.Duration
	log   zerolog.Logger
	sleep func(ctx context.Context, d time.Duration) error
}

// NewController returns a Controller writing to w.
//
// opts can be nil to use defaults.
func NewController(w DigitWriter, opts *ControllerOpts) *Controller {
	if opts == nil {
		opts = &ControllerOpts{}
	}
	c := &Controller{
		w:     w,
		step:  opts.Step,
		log:   zerolog.Nop(),
		sleep: sleepContext,
	}
	if c.step <= 0 {
		c.step = time.Second
	}
	if opts.Logger != nil {
		c.log = *opts.Logger
	}
	return c
}

// HandleWrite parses p and executes the resulting command. It is meant to be
// installed as the channel's write hook.
func (c *Controller) HandleWrite(p []byte) {
	c.HandleWriteContext(context.Background(), p)
}

// HandleWriteContext is HandleWrite with a context that can cut a count short.
func (c *Controller) HandleWriteContext(ctx context.Context, p []byte) {
	o := command.Scan(p)
	for _, err := range o.Errs {
		c.log.Warn().Err(err).Msg("cannot parse value")
	}
	c.ExecuteContext(ctx, o.Resolve())
}

// Execute runs cmd to completion. Problems are logged, never returned.
func (c *Controller) Execute(cmd command.Command) {
	c.ExecuteContext(context.Background(), cmd)
}

// ExecuteContext runs cmd. A count stops early, between two steps, once ctx is
// done.
func (c *Controller) ExecuteContext(ctx context.Context, cmd command.Command) {
	switch cmd.Kind {
	case command.Display:
		if !InRange(cmd.Value) {
			c.log.Warn().Int64("value", cmd.Value).Msg("value not supported for display")
			return
		}
		c.log.Debug().Int64("value", cmd.Value).Msg("display")
		c.w.WriteDigit(int(cmd.Value))
	case command.CountDown:
		if !InRange(cmd.Value) {
			c.log.Warn().Int64("value", cmd.Value).Msg("value not supported for countdown")
			return
		}
		c.log.Debug().Int64("value", cmd.Value).Msg("countdown")
		c.count(ctx, int(cmd.Value), 0, -1)
	case command.CountUp:
		if !InRange(cmd.Value) {
			c.log.Warn().Int64("value", cmd.Value).Msg("value not supported for countup")
			return
		}
		c.log.Debug().Int64("value", cmd.Value).Msg("countup")
		c.count(ctx, int(cmd.Value), MaxDigit, 1)
	default:
		c.log.Info().Msg("no option found")
	}
}

// count writes from..to inclusive, pausing one step between writes.
func (c *Controller) count(ctx context.Context, from, to, dir int) {
	for i := from; ; i += dir {
		c.w.WriteDigit(i)
		if i == to {
			return
		}
		if err := c.sleep(ctx, c.step); err != nil {
			c.log.Info().Err(err).Int("digit", i).Msg("count interrupted")
			return
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
