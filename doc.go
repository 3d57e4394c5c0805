// Package hc595seg drives a seven-segment display through a 74HC595 shift
// register.
//
// The 74HC595 is an 8-bit serial-in, parallel-out shift register. Bits are
// clocked in one at a time on the data line and appear on the outputs only
// when the latch line is pulsed, so the display never shows a half-shifted
// pattern. This package bit-bangs that protocol over three GPIO lines.
//
// # Hardware Connection
//
//	74HC595 Pin → System Pin
//	VCC, MR     → 3.3V
//	GND, OE     → GND
//	DS          → GPIO data line   (default GPIO17)
//	SHCP        → GPIO clock line  (default GPIO18)
//	STCP        → GPIO latch line  (default GPIO27)
//	Q0..Q7      → display segments (common anode, a low output lights a segment)
//
// # Basic Usage
//
//	package main
//
//	import (
//		"github.com/flavioheleno/hc595seg"
//		"github.com/flavioheleno/hc595seg/gpioline"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		dev := hc595seg.New(&gpioline.Periph{}, nil)
//		defer dev.Halt()
//
//		// Show a hexadecimal digit
//		dev.WriteDigit(0xA)
//	}
//
// # Missing Lines
//
// New never fails. If a line cannot be acquired it logs the problem, releases
// the lines it already took and returns an inert device whose writes do
// nothing. Check Healthy or Err when that matters:
//
//	if !dev.Healthy() {
//		log.Println(dev.Err())
//	}
//
// # Timing
//
// Each edge is separated by Opts.Delay (100ns by default). The delay is a busy
// wait on purpose: it is far below what a sleeping goroutine can resolve. A
// complete digit takes 8 clock pulses and one latch pulse.
//
// # Commands
//
// Controller runs command.Command values: show a digit, or count down to 0 or
// up to F with a one second pause between digits. Counting blocks the caller
// for up to 16 seconds; use ExecuteContext to be able to cut it short.
//
// Text commands are parsed by package command and usually arrive through a
// channel.Channel, whose write hook is Controller.HandleWrite:
//
//	ctrl := hc595seg.NewController(dev, nil)
//	ch := channel.New(channel.DefaultCapacity, ctrl.HandleWrite)
//	ch.Accept(0, []byte("--countdown 0x9"))
//
// # GPIO Backends
//
// Lines come from a gpioline.Service. Package gpioline has backends for the
// periph.io registry, the Linux GPIO character device and go-rpio.
package hc595seg
