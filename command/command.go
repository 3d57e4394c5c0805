// Package command turns a line of protocol text into a display command.
//
// A line is a list of space separated tokens. Flags select the operation and a
// hexadecimal literal supplies the value:
//
//	--display,   -d   show the value
//	--countdown, -l   count from the value down to 0
//	--countup,   -u   count from the value up to F
//	0x<hex>           the value
//
// Scanning stops at the first literal that parses, so flags must come before
// the value. When several flags are given, display wins over countdown, which
// wins over countup.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrParse wraps a token that looked like a hex literal but did not parse.
var ErrParse = errors.New("command: bad hex value")

// Kind is the operation selected by a command.
type Kind int

const (
	NoOption Kind = iota
	Display
	CountDown
	CountUp
)

func (k Kind) String() string {
	switch k {
	case Display:
		return "display"
	case CountDown:
		return "countdown"
	case CountUp:
		return "countup"
	default:
		return "no-option"
	}
}

// Command is a resolved operation. Value is meaningless for NoOption and is
// not range checked.
type Command struct {
	Kind  Kind
	Value int64
}

func (c Command) String() string {
	if c.Kind == NoOption {
		return c.Kind.String()
	}
	return fmt.Sprintf("%s(%d)", c.Kind, c.Value)
}

// Outcome is the state accumulated while scanning tokens.
type Outcome struct {
	Display   bool
	CountDown bool
	CountUp   bool

	// Value is valid only when Resolved is true.
	Value    int64
	Resolved bool

	// Errs holds one ErrParse per rejected hex token, in input order.
	Errs []error
}

// Scan tokenizes b and accumulates flags until the first hex literal parses.
// Tokens after that literal are never examined.
func Scan(b []byte) Outcome {
	var o Outcome
	line := strings.TrimSuffix(strings.TrimSuffix(string(b), "\n"), "\r")
	for _, tok := range strings.Split(line, " ") {
		switch tok {
		case "--display", "-d":
			o.Display = true
		case "--countdown", "-l":
			o.CountDown = true
		case "--countup", "-u":
			o.CountUp = true
		default:
			i := strings.Index(tok, "0x")
			if i < 0 || len(tok) < 3 {
				continue
			}
			v, err := strconv.ParseInt(tok[i+2:], 16, 64)
			if err != nil {
				o.Errs = append(o.Errs, fmt.Errorf("%w %q: %v", ErrParse, tok, err))
				continue
			}
			o.Value, o.Resolved = v, true
			return o
		}
	}
	return o
}

// Resolve picks the command using the fixed priority display, countdown,
// countup. Without a value the result is always NoOption.
func (o Outcome) Resolve() Command {
	if !o.Resolved {
		return Command{}
	}
	switch {
	case o.Display:
		return Command{Kind: Display, Value: o.Value}
	case o.CountDown:
		return Command{Kind: CountDown, Value: o.Value}
	case o.CountUp:
		return Command{Kind: CountUp, Value: o.Value}
	}
	return Command{}
}

// Parse is Scan followed by Resolve. Parse errors are dropped.
func Parse(b []byte) Command {
	return Scan(b).Resolve()
}
