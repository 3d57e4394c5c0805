package command

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Command
	}{
		{"long display flag", "--display 0x5", Command{Display, 5}},
		{"short display flag", "-d 0xA", Command{Display, 10}},
		{"lowercase hex", "-d 0xf", Command{Display, 15}},
		{"countdown", "--countdown 0x3", Command{CountDown, 3}},
		{"short countdown", "-l 0x9", Command{CountDown, 9}},
		{"countup", "--countup 0xE", Command{CountUp, 14}},
		{"short countup", "-u 0x0", Command{CountUp, 0}},
		{"value before flag", "0x5 --display", Command{}},
		{"out of range value kept", "--display 0x10", Command{Display, 16}},
		{"display beats countdown", "--countdown --display 0x3", Command{Display, 3}},
		{"display beats countup", "-u -d 0x3", Command{Display, 3}},
		{"countdown beats countup", "-u -l 0x7", Command{CountDown, 7}},
		{"value without flag", "0x5", Command{}},
		{"flag without value", "--display", Command{}},
		{"empty", "", Command{}},
		{"unknown tokens ignored", "please --display the 0x4 now", Command{Display, 4}},
		{"bad hex then good", "-d 0xZZ 0x2", Command{Display, 2}},
		{"first good value wins", "-d 0x1 0x2", Command{Display, 1}},
		{"flag after value never set", "-l 0x2 -d", Command{CountDown, 2}},
		{"trailing newline", "--display 0x5\n", Command{Display, 5}},
		{"trailing crlf", "--display 0x5\r\n", Command{Display, 5}},
		{"double space", "--display  0x5", Command{Display, 5}},
		{"prefix before 0x", "-d v0x3", Command{Display, 3}},
		{"too short literal", "-d 0x", Command{}},
		{"negative literal", "-d 0x-1", Command{Display, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse([]byte(tt.in)); got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestScanStopsAtValue(t *testing.T) {
	o := Scan([]byte("0x5 --display --countdown --countup"))
	if !o.Resolved || o.Value != 5 {
		t.Fatalf("Scan() value=%d resolved=%v, want 5 true", o.Value, o.Resolved)
	}
	if o.Display || o.CountDown || o.CountUp {
		t.Errorf("flags after the value were scanned: %+v", o)
	}
}

func TestScanParseErrors(t *testing.T) {
	o := Scan([]byte("-d 0xG 0x 1 0x1"))
	if len(o.Errs) != 1 {
		t.Fatalf("len(Errs) = %d, want 1", len(o.Errs))
	}
	if !errors.Is(o.Errs[0], ErrParse) {
		t.Errorf("Errs[0] = %v, want ErrParse", o.Errs[0])
	}
	if got := o.Resolve(); got != (Command{Display, 1}) {
		t.Errorf("Resolve() = %v, want display(1)", got)
	}

	// "0x" alone is shorter than three characters and is just ignored.
	if o := Scan([]byte("-d 0x")); len(o.Errs) != 0 {
		t.Errorf("Scan(\"-d 0x\") Errs = %v, want none", o.Errs)
	}
}

func TestCommandString(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{Command{}, "no-option"},
		{Command{Display, 5}, "display(5)"},
		{Command{CountDown, 3}, "countdown(3)"},
		{Command{CountUp, 14}, "countup(14)"},
	}
	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
