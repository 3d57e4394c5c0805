package gpioline

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stianeikeland/go-rpio/v4"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func TestPeriphAcquire(t *testing.T) {
	pins := map[string]*gpiotest.Pin{
		"GPIO17": {N: "GPIO17", Num: 17},
	}
	svc := &Periph{ByName: func(name string) gpio.PinIO {
		if p, ok := pins[name]; ok {
			return p
		}
		return nil
	}}

	l, err := svc.Acquire("GPIO17")
	if err != nil {
		t.Fatalf("Acquire() err=%v", err)
	}
	if err := l.SetOutput(gpio.High); err != nil {
		t.Fatalf("SetOutput() err=%v", err)
	}
	if pins["GPIO17"].L != gpio.High {
		t.Error("SetOutput(High) did not drive the pin high")
	}
	if err := l.Set(gpio.Low); err != nil {
		t.Fatalf("Set() err=%v", err)
	}
	if pins["GPIO17"].L != gpio.Low {
		t.Error("Set(Low) did not drive the pin low")
	}
	if err := l.Release(); err != nil {
		t.Errorf("Release() err=%v", err)
	}

	if _, err := svc.Acquire("GPIO99"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Acquire(unknown) err=%v, want ErrUnavailable", err)
	}
}

func TestCdevLocateOffset(t *testing.T) {
	c := &Cdev{Chip: "gpiochip0"}

	tests := []struct {
		name    string
		want    int
		wantErr bool
	}{
		{"17", 17, false},
		{"0", 0, false},
		{"GPIO17", 0, true},
		{"-1", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chip, offset, err := c.locate(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnavailable) {
					t.Errorf("locate(%q) err=%v, want ErrUnavailable", tt.name, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("locate(%q) err=%v", tt.name, err)
			}
			if chip != "gpiochip0" || offset != tt.want {
				t.Errorf("locate(%q) = %s:%d, want gpiochip0:%d", tt.name, chip, offset, tt.want)
			}
		})
	}
}

func TestRpioAcquire(t *testing.T) {
	opened := 0
	r := &Rpio{openf: func() error { opened++; return nil }}

	if _, err := r.Acquire("GPIO17"); err != nil {
		t.Fatalf("Acquire(GPIO17) err=%v", err)
	}
	if _, err := r.Acquire("18"); err != nil {
		t.Fatalf("Acquire(18) err=%v", err)
	}
	if opened != 1 {
		t.Errorf("register mapping opened %d times, want 1", opened)
	}
	if _, err := r.Acquire("17"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("second Acquire(17) err=%v, want ErrUnavailable", err)
	}
	for _, name := range []string{"GPIO", "54", "clock"} {
		if _, err := r.Acquire(name); !errors.Is(err, ErrUnavailable) {
			t.Errorf("Acquire(%q) err=%v, want ErrUnavailable", name, err)
		}
	}
}

func TestRpioOpenFailure(t *testing.T) {
	r := &Rpio{openf: func() error { return errors.New("no /dev/gpiomem") }}
	if _, err := r.Acquire("17"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Acquire() err=%v, want ErrUnavailable", err)
	}
	if r.held[17] {
		t.Error("failed Acquire left the pin marked as held")
	}
}

type orderPin struct {
	ops []string
}

func (p *orderPin) Output() { p.ops = append(p.ops, "output") }
func (p *orderPin) Input()  { p.ops = append(p.ops, "input") }
func (p *orderPin) Write(s rpio.State) {
	p.ops = append(p.ops, fmt.Sprintf("write %d", s))
}

func TestRpioSetOutputOrder(t *testing.T) {
	closed := 0
	r := &Rpio{openf: func() error { return nil }, close: func() error { closed++; return nil }}
	l, err := r.Acquire("17")
	if err != nil {
		t.Fatalf("Acquire() err=%v", err)
	}
	pin := &orderPin{}
	l.(*rpioLine).pin = pin

	if err := l.SetOutput(gpio.High); err != nil {
		t.Fatalf("SetOutput() err=%v", err)
	}
	if err := l.Release(); err != nil {
		t.Fatalf("Release() err=%v", err)
	}

	want := "[write 1 output input]"
	if got := fmt.Sprint(pin.ops); got != want {
		t.Errorf("pin ops = %s, want %s", got, want)
	}
	if closed != 1 {
		t.Errorf("register mapping closed %d times, want 1", closed)
	}
}
