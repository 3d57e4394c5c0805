package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/flavioheleno/hc595seg/channel"
	"github.com/rs/zerolog"
)

type pipe struct {
	in  *strings.Reader
	out bytes.Buffer
}

func (p *pipe) Read(b []byte) (int, error)  { return p.in.Read(b) }
func (p *pipe) Write(b []byte) (int, error) { return p.out.Write(b) }

func TestServe(t *testing.T) {
	var seen []string
	ch := channel.New(8, func(b []byte) { seen = append(seen, string(b)) })
	srv := NewServer(ch, zerolog.Nop())

	p := &pipe{in: strings.NewReader("-d 0x5\n?\n--countdown 0x3\n\n")}
	if err := srv.Serve(context.Background(), p); err != nil {
		t.Fatalf("Serve() err=%v", err)
	}

	want := "ok 6\n-d 0x5\nok 8\nok 0\n"
	if p.out.String() != want {
		t.Errorf("replies = %q, want %q", p.out.String(), want)
	}
	if strings.Join(seen, "|") != "-d 0x5|--countd|" {
		t.Errorf("hook saw %q", seen)
	}
}

func TestServeCancelled(t *testing.T) {
	ch := channel.New(8, nil)
	srv := NewServer(ch, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &pipe{in: strings.NewReader("-d 0x1\n")}
	if err := srv.Serve(ctx, p); !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() err=%v, want context.Canceled", err)
	}
}

type brokenWriter struct{ pipe }

func (b *brokenWriter) Write([]byte) (int, error) { return 0, errors.New("port gone") }

func TestServeWriteFault(t *testing.T) {
	ch := channel.New(8, nil)
	srv := NewServer(ch, zerolog.Nop())
	p := &brokenWriter{pipe{in: strings.NewReader("-d 0x1\n")}}
	if err := srv.Serve(context.Background(), p); !errors.Is(err, channel.ErrTransferFault) {
		t.Errorf("Serve() err=%v, want ErrTransferFault", err)
	}
}

func TestOpenStdio(t *testing.T) {
	rw, err := Open("", 0)
	if err != nil {
		t.Fatalf("Open(\"\") err=%v", err)
	}
	if _, ok := rw.(stdio); !ok {
		t.Errorf("Open(\"\") = %T, want stdio", rw)
	}
}

// stalled never delivers input, like an idle terminal.
type stalled struct {
	r *io.PipeReader
	bytes.Buffer
}

func (s *stalled) Read(b []byte) (int, error) { return s.r.Read(b) }

func TestServeCancelWhileReading(t *testing.T) {
	ch := channel.New(8, nil)
	srv := NewServer(ch, zerolog.Nop())

	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ctx, &stalled{r: pr}) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() err=%v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() still blocked after cancel")
	}
}
