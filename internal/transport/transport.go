// Package transport serves the text command protocol over a byte stream.
//
// Each input line is one write transaction: it is accepted into the channel at
// offset 0 and the reply is "ok <n>" or "error: <reason>". A line holding only
// "?" asks for the bytes currently in the channel instead.
package transport

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/flavioheleno/hc595seg/channel"
	"github.com/rs/zerolog"
	"go.bug.st/serial"
)

// ReadBack is the line that requests the channel contents.
const ReadBack = "?"

// Open returns the serial port at path, or stdin/stdout when path is empty.
func Open(path string, baud int) (io.ReadWriteCloser, error) {
	if path == "" {
		return stdio{}, nil
	}
	port, err := serial.Open(path, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", path, err)
	}
	return port, nil
}

// Server answers protocol lines for one channel.
type Server struct {
	ch  *channel.Channel
	log zerolog.Logger
}

// NewServer returns a Server feeding ch.
func NewServer(ch *channel.Channel, log zerolog.Logger) *Server {
	return &Server{ch: ch, log: log}
}

// Serve handles lines from rw until it reaches end of input, fails, or ctx is
// done. Lines are handled one at a time; a counting command holds up the next
// line until it finishes.
//
// Reads happen on a separate goroutine so that a cancelled ctx returns even
// while rw is blocked; that goroutine exits once rw is closed or hits EOF.
func (s *Server) Serve(ctx context.Context, rw io.ReadWriter) error {
	lines := make(chan []byte)
	done := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(rw)
		for sc.Scan() {
			line := append([]byte(nil), sc.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		done <- sc.Err()
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line := <-lines:
			reply := s.handle(line)
			if _, err := io.WriteString(rw, reply+"\n"); err != nil {
				return fmt.Errorf("%w: %v", channel.ErrTransferFault, err)
			}
		case err := <-done:
			if err != nil {
				return fmt.Errorf("%w: %v", channel.ErrTransferFault, err)
			}
			return nil
		}
	}
}

func (s *Server) handle(line []byte) string {
	if string(line) == ReadBack {
		p := s.ch.Retrieve(0, s.ch.Len())
		s.log.Debug().Int("bytes", len(p)).Msg("read back")
		return string(p)
	}

	s.log.Debug().Int("bytes", len(line)).Msg("write")
	n, err := s.ch.Accept(0, line)
	switch {
	case errors.Is(err, channel.ErrOutOfSpace):
		s.log.Warn().Err(err).Msg("write rejected")
		return "error: out of space"
	case err != nil:
		s.log.Warn().Err(err).Msg("write failed")
		return "error: " + err.Error()
	}
	return fmt.Sprintf("ok %d", n)
}

type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdio) Close() error                { return os.Stdin.Close() }
