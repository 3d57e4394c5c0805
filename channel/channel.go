// Package channel implements the fixed size text buffer that sits between the
// command transport and the display controller.
//
// Every accepted write replaces the buffer contents and is handed to a hook,
// which normally parses and executes it. Reads return the raw bytes last
// accepted; they never reflect what the hook did.
package channel

import (
	"errors"
	"fmt"
	"io"
)

// DefaultCapacity is the buffer size used when none is given.
const DefaultCapacity = 50

var (
	// ErrOutOfSpace is returned by writes starting at or past the capacity.
	// A zero length success would make retrying writers spin forever.
	ErrOutOfSpace = errors.New("channel: out of space")

	// ErrTransferFault is returned when copying from the source or to the
	// sink fails.
	ErrTransferFault = errors.New("channel: transfer fault")
)

// Hook receives the bytes of each accepted write.
type Hook func(p []byte)

// Channel is a bounded byte buffer with a cursor.
//
// Channel is not safe for concurrent use.
type Channel struct {
	buf  []byte
	pos  int
	last int // end of the last accepted write
	hook Hook
}

// New returns a Channel holding up to capacity bytes. A capacity <= 0 means
// DefaultCapacity. hook may be nil.
func New(capacity int, hook Hook) *Channel {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Channel{buf: make([]byte, capacity), hook: hook}
}

// Cap returns the capacity.
func (c *Channel) Cap() int { return len(c.buf) }

// Offset returns the cursor.
func (c *Channel) Offset() int { return c.pos }

// Len returns the end of the last accepted write.
func (c *Channel) Len() int { return c.last }

// Rewind moves the cursor back to the start, as reopening the channel would.
func (c *Channel) Rewind() { c.pos = 0 }

// Accept stores p at offset and runs the hook on the stored bytes.
//
// The buffer is cleared first, so bytes from earlier writes do not survive.
// p is truncated to fit; the number of bytes stored is returned. The hook
// result does not affect the return values.
func (c *Channel) Accept(offset int, p []byte) (int, error) {
	if offset < 0 {
		return 0, fmt.Errorf("channel: negative offset %d", offset)
	}
	if offset >= len(c.buf) {
		return 0, ErrOutOfSpace
	}
	n := min(len(p), len(c.buf)-offset)
	clear(c.buf)
	copy(c.buf[offset:], p[:n])
	c.pos = offset + n
	c.last = c.pos
	if c.hook != nil {
		c.hook(c.buf[offset : offset+n])
	}
	return n, nil
}

// AcceptFrom reads up to n bytes from r and accepts them at offset.
func (c *Channel) AcceptFrom(offset int, r io.Reader, n int) (int, error) {
	if offset >= len(c.buf) {
		return 0, ErrOutOfSpace
	}
	p := make([]byte, max(0, min(n, len(c.buf)-max(offset, 0))))
	if _, err := io.ReadFull(r, p); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTransferFault, err)
	}
	return c.Accept(offset, p)
}

// Retrieve returns up to limit bytes starting at offset and moves the cursor
// past them. At or past the capacity the result is empty: end of data.
func (c *Channel) Retrieve(offset, limit int) []byte {
	if offset < 0 || offset >= len(c.buf) || limit <= 0 {
		return nil
	}
	n := min(limit, len(c.buf)-offset)
	out := make([]byte, n)
	copy(out, c.buf[offset:offset+n])
	c.pos = offset + n
	return out
}

// RetrieveTo writes up to limit bytes starting at offset to w.
func (c *Channel) RetrieveTo(offset int, w io.Writer, limit int) (int, error) {
	p := c.Retrieve(offset, limit)
	if len(p) == 0 {
		return 0, nil
	}
	n, err := w.Write(p)
	if err != nil {
		return n, fmt.Errorf("%w: %v", ErrTransferFault, err)
	}
	return n, nil
}

// Write implements io.Writer at the cursor.
func (c *Channel) Write(p []byte) (int, error) {
	n, err := c.Accept(c.pos, p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return n, err
}

// Read implements io.Reader at the cursor.
func (c *Channel) Read(p []byte) (int, error) {
	out := c.Retrieve(c.pos, len(p))
	if len(out) == 0 {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	return copy(p, out), nil
}

var (
	_ io.Writer = &Channel{}
	_ io.Reader = &Channel{}
)
