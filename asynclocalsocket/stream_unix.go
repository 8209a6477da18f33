//go:build unix

package asynclocalsocket

import (
	"context"
	"time"

	ipc "github.com/kotauskas/interprocess"
	"github.com/kotauskas/interprocess/localsocket"
)

// Stream is the async mirror of localsocket.Stream, kept permanently in
// nonblocking mode so Read/Write can retry against ctx instead of blocking
// the calling goroutine on the kernel.
type Stream struct {
	inner *localsocket.Stream
}

func newStream(s *localsocket.Stream) *Stream {
	s.SetNonblocking(true) //nolint:errcheck // best-effort; a failed toggle just means Read/Write block
	return &Stream{inner: s}
}

// Dial connects to name with a single connect attempt and returns the
// stream in nonblocking mode.
//
// uds.Dial's connect(2) is not itself cancellable mid-call; ctx is only
// checked before issuing it, matching localsocket.Dial.
func Dial(ctx context.Context, name ipc.Name) (*Stream, error) {
	s, err := localsocket.Dial(ctx, name)
	if err != nil {
		return nil, err
	}
	return newStream(s), nil
}

// Read retries a nonblocking read until data arrives, the peer closes, or
// ctx is done.
func (s *Stream) Read(ctx context.Context, b []byte) (int, error) {
	for {
		n, err := s.inner.Read(b)
		if err != localsocket.ErrWouldBlock {
			return n, err
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// Write retries a nonblocking write until every byte of b is accepted or
// ctx is done.
func (s *Stream) Write(ctx context.Context, b []byte) (int, error) {
	var written int
	for written < len(b) {
		n, err := s.inner.Write(b[written:])
		written += n
		if err != nil {
			if err != localsocket.ErrWouldBlock {
				return written, err
			}
			select {
			case <-ctx.Done():
				return written, ctx.Err()
			case <-time.After(pollInterval):
			}
		}
	}
	return written, nil
}

// Close closes the underlying socket.
func (s *Stream) Close() error { return s.inner.Close() }

// Flush is a no-op, matching the underlying Unix stream.
func (s *Stream) Flush() error { return s.inner.Flush() }
