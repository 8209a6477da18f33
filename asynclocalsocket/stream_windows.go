//go:build windows

package asynclocalsocket

import (
	"context"
	"errors"
	"time"

	ipc "github.com/kotauskas/interprocess"
	"github.com/kotauskas/interprocess/localsocket"
)

// Stream is the async mirror of localsocket.Stream. Cancellation arms the
// stream's read/write deadline, which unwinds the in-flight overlapped
// operation via CancelIoEx the same way a real timeout would, rather than
// polling.
type Stream struct {
	inner *localsocket.Stream
}

func newStream(s *localsocket.Stream) *Stream { return &Stream{inner: s} }

// Dial connects to name, retrying the client-side ERROR_PIPE_BUSY wait
// loop until ctx is done.
func Dial(ctx context.Context, name ipc.Name) (*Stream, error) {
	s, err := localsocket.Dial(ctx, name)
	if err != nil {
		return nil, err
	}
	return newStream(s), nil
}

type timeouter interface{ Timeout() bool }

// Read performs an overlapped read, racing it against ctx: if ctx is done
// first, the read's deadline is armed so the pending overlapped operation
// is cancelled rather than left dangling.
func (s *Stream) Read(ctx context.Context, b []byte) (int, error) {
	type result struct {
		n   int
		err error
	}
	done := make(chan result, 1)
	go func() {
		n, err := s.inner.Read(b)
		done <- result{n, err}
	}()

	select {
	case r := <-done:
		return r.n, r.err
	case <-ctx.Done():
		s.inner.SetReadDeadline(time.Now()) //nolint:errcheck
		r := <-done
		var te timeouter
		if errors.As(r.err, &te) && te.Timeout() {
			return r.n, ctx.Err()
		}
		return r.n, r.err
	}
}

// Write performs an overlapped write, racing it against ctx the same way
// Read does.
func (s *Stream) Write(ctx context.Context, b []byte) (int, error) {
	type result struct {
		n   int
		err error
	}
	done := make(chan result, 1)
	go func() {
		n, err := s.inner.Write(b)
		done <- result{n, err}
	}()

	select {
	case r := <-done:
		return r.n, r.err
	case <-ctx.Done():
		s.inner.SetWriteDeadline(time.Now()) //nolint:errcheck
		r := <-done
		var te timeouter
		if errors.As(r.err, &te) && te.Timeout() {
			return r.n, ctx.Err()
		}
		return r.n, r.err
	}
}

// Close closes the underlying pipe handle, deferring to the limbo pool if
// the stream is dirty.
func (s *Stream) Close() error { return s.inner.Close() }

// Flush dispatches the blocking FlushFileBuffers call to a goroutine and
// awaits it, since that Win32 API has no overlapped-capable form.
func (s *Stream) Flush(ctx context.Context) error {
	done := make(chan error, 1)
	go func() { done <- s.inner.Flush() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
