//go:build unix

package localsocket

import (
	"context"

	ipc "github.com/kotauskas/interprocess"
	"github.com/kotauskas/interprocess/split"
	"github.com/kotauskas/interprocess/uds"
)

// Stream is a facade Stream backed by a connected Unix domain socket.
type Stream struct {
	inner *uds.Stream
}

// Dial connects to a listening Unix domain socket at name. ctx is honored
// only before the call starts; the underlying connect(2) is not
// interruptible once issued.
func Dial(ctx context.Context, name ipc.Name) (*Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s, err := uds.Dial(name)
	if err != nil {
		return nil, err
	}
	return &Stream{inner: s}, nil
}

// Read implements io.Reader.
func (s *Stream) Read(b []byte) (int, error) {
	n, err := s.inner.Read(b)
	if err == uds.ErrWouldBlock { //nolint:errorlint // sentinel is a syscall.Errno
		return n, ErrWouldBlock
	}
	return n, err
}

// Write implements io.Writer.
func (s *Stream) Write(b []byte) (int, error) {
	n, err := s.inner.Write(b)
	if err == uds.ErrWouldBlock { //nolint:errorlint // sentinel is a syscall.Errno
		return n, ErrWouldBlock
	}
	return n, err
}

// Close closes the underlying socket.
func (s *Stream) Close() error { return s.inner.Close() }

// Flush is a no-op: Unix stream sockets have no userspace write buffer.
func (s *Stream) Flush() error { return s.inner.Flush() }

// SetNonblocking toggles O_NONBLOCK on the underlying socket.
func (s *Stream) SetNonblocking(nonblocking bool) error { return s.inner.SetNonblocking(nonblocking) }

// RecvHalf is the receive-only half of a split facade Stream.
type RecvHalf = split.RecvHalf[*uds.Stream]

// SendHalf is the send-only half of a split facade Stream.
type SendHalf = split.SendHalf[*uds.Stream]

// Split divides s into owned receive and send halves. s is consumed: the
// underlying socket is now owned by the halves, and s must not be read
// from, written to, or closed again.
func (s *Stream) Split() (*RecvHalf, *SendHalf) { return split.Split(s.inner) }

// Reunite restores a Stream from two halves produced by the same Split
// call, per spec's identity-checked reunite contract.
func Reunite(rh *RecvHalf, sh *SendHalf) (*Stream, error) {
	h, err := split.Reunite(rh, sh)
	if err != nil {
		return nil, err
	}
	return &Stream{inner: h}, nil
}
