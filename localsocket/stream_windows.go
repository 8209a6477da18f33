//go:build windows

package localsocket

import (
	"context"
	"time"

	ipc "github.com/kotauskas/interprocess"
	"github.com/kotauskas/interprocess/split"
	"github.com/kotauskas/interprocess/winpipe"
)

// Stream is a facade Stream backed by a connected named pipe.
type Stream struct {
	inner *winpipe.Stream
}

// Dial connects to an existing named pipe at name, retrying on
// ERROR_PIPE_BUSY until ctx is done.
func Dial(ctx context.Context, name ipc.Name) (*Stream, error) {
	s, err := winpipe.Dial(ctx, name.String())
	if err != nil {
		return nil, err
	}
	return &Stream{inner: s}, nil
}

// Read implements io.Reader; a message-mode pipe's boundaries are erased,
// matching winpipe.Stream.Read's byte-stream presentation.
func (s *Stream) Read(b []byte) (int, error) {
	n, err := s.inner.Read(b)
	if err == winpipe.ErrWouldBlock { //nolint:errorlint // sentinel is a plain error
		return n, ErrWouldBlock
	}
	return n, err
}

// Write implements io.Writer and marks the stream dirty for limbo purposes.
func (s *Stream) Write(b []byte) (int, error) {
	n, err := s.inner.Write(b)
	if err == winpipe.ErrWouldBlock { //nolint:errorlint // sentinel is a plain error
		return n, ErrWouldBlock
	}
	return n, err
}

// Close disconnects (server side) or closes (client side) the pipe,
// deferring to the limbo pool if the stream is dirty.
func (s *Stream) Close() error { return s.inner.Close() }

// SetReadDeadline arms the read timeout, letting asynclocalsocket force an
// in-flight overlapped read to unwind on context cancellation.
func (s *Stream) SetReadDeadline(t time.Time) error { return s.inner.SetReadDeadline(t) }

// SetWriteDeadline arms the write timeout, letting asynclocalsocket force
// an in-flight overlapped write to unwind on context cancellation.
func (s *Stream) SetWriteDeadline(t time.Time) error { return s.inner.SetWriteDeadline(t) }

// Flush blocks until the peer has consumed every byte written so far.
func (s *Stream) Flush() error { return s.inner.Flush() }

// AssumeFlushed clears the dirty flag without an actual flush.
func (s *Stream) AssumeFlushed() { s.inner.AssumeFlushed() }

// EvadeLimbo opts this stream out of the background flush-on-close pool.
func (s *Stream) EvadeLimbo() { s.inner.EvadeLimbo() }

// RecvHalf is the receive-only half of a split facade Stream.
type RecvHalf = split.RecvHalf[*winpipe.Stream]

// SendHalf is the send-only half of a split facade Stream.
type SendHalf = split.SendHalf[*winpipe.Stream]

// Split divides s into owned receive and send halves. s is consumed: the
// underlying pipe handle is now owned by the halves, and s must not be
// read from, written to, or closed again.
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
