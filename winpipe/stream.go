//go:build windows
// +build windows

package winpipe

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sys/windows"

	"github.com/kotauskas/interprocess/internal/fs"
)

// Stream is a connected named pipe endpoint, server- or client-side. It
// tracks the write-dirty flag that drives limbo and, for server-side
// instances, returns itself to the owning Listener's pool and calls
// DisconnectNamedPipe on Close.
type Stream struct {
	f       *win32File
	path    string
	msgMode bool

	isServer    bool
	entry       *instanceEntry
	pool        *instancePool
	nonblocking bool

	dirty     atomic.Bool
	evaded    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

func newServerStream(f *win32File, path string, cfg PipeConfig, entry *instanceEntry, pool *instancePool, nonblocking bool) *Stream {
	return &Stream{f: f, path: path, msgMode: cfg.MessageMode, isServer: true, entry: entry, pool: pool, nonblocking: nonblocking}
}

func newClientStream(f *win32File, path string, msgMode bool) *Stream {
	return &Stream{f: f, path: path, msgMode: msgMode}
}

// Dial connects to an existing named pipe at path as a client, retrying on
// ERROR_PIPE_BUSY until ctx is done.
func Dial(ctx context.Context, path string) (*Stream, error) {
	h, err := tryDialPipe(ctx, &path, fs.GENERIC_READ|fs.GENERIC_WRITE)
	if err != nil {
		return nil, err
	}

	var flags uint32
	if err := getNamedPipeInfo(h, &flags, nil, nil, nil); err != nil {
		windows.Close(h)
		return nil, err
	}

	f, err := makeWin32File(h)
	if err != nil {
		windows.Close(h)
		return nil, err
	}
	return newClientStream(f, path, flags&windows.PIPE_TYPE_MESSAGE != 0), nil
}

// Read reads from the pipe in byte-stream presentation: a message-mode
// pipe's ERROR_MORE_DATA is swallowed (the remainder stays queued and is
// returned by the next Read), matching the original go-winio byte-pipe
// behavior this package's Recv/TryRecv coexist with.
func (s *Stream) Read(b []byte) (int, error) {
	var n int
	var err error
	if s.nonblocking {
		n, err = s.f.ReadNonblocking(b)
	} else {
		n, err = s.f.Read(b)
	}
	if errors.Is(err, windows.ERROR_MORE_DATA) {
		err = nil
	}
	return n, err
}

// Write writes to the pipe and marks the stream dirty: bytes accepted by
// WriteFile are only buffered locally until the peer reads them, so Close
// must not drop them silently.
func (s *Stream) Write(b []byte) (int, error) {
	var n int
	var err error
	if s.nonblocking {
		n, err = s.f.WriteNonblocking(b)
	} else {
		n, err = s.f.Write(b)
	}
	if err == nil {
		s.dirty.Store(true)
	}
	return n, err
}

// Flush blocks until the peer has consumed every byte written so far.
// ERROR_PIPE_NOT_CONNECTED is downgraded to success: a peer that already
// went away has, trivially, nothing left to flush to.
func (s *Stream) Flush() error {
	err := s.f.Flush()
	if err == windows.ERROR_PIPE_NOT_CONNECTED { //nolint:errorlint // err is Errno
		err = nil
	}
	if err == nil {
		s.dirty.Store(false)
	}
	return err
}

// AssumeFlushed clears the dirty flag without an actual flush, for callers
// whose protocol already guarantees the peer has consumed everything
// written so far.
func (s *Stream) AssumeFlushed() { s.dirty.Store(false) }

// EvadeLimbo opts this stream out of the background flush-on-close pool
// entirely: Close will close the handle on the caller's goroutine without
// flushing, regardless of the dirty flag.
func (s *Stream) EvadeLimbo() { s.evaded.Store(true) }

// SetReadDeadline arms the read timeout, matching net.Conn semantics.
func (s *Stream) SetReadDeadline(t time.Time) error { return s.f.SetReadDeadline(t) }

// SetWriteDeadline arms the write timeout, matching net.Conn semantics.
func (s *Stream) SetWriteDeadline(t time.Time) error { return s.f.SetWriteDeadline(t) }

// SetDeadline arms both the read and write timeouts.
func (s *Stream) SetDeadline(t time.Time) error {
	if err := s.SetReadDeadline(t); err != nil {
		return err
	}
	return s.SetWriteDeadline(t)
}

// Close returns a server-side instance to its Listener's pool after
// DisconnectNamedPipe, and either closes the handle immediately or, if
// dirty and not evading limbo, hands it to the background limbo pool so
// the caller's goroutine never blocks on a peer that's slow to drain.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		if s.isServer {
			if err := disconnectNamedPipe(s.f.handle); err != nil && err != windows.ERROR_PIPE_NOT_CONNECTED { //nolint:errorlint // err is Errno
				handleDisconnectFailure(s.path, err)
			}
			if s.pool != nil {
				s.pool.release(s.entry)
			}
		}

		if s.dirty.Load() && !s.evaded.Load() {
			limboPool.submit(s.f)
			return
		}
		s.closeErr = s.f.Close()
	})
	return s.closeErr
}

var _ io.ReadWriteCloser = (*Stream)(nil)
