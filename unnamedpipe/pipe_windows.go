//go:build windows

package unnamedpipe

import (
	"io"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

// Options configures a New pipe pair.
type Options struct {
	// Inheritable sets bInheritHandle on the SECURITY_ATTRIBUTES passed to
	// CreatePipe, so a child process created afterward (with handle
	// inheritance enabled) inherits both ends.
	Inheritable bool
	// BufferSizeHint is a hint for the pipe's internal buffer size, in
	// bytes; zero lets the system choose a default.
	BufferSizeHint uint32
}

// ReadEnd is the receive side of an unnamed pipe.
type ReadEnd struct {
	h         windows.Handle
	closeOnce sync.Once
	closeErr  error
}

// Read implements io.Reader, mapping a broken pipe to io.EOF the same way
// winpipe.Stream.Read does.
func (r *ReadEnd) Read(b []byte) (int, error) {
	var n uint32
	err := windows.ReadFile(r.h, b, &n, nil)
	if err != nil {
		if err == windows.ERROR_BROKEN_PIPE { //nolint:errorlint // err is Errno
			return int(n), io.EOF
		}
		return int(n), err
	}
	return int(n), nil
}

// Close closes the read end.
func (r *ReadEnd) Close() error {
	r.closeOnce.Do(func() { r.closeErr = windows.CloseHandle(r.h) })
	return r.closeErr
}

// Handle returns the underlying Windows handle, for callers that need to
// pass it to another inheritance API directly.
func (r *ReadEnd) Handle() windows.Handle { return r.h }

// WriteEnd is the send side of an unnamed pipe. It tracks the same
// write-dirty flag winpipe.Stream does.
type WriteEnd struct {
	h         windows.Handle
	dirty     atomic.Bool
	evaded    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// Write implements io.Writer and marks the pipe dirty on success.
func (w *WriteEnd) Write(b []byte) (int, error) {
	var n uint32
	err := windows.WriteFile(w.h, b, &n, nil)
	if err == nil {
		w.dirty.Store(true)
	}
	return int(n), err
}

// Flush blocks until the peer has consumed every byte written so far.
func (w *WriteEnd) Flush() error {
	err := windows.FlushFileBuffers(w.h)
	if err == nil {
		w.dirty.Store(false)
	}
	return err
}

// AssumeFlushed clears the dirty flag without an actual flush.
func (w *WriteEnd) AssumeFlushed() { w.dirty.Store(false) }

// EvadeLimbo opts this write end out of the background flush-on-close
// pool; Close will close the handle synchronously instead, without
// flushing.
func (w *WriteEnd) EvadeLimbo() { w.evaded.Store(true) }

// Handle returns the underlying Windows handle.
func (w *WriteEnd) Handle() windows.Handle { return w.h }

// Close closes the write end immediately if clean or evading limbo;
// otherwise it hands the handle to the background limbo pool so Close
// never blocks on a slow peer.
func (w *WriteEnd) Close() error {
	w.closeOnce.Do(func() {
		if w.dirty.Load() && !w.evaded.Load() {
			anonLimboPool.submit(w.h)
			return
		}
		w.closeErr = windows.CloseHandle(w.h)
	})
	return w.closeErr
}

// New creates an anonymous pipe pair via CreatePipe.
func New(opts Options) (*ReadEnd, *WriteEnd, error) {
	sa := &windows.SecurityAttributes{Length: uint32(unsafe.Sizeof(windows.SecurityAttributes{}))}
	if opts.Inheritable {
		sa.InheritHandle = 1
	}

	var r, w windows.Handle
	if err := windows.CreatePipe(&r, &w, sa, opts.BufferSizeHint); err != nil {
		return nil, nil, errors.Wrap(err, "unnamedpipe: CreatePipe")
	}
	return &ReadEnd{h: r}, &WriteEnd{h: w}, nil
}

var _ io.ReadCloser = (*ReadEnd)(nil)
var _ io.WriteCloser = (*WriteEnd)(nil)
