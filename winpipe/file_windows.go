//go:build windows
// +build windows

package winpipe

import (
	"errors"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	// ErrFileClosed is returned when an I/O operation is attempted on a
	// closed win32File.
	ErrFileClosed = errors.New("file has already been closed")
	// ErrTimeout is returned when an I/O operation times out.
	ErrTimeout = &timeoutError{}
)

type timeoutError struct{}

func (*timeoutError) Error() string   { return "i/o timeout" }
func (*timeoutError) Timeout() bool   { return true }
func (*timeoutError) Temporary() bool { return true }

// iocpHandle is the single IOCP that every win32File's overlapped handle is
// associated with, created lazily by ensureIOCP, matching go-winio's
// single-port-per-process model.
var (
	iocpHandle windows.Handle
	iocpOnce   sync.Once
	iocpErr    error
)

func ensureIOCP() (windows.Handle, error) {
	iocpOnce.Do(func() {
		h, err := windows.CreateIoCompletionPort(windows.InvalidHandle, 0, 0, 0xffffffff)
		iocpHandle, iocpErr = h, err
		if err == nil {
			go iocpPump()
		}
	})
	return iocpHandle, iocpErr
}

// ioOperation is the bookkeeping for one in-flight overlapped request.
type ioOperation struct {
	o  windows.Overlapped
	ch chan ioResult
}

type ioResult struct {
	bytes uint32
	err   error
}

func iocpPump() {
	for {
		var bytes uint32
		var key uintptr
		var o *windows.Overlapped
		err := windows.GetQueuedCompletionStatus(iocpHandle, &bytes, &key, &o, windows.INFINITE)
		if o == nil {
			// Spurious or shutdown wakeup; nothing to dispatch.
			continue
		}
		op := (*ioOperation)(unsafe.Pointer(o))
		op.ch <- ioResult{bytes: bytes, err: err}
	}
}

// win32File wraps an overlapped-mode Windows handle (a named pipe instance
// or client connection) as an io.ReadWriteCloser with deadline support,
// built on a shared IOCP the way go-winio associates every pipe handle with
// one completion port per process rather than one per handle.
type win32File struct {
	handle  windows.Handle
	wg      sync.WaitGroup
	wgLock  sync.RWMutex
	closing atomic.Bool

	readDeadline  deadlineHandler
	writeDeadline deadlineHandler
}

type deadlineHandler struct {
	mu      sync.Mutex
	timer   *time.Timer
	timedout atomic.Bool
	channel  chan struct{}
	channelLock sync.RWMutex
}

func makeWin32File(h windows.Handle) (*win32File, error) {
	port, err := ensureIOCP()
	if err != nil {
		return nil, err
	}
	if _, err := windows.CreateIoCompletionPort(h, port, 0, 0); err != nil {
		return nil, err
	}
	if err := windows.SetFileCompletionNotificationModes(h,
		windows.FILE_SKIP_COMPLETION_PORT_ON_SUCCESS|windows.FILE_SKIP_SET_EVENT_ON_HANDLE); err != nil {
		return nil, err
	}
	f := &win32File{handle: h}
	f.readDeadline.channel = make(chan struct{})
	f.writeDeadline.channel = make(chan struct{})
	return f, nil
}

// prepareIO registers an in-flight operation against the file's wait group
// so Close can block until all outstanding overlapped requests settle.
func (f *win32File) prepareIO() (*ioOperation, error) {
	f.wgLock.RLock()
	if f.closing.Load() {
		f.wgLock.RUnlock()
		return nil, ErrFileClosed
	}
	f.wg.Add(1)
	f.wgLock.RUnlock()
	return &ioOperation{ch: make(chan ioResult, 1)}, nil
}

// asyncIO waits for the completion of an overlapped operation submitted
// with err already holding the immediate syscall result, honoring whichever
// deadline handler (read or write) is passed in. It does not touch f.wg:
// callers that obtained c from prepareIO are responsible for f.wg.Done(),
// matching connectPipe's existing defer-based usage in pipe.go.
func (f *win32File) asyncIO(c *ioOperation, d *deadlineHandler, bytes uint32, err error) (int, error) {
	if err != windows.ERROR_IO_PENDING { //nolint:errorlint // err is Errno
		return int(bytes), err
	}

	if f.closing.Load() {
		windows.CancelIoEx(f.handle, &c.o) //nolint:errcheck
	}

	var timeout <-chan struct{}
	if d != nil {
		d.channelLock.Lock()
		timeout = d.channel
		d.channelLock.Unlock()
	}

	var r ioResult
	select {
	case r = <-c.ch:
		err = r.err
		if err == windows.ERROR_OPERATION_ABORTED && f.closing.Load() { //nolint:errorlint // err is Errno
			err = ErrFileClosed
		}
	case <-timeout:
		windows.CancelIoEx(f.handle, &c.o) //nolint:errcheck
		r = <-c.ch
		err = r.err
		if err == windows.ERROR_OPERATION_ABORTED { //nolint:errorlint // err is Errno
			err = ErrTimeout
		}
	}

	return int(r.bytes), err
}

// Read implements io.Reader using an overlapped ReadFile against the shared
// IOCP, mapping a zero-byte pipe result to io.EOF.
func (f *win32File) Read(b []byte) (int, error) {
	c, err := f.prepareIO()
	if err != nil {
		return 0, err
	}
	defer f.wg.Done()

	var bytes uint32
	err = windows.ReadFile(f.handle, b, &bytes, &c.o)
	n, err := f.asyncIO(c, &f.readDeadline, bytes, err)
	runtime.KeepAlive(b)

	if err != nil {
		switch err { //nolint:errorlint // err is Errno
		case windows.ERROR_BROKEN_PIPE, windows.ERROR_PIPE_NOT_CONNECTED:
			return 0, io.EOF
		case ErrFileClosed:
			return 0, ErrFileClosed
		}
		return n, &timeoutAwareError{op: "read", err: err}
	} else if n == 0 && len(b) != 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Write implements io.Writer using an overlapped WriteFile against the
// shared IOCP.
func (f *win32File) Write(b []byte) (int, error) {
	c, err := f.prepareIO()
	if err != nil {
		return 0, err
	}
	defer f.wg.Done()

	var bytes uint32
	err = windows.WriteFile(f.handle, b, &bytes, &c.o)
	n, err := f.asyncIO(c, &f.writeDeadline, bytes, err)
	runtime.KeepAlive(b)
	if err != nil && err != ErrFileClosed {
		return n, &timeoutAwareError{op: "write", err: err}
	}
	return n, err
}

// ReadNonblocking behaves like Read but, if the read doesn't complete
// synchronously, cancels it and returns ErrWouldBlock instead of waiting.
func (f *win32File) ReadNonblocking(b []byte) (int, error) {
	c, err := f.prepareIO()
	if err != nil {
		return 0, err
	}

	var bytes uint32
	err = windows.ReadFile(f.handle, b, &bytes, &c.o)
	n, err := f.tryCompleteIO(c, bytes, err)
	runtime.KeepAlive(b)
	if err != nil {
		switch err { //nolint:errorlint // err is Errno
		case windows.ERROR_BROKEN_PIPE, windows.ERROR_PIPE_NOT_CONNECTED:
			return 0, io.EOF
		}
		return n, err
	} else if n == 0 && len(b) != 0 {
		return 0, io.EOF
	}
	return n, nil
}

// WriteNonblocking behaves like Write but, if the write doesn't complete
// synchronously, cancels it and returns ErrWouldBlock instead of waiting.
func (f *win32File) WriteNonblocking(b []byte) (int, error) {
	c, err := f.prepareIO()
	if err != nil {
		return 0, err
	}

	var bytes uint32
	err = windows.WriteFile(f.handle, b, &bytes, &c.o)
	n, err := f.tryCompleteIO(c, bytes, err)
	runtime.KeepAlive(b)
	return n, err
}

// tryCompleteIO resolves c.o without blocking: if the syscall already
// finished synchronously it returns that result, and if it's still pending
// it cancels the request immediately and reports ErrWouldBlock. Always
// balances the Add(1) made by prepareIO with exactly one f.wg.Done().
func (f *win32File) tryCompleteIO(c *ioOperation, bytes uint32, err error) (int, error) {
	if err != windows.ERROR_IO_PENDING { //nolint:errorlint // err is Errno
		f.wg.Done()
		return int(bytes), err
	}
	windows.CancelIoEx(f.handle, &c.o) //nolint:errcheck
	r := <-c.ch
	f.wg.Done()
	if r.err == windows.ERROR_OPERATION_ABORTED { //nolint:errorlint // err is Errno
		return 0, ErrWouldBlock
	}
	return int(r.bytes), r.err
}

// Flush forces a pending write to the pipe through to the reader.
func (f *win32File) Flush() error {
	return windows.FlushFileBuffers(f.handle)
}

// Close cancels any in-flight overlapped I/O, waits for it to unwind, and
// closes the underlying handle exactly once.
func (f *win32File) Close() error {
	f.wgLock.Lock()
	if !f.closing.CompareAndSwap(false, true) {
		f.wgLock.Unlock()
		return nil
	}
	f.wgLock.Unlock()

	windows.CancelIoEx(f.handle, nil) //nolint:errcheck
	f.wg.Wait()
	return windows.Close(f.handle)
}

// SetReadDeadline arms (or disarms, with a zero Time) the read timeout used
// by asyncIO.
func (f *win32File) SetReadDeadline(deadline time.Time) error {
	return f.readDeadline.set(deadline)
}

// SetWriteDeadline arms (or disarms, with a zero Time) the write timeout
// used by asyncIO.
func (f *win32File) SetWriteDeadline(deadline time.Time) error {
	return f.writeDeadline.set(deadline)
}

func (d *deadlineHandler) set(deadline time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.timedout.Store(false)

	select {
	case <-d.channel:
		d.channelLock.Lock()
		d.channel = make(chan struct{})
		d.channelLock.Unlock()
	default:
	}

	if deadline.IsZero() {
		return nil
	}

	timeoutIO := func() {
		d.timedout.Store(true)
		d.channelLock.RLock()
		close(d.channel)
		d.channelLock.RUnlock()
	}

	now := time.Now()
	if deadline.Before(now) {
		timeoutIO()
		return nil
	}
	d.timer = time.AfterFunc(deadline.Sub(now), timeoutIO)
	return nil
}

type timeoutAwareError struct {
	op  string
	err error
}

func (e *timeoutAwareError) Error() string { return e.op + ": " + e.err.Error() }
func (e *timeoutAwareError) Unwrap() error { return e.err }
func (e *timeoutAwareError) Timeout() bool {
	return e.err == ErrTimeout || errors.Is(e.err, ErrTimeout)
}
