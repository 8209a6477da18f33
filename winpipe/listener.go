//go:build windows
// +build windows

package winpipe

import (
	"errors"
	"sync"

	"golang.org/x/sys/windows"

	log "github.com/kotauskas/interprocess/internal/log"
)

// NonblockingMode resolves the Open Question of whether a listener's
// nonblocking setting retroactively affects the streams it accepts, by
// making that choice an explicit, named option instead of a global default.
type NonblockingMode int

const (
	// NonblockingNeither makes both Accept and the accepted streams block.
	NonblockingNeither NonblockingMode = iota
	// NonblockingListener makes only Accept nonblocking; accepted streams
	// still perform blocking reads and writes.
	NonblockingListener
	// NonblockingListenerAndStreams makes both Accept and every stream it
	// produces nonblocking.
	NonblockingListenerAndStreams
)

// ErrWouldBlock is returned by Accept, and by Stream reads/writes on
// streams opened under NonblockingListenerAndStreams, when the operation
// would otherwise block.
var ErrWouldBlock = errors.New("winpipe: operation would block")

// ListenerOptions configures a named pipe listener's instance pool.
type ListenerOptions struct {
	// Path is the full \\.\pipe\... UNC path of the pipe.
	Path string
	// Config carries the per-instance creation parameters (message mode,
	// buffer size hints, SDDL security descriptor).
	Config PipeConfig
	// InstanceLimit caps the number of concurrently live pipe instances.
	// Zero means unbounded (still subject to Windows' own practical
	// ceiling). A positive value is an exact cap; Accept returns
	// ErrInstanceLimitReached rather than blocking once it is reached.
	InstanceLimit int32
	// Nonblocking controls whether Accept, and optionally the resulting
	// streams, block.
	Nonblocking NonblockingMode
}

// Listener accepts connections from an explicit, capped pool of named pipe
// instances, per the instance-pool design: Accept first looks for an idle
// previously created instance and only creates a new one when none is
// free, subject to InstanceLimit.
type Listener struct {
	opts ListenerOptions
	pool instancePool

	mu          sync.Mutex
	closed      bool
	firstHandle windows.Handle
}

// Listen creates the first pipe instance at path and returns a Listener
// that will grow its instance pool on demand as Accept is called.
func Listen(opts ListenerOptions) (*Listener, error) {
	c := opts.Config
	var sd []byte
	if c.SecurityDescriptor != "" {
		var err error
		sd, err = SddlToSecurityDescriptor(c.SecurityDescriptor)
		if err != nil {
			return nil, err
		}
	}

	h, err := makeServerPipeHandle(opts.Path, sd, &c, true)
	if err != nil {
		return nil, err
	}
	f, err := makeWin32File(h)
	if err != nil {
		windows.Close(h)
		return nil, err
	}

	l := &Listener{opts: opts, firstHandle: h}
	l.pool.limit = opts.InstanceLimit
	l.pool.entries = append(l.pool.entries, &instanceEntry{f: f})
	return l, nil
}

// acquireInstance returns an idle instance, creating a new one if the pool
// has room, or ErrInstanceLimitReached if it does not.
func (l *Listener) acquireInstance() (*instanceEntry, error) {
	if e := l.pool.acquireFree(); e != nil {
		return e, nil
	}

	ok, err := l.pool.reserveGrowthSlot()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInstanceLimitReached
	}

	h, err := makeServerPipeHandle(l.opts.Path, nil, &l.opts.Config, false)
	if err != nil {
		l.pool.rollbackGrowth()
		return nil, err
	}
	f, err := makeWin32File(h)
	if err != nil {
		windows.Close(h)
		l.pool.rollbackGrowth()
		return nil, err
	}
	e := &instanceEntry{f: f, inUse: true}
	l.pool.commitGrowth(e)
	return e, nil
}

// Accept waits for (or, under a nonblocking mode, polls for) a client
// connection and returns the connected Stream.
func (l *Listener) Accept() (*Stream, error) {
	l.mu.Lock()
	closed := l.closed
	l.mu.Unlock()
	if closed {
		return nil, ErrPipeListenerClosed
	}

	for {
		e, err := l.acquireInstance()
		if err != nil {
			return nil, err
		}

		var connErr error
		if l.opts.Nonblocking == NonblockingNeither {
			connErr = connectPipe(e.f)
		} else {
			connErr = connectPipeNonblocking(e.f)
		}

		switch {
		case connErr == nil:
			return newServerStream(e.f, l.opts.Path, l.opts.Config, e, &l.pool, l.opts.Nonblocking == NonblockingListenerAndStreams), nil
		case connErr == ErrWouldBlock:
			l.pool.release(e)
			return nil, ErrWouldBlock
		case connErr == windows.ERROR_NO_DATA: //nolint:errorlint // err is Errno
			// Client connected and immediately disappeared; retry silently.
			l.pool.release(e)
			continue
		default:
			l.pool.remove(e)
			e.f.Close()
			return nil, connErr
		}
	}
}

// Close shuts down the listener and every instance currently in its pool.
func (l *Listener) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.mu.Unlock()

	logger := log.Get().WithField("component", "winpipe.listener")
	for _, e := range l.pool.snapshot() {
		if err := e.f.Close(); err != nil {
			logger.WithError(err).Warn("closing pooled pipe instance")
		}
	}
	return nil
}

// Addr returns the pipe's UNC path.
func (l *Listener) Addr() pipeAddress { return pipeAddress(l.opts.Path) }
