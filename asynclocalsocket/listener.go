package asynclocalsocket

import (
	"context"
	"time"

	ipc "github.com/kotauskas/interprocess"
	"github.com/kotauskas/interprocess/localsocket"
)

// pollInterval is how often a cancellable Accept/Read/Write re-attempts a
// nonblocking operation while waiting for ctx or data. It is intentionally
// short: these are local IPC endpoints, not network sockets, so spurious
// wakeups are cheap relative to added latency.
const pollInterval = 2 * time.Millisecond

// Listener is the async mirror of localsocket.Listener. It always runs its
// backend in nonblocking-listener mode internally, regardless of what the
// caller's NonblockingMode says about streams.
type Listener struct {
	inner *localsocket.Listener
}

// Listen creates a Listener whose Accept is cancellable via context.
func Listen(opts localsocket.ListenerOptions) (*Listener, error) {
	if opts.Nonblocking == localsocket.NonblockingNeither {
		opts.Nonblocking = localsocket.NonblockingListener
	}
	l, err := localsocket.Listen(opts)
	if err != nil {
		return nil, err
	}
	return &Listener{inner: l}, nil
}

// Accept waits for a client connection, polling at pollInterval, until one
// arrives or ctx is done.
func (l *Listener) Accept(ctx context.Context) (*Stream, error) {
	for {
		s, err := l.inner.Accept()
		if err == nil {
			return newStream(s), nil
		}
		if err != localsocket.ErrWouldBlock {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// Close closes the listener.
func (l *Listener) Close() error { return l.inner.Close() }

// Addr returns the name the listener is bound to.
func (l *Listener) Addr() ipc.Name { return l.inner.Addr() }
