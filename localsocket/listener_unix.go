//go:build unix

package localsocket

import (
	ipc "github.com/kotauskas/interprocess"
	"github.com/kotauskas/interprocess/uds"
)

// Listener is a facade Listener backed by a Unix domain socket.
type Listener struct {
	inner *uds.Listener
}

// Listen binds opts.Name as a SOCK_STREAM Unix domain socket.
func Listen(opts ListenerOptions) (*Listener, error) {
	l, err := uds.Bind(uds.ListenerOptions{
		Name:               opts.Name,
		Backlog:            opts.Backlog,
		Nonblocking:        opts.Nonblocking != NonblockingNeither,
		NonblockingStreams: opts.Nonblocking == NonblockingListenerAndStreams,
		ReclaimName:        opts.ReclaimName,
	})
	if err != nil {
		return nil, err
	}
	return &Listener{inner: l}, nil
}

// Accept blocks until a client connects, or returns ErrWouldBlock if the
// listener is nonblocking and no client is waiting.
func (l *Listener) Accept() (*Stream, error) {
	s, err := l.inner.Accept()
	if err != nil {
		if err == uds.ErrWouldBlock { //nolint:errorlint // sentinel is a syscall.Errno
			return nil, ErrWouldBlock
		}
		return nil, err
	}
	return &Stream{inner: s}, nil
}

// Close closes the listening socket, reclaiming its path if configured to.
func (l *Listener) Close() error { return l.inner.Close() }

// Addr returns the name the listener is bound to.
func (l *Listener) Addr() ipc.Name { return l.inner.Addr() }
