//go:build unix

package uds

import (
	"os"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	ipc "github.com/kotauskas/interprocess"
	"github.com/kotauskas/interprocess/internal/log"
)

// DefaultBacklog is the listen(2) backlog used when ListenerOptions.Backlog
// is zero or negative.
const DefaultBacklog = 128

// ErrWouldBlock is returned by Listener.Accept and Stream.Read/Write when
// the FD is in nonblocking mode and the call would otherwise block.
var ErrWouldBlock = unix.EAGAIN

// ListenerOptions configures a Unix-domain-socket Listener.
type ListenerOptions struct {
	// Name is the endpoint to bind.
	Name ipc.Name
	// Backlog is the listen(2) backlog; DefaultBacklog if <= 0.
	Backlog int
	// Nonblocking sets the listener FD nonblocking at creation time.
	Nonblocking bool
	// NonblockingStreams makes streams produced by Accept nonblocking too.
	NonblockingStreams bool
	// ReclaimName unlinks the bound path on Close, if Name is path-like.
	// Ignored for namespaced (abstract) names, which have no filesystem
	// entry to reclaim.
	ReclaimName bool
}

// Listener is a bound, listening SOCK_STREAM Unix domain socket.
type Listener struct {
	fd                 int
	name               ipc.Name
	reclaimPath        string
	mu                 sync.Mutex
	nonblockingStreams bool
	closeOnce          sync.Once
	closeErr           error
}

func sockaddrFor(name ipc.Name) (*unix.SockaddrUnix, string) {
	if name.IsNamespaced() {
		// A leading '@' is the convention golang.org/x/sys/unix's
		// SockaddrUnix marshalling uses to request the Linux abstract
		// namespace (sun_path[0] = 0, no NUL terminator).
		return &unix.SockaddrUnix{Name: "@" + name.String()}, ""
	}
	return &unix.SockaddrUnix{Name: name.String()}, name.String()
}

// Bind creates, binds and listens on a SOCK_STREAM Unix domain socket.
func Bind(opts ListenerOptions) (*Listener, error) {
	if opts.Name.IsZero() {
		return nil, &ipc.InvalidNameError{Reason: "no name given to uds.Bind"}
	}
	backlog := opts.Backlog
	if backlog <= 0 {
		backlog = DefaultBacklog
	}

	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, errors.Wrap(err, "uds: socket")
	}

	sa, reclaimPath := sockaddrFor(opts.Name)
	bindErr := unix.Bind(fd, sa)
	if bindErr != nil && !opts.Name.IsNamespaced() && len(opts.Name.String()) > sunPathLen {
		bindErr = bindLongPath(fd, opts.Name.String())
	}
	if bindErr != nil {
		unix.Close(fd)
		// A pre-existing path ("corpse socket") surfaces as EADDRINUSE
		// here; Listener never unlinks it for the caller automatically.
		return nil, errors.Wrapf(bindErr, "uds: bind %q", opts.Name.String())
	}
	if err := unix.Listen(fd, backlog); err != nil {
		unix.Close(fd)
		return nil, errors.Wrapf(err, "uds: listen %q", opts.Name.String())
	}
	if opts.Nonblocking {
		if err := unix.SetNonblock(fd, true); err != nil {
			unix.Close(fd)
			return nil, errors.Wrap(err, "uds: set listener nonblocking")
		}
	}

	l := &Listener{
		fd:                 fd,
		name:               opts.Name,
		nonblockingStreams: opts.NonblockingStreams,
	}
	if opts.ReclaimName {
		l.reclaimPath = reclaimPath
	}
	return l, nil
}

// Accept blocks (or returns ErrWouldBlock in nonblocking mode) until a
// client connects, and returns a Stream for the new connection.
func (l *Listener) Accept() (*Stream, error) {
	for {
		nfd, _, err := unix.Accept4(l.fd, unix.SOCK_CLOEXEC)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			if errors.Is(err, unix.EAGAIN) {
				return nil, ErrWouldBlock
			}
			return nil, os.NewSyscallError("accept4", err)
		}
		l.mu.Lock()
		nonblocking := l.nonblockingStreams
		l.mu.Unlock()
		if nonblocking {
			if err := unix.SetNonblock(nfd, true); err != nil {
				unix.Close(nfd)
				return nil, errors.Wrap(err, "uds: set accepted stream nonblocking")
			}
		}
		return &Stream{fd: nfd, nonblocking: nonblocking}, nil
	}
}

// SetNonblocking toggles the listener FD's nonblocking mode. If
// alsoStreams is true, it also changes whether future Accept calls return
// nonblocking streams; it never affects streams already accepted.
func (l *Listener) SetNonblocking(nonblocking, alsoStreams bool) error {
	if err := unix.SetNonblock(l.fd, nonblocking); err != nil {
		return errors.Wrap(err, "uds: set listener nonblocking")
	}
	if alsoStreams {
		l.mu.Lock()
		l.nonblockingStreams = nonblocking
		l.mu.Unlock()
	}
	return nil
}

// Addr returns the name the listener is bound to.
func (l *Listener) Addr() ipc.Name { return l.name }

// Close closes the listening socket and, if name reclamation is enabled,
// unlinks the bound path. The unlink is best-effort: a failure (or a race
// where another process replaced the path in the meantime) is only
// logged, never returned, and is not otherwise mitigated.
func (l *Listener) Close() error {
	l.closeOnce.Do(func() {
		l.closeErr = unix.Close(l.fd)
		if l.reclaimPath != "" {
			if err := unix.Unlink(l.reclaimPath); err != nil && !errors.Is(err, unix.ENOENT) {
				log.Get().WithField("path", l.reclaimPath).WithError(err).
					Warn("uds: failed to reclaim socket path on listener close")
			}
		}
	})
	return l.closeErr
}
