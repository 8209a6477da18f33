//go:build unix

package uds

import (
	"io"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	ipc "github.com/kotauskas/interprocess"
)

// ShutdownHow selects which half of a Stream to shut down.
type ShutdownHow int

const (
	ShutdownRead ShutdownHow = iota
	ShutdownWrite
	ShutdownBoth
)

func (h ShutdownHow) sysHow() int {
	switch h {
	case ShutdownRead:
		return unix.SHUT_RD
	case ShutdownWrite:
		return unix.SHUT_WR
	default:
		return unix.SHUT_RDWR
	}
}

// Stream is a connected SOCK_STREAM Unix domain socket endpoint.
type Stream struct {
	fd          int
	nonblocking bool
	mu          sync.Mutex
	closeOnce   sync.Once
	closeErr    error
}

// Dial connects to a listening Unix domain socket by name.
func Dial(name ipc.Name) (*Stream, error) {
	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, errors.Wrap(err, "uds: socket")
	}
	sa, _ := sockaddrFor(name)
	if err := unix.Connect(fd, sa); err != nil {
		unix.Close(fd)
		return nil, errors.Wrapf(err, "uds: connect %q", name.String())
	}
	return &Stream{fd: fd}, nil
}

// FD returns the underlying file descriptor. Exposed for callers who need
// to reach the ancillary-data subsystem (cmsg send/recv, fd passing)
// directly.
func (s *Stream) FD() int { return s.fd }

// Read implements io.Reader over read(2).
func (s *Stream) Read(b []byte) (int, error) {
	for {
		n, err := unix.Read(s.fd, b)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			if errors.Is(err, unix.EAGAIN) {
				return 0, ErrWouldBlock
			}
			return 0, err
		}
		if n == 0 && len(b) > 0 {
			return 0, io.EOF
		}
		return n, nil
	}
}

// Write implements io.Writer over write(2).
func (s *Stream) Write(b []byte) (int, error) {
	var written int
	for written < len(b) {
		n, err := unix.Write(s.fd, b[written:])
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			if errors.Is(err, unix.EAGAIN) {
				if written > 0 {
					return written, nil
				}
				return 0, ErrWouldBlock
			}
			if errors.Is(err, unix.EPIPE) {
				return written, errors.Wrap(io.ErrClosedPipe, "uds: peer closed")
			}
			return written, err
		}
		written += n
	}
	return written, nil
}

// ReadVec reads into multiple buffers with a single readv(2) call.
func (s *Stream) ReadVec(bufs [][]byte) (int, error) {
	n, err := unix.Readv(s.fd, bufs)
	return n, err
}

// WriteVec writes multiple buffers with a single writev(2) call.
func (s *Stream) WriteVec(bufs [][]byte) (int, error) {
	n, err := unix.Writev(s.fd, bufs)
	return n, err
}

// Flush is a no-op: Unix stream sockets have no userspace write buffer to
// flush.
func (s *Stream) Flush() error { return nil }

// Shutdown calls shutdown(2) for the given direction. There is no portable
// equivalent on the Windows backend; callers who need cross-platform
// half-close must encode end-of-transmission themselves.
func (s *Stream) Shutdown(how ShutdownHow) error {
	return unix.Shutdown(s.fd, how.sysHow())
}

// SetNonblocking toggles O_NONBLOCK on the stream's FD.
func (s *Stream) SetNonblocking(nonblocking bool) error {
	if err := unix.SetNonblock(s.fd, nonblocking); err != nil {
		return err
	}
	s.mu.Lock()
	s.nonblocking = nonblocking
	s.mu.Unlock()
	return nil
}

// Close closes the underlying file descriptor.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = unix.Close(s.fd)
	})
	return s.closeErr
}
