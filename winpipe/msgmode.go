//go:build windows
// +build windows

package winpipe

import (
	"io"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

var (
	modkernel32PeekPipe = windows.NewLazySystemDLL("kernel32.dll")
	procPeekNamedPipe   = modkernel32PeekPipe.NewProc("PeekNamedPipe")
)

// peekNamedPipe is a hand-written wrapper in the same style as
// zsyscall_windows.go's generated bindings, for the one Win32 call this
// package needs that go-winio's own //sys directives never generated.
func peekNamedPipe(h windows.Handle, buf []byte) (bytesRead, bytesAvail, bytesLeftThisMessage uint32, err error) {
	var bufPtr *byte
	if len(buf) > 0 {
		bufPtr = &buf[0]
	}
	r1, _, e1 := procPeekNamedPipe.Call(
		uintptr(h),
		uintptr(unsafe.Pointer(bufPtr)),
		uintptr(len(buf)),
		uintptr(unsafe.Pointer(&bytesRead)),
		uintptr(unsafe.Pointer(&bytesAvail)),
		uintptr(unsafe.Pointer(&bytesLeftThisMessage)),
	)
	if r1 == 0 {
		err = e1
	}
	return
}

// RecvResult is the outcome of Recv: either the message fit in the caller's
// buffer (Fit), or it didn't and Data holds a freshly allocated copy of the
// whole message, when it didn't fit the caller's buffer.
type RecvResult struct {
	Data []byte
	Fit  bool
}

// TryRecvResult reports the size of the next queued message without
// consuming it.
type TryRecvResult struct {
	Size int
	Fit  bool
}

var errNotMessageMode = errors.New("winpipe: Recv/TryRecv require a message-mode pipe")

// peekNextMessageSize returns the length of the next queued message using a
// zero-length peek: for a message-type pipe, BytesLeftThisMessage reports
// the full message length when no bytes have been consumed from it yet.
func (s *Stream) peekNextMessageSize() (int, error) {
	if !s.msgMode {
		return 0, errNotMessageMode
	}
	_, _, left, err := peekNamedPipe(s.f.handle, nil)
	if err != nil {
		if err == windows.ERROR_BROKEN_PIPE || err == windows.ERROR_PIPE_NOT_CONNECTED { //nolint:errorlint // err is Errno
			return 0, io.EOF
		}
		return 0, errors.Wrap(err, "winpipe: PeekNamedPipe")
	}
	return int(left), nil
}

// readExactly reads precisely n bytes of the next message, bypassing the
// byte-stream ERROR_MORE_DATA suppression in Stream.Read since the caller
// has already sized the buffer to the whole message.
func (s *Stream) readExactly(buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := s.f.Read(buf[total:])
		total += n
		if err != nil && err != windows.ERROR_MORE_DATA { //nolint:errorlint // err is Errno
			return total, err
		}
		if n == 0 {
			break
		}
	}
	return total, nil
}

// Recv reads the next message. If it fits in buf, Recv reads it in place
// and returns RecvResult{Data: buf[:n], Fit: true}. If it doesn't fit, Recv
// allocates a buffer sized to the whole message, reads the complete
// message into it, and returns Fit: false.
// Valid only on message-mode pipes.
func (s *Stream) Recv(buf []byte) (RecvResult, error) {
	size, err := s.peekNextMessageSize()
	if err != nil {
		return RecvResult{}, err
	}
	if size == 0 {
		return RecvResult{}, io.EOF
	}

	if size <= len(buf) {
		n, err := s.readExactly(buf[:size])
		if err != nil {
			return RecvResult{}, err
		}
		return RecvResult{Data: buf[:n], Fit: true}, nil
	}

	data := make([]byte, size)
	n, err := s.readExactly(data)
	if err != nil {
		return RecvResult{}, err
	}
	return RecvResult{Data: data[:n], Fit: false}, nil
}

// TryRecv reports the size of the next queued message and whether it would
// fit in buf, without consuming it: a later Recv still sees the same
// message.
func (s *Stream) TryRecv(buf []byte) (TryRecvResult, error) {
	size, err := s.peekNextMessageSize()
	if err != nil {
		return TryRecvResult{}, err
	}
	return TryRecvResult{Size: size, Fit: size <= len(buf)}, nil
}
