//go:build windows

package localsocket

import (
	ipc "github.com/kotauskas/interprocess"
	"github.com/kotauskas/interprocess/winpipe"
)

// Listener is a facade Listener backed by a named pipe instance pool.
type Listener struct {
	inner *winpipe.Listener
	name  ipc.Name
}

func nonblockingMode(n NonblockingMode) winpipe.NonblockingMode {
	switch n {
	case NonblockingListener:
		return winpipe.NonblockingListener
	case NonblockingListenerAndStreams:
		return winpipe.NonblockingListenerAndStreams
	default:
		return winpipe.NonblockingNeither
	}
}

// Listen creates the first instance of a named pipe at opts.Name in
// byte-stream mode; message mode is only reachable through winpipe itself
// per spec's facade contract.
func Listen(opts ListenerOptions) (*Listener, error) {
	l, err := winpipe.Listen(winpipe.ListenerOptions{
		Path: opts.Name.String(),
		Config: winpipe.PipeConfig{
			SecurityDescriptor: opts.SecurityDescriptor,
			InputBufferSize:    opts.InputBufferSize,
			OutputBufferSize:   opts.OutputBufferSize,
		},
		InstanceLimit: opts.InstanceLimit,
		Nonblocking:   nonblockingMode(opts.Nonblocking),
	})
	if err != nil {
		return nil, err
	}
	return &Listener{inner: l, name: opts.Name}, nil
}

// Accept waits for (or polls for, in nonblocking mode) a client connection.
func (l *Listener) Accept() (*Stream, error) {
	s, err := l.inner.Accept()
	if err != nil {
		if err == winpipe.ErrWouldBlock { //nolint:errorlint // sentinel is a plain error
			return nil, ErrWouldBlock
		}
		return nil, err
	}
	return &Stream{inner: s}, nil
}

// Close shuts down the listener and every pooled instance.
func (l *Listener) Close() error { return l.inner.Close() }

// Addr returns the name the listener is bound to.
func (l *Listener) Addr() ipc.Name { return l.name }
