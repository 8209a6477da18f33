package localsocket

import (
	"errors"

	ipc "github.com/kotauskas/interprocess"
)

// ErrWouldBlock is returned by Listener.Accept and Stream.Read/Write when
// the underlying handle is nonblocking and the call would otherwise block,
// regardless of which backend is active.
var ErrWouldBlock = errors.New("localsocket: operation would block")

// NonblockingMode resolves spec's listener-vs-stream nonblocking Open
// Question as an explicit option rather than a hidden default.
type NonblockingMode int

const (
	// NonblockingNeither makes both Accept and accepted streams block.
	NonblockingNeither NonblockingMode = iota
	// NonblockingListener makes only Accept nonblocking.
	NonblockingListener
	// NonblockingListenerAndStreams makes both Accept and the streams it
	// produces nonblocking.
	NonblockingListenerAndStreams
)

// ListenerOptions configures a facade Listener. Some fields only apply to
// one backend; they are silently ignored on the other platform, the same
// way PipeConfig.SecurityDescriptor has no Unix equivalent and
// ListenerOptions.Backlog has no Windows equivalent.
type ListenerOptions struct {
	// Name is the endpoint to bind. The backend is selected by the build
	// target at compile time, not by inspecting Name at runtime.
	Name ipc.Name
	// Nonblocking controls whether Accept, and optionally the streams it
	// produces, block.
	Nonblocking NonblockingMode

	// ReclaimName (Unix only): unlink the bound path on Close.
	ReclaimName bool
	// Backlog (Unix only): the listen(2) backlog; uds.DefaultBacklog if <= 0.
	Backlog int

	// InstanceLimit (Windows only): caps concurrently live pipe instances;
	// zero means unbounded.
	InstanceLimit int32
	// InputBufferSize, OutputBufferSize (Windows only): per-instance kernel
	// buffer size hints.
	InputBufferSize, OutputBufferSize int32
	// SecurityDescriptor (Windows only): SDDL string for the pipe's DACL.
	SecurityDescriptor string
}
