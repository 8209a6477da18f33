// Package split turns one full-duplex stream into two owned,
// single-direction halves that share ownership of the underlying handle,
// and reverses that split subject to an identity check.
//
// Generalized with Go generics over a ReadWriteCloser so both the uds and
// winpipe backends reuse one implementation.
package split

import "sync/atomic"

// ReadWriteCloser is the minimal handle contract a stream must satisfy to
// be splittable.
type ReadWriteCloser interface {
	Read([]byte) (int, error)
	Write([]byte) (int, error)
	Close() error
}

// owner is the shared, reference-counted holder of the underlying handle.
// Its address is the identity Reunite compares against.
type owner[H ReadWriteCloser] struct {
	handle H
	refs   atomic.Int32
}

func (o *owner[H]) release() error {
	if o.refs.Add(-1) == 0 {
		return o.handle.Close()
	}
	return nil
}

// RecvHalf is the receive-only owned view of a split stream.
type RecvHalf[H ReadWriteCloser] struct {
	owner  *owner[H]
	closed atomic.Bool
}

// SendHalf is the send-only owned view of a split stream.
type SendHalf[H ReadWriteCloser] struct {
	owner  *owner[H]
	closed atomic.Bool
}

// Split moves h into a shared owner and returns two single-direction
// halves. The underlying handle is closed only once both halves are
// closed (or reunited and the reunited stream is itself closed).
func Split[H ReadWriteCloser](h H) (*RecvHalf[H], *SendHalf[H]) {
	o := &owner[H]{handle: h}
	o.refs.Store(2)
	return &RecvHalf[H]{owner: o}, &SendHalf[H]{owner: o}
}

// Read reads from the underlying handle.
func (r *RecvHalf[H]) Read(b []byte) (int, error) { return r.owner.handle.Read(b) }

// Close releases this half's ownership share, closing the underlying
// handle once both halves are closed. Safe to call more than once.
func (r *RecvHalf[H]) Close() error {
	if r.closed.CompareAndSwap(false, true) {
		return r.owner.release()
	}
	return nil
}

// Write writes to the underlying handle.
func (s *SendHalf[H]) Write(b []byte) (int, error) { return s.owner.handle.Write(b) }

// Close releases this half's ownership share, closing the underlying
// handle once both halves are closed. Safe to call more than once.
func (s *SendHalf[H]) Close() error {
	if s.closed.CompareAndSwap(false, true) {
		return s.owner.release()
	}
	return nil
}

// ReuniteError is returned by Reunite when the two halves don't share an
// owner; it carries both halves back so the caller can keep using them
// instead of leaking them.
type ReuniteError[H ReadWriteCloser] struct {
	Recv *RecvHalf[H]
	Send *SendHalf[H]
}

func (e *ReuniteError[H]) Error() string {
	return "split: cannot reunite halves from different streams"
}

// Reunite restores sole ownership of the underlying handle, returning it,
// iff rh and sh originated from the same Split call. Both halves are
// marked consumed on success; neither may be used or closed afterwards
// (the returned handle now owns the connection exclusively).
func Reunite[H ReadWriteCloser](rh *RecvHalf[H], sh *SendHalf[H]) (H, error) {
	if rh.owner != sh.owner {
		var zero H
		return zero, &ReuniteError[H]{Recv: rh, Send: sh}
	}
	rh.closed.Store(true)
	sh.closed.Store(true)
	return rh.owner.handle, nil
}
