//go:build windows
// +build windows

package winpipe

import (
	"sync"
	"syscall"

	"github.com/pkg/errors"
)

// ErrInstanceLimitReached is returned by Listener.Accept when InstanceLimit
// is a positive cap and every existing instance is in use. Per the
// instance-pool contract, exceeding the cap never blocks the caller.
var ErrInstanceLimitReached = errors.Wrap(syscall.EADDRINUSE, "winpipe: instance limit reached")

// instanceEntry tracks one pipe-instance handle's in-use state within a
// Listener's pool.
type instanceEntry struct {
	f     *win32File
	inUse bool
}

// instancePool implements the scan-free-then-grow allocation policy: find a
// previously created, currently idle instance first, and only create a new
// one (subject to limit) when none is free. Growth under concurrent Accept
// calls is serialized by mu, so a grow decision and the resulting append are
// atomic with respect to the limit check.
type instancePool struct {
	mu      sync.Mutex
	entries []*instanceEntry
	limit   int32 // 0 means unbounded
}

// acquireFree returns and marks in-use the first idle entry, or nil if none
// is free.
func (p *instancePool) acquireFree() *instanceEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.entries {
		if !e.inUse {
			e.inUse = true
			return e
		}
	}
	return nil
}

// reserveGrowthSlot atomically checks the limit and, if there's room,
// reserves a slot for a to-be-created instance by appending a nil
// placeholder. Callers fill it with commitGrowth once the handle exists;
// callers that fail to create the handle must call rollbackGrowth to free
// the reservation.
func (p *instancePool) reserveGrowthSlot() (ok bool, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.limit > 0 && int32(len(p.entries)) >= p.limit {
		return false, ErrInstanceLimitReached
	}
	p.entries = append(p.entries, nil) // placeholder reserving the slot
	return true, nil
}

// commitGrowth fills the most recently reserved nil placeholder with e.
func (p *instancePool) commitGrowth(e *instanceEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.entries) - 1; i >= 0; i-- {
		if p.entries[i] == nil {
			p.entries[i] = e
			return
		}
	}
}

// rollbackGrowth removes one reserved-but-unfilled placeholder.
func (p *instancePool) rollbackGrowth() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.entries) - 1; i >= 0; i-- {
		if p.entries[i] == nil {
			p.entries = append(p.entries[:i], p.entries[i+1:]...)
			return
		}
	}
}

func (p *instancePool) release(e *instanceEntry) {
	p.mu.Lock()
	e.inUse = false
	p.mu.Unlock()
}

func (p *instancePool) remove(e *instanceEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, x := range p.entries {
		if x == e {
			p.entries = append(p.entries[:i], p.entries[i+1:]...)
			return
		}
	}
}

func (p *instancePool) snapshot() []*instanceEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*instanceEntry, 0, len(p.entries))
	for _, e := range p.entries {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}
