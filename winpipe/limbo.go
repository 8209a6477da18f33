//go:build windows
// +build windows

package winpipe

import (
	"sync"

	log "github.com/kotauskas/interprocess/internal/log"
)

// limboWorkerCount bounds the process-wide flush-on-close pool: a small
// number of worker threads created on demand and shared process-wide.
const limboWorkerCount = 4

// limboQueueDepth is the buffered backlog before submit falls back to
// spawning a one-off goroutine rather than blocking the dropping thread,
// which the flush-on-close contract forbids.
const limboQueueDepth = 256

type limboJob struct {
	f *win32File
}

// limboWorkerPool is the lazily-initialized, process-wide singleton that
// flushes and closes dirty stream handles handed off by Stream.Close so the
// caller's goroutine never blocks on a peer slow to drain its read buffer.
type limboWorkerPool struct {
	startOnce sync.Once
	jobs      chan limboJob
}

var limboPool = &limboWorkerPool{}

func (p *limboWorkerPool) ensureStarted() {
	p.startOnce.Do(func() {
		p.jobs = make(chan limboJob, limboQueueDepth)
		for i := 0; i < limboWorkerCount; i++ {
			go p.worker()
		}
	})
}

func (p *limboWorkerPool) worker() {
	logger := log.Get().WithField("component", "winpipe.limbo")
	for job := range p.jobs {
		if err := job.f.Flush(); err != nil {
			logger.WithError(err).Warn("limbo: flush failed")
		}
		if err := job.f.Close(); err != nil {
			logger.WithError(err).Warn("limbo: close failed")
		}
	}
}

// submit hands f to a limbo worker. If the queue is saturated, a one-off
// goroutine is spawned instead of blocking: the dropping thread must never
// block on limbo.
func (p *limboWorkerPool) submit(f *win32File) {
	p.ensureStarted()
	select {
	case p.jobs <- limboJob{f: f}:
	default:
		go func() {
			logger := log.Get().WithField("component", "winpipe.limbo")
			if err := f.Flush(); err != nil {
				logger.WithError(err).Warn("limbo: flush failed")
			}
			if err := f.Close(); err != nil {
				logger.WithError(err).Warn("limbo: close failed")
			}
		}()
	}
}
