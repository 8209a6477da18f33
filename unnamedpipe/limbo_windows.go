//go:build windows

package unnamedpipe

import (
	"sync"

	"golang.org/x/sys/windows"

	log "github.com/kotauskas/interprocess/internal/log"
)

// anonLimboWorkerCount and anonLimboQueueDepth mirror winpipe's limbo pool
// sizing; unnamed pipes and named pipe instances both need a dropped dirty
// writer to flush-then-close off the caller's goroutine, but CreatePipe
// handles aren't win32File-wrapped so they need their own small pool
// rather than sharing winpipe's (which is keyed to *win32File).
const (
	anonLimboWorkerCount = 4
	anonLimboQueueDepth  = 256
)

type anonLimboJob struct {
	h windows.Handle
}

type anonLimboWorkerPool struct {
	startOnce sync.Once
	jobs      chan anonLimboJob
}

var anonLimboPool = &anonLimboWorkerPool{}

func (p *anonLimboWorkerPool) ensureStarted() {
	p.startOnce.Do(func() {
		p.jobs = make(chan anonLimboJob, anonLimboQueueDepth)
		for i := 0; i < anonLimboWorkerCount; i++ {
			go p.worker()
		}
	})
}

func (p *anonLimboWorkerPool) worker() {
	logger := log.Get().WithField("component", "unnamedpipe.limbo")
	for job := range p.jobs {
		if err := windows.FlushFileBuffers(job.h); err != nil && err != windows.ERROR_PIPE_NOT_CONNECTED { //nolint:errorlint // err is Errno
			logger.WithError(err).Warn("flushing limbo pipe handle")
		}
		if err := windows.CloseHandle(job.h); err != nil {
			logger.WithError(err).Warn("closing limbo pipe handle")
		}
	}
}

func (p *anonLimboWorkerPool) submit(h windows.Handle) {
	p.ensureStarted()
	select {
	case p.jobs <- anonLimboJob{h: h}:
	default:
		// Queue is saturated; spawn a one-off goroutine rather than block
		// the caller's Close.
		go func() {
			windows.FlushFileBuffers(h) //nolint:errcheck
			windows.CloseHandle(h)      //nolint:errcheck
		}()
	}
}
