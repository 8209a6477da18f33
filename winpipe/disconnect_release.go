//go:build windows && !ipcdebug
// +build windows,!ipcdebug

package winpipe

import log "github.com/kotauskas/interprocess/internal/log"

// handleDisconnectFailure logs a failed server-side DisconnectNamedPipe at
// Warn. Close cannot propagate this as an error: it runs from a
// destructor-shaped call site with no caller left to hand an error back to.
func handleDisconnectFailure(path string, err error) {
	log.Get().WithField("pipe", path).WithError(err).Warn("DisconnectNamedPipe failed")
}
