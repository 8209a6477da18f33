//go:build windows && ipcdebug
// +build windows,ipcdebug

package winpipe

import "fmt"

// handleDisconnectFailure panics in debug builds (-tags ipcdebug), where a
// failed DisconnectNamedPipe should surface loudly instead of a quiet log
// line a test run might never notice.
func handleDisconnectFailure(path string, err error) {
	panic(fmt.Sprintf("winpipe: DisconnectNamedPipe(%s): %v", path, err))
}
