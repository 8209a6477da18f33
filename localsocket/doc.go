// Package localsocket is the cross-platform façade over the uds and
// winpipe backends: a Listener/Stream pair whose concrete implementation
// is chosen at compile time by the build target (uds on Unix, winpipe on
// Windows), so calling code never imports uds or winpipe directly.
//
// Message-mode pipes are intentionally unreachable here — a caller that
// needs Recv/TryRecv works against winpipe.Stream directly. Byte
// read/write, split/reunite and ListenerOptions.Nonblocking are available
// through this package on both platforms. Stream.SetNonblocking exists
// only on Unix; a Windows Stream's blocking mode is fixed by the
// ListenerOptions.Nonblocking of the Listener that accepted it.
package localsocket
