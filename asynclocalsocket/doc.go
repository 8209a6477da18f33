// Package asynclocalsocket mirrors localsocket with context-first
// operations instead of unconditionally blocking ones. Go has no
// futures/poll model to translate literally —
// instead, Accept (and, on Unix, Read/Write) is a loop between a
// nonblocking attempt and a select against ctx.Done(); on Windows,
// Read/Write run the blocking call on a goroutine and select on its result
// and ctx.Done(). The goroutine calling Accept/Read/Write is the "task" and
// the Go scheduler is the reactor.
//
// Cancellation never leaves a handle unusable: on Windows, an in-flight
// overlapped Read/Write is unwound by arming its deadline, the same
// mechanism winpipe already uses for SetReadDeadline/SetWriteDeadline; on
// Unix, the stream is simply kept in nonblocking mode and retried.
package asynclocalsocket
