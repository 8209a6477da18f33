// Package interprocess provides a uniform, cross-platform abstraction over
// local interprocess communication endpoints: Unix domain stream sockets on
// POSIX systems and Windows named pipes.
//
// The unified surface is a "local socket": a [Name] identifies an endpoint,
// [localsocket.Listener] binds and accepts connections, and
// [localsocket.Stream] moves bytes across the connection regardless of which
// OS primitive backs it. Callers who need platform-specific behavior (Unix
// ancillary data and peer credentials, or Windows message-mode pipes and
// flush-before-close semantics) reach past the façade into the [uds] or
// [winpipe] packages directly.
package interprocess
