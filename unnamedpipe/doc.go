// Package unnamedpipe implements an anonymous, inheritable pipe pair: a
// ReadEnd/WriteEnd pair suitable for handing one end to a child process
// (via os/exec's ExtraFiles, or Windows handle inheritance) while keeping
// the other in the parent.
//
// On Windows, WriteEnd carries the same write-dirty/limbo discipline as
// winpipe.Stream: CreatePipe handles are not overlapped-capable, so a
// dropped dirty writer still needs a background flush-then-close rather
// than risking silent data loss on a synchronous close.
package unnamedpipe
