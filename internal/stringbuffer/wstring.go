//go:build windows

// Package stringbuffer provides a pool of reusable UTF-16 buffers for calls
// into Win32 APIs that fill a caller-supplied wide string buffer of unknown
// required size (GetFinalPathNameByHandle, and similar).
package stringbuffer

import (
	"sync"
	"unicode/utf16"
)

// MinWStringCap is the minimum capacity, in uint16 elements, of a buffer
// handed out by NewWString. It comfortably fits a MAX_PATH-sized path
// without forcing a resize in the common case.
const MinWStringCap = 256

var pathPool = sync.Pool{
	New: func() interface{} {
		b := make([]uint16, MinWStringCap)
		return &b
	},
}

func newPathBuffer() *[]uint16 {
	return pathPool.Get().(*[]uint16)
}

func freePathBuffer(b *[]uint16) {
	pathPool.Put(b)
}

// WString is a pooled buffer of UTF-16 code units, sized to grow on demand
// for Win32 calls that report the required size when the supplied buffer is
// too small.
type WString struct {
	b []uint16
}

// NewWString returns a WString with at least MinWStringCap capacity.
func NewWString() *WString {
	return &WString{b: *newPathBuffer()}
}

// Free returns the underlying buffer to the pool. The WString must not be
// used afterwards.
func (b *WString) Free() {
	buf := b.b
	freePathBuffer(&buf)
	b.b = nil
}

// Cap returns the buffer's capacity.
func (b *WString) Cap() uint32 {
	return uint32(len(b.b))
}

// Pointer returns a pointer to the first element of the buffer, suitable for
// passing to Win32 calls expecting an LPWSTR.
func (b *WString) Pointer() *uint16 {
	return &b.b[0]
}

// ResizeTo grows the buffer to at least n elements, doubling its current
// capacity if that is already larger, and returns the new capacity.
func (b *WString) ResizeTo(n uint32) uint32 {
	if n <= uint32(len(b.b)) {
		return uint32(len(b.b))
	}
	if doubled := uint32(len(b.b)) * 2; doubled > n {
		n = doubled
	}
	b.b = make([]uint16, n)
	return n
}

// String decodes the buffer up to its first NUL as a Go string.
func (b *WString) String() string {
	for i, v := range b.b {
		if v == 0 {
			return string(utf16.Decode(b.b[:i]))
		}
	}
	return string(utf16.Decode(b.b))
}
