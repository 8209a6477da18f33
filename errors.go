package interprocess

import (
	"errors"
	"fmt"
)

// InvalidNameError is returned by [ToFsName], [ToNsName] and [ToName] when
// the supplied string cannot become a valid [Name] on the running platform.
type InvalidNameError struct {
	Reason string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid local socket name: %s", e.Reason)
}

// ErrInvalidInput is the sentinel [InvalidNameError] and friends wrap so
// that callers can check with errors.Is without depending on the concrete
// error type.
var ErrInvalidInput = errors.New("invalid input")

func (e *InvalidNameError) Unwrap() error { return ErrInvalidInput }

// ErrNamespaceUnsupported wraps [ErrInvalidInput]. The [InvalidNameError]
// that [ToNsName] and [ToName] return on a platform whose
// [NameTypeSupport] is [OnlyFs] does not wrap it: that error unwraps to
// [ErrInvalidInput] only, so errors.Is against ErrNamespaceUnsupported
// does not match it.
var ErrNamespaceUnsupported = fmt.Errorf("%w: namespaced names are not supported on this platform", ErrInvalidInput)

// Message-size mismatches on Windows message-mode pipes are never reported
// as an error in this toolkit; they surface as a value (Fit vs Alloc, or
// TryRecv's Fit=false) — see winpipe.Stream.Recv / winpipe.Stream.TryRecv.
