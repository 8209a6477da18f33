//go:build darwin

package uds

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Credentials carries the peer process's identity as reported by the OS at
// connection-accept time. macOS's LOCAL_PEERCRED does not report a PID.
type Credentials struct {
	UID uint32
	GID uint32
}

// PeerCredentials fetches the connecting process's UID/GID via
// LOCAL_PEERCRED, adapted to the BSD xucred structure.
func (s *Stream) PeerCredentials() (Credentials, error) {
	xucred, err := unix.GetsockoptXucred(s.fd, unix.SOL_LOCAL, unix.LOCAL_PEERCRED)
	if err != nil {
		return Credentials{}, errors.Wrap(err, "uds: LOCAL_PEERCRED")
	}
	return Credentials{UID: xucred.Uid, GID: xucred.Groups[0]}, nil
}
