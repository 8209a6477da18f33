//go:build linux

package uds

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Credentials carries the peer process's identity as reported by the OS at
// connection-accept time.
type Credentials struct {
	PID int32
	UID uint32
	GID uint32
}

// PeerCredentials fetches the connecting process's PID/UID/GID via
// SO_PEERCRED, read directly off the socket option rather than through an
// ancillary-data cmsg.
func (s *Stream) PeerCredentials() (Credentials, error) {
	ucred, err := unix.GetsockoptUcred(s.fd, unix.SOL_SOCKET, unix.SO_PEERCRED)
	if err != nil {
		return Credentials{}, errors.Wrap(err, "uds: SO_PEERCRED")
	}
	return Credentials{PID: ucred.Pid, UID: ucred.Uid, GID: ucred.Gid}, nil
}
