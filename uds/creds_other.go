//go:build unix && !linux && !darwin

package uds

import "errors"

// Credentials carries the peer process's identity as reported by the OS at
// connection-accept time. Unsupported on this Unix variant.
type Credentials struct{}

// ErrPeerCredentialsUnsupported is returned by PeerCredentials on Unix
// variants other than Linux and Darwin, where this port does not implement
// the platform-specific peer-credential socket option (LOCAL_PEEREID on
// NetBSD/OpenBSD, getpeereid on other BSDs).
var ErrPeerCredentialsUnsupported = errors.New("uds: peer credentials are not implemented on this platform")

func (s *Stream) PeerCredentials() (Credentials, error) {
	return Credentials{}, ErrPeerCredentialsUnsupported
}
