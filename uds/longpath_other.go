//go:build unix && !linux && !darwin

package uds

import "github.com/pkg/errors"

// sunPathLen is the conservative, traditional BSD-socket sun_path size; most
// non-Linux/Darwin unix platforms in practice match or exceed it, but none of
// them expose a documented per-thread or per-process chdir workaround the
// way Linux's CLONE_FS or Darwin's pthread_chdir do.
const sunPathLen = 104

// bindLongPath has no workaround available on this platform: a path that
// doesn't fit in sockaddr_un simply cannot be bound.
func bindLongPath(fd int, path string) error {
	return errors.Errorf("uds: path %q exceeds sun_path and no long-path workaround exists on this platform", path)
}
