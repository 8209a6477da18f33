//go:build linux

package uds

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

// sunPathLen is sizeof(sockaddr_un.sun_path) on Linux.
const sunPathLen = 108

// bindLongPath binds fd to path when path is too long to fit directly in a
// sockaddr_un. It runs the bind on a separate errgroup goroutine whose
// thread unshares its filesystem namespace and stays pinned (there is no way to
// reverse CLONE_FS once unshared), so chdir-ing into the socket's
// directory there and binding with just the final path component can't be
// observed by any other goroutine.
func bindLongPath(fd int, path string) error {
	dir, file := filepath.Split(path)
	if len(file) > sunPathLen {
		return errors.Errorf("uds: final path component of %q is too long for sockaddr_un", path)
	}

	var eg errgroup.Group
	eg.Go(func() error {
		runtime.LockOSThread()
		if err := unix.Unshare(unix.CLONE_FS); err != nil {
			if errors.Is(err, os.ErrPermission) {
				runtime.UnlockOSThread()
				return errors.Errorf("uds: path %q exceeds sun_path and CLONE_FS is not permitted", path)
			}
			return errors.Wrap(err, "uds: unshare CLONE_FS")
		}
		// No call to runtime.UnlockOSThread on the success path: the thread's
		// filesystem namespace (its working directory) now differs from the
		// rest of the process, so the thread is retired along with this
		// goroutine rather than returned to the scheduler's pool.

		if err := os.Chdir(dir); err != nil {
			return errors.Wrapf(err, "uds: chdir %q", dir)
		}
		return unix.Bind(fd, &unix.SockaddrUnix{Name: file})
	})
	return eg.Wait()
}
