//go:build darwin

package uds

import (
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// sunPathLen is sizeof(sockaddr_un.sun_path) on Darwin.
const sunPathLen = 104

// bindLongPath binds fd to path when path is too long to fit directly in a
// sockaddr_un. Darwin has no CLONE_FS/unshare equivalent, but
// unix.PthreadChdir changes the working directory of only the calling
// thread, which LockOSThread pins to this goroutine for the duration of the
// bind; PthreadFchdir(-1) restores the thread's original directory
// afterwards so the thread can safely return to the scheduler's pool.
func bindLongPath(fd int, path string) error {
	dir, file := filepath.Split(path)
	if len(file) > sunPathLen {
		return errors.Errorf("uds: final path component of %q is too long for sockaddr_un", path)
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := unix.PthreadChdir(dir); err != nil {
		return errors.Wrapf(err, "uds: pthread_chdir %q", dir)
	}
	defer unix.PthreadFchdir(-1) //nolint:errcheck

	return unix.Bind(fd, &unix.SockaddrUnix{Name: file})
}
