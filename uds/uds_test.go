//go:build unix

package uds

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	ipc "github.com/kotauskas/interprocess"
)

func tempSocketPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.sock")
}

func TestPingPong(t *testing.T) {
	path := tempSocketPath(t)
	name, err := ipc.ToFsName(path)
	require.NoError(t, err)

	l, err := Bind(ListenerOptions{Name: name})
	require.NoError(t, err)
	defer l.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		srv, err := l.Accept()
		if !assert.NoError(t, err) {
			return
		}
		defer srv.Close()
		buf := make([]byte, 64)
		n, err := srv.Read(buf)
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, "ping\n", string(buf[:n]))
		_, err = srv.Write([]byte("pong\n"))
		assert.NoError(t, err)
	}()

	cli, err := Dial(name)
	require.NoError(t, err)
	defer cli.Close()

	_, err = cli.Write([]byte("ping\n"))
	require.NoError(t, err)

	buf := make([]byte, 64)
	n, err := cli.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "pong\n", string(buf[:n]))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("server goroutine did not finish")
	}
}

func TestCorpseSocket(t *testing.T) {
	path := tempSocketPath(t)
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	name, err := ipc.ToFsName(path)
	require.NoError(t, err)

	_, err = Bind(ListenerOptions{Name: name})
	require.Error(t, err)
	assert.ErrorIs(t, err, unix.EADDRINUSE)

	require.NoError(t, os.Remove(path))
	l, err := Bind(ListenerOptions{Name: name})
	require.NoError(t, err)
	l.Close()
}

func TestReclaimOnDrop(t *testing.T) {
	path := tempSocketPath(t)
	name, err := ipc.ToFsName(path)
	require.NoError(t, err)

	l, err := Bind(ListenerOptions{Name: name, ReclaimName: true})
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	require.NoError(t, statErr)

	require.NoError(t, l.Close())

	_, statErr = os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestNoReclaimLeavesPath(t *testing.T) {
	path := tempSocketPath(t)
	name, err := ipc.ToFsName(path)
	require.NoError(t, err)

	l, err := Bind(ListenerOptions{Name: name, ReclaimName: false})
	require.NoError(t, err)
	require.NoError(t, l.Close())

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr, "path should still exist without reclaim_name")
}

func TestAbstractNamespace(t *testing.T) {
	if ipc.CurrentNameTypeSupport() != ipc.Both {
		t.Skip("abstract namespace only supported on Linux")
	}
	name, err := ipc.ToNsName(fmt.Sprintf("interprocess-test-%d", os.Getpid()))
	require.NoError(t, err)

	l, err := Bind(ListenerOptions{Name: name})
	require.NoError(t, err)
	defer l.Close()

	go func() {
		srv, err := l.Accept()
		if err == nil {
			srv.Close()
		}
	}()

	cli, err := Dial(name)
	require.NoError(t, err)
	cli.Close()
}

func TestNonblockingAcceptReturnsWouldBlock(t *testing.T) {
	path := tempSocketPath(t)
	name, err := ipc.ToFsName(path)
	require.NoError(t, err)

	l, err := Bind(ListenerOptions{Name: name, Nonblocking: true})
	require.NoError(t, err)
	defer l.Close()

	_, err = l.Accept()
	assert.ErrorIs(t, err, ErrWouldBlock)
}
