//go:build windows

package localsocket

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ipc "github.com/kotauskas/interprocess"
)

func testName(t *testing.T) ipc.Name {
	t.Helper()
	n, err := ipc.ToNsName(fmt.Sprintf("interprocess-facade-test-%d-%d", os.Getpid(), time.Now().UnixNano()))
	require.NoError(t, err)
	return n
}

func TestFacadePingPong(t *testing.T) {
	name := testName(t)
	l, err := Listen(ListenerOptions{Name: name})
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
		assert.Equal(t, "ping", string(buf[:n]))
		_, err = srv.Write([]byte("pong"))
		assert.NoError(t, err)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cli, err := Dial(ctx, name)
	require.NoError(t, err)
	defer cli.Close()

	_, err = cli.Write([]byte("ping"))
	require.NoError(t, err)

	buf := make([]byte, 64)
	n, err := cli.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(buf[:n]))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("server goroutine did not finish")
	}
}

func TestFacadeInstanceLimit(t *testing.T) {
	name := testName(t)
	l, err := Listen(ListenerOptions{Name: name, InstanceLimit: 1})
	require.NoError(t, err)
	defer l.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	cli, err := Dial(ctx, name)
	require.NoError(t, err)
	defer cli.Close()

	srv, err := l.Accept()
	require.NoError(t, err)
	defer srv.Close()

	_, err = l.Accept()
	assert.Error(t, err)
}
