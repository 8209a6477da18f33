//go:build windows

package asynclocalsocket

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ipc "github.com/kotauskas/interprocess"
	"github.com/kotauskas/interprocess/localsocket"
)

func testName(t *testing.T) ipc.Name {
	t.Helper()
	n, err := ipc.ToNsName(fmt.Sprintf("interprocess-async-test-%d-%d", os.Getpid(), time.Now().UnixNano()))
	require.NoError(t, err)
	return n
}

func TestAsyncPingPong(t *testing.T) {
	name := testName(t)
	l, err := Listen(localsocket.ListenerOptions{Name: name})
	require.NoError(t, err)
	defer l.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		srv, err := l.Accept(ctx)
		if !assert.NoError(t, err) {
			return
		}
		defer srv.Close()
		buf := make([]byte, 64)
		n, err := srv.Read(ctx, buf)
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, "ping", string(buf[:n]))
		_, err = srv.Write(ctx, []byte("pong"))
		assert.NoError(t, err)
	}()

	cli, err := Dial(ctx, name)
	require.NoError(t, err)
	defer cli.Close()

	_, err = cli.Write(ctx, []byte("ping"))
	require.NoError(t, err)

	buf := make([]byte, 64)
	n, err := cli.Read(ctx, buf)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(buf[:n]))

	<-done
}

func TestAsyncReadCancelled(t *testing.T) {
	name := testName(t)
	l, err := Listen(localsocket.ListenerOptions{Name: name})
	require.NoError(t, err)
	defer l.Close()

	acceptCtx, acceptCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer acceptCancel()

	srvCh := make(chan *Stream, 1)
	go func() {
		srv, err := l.Accept(acceptCtx)
		assert.NoError(t, err)
		srvCh <- srv
	}()

	cli, err := Dial(acceptCtx, name)
	require.NoError(t, err)
	defer cli.Close()

	srv := <-srvCh
	defer srv.Close()

	readCtx, readCancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer readCancel()

	buf := make([]byte, 16)
	_, err = cli.Read(readCtx, buf)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
