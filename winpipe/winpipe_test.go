//go:build windows
// +build windows

package winpipe

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPipePath(t *testing.T) string {
	t.Helper()
	return fmt.Sprintf(`\\.\pipe\interprocess-test-%d-%d`, os.Getpid(), time.Now().UnixNano())
}

func TestListenerPingPong(t *testing.T) {
	path := testPipePath(t)
	l, err := Listen(ListenerOptions{Path: path})
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
	cli, err := Dial(ctx, path)
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

func TestInstanceLimitReached(t *testing.T) {
	path := testPipePath(t)
	l, err := Listen(ListenerOptions{Path: path, InstanceLimit: 1})
	require.NoError(t, err)
	defer l.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	cli1, err := Dial(ctx, path)
	require.NoError(t, err)
	defer cli1.Close()

	srv1, err := l.Accept()
	require.NoError(t, err)
	defer srv1.Close()

	_, err = l.Accept()
	assert.ErrorIs(t, err, ErrInstanceLimitReached)
}

func TestNonblockingListenerAcceptReturnsWouldBlock(t *testing.T) {
	path := testPipePath(t)
	l, err := Listen(ListenerOptions{Path: path, Nonblocking: NonblockingListener})
	require.NoError(t, err)
	defer l.Close()

	_, err = l.Accept()
	assert.ErrorIs(t, err, ErrWouldBlock)
}

func TestMessageModeLargeMessage(t *testing.T) {
	path := testPipePath(t)
	l, err := Listen(ListenerOptions{Path: path, Config: PipeConfig{MessageMode: true}})
	require.NoError(t, err)
	defer l.Close()

	payload := make([]byte, 65536)
	for i := range payload {
		payload[i] = 0xAB
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		srv, err := l.Accept()
		if !assert.NoError(t, err) {
			return
		}
		defer srv.Close()
		_, err = srv.Write(payload)
		assert.NoError(t, err)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cli, err := Dial(ctx, path)
	require.NoError(t, err)
	defer cli.Close()

	<-done

	small := make([]byte, 8192)
	result, err := cli.Recv(small)
	require.NoError(t, err)
	assert.False(t, result.Fit)
	assert.Len(t, result.Data, 65536)
	assert.Equal(t, payload, result.Data)
}

func TestTryRecvNonConsuming(t *testing.T) {
	path := testPipePath(t)
	l, err := Listen(ListenerOptions{Path: path, Config: PipeConfig{MessageMode: true}})
	require.NoError(t, err)
	defer l.Close()

	payload := make([]byte, 65536)

	done := make(chan struct{})
	go func() {
		defer close(done)
		srv, err := l.Accept()
		if !assert.NoError(t, err) {
			return
		}
		defer srv.Close()
		_, err = srv.Write(payload)
		assert.NoError(t, err)
		time.Sleep(50 * time.Millisecond)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cli, err := Dial(ctx, path)
	require.NoError(t, err)
	defer cli.Close()

	time.Sleep(100 * time.Millisecond)

	small := make([]byte, 8192)
	tr, err := cli.TryRecv(small)
	require.NoError(t, err)
	assert.Equal(t, 65536, tr.Size)
	assert.False(t, tr.Fit)

	big := make([]byte, 65536)
	result, err := cli.Recv(big)
	require.NoError(t, err)
	assert.True(t, result.Fit)
	assert.Len(t, result.Data, 65536)

	<-done
}

func TestEvadeLimboClosesSynchronously(t *testing.T) {
	path := testPipePath(t)
	l, err := Listen(ListenerOptions{Path: path})
	require.NoError(t, err)
	defer l.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		srv, err := l.Accept()
		if !assert.NoError(t, err) {
			return
		}
		_, err = srv.Write([]byte("x"))
		assert.NoError(t, err)
		srv.EvadeLimbo()
		assert.NoError(t, srv.Close())
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cli, err := Dial(ctx, path)
	require.NoError(t, err)
	defer cli.Close()

	buf := make([]byte, 1)
	_, err = cli.Read(buf)
	require.NoError(t, err)

	<-done
}
