//go:build unix

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

	cli, err := Dial(context.Background(), name)
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

func TestFacadeSplitReunite(t *testing.T) {
	name := testName(t)
	l, err := Listen(ListenerOptions{Name: name})
	require.NoError(t, err)
	defer l.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		srv, err := l.Accept()
		if assert.NoError(t, err) {
			srv.Close()
		}
	}()

	cli, err := Dial(context.Background(), name)
	require.NoError(t, err)

	rh, sh := cli.Split()
	stream, err := Reunite(rh, sh)
	require.NoError(t, err)
	assert.NoError(t, stream.Close())

	<-done
}

func TestFacadeReuniteMismatch(t *testing.T) {
	nameA, nameB := testName(t), testName(t)
	lA, err := Listen(ListenerOptions{Name: nameA})
	require.NoError(t, err)
	defer lA.Close()
	lB, err := Listen(ListenerOptions{Name: nameB})
	require.NoError(t, err)
	defer lB.Close()

	go lA.Accept() //nolint:errcheck
	go lB.Accept() //nolint:errcheck

	a, err := Dial(context.Background(), nameA)
	require.NoError(t, err)
	b, err := Dial(context.Background(), nameB)
	require.NoError(t, err)

	// Split consumes the facade Stream: a and b must not be used or closed
	// directly again, only through the halves it returns.
	arh, ash := a.Split()
	brh, bsh := b.Split()
	defer arh.Close()
	defer ash.Close()
	defer brh.Close()
	defer bsh.Close()

	_, err = Reunite(arh, bsh)
	assert.Error(t, err)
}
