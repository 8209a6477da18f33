//go:build windows

package unnamedpipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	r, w, err := New(Options{})
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	_, err = w.Write([]byte("hello"))
	require.NoError(t, err)

	buf := make([]byte, 16)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))
}

func TestEvadeLimboClosesSynchronously(t *testing.T) {
	r, w, err := New(Options{})
	require.NoError(t, err)
	defer r.Close()

	_, err = w.Write([]byte("x"))
	require.NoError(t, err)
	w.EvadeLimbo()
	assert.NoError(t, w.Close())
}

func TestAssumeFlushedSkipsLimbo(t *testing.T) {
	r, w, err := New(Options{})
	require.NoError(t, err)
	defer r.Close()

	_, err = w.Write([]byte("x"))
	require.NoError(t, err)
	w.AssumeFlushed()
	assert.NoError(t, w.Close())
}
