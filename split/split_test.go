package split

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHandle struct {
	closed bool
	buf    []byte
}

func (f *fakeHandle) Read(b []byte) (int, error) {
	if len(f.buf) == 0 {
		return 0, io.EOF
	}
	n := copy(b, f.buf)
	f.buf = f.buf[n:]
	return n, nil
}

func (f *fakeHandle) Write(b []byte) (int, error) {
	f.buf = append(f.buf, b...)
	return len(b), nil
}

func (f *fakeHandle) Close() error {
	f.closed = true
	return nil
}

func TestSplitRoundTrip(t *testing.T) {
	h := &fakeHandle{}
	r, s := Split[*fakeHandle](h)

	_, err := s.Write([]byte("hello"))
	require.NoError(t, err)

	buf := make([]byte, 5)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))
}

func TestSplitCloseBothReleasesHandle(t *testing.T) {
	h := &fakeHandle{}
	r, s := Split[*fakeHandle](h)

	require.NoError(t, r.Close())
	assert.False(t, h.closed, "handle must stay open until both halves close")

	require.NoError(t, s.Close())
	assert.True(t, h.closed, "handle must close once both halves are closed")
}

func TestSplitCloseIsIdempotent(t *testing.T) {
	h := &fakeHandle{}
	r, _ := Split[*fakeHandle](h)
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
}

func TestReuniteSameStreamReturnsHandle(t *testing.T) {
	h := &fakeHandle{}
	r, s := Split[*fakeHandle](h)

	got, err := Reunite[*fakeHandle](r, s)
	require.NoError(t, err)
	assert.Same(t, h, got)
}

func TestReuniteMismatchReturnsBothHalves(t *testing.T) {
	r1, s1 := Split[*fakeHandle](&fakeHandle{})
	r2, s2 := Split[*fakeHandle](&fakeHandle{})

	_, err := Reunite[*fakeHandle](r1, s2)
	require.Error(t, err)

	var reuniteErr *ReuniteError[*fakeHandle]
	require.True(t, errors.As(err, &reuniteErr))
	assert.Same(t, r1, reuniteErr.Recv)
	assert.Same(t, s2, reuniteErr.Send)

	// Both original halves are still usable after a failed reunite.
	_, err = s1.Write([]byte("x"))
	assert.NoError(t, err)
	_, err = r2.Read(make([]byte, 1))
	assert.ErrorIs(t, err, io.EOF)
}
