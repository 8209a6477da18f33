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
	"golang.org/x/sys/windows"
)

func testPipePathLowLevel(t *testing.T) string {
	t.Helper()
	return fmt.Sprintf(`\\.\pipe\interprocess-pipe-test-%d-%d`, os.Getpid(), time.Now().UnixNano())
}

func TestDialUnknownFailsImmediately(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := Dial(ctx, testPipePathLowLevel(t))
	assert.ErrorIs(t, err, windows.ERROR_FILE_NOT_FOUND)
}

func TestDialAccessDeniedWithRestrictedSD(t *testing.T) {
	path := testPipePathLowLevel(t)
	l, err := Listen(ListenerOptions{
		Path:   path,
		Config: PipeConfig{SecurityDescriptor: "D:P(A;;0x1200FF;;;WD)"},
	})
	require.NoError(t, err)
	defer l.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err = Dial(ctx, path)
	assert.ErrorIs(t, err, windows.ERROR_ACCESS_DENIED)
}

func TestMakeServerPipeHandleRejectsDuplicateFirst(t *testing.T) {
	path := testPipePathLowLevel(t)
	h, err := makeServerPipeHandle(path, nil, &PipeConfig{}, true)
	require.NoError(t, err)
	defer windows.Close(h)

	// A second "first" instance at the same path collides with the one
	// above: FILE_CREATE on an existing NPFS node fails.
	_, err = makeServerPipeHandle(path, nil, &PipeConfig{}, true)
	assert.Error(t, err)
}

func TestPipeAddress(t *testing.T) {
	addr := pipeAddress(`\\.\pipe\example`)
	assert.Equal(t, "pipe", addr.Network())
	assert.Equal(t, `\\.\pipe\example`, addr.String())
}

func TestNtStatusErrWrapsFailure(t *testing.T) {
	// STATUS_OBJECT_NAME_NOT_FOUND, a representative negative NTSTATUS.
	var status ntStatus = -1073741772
	err := status.Err()
	assert.Error(t, err)

	var ok ntStatus = 0
	assert.NoError(t, ok.Err())
}
