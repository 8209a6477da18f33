package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTOML(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDecodesListenerTable(t *testing.T) {
	path := writeTOML(t, `
[listener]
name = "/tmp/example.sock"
instance_limit = 4
wait_timeout = "2s"
reclaim_name = true

[listener.windows]
mode = "byte"
input_buffer_size_hint = 65536
output_buffer_size_hint = 65536
accept_remote = false
`)

	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/example.sock", l.Name)
	assert.EqualValues(t, 4, l.InstanceLimit)
	assert.True(t, l.ReclaimName)
	assert.Equal(t, "byte", l.Windows.Mode)
	assert.EqualValues(t, 65536, l.Windows.InputBufferSizeHint)
	assert.EqualValues(t, 65536, l.Windows.OutputBufferSizeHint)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestWaitTimeoutDuration(t *testing.T) {
	l := &Listener{WaitTimeout: "250ms"}
	d, err := l.WaitTimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, "250ms", d.String())

	empty := &Listener{}
	d, err = empty.WaitTimeoutDuration()
	require.NoError(t, err)
	assert.Zero(t, d)

	bad := &Listener{WaitTimeout: "not-a-duration"}
	_, err = bad.WaitTimeoutDuration()
	assert.Error(t, err)
}

func TestOptionsConvertsName(t *testing.T) {
	l := &Listener{Name: "/tmp/example.sock", InstanceLimit: 2, ReclaimName: true}
	opts, err := l.Options()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/example.sock", opts.Name.String())
	assert.EqualValues(t, 2, opts.InstanceLimit)
	assert.True(t, opts.ReclaimName)
}

func TestOptionsRejectsInvalidName(t *testing.T) {
	l := &Listener{Name: ""}
	_, err := l.Options()
	assert.Error(t, err)
}

func TestOptionsEmptyAllowedAccountsNoSecurityDescriptor(t *testing.T) {
	l := &Listener{Name: "/tmp/example.sock"}
	opts, err := l.Options()
	require.NoError(t, err)
	assert.Empty(t, opts.SecurityDescriptor)
}
