//go:build windows

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowsSecurityDescriptorEmptyIsNoop(t *testing.T) {
	sd, err := windowsSecurityDescriptor(nil)
	assert.NoError(t, err)
	assert.Empty(t, sd)
}

func TestWindowsSecurityDescriptorResolvesAccount(t *testing.T) {
	sd, err := windowsSecurityDescriptor([]string{"Everyone"})
	require.NoError(t, err)
	assert.Contains(t, sd, "S-1-1-0")
}

func TestWindowsSecurityDescriptorRejectsUnknownAccount(t *testing.T) {
	_, err := windowsSecurityDescriptor([]string{"definitely-not-an-account"})
	assert.Error(t, err)
}
