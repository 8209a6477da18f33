//go:build !windows

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowsSecurityDescriptorEmptyIsNoop(t *testing.T) {
	sd, err := windowsSecurityDescriptor(nil)
	assert.NoError(t, err)
	assert.Empty(t, sd)
}

func TestWindowsSecurityDescriptorRejectsAccountsOffWindows(t *testing.T) {
	_, err := windowsSecurityDescriptor([]string{"Everyone"})
	assert.Error(t, err)
}
