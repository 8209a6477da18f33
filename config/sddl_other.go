//go:build !windows

package config

import "github.com/pkg/errors"

// windowsSecurityDescriptor has nothing to resolve accounts against outside
// Windows; an SDDL string is a named-pipe DACL with no POSIX-permission
// equivalent wired through this package.
func windowsSecurityDescriptor(accounts []string) (string, error) {
	if len(accounts) != 0 {
		return "", errors.New("config: listener.windows.allowed_accounts requires a windows build")
	}
	return "", nil
}
