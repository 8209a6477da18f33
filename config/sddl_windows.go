//go:build windows

package config

import (
	"strings"

	"github.com/kotauskas/interprocess/winpipe"
)

// windowsSecurityDescriptor resolves each of accounts to a SID via
// winpipe.LookupSidByName and composes them into an SDDL string granting
// each full access to the pipe. An empty accounts list returns "", which
// tells winpipe to fall back to the default named-pipe ACL.
func windowsSecurityDescriptor(accounts []string) (string, error) {
	if len(accounts) == 0 {
		return "", nil
	}
	var b strings.Builder
	b.WriteString("D:P")
	for _, name := range accounts {
		sid, err := winpipe.LookupSidByName(name)
		if err != nil {
			return "", err
		}
		b.WriteString("(A;;GA;;;" + sid + ")")
	}
	return b.String(), nil
}
