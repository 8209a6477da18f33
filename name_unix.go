//go:build unix

package interprocess

import (
	"runtime"
	"strings"
)

// maxSunPathLen is the size of sockaddr_un's sun_path; BSD/macOS use 104,
// Linux uses 108. One byte is reserved so a NUL terminator (path names)
// always has room; abstract names consume it as the leading zero marker
// instead.
func maxSunPathLen() int {
	if runtime.GOOS == "linux" {
		return 108
	}
	return 104
}

func currentNameTypeSupport() NameTypeSupport {
	if runtime.GOOS == "linux" {
		return Both
	}
	return OnlyFs
}

func validateFsName(path string) error {
	if strings.IndexByte(path, 0) != -1 {
		return &InvalidNameError{Reason: "path-like name contains an interior NUL byte"}
	}
	if len(path) > maxSunPathLen()-1 {
		return &InvalidNameError{Reason: "path-like name is longer than this platform's sun_path"}
	}
	return nil
}

func validateNsName(name string) (string, error) {
	if currentNameTypeSupport() == OnlyFs {
		return "", &InvalidNameError{Reason: "namespaced names are not supported on this platform (Linux-only abstract namespace)"}
	}
	if strings.IndexByte(name, 0) != -1 {
		return "", &InvalidNameError{Reason: "namespaced name contains an interior NUL byte"}
	}
	if len(name) > maxSunPathLen()-1 {
		return "", &InvalidNameError{Reason: "namespaced name is longer than this platform's abstract sun_path"}
	}
	return name, nil
}
