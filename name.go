package interprocess

import "strings"

// NameKind discriminates the two shapes a [Name] can take.
type NameKind int

const (
	// KindPath identifies a name anchored in the filesystem tree.
	KindPath NameKind = iota
	// KindNamespaced identifies a name anchored in a system namespace (the
	// Linux abstract socket namespace, or the Windows pipe namespace).
	KindNamespaced
)

func (k NameKind) String() string {
	if k == KindNamespaced {
		return "namespaced"
	}
	return "path"
}

// NameTypeSupport describes which [NameKind] values a platform can resolve
// to a live endpoint.
type NameTypeSupport int

const (
	// OnlyFs means only path-like names are supported (non-Linux Unix).
	OnlyFs NameTypeSupport = iota
	// OnlyNs means only namespaced names are supported (Windows).
	OnlyNs
	// Both means either name kind is supported (Linux).
	Both
)

func (s NameTypeSupport) String() string {
	switch s {
	case OnlyFs:
		return "OnlyFs"
	case OnlyNs:
		return "OnlyNs"
	default:
		return "Both"
	}
}

// CurrentNameTypeSupport reports which [NameKind] values are usable on the
// running platform.
func CurrentNameTypeSupport() NameTypeSupport {
	return currentNameTypeSupport()
}

// Name identifies a local-socket endpoint: a filesystem path or a name in a
// system namespace. Names are comparable and safe to share across
// goroutines; the listener/stream machinery converts a Name to whatever
// owned OS-level form it needs (e.g. for Unix reclaim-on-drop) internally.
type Name struct {
	raw  string
	kind NameKind
}

// ToFsName builds a path-like [Name] from a filesystem path. On Unix this
// is any path without an interior NUL byte. On Windows only paths of the
// form `\\<host>\pipe\...` are accepted, since this toolkit does not expose
// general Windows filesystem paths as local-socket endpoints.
func ToFsName(path string) (Name, error) {
	if path == "" {
		return Name{}, &InvalidNameError{Reason: "name is empty"}
	}
	if err := validateFsName(path); err != nil {
		return Name{}, err
	}
	return Name{raw: path, kind: KindPath}, nil
}

// ToNsName builds a namespaced [Name] from a short name, mapping it into
// the platform's namespace (the Linux abstract namespace, or the Windows
// `\\.\pipe\` namespace). It fails with an [InvalidNameError], which
// unwraps to [ErrInvalidInput], on platforms without a namespace (Unix
// other than Linux).
func ToNsName(name string) (Name, error) {
	if name == "" {
		return Name{}, &InvalidNameError{Reason: "name is empty"}
	}
	raw, err := validateNsName(name)
	if err != nil {
		return Name{}, err
	}
	return Name{raw: raw, kind: KindNamespaced}, nil
}

// ToName is the legacy convenience parser: a leading '@' selects
// [ToNsName] on platforms that support namespaced names, and the input is
// otherwise treated as a path and passed to [ToFsName]. Prefer the
// explicit constructors in new code; the '@' convention exists only for
// compatibility with callers ported from C/Rust local-socket libraries
// that use it.
func ToName(raw string) (Name, error) {
	if strings.HasPrefix(raw, "@") {
		if CurrentNameTypeSupport() == OnlyFs {
			return Name{}, &InvalidNameError{Reason: "namespaced names are not supported on this platform"}
		}
		return ToNsName(raw[1:])
	}
	return ToFsName(raw)
}

// IsPath reports whether n is path-like.
func (n Name) IsPath() bool { return n.kind == KindPath }

// IsNamespaced reports whether n is namespaced.
func (n Name) IsNamespaced() bool { return n.kind == KindNamespaced }

// Kind returns n's discriminator.
func (n Name) Kind() NameKind { return n.kind }

// IsSupportedOn reports whether a [Name] of n's kind can be resolved given
// the platform's [NameTypeSupport].
func (n Name) IsSupportedOn(support NameTypeSupport) bool {
	switch support {
	case Both:
		return true
	case OnlyFs:
		return n.kind == KindPath
	case OnlyNs:
		return n.kind == KindNamespaced
	default:
		return false
	}
}

// String returns the OS-native string form of the name: the filesystem
// path, or the namespace-qualified name.
func (n Name) String() string { return n.raw }

// IsZero reports whether n is the zero Name (no constructor was called).
func (n Name) IsZero() bool { return n.raw == "" }
