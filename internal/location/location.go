package location

import (
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

// caseInsensitive reports whether path comparisons ignore case on this host.
var caseInsensitive = runtime.GOOS == "windows"

// Location is a cleaned file system path. The zero value is "no location".
type Location struct {
	p string
}

// New returns the Location for p. An empty p yields the zero Location.
func New(p string) Location {
	if p == "" {
		return Location{}
	}
	return Location{p: filepath.Clean(p)}
}

// Abs returns the Location for p made absolute against the working directory.
func Abs(p string) (Location, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return Location{}, err
	}
	return New(abs), nil
}

// String returns the OS path.
func (l Location) String() string { return l.p }

// IsZero reports whether l is the zero Location.
func (l Location) IsZero() bool { return l.p == "" }

// Join appends path elements to l.
func (l Location) Join(elem ...string) Location {
	if l.IsZero() {
		return Location{}
	}
	return New(filepath.Join(append([]string{l.p}, elem...)...))
}

// Parent returns the containing directory of l.
func (l Location) Parent() Location {
	if l.IsZero() {
		return Location{}
	}
	return New(filepath.Dir(l.p))
}

// Base returns the last element of l.
func (l Location) Base() string {
	if l.IsZero() {
		return ""
	}
	return filepath.Base(l.p)
}

// Ext returns the file name extension of l, including the dot.
func (l Location) Ext() string { return filepath.Ext(l.p) }

// Equal reports whether l and o name the same path.
func (l Location) Equal(o Location) bool {
	if caseInsensitive {
		return strings.EqualFold(l.p, o.p)
	}
	return l.p == o.p
}

// IsAncestorOf reports whether o lies strictly inside l.
func (l Location) IsAncestorOf(o Location) bool { return IsSubOf(l, o) }

// MarshalText renders the Location as its OS path.
func (l Location) MarshalText() ([]byte, error) { return []byte(l.p), nil }

// UnmarshalText parses an OS path.
func (l *Location) UnmarshalText(b []byte) error {
	*l = New(string(b))
	return nil
}

// RelativePath returns the path of to relative to from. The boolean is false
// when no relative path exists, e.g. for different volumes.
func RelativePath(from, to Location) (string, bool) {
	if from.IsZero() || to.IsZero() {
		return "", false
	}
	rel, err := filepath.Rel(from.p, to.p)
	if err != nil {
		return "", false
	}
	return rel, true
}

// IsSubOf reports whether candidate lies strictly inside base. Equal paths
// are not sub paths.
func IsSubOf(base, candidate Location) bool {
	rel, ok := RelativePath(base, candidate)
	if !ok {
		return false
	}
	return rel != "." && !escapes(rel)
}

// PathsFromTo rewrites to by replacing its from prefix with replacement. If
// replacement is zero or to is not inside from, to is returned unchanged.
func PathsFromTo(from, to, replacement Location) Location {
	if replacement.IsZero() {
		return to
	}
	rel, ok := RelativePath(from, to)
	if !ok || escapes(rel) {
		return to
	}
	if rel == "." {
		return replacement
	}
	return replacement.Join(rel)
}

// Join resolves a root relative fragment against base. Backslashes count as
// separators, and ".." elements are cleaned against the fragment's own root
// so the result never leaves base.
func Join(base Location, fragment string) Location {
	frag := strings.ReplaceAll(strings.TrimSpace(fragment), `\`, "/")
	cleaned := strings.TrimPrefix(path.Clean("/"+frag), "/")
	if cleaned == "" {
		return base
	}
	return base.Join(filepath.FromSlash(cleaned))
}

func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel)
}
