package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

var (
	// ErrEmptyModulePath is returned when a module path has no segments.
	ErrEmptyModulePath = errors.New("empty module path")
	// ErrInvalidSegment is returned when a segment is empty, is "." or "..",
	// or contains a slash, a backslash or a colon. Empty, "." and ".."
	// segments would not survive the FilePath round trip, so they are
	// rejected even though they hold no separator.
	ErrInvalidSegment = errors.New("invalid module path segment")
)

// ModulePath is a list of path segments addressing one module file.
// Segments cannot contain forward or backward slashes, or colons, and
// cannot be empty, "." or "..".
type ModulePath []string

// NewModulePath validates segments and returns them as a ModulePath.
func NewModulePath(segments ...string) (ModulePath, error) {
	p := ModulePath(slices.Clone(segments))
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// MustModulePath is NewModulePath for literals known to be valid.
func MustModulePath(segments ...string) ModulePath {
	p, err := NewModulePath(segments...)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseModulePath parses the display form "a/b/c".
func ParseModulePath(s string) (ModulePath, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyModulePath
	}
	return NewModulePath(strings.Split(s, "/")...)
}

// ModulePathFromFile converts a relative filesystem path back into a module path.
// Both separators are accepted so paths written on Windows round trip too.
func ModulePathFromFile(path string) (ModulePath, error) {
	path = filepath.ToSlash(filepath.Clean(path))
	if path == "." || path == "" {
		return nil, ErrEmptyModulePath
	}
	parts := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	return NewModulePath(parts...)
}

// Validate checks the segment rules.
func (p ModulePath) Validate() error {
	if len(p) == 0 {
		return ErrEmptyModulePath
	}
	for i, seg := range p {
		if seg == "" || seg == "." || seg == ".." || strings.ContainsAny(seg, `/\:`) {
			return fmt.Errorf("%w: segment %d is %q", ErrInvalidSegment, i, seg)
		}
	}
	return nil
}

// String joins segments with "/". Segments never contain "/", so the result
// identifies the path uniquely and doubles as a map key.
func (p ModulePath) String() string {
	return strings.Join(p, "/")
}

// Key is the canonical map key of the path.
func (p ModulePath) Key() string {
	return p.String()
}

// FilePath joins the segments with the platform separator.
func (p ModulePath) FilePath() string {
	return filepath.Join(p...)
}

func (p ModulePath) Equal(other ModulePath) bool {
	return slices.Equal(p, other)
}

// Compare orders paths segment by segment.
func (p ModulePath) Compare(other ModulePath) int {
	return slices.Compare(p, other)
}

// Last returns the final segment, or "" for an empty path.
func (p ModulePath) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

func (p ModulePath) Clone() ModulePath {
	return slices.Clone(p)
}

// QualifiedName addresses a top-level item declared in a module.
type QualifiedName struct {
	Module ModulePath
	Name   string
	Range  Range
}

// String renders "module/path:name". Colons are banned from segments, so the
// separator is unambiguous.
func (q QualifiedName) String() string {
	return q.Module.String() + ":" + q.Name
}

// Equal compares module and name; the defining range is not part of identity.
func (q QualifiedName) Equal(other QualifiedName) bool {
	return q.Name == other.Name && q.Module.Equal(other.Module)
}
