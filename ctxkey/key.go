// Package ctxkey implements ContextKey, the hierarchical dot-separated
// identifier used throughout privaql to name tables, columns, policy
// bindings and audiences.
package ctxkey

import (
	"strings"

	"gopkg.in/src-d/go-errors.v1"
)

// ErrEmptySegment is raised when a key segment is empty or contains a dot.
var ErrEmptySegment = errors.NewKind("context key segment must be non-empty and dot-free: %q")

// ContextKey is an ordered sequence of name segments, e.g.
// "project.dataset.table.column". It is comparable and safe to use as a
// map key.
type ContextKey struct {
	path string
}

// New builds a ContextKey from its segments, joining them with ".".
func New(segments ...string) ContextKey {
	return ContextKey{path: strings.Join(segments, ".")}
}

// Parse reads the textual dot-separated form of a ContextKey.
func Parse(s string) (ContextKey, error) {
	if s == "" {
		return ContextKey{}, ErrEmptySegment.New(s)
	}
	for _, seg := range strings.Split(s, ".") {
		if seg == "" {
			return ContextKey{}, ErrEmptySegment.New(s)
		}
	}
	return ContextKey{path: s}, nil
}

// MustParse is Parse, panicking on error. Intended for literals in tests
// and static binding tables, never for user input.
func MustParse(s string) ContextKey {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

// Segments returns the key's individual dot-separated segments.
func (k ContextKey) Segments() []string {
	if k.path == "" {
		return nil
	}
	return strings.Split(k.path, ".")
}

// Name returns the last segment of the key, e.g. "column" for
// "project.dataset.table.column".
func (k ContextKey) Name() string {
	segs := k.Segments()
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// IsZero reports whether the key holds no segments.
func (k ContextKey) IsZero() bool {
	return k.path == ""
}

// String returns the dot-separated textual form.
func (k ContextKey) String() string {
	return k.path
}

// WithPrefix returns a new key with seg prepended as its first segment.
func (k ContextKey) WithPrefix(seg string) ContextKey {
	if k.path == "" {
		return ContextKey{path: seg}
	}
	return ContextKey{path: seg + "." + k.path}
}

// PrefixMatches reports whether every segment of k is, in order, a
// prefix of other's segments — i.e. k names an ancestor (or itself) of
// other.
func (k ContextKey) PrefixMatches(other ContextKey) bool {
	self := k.Segments()
	rest := other.Segments()
	if len(self) > len(rest) {
		return false
	}
	for i, seg := range self {
		if seg != rest[i] {
			return false
		}
	}
	return true
}

// Matches performs a segment-level glob match against pattern, where a
// pattern segment of "*" matches any single segment of k. The number of
// segments must agree.
func (k ContextKey) Matches(pattern ContextKey) bool {
	self := k.Segments()
	pat := pattern.Segments()
	if len(self) != len(pat) {
		return false
	}
	for i, p := range pat {
		if p != "*" && p != self[i] {
			return false
		}
	}
	return true
}

// Equal reports key equality.
func (k ContextKey) Equal(other ContextKey) bool {
	return k.path == other.path
}
