// Package pctx implements Context[V], the insertion-ordered keyed
// mapping from ctxkey.ContextKey to V used for schemas, policy bindings
// and table references throughout privaql.
package pctx

import (
	"github.com/dolthub/privaql/ctxkey"
	"gopkg.in/src-d/go-errors.v1"
)

// ErrAbsent is returned by GetColumn when no entry matches.
var ErrAbsent = errors.NewKind("no entry found for column %q")

// ErrAmbiguous is returned by GetColumn when more than one entry matches.
var ErrAmbiguous = errors.NewKind("ambiguous column %q matches multiple entries")

// Context is an insertion-ordered mapping from ContextKey to V.
type Context[V any] struct {
	keys   []ctxkey.ContextKey
	values map[ctxkey.ContextKey]V
}

// New returns an empty Context.
func New[V any]() Context[V] {
	return Context[V]{values: make(map[ctxkey.ContextKey]V)}
}

// FromPairs builds a Context from an ordered slice of key/value pairs.
func FromPairs[V any](pairs ...Pair[V]) Context[V] {
	c := New[V]()
	for _, p := range pairs {
		c.Insert(p.Key, p.Value)
	}
	return c
}

// Pair is a single key/value entry, used by FromPairs and Iter.
type Pair[V any] struct {
	Key   ctxkey.ContextKey
	Value V
}

// Len returns the number of entries.
func (c Context[V]) Len() int {
	return len(c.keys)
}

// Insert adds or overwrites the value at key, preserving the original
// insertion position on overwrite.
func (c *Context[V]) Insert(key ctxkey.ContextKey, value V) {
	if c.values == nil {
		c.values = make(map[ctxkey.ContextKey]V)
	}
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
}

// Get performs an exact key lookup.
func (c Context[V]) Get(key ctxkey.ContextKey) (V, bool) {
	v, ok := c.values[key]
	return v, ok
}

// GetColumn performs a column-level lookup: it tries an exact match
// first, then falls back to matching by the key's last segment (its
// column name), returning ErrAmbiguous if more than one entry's name
// matches and ErrAbsent if none do.
func (c Context[V]) GetColumn(key ctxkey.ContextKey) (V, error) {
	var zero V
	if v, ok := c.values[key]; ok {
		return v, nil
	}
	var matches []V
	name := key.Name()
	for _, k := range c.keys {
		if k.Name() == name {
			matches = append(matches, c.values[k])
		}
	}
	switch len(matches) {
	case 0:
		return zero, ErrAbsent.New(key.String())
	case 1:
		return matches[0], nil
	default:
		return zero, ErrAmbiguous.New(key.String())
	}
}

// Keys returns the keys in insertion order.
func (c Context[V]) Keys() []ctxkey.ContextKey {
	out := make([]ctxkey.ContextKey, len(c.keys))
	copy(out, c.keys)
	return out
}

// Iter calls f for every entry in insertion order, stopping early if f
// returns false.
func (c Context[V]) Iter(f func(ctxkey.ContextKey, V) bool) {
	for _, k := range c.keys {
		if !f(k, c.values[k]) {
			return
		}
	}
}

// Extend appends other's entries after c's own, in other's order,
// overwriting any keys already present (teacher-grounded "right
// extends left" semantics used by Join schema propagation).
func (c *Context[V]) Extend(other Context[V]) {
	other.Iter(func(k ctxkey.ContextKey, v V) bool {
		c.Insert(k, v)
		return true
	})
}

// Clone returns a shallow, independent copy.
func (c Context[V]) Clone() Context[V] {
	out := New[V]()
	out.Extend(c)
	return out
}

// Schema returns c itself, satisfying meta.SchemaOf for the plain
// schema-propagation fold (RelRepr with MR = Context[ME]).
func (c Context[V]) Schema() Context[V] {
	return c
}

// WithPrefix returns a new Context with every key re-keyed under the
// given prefix segment (used to implement WithAlias schema propagation).
func (c Context[V]) WithPrefix(seg string) Context[V] {
	out := New[V]()
	c.Iter(func(k ctxkey.ContextKey, v V) bool {
		out.Insert(k.WithPrefix(seg), v)
		return true
	})
	return out
}
