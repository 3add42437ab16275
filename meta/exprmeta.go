package meta

import (
	"github.com/dolthub/privaql/ctxkey"
	"github.com/dolthub/privaql/dtype"
)

// BlockType names an audience. An audience is a set of BlockTypes.
type BlockType = ctxkey.ContextKey

// Audience is a set of BlockTypes a node's value may be shown to.
type Audience map[BlockType]struct{}

// NewAudience builds an Audience from the given members.
func NewAudience(members ...BlockType) Audience {
	out := make(Audience, len(members))
	for _, m := range members {
		out[m] = struct{}{}
	}
	return out
}

// Contains reports whether target is a member of a.
func (a Audience) Contains(target BlockType) bool {
	_, ok := a[target]
	return ok
}

// Intersect returns the intersection of a and other.
func (a Audience) Intersect(other Audience) Audience {
	out := make(Audience)
	for k := range a {
		if _, ok := other[k]; ok {
			out[k] = struct{}{}
		}
	}
	return out
}

// Equal reports whether a and other contain exactly the same members,
// the Go rendering of the Rust original's derived `PartialEq` over
// `HashSet<BlockType>`.
func (a Audience) Equal(other Audience) bool {
	if len(a) != len(other) {
		return false
	}
	for k := range a {
		if _, ok := other[k]; !ok {
			return false
		}
	}
	return true
}

// DomainStats carries the per-column domain statistics the
// differential-privacy policy's noise calibration needs: the
// maximum number of rows one entity may contribute, and the
// expression's sensitivity to a single row's change. Both come from
// the bound schema's column entries at schema-binding time, never
// computed structurally — a node with exactly one child forwards that
// child's stats unchanged, and any other internal node gets zero stats.
type DomainStats struct {
	MaximumFrequency float64
	Sensitivity      float64
}

// ExprMeta is the composed per-expression annotation: DataType, Mode,
// Taint, Audience and DomainStats folded together in one pass, the Go
// rendering of spec.md's tuple-valued ExprMeta annotation.
type ExprMeta struct {
	DataType dtype.DataType
	Mode     dtype.Mode
	Taint    bool
	Audience Audience
	Domain   DomainStats
}

// TableMeta is the per-relation annotation: its output schema, the
// audience allowed to see it, the single leaf table it descends from
// (if any), and running privacy-budget counters.
type TableMeta struct {
	Columns     SchemaCtx
	Audience    Audience
	Provenance  *ctxkey.ContextKey
	EpsilonSpent float64
}

// Equal reports whether m and other carry the same annotation,
// field-wise: ExprMeta embeds Audience (a map), so it is not itself
// comparable with Go's built-in == / !=.
func (m ExprMeta) Equal(other ExprMeta) bool {
	return m.DataType == other.DataType &&
		m.Mode == other.Mode &&
		m.Taint == other.Taint &&
		m.Domain == other.Domain &&
		m.Audience.Equal(other.Audience)
}

// Schema satisfies SchemaOf[ExprMeta], letting LiftRel resolve the
// input schema for a node's own expressions from its children's
// already-folded TableMeta boards.
func (t TableMeta) Schema() SchemaCtx {
	return t.Columns
}
