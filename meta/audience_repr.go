package meta

import "github.com/dolthub/privaql/expr"

// AudienceRepr folds an expr.Expr tree into the Audience allowed to see
// its value: the intersection of every child's audience, transcribing
// meta.rs's `impl ExprRepr for HashSet<BlockType>` (and its
// AudienceBoard sibling). A leaf Column's audience is installed at
// schema-binding time from the bound column's TableMeta, not computed
// here — a Column folded directly (bypassing LiftExpr's short-circuit)
// yields the empty set, matching the teacher's `unwrap_or(HashSet::new())`
// default when there are no children to intersect.
type AudienceRepr struct{}

func (AudienceRepr) Dot(node expr.Expr, children []Audience) (Audience, error) {
	return DotAudience(children), nil
}

// DotAudience intersects every child audience; with no children it
// returns the empty set.
func DotAudience(children []Audience) Audience {
	if len(children) == 0 {
		return Audience{}
	}
	out := children[len(children)-1]
	for i := len(children) - 2; i >= 0; i-- {
		out = out.Intersect(children[i])
	}
	return out
}
