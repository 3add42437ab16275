package policy

import (
	"github.com/dolthub/privaql/ctxkey"
	"github.com/dolthub/privaql/meta"
	"github.com/dolthub/privaql/pctx"
)

// ExprTransformer offers every policy in Bindings to an expression tree,
// picking the best-scoring match at each level, transcribing
// transform.rs's `ExprTransformer`. Bindings is expected to already be
// filtered to the bindings whose key prefix-matches the column the
// expression tree was drawn from (RelTransformer.filterBindings does
// this before constructing one).
type ExprTransformer struct {
	Bindings pctx.Context[*PolicyBinding]
	Audience meta.BlockType
}

// NewExprTransformer builds a transformer scoped to bindings and the
// audience being evaluated for disclosure.
func NewExprTransformer(bindings pctx.Context[*PolicyBinding], audience meta.BlockType) *ExprTransformer {
	return &ExprTransformer{Bindings: bindings, Audience: audience}
}

// TransformExpr offers t, and failing that each of its children, to
// every policy in x.Bindings in binding-key order, then policy order
// within a binding (spec.md §9's determinism rule). When nothing
// matches at t itself, transforming a non-leaf node requires every one
// of its children to resolve successfully: it returns ErrNoMatch as
// soon as any child's subtree has no applicable policy, even if a
// policy applied inside another child, matching the teacher's
// propagate-through-map_result behavior.
func (x *ExprTransformer) TransformExpr(t meta.ExprT[meta.ExprMeta]) (Transformed[meta.ExprT[meta.ExprMeta]], error) {
	var proposed []Transformed[meta.ExprT[meta.ExprMeta]]
	for _, key := range x.Bindings.Keys() {
		binding, _ := x.Bindings.Get(key)
		for _, pol := range binding.Policies {
			costly, err := pol.TransformExpr(t)
			if ErrNoMatch.Is(err) {
				continue
			}
			if err != nil {
				return Transformed[meta.ExprT[meta.ExprMeta]]{}, err
			}
			if !binding.IsInBudget(costly.Cost) {
				continue
			}
			root := costly.Root
			insertAudience(&root, x.Audience)
			proposed = append(proposed, newTransformed(root, key, costly.Cost, binding.Priority))
		}
	}

	if best, ok := bestCandidate(proposed); ok {
		return best, nil
	}

	if len(t.Children) == 0 {
		return Transformed[meta.ExprT[meta.ExprMeta]]{}, ErrNoMatch.New()
	}

	cost := map[ctxkey.ContextKey]float64{}
	var priority uint64
	newChildren := make([]meta.ExprT[meta.ExprMeta], len(t.Children))
	for i, c := range t.Children {
		tr, err := x.TransformExpr(c)
		if err != nil {
			return Transformed[meta.ExprT[meta.ExprMeta]]{}, err
		}
		tr.addTo(cost)
		if tr.Priority > priority {
			priority = tr.Priority
		}
		newChildren[i] = tr.Root
	}
	root := meta.CombineExpr(t.Self.WithChildren(exprSelves(newChildren)), newChildren, meta.ComposedExprRepr{})
	return Transformed[meta.ExprT[meta.ExprMeta]]{Root: root, Cost: cost, Priority: priority}, nil
}

// insertAudience records that aud may now see root's value, mutating
// root.Board.Audience in place via a fresh map so it never aliases the
// board it was copied from.
func insertAudience(root *meta.ExprT[meta.ExprMeta], aud meta.BlockType) {
	next := make(meta.Audience, len(root.Board.Audience)+1)
	for k := range root.Board.Audience {
		next[k] = struct{}{}
	}
	next[aud] = struct{}{}
	root.Board.Audience = next
}
