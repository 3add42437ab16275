// Package meta implements the upward-fold metadata representations
// (ExprRepr/RelRepr) and the annotated-tree types (ExprT/RelT) that
// validate a raw expr.Expr/rel.Rel tree and compute per-node metadata,
// the way entish's ExprRepr/RelRepr traits do in the prior
// implementation (opt/meta.rs).
package meta

import (
	"github.com/dolthub/privaql/expr"
	"github.com/dolthub/privaql/pctx"
	"github.com/dolthub/privaql/rel"
)

// SchemaCtx is the per-expression schema context threaded through a
// relational fold: the mapping from a bound column's ContextKey to its
// ExprMeta.
type SchemaCtx = pctx.Context[ExprMeta]

// ExprRepr computes a node's annotation (of type M) from its already-
// annotated children, the Go rendering of the teacher's
// `ExprRepr::dot(node: Expr<&Self>) -> ValidateResult<Self>`. node is
// the original expr.Expr (so implementations can inspect its own
// fields — a FunctionName, a literal value); children holds the
// already-folded annotation for each of node.Children(), in order.
type ExprRepr[M any] interface {
	Dot(node expr.Expr, children []M) (M, error)
}

// RelRepr computes a relation node's annotation (of type MR) from its
// own expressions' annotations (ME, one per node.Exprs()) and its
// children's already-annotated boards (MR), the Go rendering of
// `RelRepr<E>::dot(node: GenericRel<&E, &Self>) -> ValidateResult<Self>`.
type RelRepr[ME, MR any] interface {
	Dot(node rel.Rel, exprBoards []ME, childBoards []MR) (MR, error)
}

// SchemaOf lets LiftRel recover the column schema context a node's own
// Exprs should resolve Column leaves against, from an already-folded
// child board.
type SchemaOf[ME any] interface {
	Schema() pctx.Context[ME]
}

// ExprT is an expr.Expr tree annotated with a fold of type M at every
// node.
type ExprT[M any] struct {
	Self     expr.Expr
	Children []ExprT[M]
	Board    M
	Err      error
}

// RelT is a rel.Rel tree annotated with a fold of type MR at every
// node, whose own expressions are in turn annotated with a fold of
// type ME.
type RelT[ME, MR any] struct {
	Self     rel.Rel
	Exprs    []ExprT[ME]
	Children []RelT[ME, MR]
	Board    MR
	Err      error
}

// LiftExpr folds e bottom-up using repr, resolving Column leaves
// against schema instead of calling repr.Dot on them — mirroring the
// teacher's "tried to complete a column" internal error, which fires
// only when a Column reaches Dot unsubstituted. A child's error short-
// circuits its own ancestors (the ancestor's Board is left at its zero
// value and Err is set), but the node is always constructed; Lift
// never panics and never aborts the fold.
func LiftExpr[M any](e expr.Expr, repr ExprRepr[M], schema pctx.Context[M]) ExprT[M] {
	if col, ok := e.(expr.Column); ok {
		board, err := schema.GetColumn(col.Key)
		if err != nil {
			return ExprT[M]{Self: e, Err: err}
		}
		return ExprT[M]{Self: e, Board: board}
	}

	rawChildren := e.Children()
	children := make([]ExprT[M], len(rawChildren))
	childBoards := make([]M, len(rawChildren))
	var propagated error
	for i, c := range rawChildren {
		children[i] = LiftExpr(c, repr, schema)
		childBoards[i] = children[i].Board
		if propagated == nil && children[i].Err != nil {
			propagated = children[i].Err
		}
	}

	out := ExprT[M]{Self: e, Children: children}
	if propagated != nil {
		out.Err = propagated
		return out
	}

	board, err := repr.Dot(e, childBoards)
	if err != nil {
		out.Err = err
		return out
	}
	out.Board = board
	return out
}

// LiftRel folds r bottom-up: Table leaves are resolved against
// tableSchema (the validator's bound schema context) instead of
// calling relRepr.Dot; every other node first computes its input
// schema from its children's Schema(), lifts its own Exprs() against
// that schema via exprRepr, and finally calls relRepr.Dot with both the
// expr-level and rel-level child boards. Errors propagate the same way
// as LiftExpr: construct first, report on Err, never panic.
func LiftRel[ME any, MR SchemaOf[ME]](
	r rel.Rel,
	exprRepr ExprRepr[ME],
	relRepr RelRepr[ME, MR],
	tableSchema pctx.Context[MR],
) RelT[ME, MR] {
	if tb, ok := r.(rel.Table); ok {
		board, err := tableSchema.GetColumn(tb.Key)
		if err != nil {
			return RelT[ME, MR]{Self: r, Err: err}
		}
		return RelT[ME, MR]{Self: r, Board: board}
	}

	rawChildren := r.Children()
	children := make([]RelT[ME, MR], len(rawChildren))
	childBoards := make([]MR, len(rawChildren))
	var propagated error
	for i, c := range rawChildren {
		children[i] = LiftRel(c, exprRepr, relRepr, tableSchema)
		childBoards[i] = children[i].Board
		if propagated == nil && children[i].Err != nil {
			propagated = children[i].Err
		}
	}

	inputSchema := pctx.New[ME]()
	for _, cb := range childBoards {
		inputSchema.Extend(cb.Schema())
	}

	rawExprs := r.Exprs()
	exprTs := make([]ExprT[ME], len(rawExprs))
	exprBoards := make([]ME, len(rawExprs))
	for i, e := range rawExprs {
		exprTs[i] = LiftExpr(e, exprRepr, inputSchema)
		exprBoards[i] = exprTs[i].Board
		if propagated == nil && exprTs[i].Err != nil {
			propagated = exprTs[i].Err
		}
	}

	out := RelT[ME, MR]{Self: r, Exprs: exprTs, Children: children}
	if propagated != nil {
		out.Err = propagated
		return out
	}

	board, err := relRepr.Dot(r, exprBoards, childBoards)
	if err != nil {
		out.Err = err
		return out
	}
	out.Board = board
	return out
}
