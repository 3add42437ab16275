package meta

import (
	"github.com/dolthub/privaql/expr"
	"github.com/dolthub/privaql/rel"
	"github.com/mitchellh/hashstructure"
)

// CombineExpr builds a new ExprT node from self and its already-
// annotated children, calling repr.Dot exactly once against the
// children's existing boards. This is the Go rendering of the
// teacher's `ExprT::from(Expr<ExprT>)` idiom: unlike LiftExpr it never
// redescends into the children, so a board a caller patched out of
// band (e.g. the policy transformer's audience insert, §4.4) survives
// untouched in the rebuilt parent.
func CombineExpr[M any](self expr.Expr, children []ExprT[M], repr ExprRepr[M]) ExprT[M] {
	boards := make([]M, len(children))
	var propagated error
	for i, c := range children {
		boards[i] = c.Board
		if propagated == nil && c.Err != nil {
			propagated = c.Err
		}
	}
	out := ExprT[M]{Self: self, Children: children}
	if propagated != nil {
		out.Err = propagated
		return out
	}
	board, err := repr.Dot(self, boards)
	if err != nil {
		out.Err = err
		return out
	}
	out.Board = board
	return out
}

// CombineRel is CombineExpr's relational counterpart: it folds self one
// level using exprTs' and children's already-computed boards, the Go
// rendering of `RelT::from(GenericRel<ExprT, RelT>)`.
func CombineRel[ME, MR any](self rel.Rel, exprTs []ExprT[ME], children []RelT[ME, MR], repr RelRepr[ME, MR]) RelT[ME, MR] {
	exprBoards := make([]ME, len(exprTs))
	var propagated error
	for i, e := range exprTs {
		exprBoards[i] = e.Board
		if propagated == nil && e.Err != nil {
			propagated = e.Err
		}
	}
	childBoards := make([]MR, len(children))
	for i, c := range children {
		childBoards[i] = c.Board
		if propagated == nil && c.Err != nil {
			propagated = c.Err
		}
	}
	out := RelT[ME, MR]{Self: self, Exprs: exprTs, Children: children}
	if propagated != nil {
		out.Err = propagated
		return out
	}
	board, err := repr.Dot(self, exprBoards, childBoards)
	if err != nil {
		out.Err = err
		return out
	}
	out.Board = board
	return out
}

// Fingerprint computes a stable structural hash of v, used by the
// fold-determinism and rebase-idempotence tests to compare two
// annotated trees without a deep reflect.DeepEqual, the same
// cache-key role the teacher's direct dependency on
// mitchellh/hashstructure plays for query plans.
func Fingerprint(v interface{}) (uint64, error) {
	return hashstructure.Hash(v, nil)
}
