package meta

import "github.com/dolthub/privaql/expr"

// TaintRepr folds an expr.Expr tree into a taint bit: true iff any
// descendant is tainted, transcribing meta.rs's `impl ExprRepr for
// Taint` (`taint = taint || child.0`). A bare Column's own taint is not
// structural — it is installed at schema-binding time from the bound
// column's provenance, not computed here; a leaf Column therefore folds
// to false unless its schema entry overrides it before the fold (see
// LiftExpr's Column short-circuit).
type TaintRepr struct{}

func (TaintRepr) Dot(node expr.Expr, children []bool) (bool, error) {
	return DotTaint(children), nil
}

// DotTaint ORs every child's taint bit.
func DotTaint(children []bool) bool {
	for _, c := range children {
		if c {
			return true
		}
	}
	return false
}
