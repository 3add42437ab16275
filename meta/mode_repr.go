package meta

import (
	"github.com/dolthub/privaql/dtype"
	"github.com/dolthub/privaql/expr"
)

// ModeRepr folds an expr.Expr tree into its Mode (Nullable/Required),
// transcribing meta.rs's `impl ExprRepr for Mode`.
type ModeRepr struct{}

func (ModeRepr) Dot(node expr.Expr, children []dtype.Mode) (dtype.Mode, error) {
	return DotMode(node, children)
}

// DotMode implements the Mode::dot match: a Column must never be
// folded directly (its Mode comes from the schema); a Null literal is
// Nullable, any other literal Required; every other node is Nullable
// iff any child is Nullable.
func DotMode(node expr.Expr, children []dtype.Mode) (dtype.Mode, error) {
	switch n := node.(type) {
	case expr.Column:
		return dtype.Nullable, ErrInternal.New("tried to complete a column " + n.Key.String())

	case expr.Literal:
		if _, isNull := n.Value.(dtype.NullLiteral); isNull {
			return dtype.Nullable, nil
		}
		return dtype.Required, nil

	default:
		nullable := false
		for _, c := range children {
			if c == dtype.Nullable {
				nullable = true
			}
		}
		if nullable {
			return dtype.Nullable, nil
		}
		return dtype.Required, nil
	}
}
