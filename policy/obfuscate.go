package policy

import (
	"github.com/dolthub/privaql/dtype"
	"github.com/dolthub/privaql/expr"
	"github.com/dolthub/privaql/meta"
	"github.com/dolthub/privaql/pctx"
)

// ObfuscatePolicy replaces a matching Column with `As(Null, column_name)`,
// transcribing transform.rs's `ExprTransform for ObfuscatePolicy`.
type ObfuscatePolicy struct {
	Fields []string `yaml:"fields"`
}

func (o ObfuscatePolicy) TransformExpr(t meta.ExprT[meta.ExprMeta]) (Costly[meta.ExprT[meta.ExprMeta]], error) {
	col, ok := t.Self.(expr.Column)
	if !ok {
		return Costly[meta.ExprT[meta.ExprMeta]]{}, ErrNoMatch.New()
	}
	matched, err := matchesIn(o.Fields, col.Key)
	if err != nil {
		return Costly[meta.ExprT[meta.ExprMeta]]{}, ValidateErr(err)
	}
	if !matched {
		return Costly[meta.ExprT[meta.ExprMeta]]{}, ErrNoMatch.New()
	}

	nullLit := expr.Literal{Value: dtype.NullLiteral{}}
	nullT := meta.LiftExpr(nullLit, meta.ComposedExprRepr{}, pctx.New[meta.ExprMeta]())

	asExpr := expr.As{Expr: nullLit, Alias: col.Key.Name()}
	asT := meta.CombineExpr(asExpr, []meta.ExprT[meta.ExprMeta]{nullT}, meta.ComposedExprRepr{})

	return NewCostly(asT), nil
}
