package policy

import (
	"github.com/dolthub/privaql/dtype"
	"github.com/dolthub/privaql/expr"
	"github.com/dolthub/privaql/meta"
	"github.com/dolthub/privaql/pctx"
	uuid "github.com/satori/go.uuid"
)

// HashPolicy replaces a matching Column with
// `As(Hash{SHA256, column, salt}, column_name)`, transcribing
// transform.rs's `ExprTransform for HashPolicy`. Salt defaults to a
// freshly minted UUID when the binding does not pin one explicitly.
type HashPolicy struct {
	Fields []string `yaml:"fields"`
	Salt   string   `yaml:"salt,omitempty"`
}

func (h HashPolicy) TransformExpr(t meta.ExprT[meta.ExprMeta]) (Costly[meta.ExprT[meta.ExprMeta]], error) {
	col, ok := t.Self.(expr.Column)
	if !ok {
		return Costly[meta.ExprT[meta.ExprMeta]]{}, ErrNoMatch.New()
	}
	matched, err := matchesIn(h.Fields, col.Key)
	if err != nil {
		return Costly[meta.ExprT[meta.ExprMeta]]{}, ValidateErr(err)
	}
	if !matched {
		return Costly[meta.ExprT[meta.ExprMeta]]{}, ErrNoMatch.New()
	}

	salt := h.Salt
	if salt == "" {
		id, err := uuid.NewV4()
		if err != nil {
			return Costly[meta.ExprT[meta.ExprMeta]]{}, ValidateErr(err)
		}
		salt = id.String()
	}
	saltLit := expr.Literal{Value: dtype.StringValue(salt)}
	saltT := meta.LiftExpr(saltLit, meta.ComposedExprRepr{}, pctx.New[meta.ExprMeta]())

	hashExpr := expr.Hash{Algo: expr.SHA256, Expr: t.Self, Salt: saltLit}
	hashT := meta.CombineExpr(hashExpr, []meta.ExprT[meta.ExprMeta]{t, saltT}, meta.ComposedExprRepr{})

	asExpr := expr.As{Expr: hashExpr, Alias: col.Key.Name()}
	asT := meta.CombineExpr(asExpr, []meta.ExprT[meta.ExprMeta]{hashT}, meta.ComposedExprRepr{})

	return NewCostly(asT), nil
}
