package policy

import (
	"github.com/dolthub/privaql/expr"
	"github.com/dolthub/privaql/meta"
)

// WhitelistPolicy passes a Column through unchanged when its key
// matches one of Fields, transcribing transform.rs's
// `ExprTransform for WhitelistPolicy`.
type WhitelistPolicy struct {
	Fields []string `yaml:"fields"`
}

func (w WhitelistPolicy) TransformExpr(t meta.ExprT[meta.ExprMeta]) (Costly[meta.ExprT[meta.ExprMeta]], error) {
	col, ok := t.Self.(expr.Column)
	if !ok {
		return Costly[meta.ExprT[meta.ExprMeta]]{}, ErrNoMatch.New()
	}
	matched, err := matchesIn(w.Fields, col.Key)
	if err != nil {
		return Costly[meta.ExprT[meta.ExprMeta]]{}, ValidateErr(err)
	}
	if !matched {
		return Costly[meta.ExprT[meta.ExprMeta]]{}, ErrNoMatch.New()
	}
	return NewCostly(t), nil
}
