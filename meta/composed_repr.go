package meta

import (
	"github.com/dolthub/privaql/dtype"
	"github.com/dolthub/privaql/expr"
)

// ComposedExprRepr folds an expr.Expr tree into ExprMeta in a single
// pass, reusing the same pure per-component dot rules as DataTypeRepr/
// ModeRepr/TaintRepr/AudienceRepr so a validator only needs one fold
// instead of four independent ones. This is the Go rendering of
// spec.md's "tuple-valued annotation" — one struct rather than a
// literal tuple.
type ComposedExprRepr struct{}

func (ComposedExprRepr) Dot(node expr.Expr, children []ExprMeta) (ExprMeta, error) {
	dt := make([]dtype.DataType, len(children))
	modes := make([]dtype.Mode, len(children))
	taints := make([]bool, len(children))
	auds := make([]Audience, len(children))
	domains := make([]DomainStats, len(children))
	for i, c := range children {
		dt[i] = c.DataType
		modes[i] = c.Mode
		taints[i] = c.Taint
		auds[i] = c.Audience
		domains[i] = c.Domain
	}

	dataType, err := DotDataType(node, dt)
	if err != nil {
		return ExprMeta{}, err
	}
	mode, err := DotMode(node, modes)
	if err != nil {
		return ExprMeta{}, err
	}
	taint := DotTaint(taints)
	audience := DotAudience(auds)
	domain := dotDomainStats(domains)

	return ExprMeta{
		DataType: dataType,
		Mode:     mode,
		Taint:    taint,
		Audience: audience,
		Domain:   domain,
	}, nil
}

// dotDomainStats forwards a single child's domain stats unchanged
// (As, UnaryOp, Noisy, a one-argument Function and any other one-child
// node); for any other arity, Replace included, it has no well-defined
// forwarding rule, so it is left zero. The differential-privacy policy
// only ever reads stats off Column leaves, single-child nodes and the
// schema's own entity column.
func dotDomainStats(children []DomainStats) DomainStats {
	if len(children) == 1 {
		return children[0]
	}
	return DomainStats{}
}
