package meta

import (
	"github.com/dolthub/privaql/ctxkey"
	"github.com/dolthub/privaql/rel"
)

// TableMetaRepr folds a rel.Rel tree into TableMeta: its output schema
// (computed with the same rules as SchemaRepr), the intersection of its
// children's audiences (structurally identical to AudienceRepr's expr-
// level rule, applied one level up), and its provenance — the single
// leaf table it descends from, or nil once two differently-provenanced
// subtrees combine. Table leaves are resolved directly from the bound
// tableSchema by LiftRel, never folded here.
type TableMetaRepr struct{}

func (TableMetaRepr) Dot(node rel.Rel, exprBoards []ExprMeta, childBoards []TableMeta) (TableMeta, error) {
	childSchemas := make([]SchemaCtx, len(childBoards))
	for i, cb := range childBoards {
		childSchemas[i] = cb.Columns
	}
	columns, err := DotSchema(node, exprBoards, childSchemas)
	if err != nil {
		return TableMeta{}, err
	}

	audience := dotTableAudience(childBoards)
	provenance := dotProvenance(node, childBoards)
	epsilon := dotEpsilonSpent(childBoards)

	return TableMeta{
		Columns:      columns,
		Audience:     audience,
		Provenance:   provenance,
		EpsilonSpent: epsilon,
	}, nil
}

// dotTableAudience intersects every child's audience, the relational-
// level counterpart of AudienceRepr.Dot.
func dotTableAudience(children []TableMeta) Audience {
	auds := make([]Audience, len(children))
	for i, c := range children {
		auds[i] = c.Audience
	}
	return DotAudience(auds)
}

// dotProvenance reports the single leaf table a node descends from: a
// WithAlias/Projection/Aggregation/Offset/Limit/OrderBy/Distinct/
// Selection node forwards its one child's provenance unchanged; a Join
// or Set combining two differently-provenanced subtrees has no single
// provenance (nil); combining a subtree with itself (a self-join) keeps
// it.
func dotProvenance(node rel.Rel, children []TableMeta) *ctxkey.ContextKey {
	switch len(children) {
	case 0:
		return nil
	case 1:
		return children[0].Provenance
	default:
		first := children[0].Provenance
		for _, c := range children[1:] {
			if first == nil || c.Provenance == nil || *first != *c.Provenance {
				return nil
			}
		}
		return first
	}
}

// dotEpsilonSpent sums every child's already-spent privacy budget as
// bound in the schema context. No policy in this module sets
// EpsilonSpent; the differential-privacy policy reports its cost through
// Costly.Cost instead.
func dotEpsilonSpent(children []TableMeta) float64 {
	var total float64
	for _, c := range children {
		total += c.EpsilonSpent
	}
	return total
}
