package ansatz

import (
	"fmt"
	"reflect"

	"github.com/dolthub/privaql/expr"
	"github.com/dolthub/privaql/meta"
	"github.com/dolthub/privaql/rel"
)

// ExprLowerFunc lowers one expr.Expr node into an ExprAst, given its
// children already lowered, in positional order.
type ExprLowerFunc func(node expr.Expr, children []ExprAst) (ExprAst, error)

// RelLowerFunc lowers one rel.Rel node into a RelAst, given its own
// expressions and relational children already lowered.
type RelLowerFunc func(node rel.Rel, exprs []ExprAst, children []RelAst) (RelAst, error)

// Backend is the override table a backend collaborator populates to
// replace the default lowering of selected Expr/Rel constructors,
// e.g. BigQuery's Hash override (see the ansatz/bigquery package).
// Overrides are strict extensions: LowerExpr/LowerRel fall through to
// the default lowering for every case a Backend does not register.
type Backend struct {
	Name          string
	exprOverrides map[reflect.Type]ExprLowerFunc
	relOverrides  map[reflect.Type]RelLowerFunc
}

// NewBackend builds an empty override table under the given name.
func NewBackend(name string) *Backend {
	return &Backend{
		Name:          name,
		exprOverrides: make(map[reflect.Type]ExprLowerFunc),
		relOverrides:  make(map[reflect.Type]RelLowerFunc),
	}
}

// Default is the base table used when no backend override applies:
// every case falls through to defaultLowerExpr/defaultLowerRel.
var Default = NewBackend("default")

// OverrideExpr registers fn to replace the default lowering of every
// node with sample's concrete type. Returns the receiver for chaining.
func (b *Backend) OverrideExpr(sample expr.Expr, fn ExprLowerFunc) *Backend {
	b.exprOverrides[reflect.TypeOf(sample)] = fn
	return b
}

// OverrideRel registers fn to replace the default lowering of every
// node with sample's concrete type.
func (b *Backend) OverrideRel(sample rel.Rel, fn RelLowerFunc) *Backend {
	b.relOverrides[reflect.TypeOf(sample)] = fn
	return b
}

// ToAnsatz lowers relT's annotated tree into a RawAst via backend's
// override table (Default if nil). The fold operates on relT.Self's
// raw rel.Rel/expr.Expr shape directly — annotations on relT itself are
// not consulted, since by the time a tree reaches lowering its boards
// have already done their job (validation, policy gating); only the
// structural shape remains to translate.
func ToAnsatz[ME, MR any](relT meta.RelT[ME, MR], backend *Backend) (RelAst, error) {
	if backend == nil {
		backend = Default
	}
	return LowerRel(relT.Self, backend)
}

// LowerExpr folds e into an ExprAst, consulting backend's override
// table at every node before falling back to the default lowering.
func LowerExpr(e expr.Expr, backend *Backend) (ExprAst, error) {
	if backend == nil {
		backend = Default
	}
	rawChildren := e.Children()
	children := make([]ExprAst, len(rawChildren))
	for i, c := range rawChildren {
		lowered, err := LowerExpr(c, backend)
		if err != nil {
			return nil, err
		}
		children[i] = lowered
	}
	if fn, ok := backend.exprOverrides[reflect.TypeOf(e)]; ok {
		return fn(e, children)
	}
	return defaultLowerExpr(e, children)
}

// LowerRel folds r into a RelAst, consulting backend's override table
// at every node. The bare-Table-root case (spec.md §9) needs no special
// handling here: Table is a first-class switch arm like any other, so
// a root-is-sole-leaf query lowers exactly the way a Table nested
// three levels down would.
func LowerRel(r rel.Rel, backend *Backend) (RelAst, error) {
	if backend == nil {
		backend = Default
	}
	rawChildren := r.Children()
	children := make([]RelAst, len(rawChildren))
	for i, c := range rawChildren {
		lowered, err := LowerRel(c, backend)
		if err != nil {
			return nil, err
		}
		children[i] = lowered
	}
	rawExprs := r.Exprs()
	exprs := make([]ExprAst, len(rawExprs))
	for i, e := range rawExprs {
		lowered, err := LowerExpr(e, backend)
		if err != nil {
			return nil, err
		}
		exprs[i] = lowered
	}
	if fn, ok := backend.relOverrides[reflect.TypeOf(r)]; ok {
		return fn(r, exprs, children)
	}
	return defaultLowerRel(r, exprs, children)
}

func defaultLowerExpr(e expr.Expr, children []ExprAst) (ExprAst, error) {
	switch n := e.(type) {
	case expr.Column:
		return ColumnAst{Name: n.Key.String()}, nil
	case expr.Literal:
		return LiteralAst{Value: n.Value}, nil
	case expr.As:
		return AsAst{Expr: children[0], Alias: n.Alias}, nil
	case expr.Function:
		return FuncCallAst{Name: n.Name.String(), Args: children, Distinct: n.Distinct}, nil
	case expr.IsNull:
		return IsNullAst{Expr: children[0]}, nil
	case expr.IsNotNull:
		return IsNotNullAst{Expr: children[0]}, nil
	case expr.InList:
		return InListAst{Expr: children[0], List: children[1:], Negated: n.Negated}, nil
	case expr.Between:
		return BetweenAst{Expr: children[0], Low: children[1], High: children[2], Negated: n.Negated}, nil
	case expr.UnaryOp:
		return UnaryAst{Op: unaryOpText(n.Op), Expr: children[0]}, nil
	case expr.BinaryOp:
		return BinaryAst{Left: children[0], Op: binaryOpText(n.Op), Right: children[1]}, nil
	case expr.Case:
		nConds := len(n.Conditions)
		nResults := len(n.Results)
		out := CaseAst{Conditions: children[:nConds], Results: children[nConds : nConds+nResults]}
		if n.Else != nil {
			out.Else = children[nConds+nResults]
		}
		return out, nil
	case expr.Hash:
		// Default lowering has no canonical SQL digest function; a
		// backend overriding Hash (ansatz/bigquery) must replace this
		// case entirely.
		return FuncCallAst{Name: "HASH_" + n.Algo.String(), Args: []ExprAst{children[0], children[1]}}, nil
	case expr.Replace:
		return children[1], nil
	case expr.Noisy:
		return FuncCallAst{Name: "NOISY_" + n.Distribution.Kind.String(), Args: []ExprAst{children[0]}}, nil
	default:
		return nil, fmt.Errorf("ansatz: unknown expression node %T", e)
	}
}

func defaultLowerRel(r rel.Rel, exprs []ExprAst, children []RelAst) (RelAst, error) {
	switch n := r.(type) {
	case rel.Table:
		return TableAst{Name: n.Key.String()}, nil
	case rel.WithAlias:
		return WithAliasAst{From: children[0], Alias: n.Alias}, nil
	case rel.Projection:
		return ProjectAst{Columns: exprs, From: children[0]}, nil
	case rel.Aggregation:
		nAttrs := len(n.Attributes)
		return AggregateAst{Columns: exprs[:nAttrs], GroupBy: exprs[nAttrs:], From: children[0]}, nil
	case rel.Selection:
		return FilterAst{From: children[0], Where: exprs[0]}, nil
	case rel.Offset:
		return OffsetAst{From: children[0], N: n.N}, nil
	case rel.Limit:
		return LimitAst{From: children[0], N: n.N}, nil
	case rel.OrderBy:
		keys := make([]OrderByItemAst, len(n.Keys))
		for i, k := range n.Keys {
			keys[i] = OrderByItemAst{Expr: exprs[i], Descending: k.Direction == rel.Descending}
		}
		return OrderByAst{From: children[0], Keys: keys}, nil
	case rel.Distinct:
		return DistinctAst{From: children[0]}, nil
	case rel.Join:
		var on ExprAst
		if len(exprs) > 0 {
			on = exprs[0]
		}
		return JoinAst{Left: children[0], Right: children[1], Kind: joinKindText(n.Kind), On: on}, nil
	case rel.Set:
		return SetAst{Left: children[0], Right: children[1], Op: setOpText(n.Op)}, nil
	default:
		return nil, fmt.Errorf("ansatz: unknown relation node %T", r)
	}
}
