package ansatz

import (
	"fmt"

	"github.com/dolthub/privaql/ctxkey"
	"github.com/dolthub/privaql/expr"
	"github.com/dolthub/privaql/rel"
)

// FromExprAst converts a RawAst expression node back into an expr.Expr,
// the inverse of LowerExpr's default case. It is the "convert raw AST
// nodes into Expr constructors" half of the validator's parser-adapter
// composition (spec.md §4.3): a parser collaborator hands the core a
// RawAst, and FromExprAst/FromRelAst turn it into the core's own
// algebra before validation lifts it.
func FromExprAst(a ExprAst) (expr.Expr, error) {
	switch n := a.(type) {
	case ColumnAst:
		key, err := ctxkey.Parse(n.Name)
		if err != nil {
			return nil, err
		}
		return expr.Column{Key: key}, nil
	case LiteralAst:
		return expr.Literal{Value: n.Value}, nil
	case AsAst:
		e, err := FromExprAst(n.Expr)
		if err != nil {
			return nil, err
		}
		return expr.As{Expr: e, Alias: n.Alias}, nil
	case FuncCallAst:
		name, ok := textToFunctionName(n.Name)
		if !ok {
			return nil, fmt.Errorf("ansatz: unknown function %q", n.Name)
		}
		args, err := fromExprAstSlice(n.Args)
		if err != nil {
			return nil, err
		}
		return expr.Function{Name: name, Args: args, Distinct: n.Distinct}, nil
	case IsNullAst:
		e, err := FromExprAst(n.Expr)
		if err != nil {
			return nil, err
		}
		return expr.IsNull{Expr: e}, nil
	case IsNotNullAst:
		e, err := FromExprAst(n.Expr)
		if err != nil {
			return nil, err
		}
		return expr.IsNotNull{Expr: e}, nil
	case InListAst:
		e, err := FromExprAst(n.Expr)
		if err != nil {
			return nil, err
		}
		list, err := fromExprAstSlice(n.List)
		if err != nil {
			return nil, err
		}
		return expr.InList{Expr: e, List: list, Negated: n.Negated}, nil
	case BetweenAst:
		e, err := FromExprAst(n.Expr)
		if err != nil {
			return nil, err
		}
		low, err := FromExprAst(n.Low)
		if err != nil {
			return nil, err
		}
		high, err := FromExprAst(n.High)
		if err != nil {
			return nil, err
		}
		return expr.Between{Expr: e, Low: low, High: high, Negated: n.Negated}, nil
	case UnaryAst:
		e, err := FromExprAst(n.Expr)
		if err != nil {
			return nil, err
		}
		return expr.UnaryOp{Op: textToUnaryOp(n.Op), Expr: e}, nil
	case BinaryAst:
		l, err := FromExprAst(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := FromExprAst(n.Right)
		if err != nil {
			return nil, err
		}
		return expr.BinaryOp{Left: l, Op: textToBinaryOp(n.Op), Right: r}, nil
	case CaseAst:
		conds, err := fromExprAstSlice(n.Conditions)
		if err != nil {
			return nil, err
		}
		results, err := fromExprAstSlice(n.Results)
		if err != nil {
			return nil, err
		}
		out := expr.Case{Conditions: conds, Results: results}
		if n.Else != nil {
			elseExpr, err := FromExprAst(n.Else)
			if err != nil {
				return nil, err
			}
			out.Else = elseExpr
		}
		return out, nil
	default:
		return nil, fmt.Errorf("ansatz: unknown expression ast %T", a)
	}
}

func fromExprAstSlice(in []ExprAst) ([]expr.Expr, error) {
	out := make([]expr.Expr, len(in))
	for i, a := range in {
		e, err := FromExprAst(a)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// FromRelAst converts a RawAst relation node back into a rel.Rel, the
// inverse of LowerRel's default case.
func FromRelAst(a RelAst) (rel.Rel, error) {
	switch n := a.(type) {
	case TableAst:
		key, err := ctxkey.Parse(n.Name)
		if err != nil {
			return nil, err
		}
		return rel.Table{Key: key}, nil
	case WithAliasAst:
		from, err := FromRelAst(n.From)
		if err != nil {
			return nil, err
		}
		return rel.WithAlias{From: from, Alias: n.Alias}, nil
	case ProjectAst:
		from, err := FromRelAst(n.From)
		if err != nil {
			return nil, err
		}
		attrs, err := fromExprAstSlice(n.Columns)
		if err != nil {
			return nil, err
		}
		return rel.Projection{Attributes: attrs, From: from}, nil
	case AggregateAst:
		from, err := FromRelAst(n.From)
		if err != nil {
			return nil, err
		}
		attrs, err := fromExprAstSlice(n.Columns)
		if err != nil {
			return nil, err
		}
		groupBy, err := fromExprAstSlice(n.GroupBy)
		if err != nil {
			return nil, err
		}
		return rel.Aggregation{Attributes: attrs, GroupBy: groupBy, From: from}, nil
	case FilterAst:
		from, err := FromRelAst(n.From)
		if err != nil {
			return nil, err
		}
		where, err := FromExprAst(n.Where)
		if err != nil {
			return nil, err
		}
		return rel.Selection{From: from, Where: where}, nil
	case OffsetAst:
		from, err := FromRelAst(n.From)
		if err != nil {
			return nil, err
		}
		return rel.Offset{From: from, N: n.N}, nil
	case LimitAst:
		from, err := FromRelAst(n.From)
		if err != nil {
			return nil, err
		}
		return rel.Limit{From: from, N: n.N}, nil
	case OrderByAst:
		from, err := FromRelAst(n.From)
		if err != nil {
			return nil, err
		}
		keys := make([]rel.SortKey, len(n.Keys))
		for i, k := range n.Keys {
			e, err := FromExprAst(k.Expr)
			if err != nil {
				return nil, err
			}
			dir := rel.Ascending
			if k.Descending {
				dir = rel.Descending
			}
			keys[i] = rel.SortKey{Expr: e, Direction: dir}
		}
		return rel.OrderBy{From: from, Keys: keys}, nil
	case DistinctAst:
		from, err := FromRelAst(n.From)
		if err != nil {
			return nil, err
		}
		return rel.Distinct{From: from}, nil
	case JoinAst:
		left, err := FromRelAst(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := FromRelAst(n.Right)
		if err != nil {
			return nil, err
		}
		out := rel.Join{Left: left, Right: right, Kind: textToJoinKind(n.Kind)}
		if n.On != nil {
			on, err := FromExprAst(n.On)
			if err != nil {
				return nil, err
			}
			out.On = on
		}
		return out, nil
	case SetAst:
		left, err := FromRelAst(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := FromRelAst(n.Right)
		if err != nil {
			return nil, err
		}
		return rel.Set{Left: left, Right: right, Op: textToSetOp(n.Op)}, nil
	default:
		return nil, fmt.Errorf("ansatz: unknown relation ast %T", a)
	}
}
