package meta

import (
	"fmt"

	"github.com/dolthub/privaql/ctxkey"
	"github.com/dolthub/privaql/expr"
	"github.com/dolthub/privaql/pctx"
	"github.com/dolthub/privaql/rel"
)

// SchemaRepr folds a rel.Rel tree into the output schema it exposes to
// its parent, transcribing meta.rs's `impl RelRepr<E> for Context<E>`
// arm for arm. A Table leaf is never folded directly here — LiftRel
// resolves it from the bound tableSchema, matching the teacher's
// `GenericRel::Table(..) => Err(Internal("tried to complete from leaf"))`.
type SchemaRepr struct{}

func (SchemaRepr) Dot(node rel.Rel, exprBoards []ExprMeta, childBoards []pctx.Context[ExprMeta]) (pctx.Context[ExprMeta], error) {
	return DotSchema(node, exprBoards, childBoards)
}

// DotSchema implements the Context<E>::dot match.
func DotSchema(node rel.Rel, exprBoards []ExprMeta, childBoards []pctx.Context[ExprMeta]) (pctx.Context[ExprMeta], error) {
	switch n := node.(type) {
	case rel.Table:
		return pctx.Context[ExprMeta]{}, ErrInternal.New("tried to complete from leaf")

	case rel.WithAlias:
		return childBoards[0].WithPrefix(n.Alias), nil

	case rel.Projection:
		return schemaFromAttributes(n.Attributes, exprBoards), nil

	case rel.Aggregation:
		return schemaFromAttributes(n.Attributes, exprBoards[:len(n.Attributes)]), nil

	case rel.Offset:
		return childBoards[0], nil
	case rel.Limit:
		return childBoards[0], nil
	case rel.OrderBy:
		return childBoards[0], nil
	case rel.Distinct:
		return childBoards[0], nil
	case rel.Selection:
		return childBoards[0], nil

	case rel.Join:
		out := childBoards[0].Clone()
		out.Extend(childBoards[1])
		return out, nil

	case rel.Set:
		left, right := childBoards[0], childBoards[1]
		out := pctx.New[ExprMeta]()
		var rebaseErr error
		left.Iter(func(key ctxkey.ContextKey, meta ExprMeta) bool {
			rightMeta, err := right.GetColumn(key)
			if err != nil {
				rebaseErr = err
				return false
			}
			if !meta.Equal(rightMeta) {
				rebaseErr = ErrSchemaMismatch.New(key.String())
				return false
			}
			out.Insert(ctxkey.New(key.Name()), meta)
			return true
		})
		if rebaseErr != nil {
			return pctx.Context[ExprMeta]{}, rebaseErr
		}
		return out, nil

	default:
		return pctx.Context[ExprMeta]{}, ErrInternal.New(fmt.Sprintf("unknown relation node %T", node))
	}
}

// schemaFromAttributes re-keys attrs by their As-alias, falling back to
// a positional f{i}_ alias, matching Context<E>::dot's Projection/
// Aggregation arm (including its "FIXME sanitization" comment on the
// alias path).
func schemaFromAttributes(attrs []expr.Expr, boards []ExprMeta) pctx.Context[ExprMeta] {
	out := pctx.New[ExprMeta]()
	for i, a := range attrs {
		key := a.Name()
		if key == "" {
			key = fmt.Sprintf("f%d_", i)
		}
		out.Insert(ctxkey.New(key), boards[i])
	}
	return out
}
