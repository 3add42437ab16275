package policy

import (
	"context"
	"fmt"

	"github.com/dolthub/privaql/ctxkey"
	"github.com/dolthub/privaql/dtype"
	"github.com/dolthub/privaql/expr"
	"github.com/dolthub/privaql/meta"
	"github.com/dolthub/privaql/pctx"
	"github.com/dolthub/privaql/rel"
	"github.com/dolthub/privaql/validate"
)

// AggregationPolicy rewrites an Aggregation so its groups are filtered
// to those with at least MinimumBucketSize distinct Entity values,
// transcribing transform.rs's `RelTransform for AggregationPolicy`. It
// only matches when t.Self is itself an Aggregation; every table it
// descends from must carry the Entity column, or the rewrite reports
// ErrNoMatch instead of silently admitting small groups.
type AggregationPolicy struct {
	Entity            string `yaml:"entity"`
	MinimumBucketSize uint64 `yaml:"minimum_bucket_size"`
}

func (a AggregationPolicy) TransformRel(ctx context.Context, t validate.RelT, access Access) (Costly[validate.RelT], error) {
	if _, ok := t.Self.(rel.Aggregation); !ok {
		return Costly[validate.RelT]{}, ErrNoMatch.New()
	}

	schema, err := access.Context(ctx)
	if err != nil {
		return Costly[validate.RelT]{}, ValidateErr(err)
	}

	entityKey := ctxkey.New(a.Entity)
	entityAlias := ctxkey.New("policy_" + entityKey.Name())

	rewritten, err := a.rewrite(t.Self, schema, entityKey, entityAlias)
	if err != nil {
		return Costly[validate.RelT]{}, err
	}

	validator := validate.New(schema)
	rebased := validator.Rebase(rewritten)
	if rebased.Err != nil {
		return Costly[validate.RelT]{}, ValidateErr(rebased.Err)
	}
	if _, err := rebased.Board.Columns.GetColumn(entityAlias); err != nil {
		return Costly[validate.RelT]{}, ErrNoMatch.New()
	}

	newAgg, ok := rewritten.(rel.Aggregation)
	if !ok {
		return Costly[validate.RelT]{}, ErrNoMatch.New()
	}
	numCols := len(newAgg.Attributes)
	if numCols < 2 {
		return Costly[validate.RelT]{}, ErrNoMatch.New()
	}

	where := expr.BinaryOp{
		Left:  expr.Column{Key: entityAlias},
		Op:    expr.OpGt,
		Right: expr.Literal{Value: dtype.LongValue(int64(a.MinimumBucketSize))},
	}
	finalAttrs := make([]expr.Expr, numCols-1)
	for i := range finalAttrs {
		finalAttrs[i] = expr.Column{Key: ctxkey.New(fmt.Sprintf("f%d_", i))}
	}
	newRoot := rel.Projection{
		Attributes: finalAttrs,
		From:       rel.Selection{From: rewritten, Where: where},
	}

	final := validator.Rebase(newRoot)
	if final.Err != nil {
		return Costly[validate.RelT]{}, ValidateErr(final.Err)
	}
	return Costly[validate.RelT]{Root: final}, nil
}

// rewrite performs the bottom-up, entity-column-threading tree rewrite:
// a Table leaf is kept only if its schema carries entityKey, a
// Projection gains an extra attribute selecting entityKey, an
// Aggregation has every attribute renamed to a positional f{i}_ alias
// and gains a COUNT(DISTINCT entityKey) attribute aliased entityAlias,
// and every other node shape passes its children through unchanged.
func (a AggregationPolicy) rewrite(r rel.Rel, schema pctx.Context[meta.TableMeta], entityKey, entityAlias ctxkey.ContextKey) (rel.Rel, error) {
	switch n := r.(type) {
	case rel.Table:
		tableMeta, ok := schema.Get(n.Key)
		if !ok {
			return nil, ErrNoMatch.New()
		}
		if _, err := tableMeta.Columns.GetColumn(entityKey); err != nil {
			return nil, ErrNoMatch.New()
		}
		return n, nil

	case rel.Projection:
		from, err := a.rewrite(n.From, schema, entityKey, entityAlias)
		if err != nil {
			return nil, err
		}
		attrs := append(append([]expr.Expr{}, n.Attributes...), expr.Column{Key: entityKey})
		return rel.Projection{Attributes: attrs, From: from}, nil

	case rel.Aggregation:
		from, err := a.rewrite(n.From, schema, entityKey, entityAlias)
		if err != nil {
			return nil, err
		}
		newAttrs := make([]expr.Expr, len(n.Attributes), len(n.Attributes)+1)
		for i, attr := range n.Attributes {
			newAttrs[i] = expr.As{Expr: attr, Alias: fmt.Sprintf("f%d_", i)}
		}
		count := expr.As{
			Expr: expr.Function{
				Name:     expr.Count,
				Args:     []expr.Expr{expr.Column{Key: entityKey}},
				Distinct: true,
			},
			Alias: entityAlias.Name(),
		}
		newAttrs = append(newAttrs, count)
		return rel.Aggregation{Attributes: newAttrs, GroupBy: n.GroupBy, From: from}, nil

	default:
		children := r.Children()
		if len(children) == 0 {
			return r, nil
		}
		newChildren := make([]rel.Rel, len(children))
		for i, c := range children {
			nc, err := a.rewrite(c, schema, entityKey, entityAlias)
			if err != nil {
				return nil, err
			}
			newChildren[i] = nc
		}
		return r.WithChildren(newChildren), nil
	}
}
