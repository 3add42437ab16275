package policy

import (
	"context"
	"fmt"

	"github.com/dolthub/privaql/ctxkey"
	"github.com/dolthub/privaql/dtype"
	"github.com/dolthub/privaql/expr"
	"github.com/dolthub/privaql/rel"
	"github.com/dolthub/privaql/validate"
)

// DifferentialPrivacyPolicy replaces an Aggregation's aggregate
// attributes with Laplace-noised equivalents and adds a noised
// __bucket_count gate, transcribing transform.rs's `RelTransform for
// DifferentialPrivacyPolicy`. It reads each grouping and aggregate
// column's DomainStats directly off t's already-annotated boards
// rather than re-deriving a parallel "flex" schema: t was lifted
// against the same access-bound schema a flex rebase would use, so the
// domain statistics it already carries are the ones this policy needs.
type DifferentialPrivacyPolicy struct {
	Entity     string  `yaml:"entity"`
	Epsilon    float64 `yaml:"epsilon"`
	BucketSize float64 `yaml:"bucket_size"`
}

func (d DifferentialPrivacyPolicy) TransformRel(ctx context.Context, t validate.RelT, access Access) (Costly[validate.RelT], error) {
	agg, ok := t.Self.(rel.Aggregation)
	if !ok {
		return Costly[validate.RelT]{}, ErrNoMatch.New()
	}
	if len(t.Children) != 1 || t.Children[0].Board.Provenance == nil {
		return Costly[validate.RelT]{}, ErrNoMatch.New()
	}

	schema, err := access.Context(ctx)
	if err != nil {
		return Costly[validate.RelT]{}, ValidateErr(err)
	}

	entityKey := ctxkey.New(d.Entity)
	tableMeta, ok := schema.Get(*t.Children[0].Board.Provenance)
	if !ok {
		return Costly[validate.RelT]{}, ErrNoMatch.New()
	}
	entityMeta, err := tableMeta.Columns.GetColumn(entityKey)
	if err != nil || entityMeta.Domain.MaximumFrequency <= 0 {
		return Costly[validate.RelT]{}, ErrNoMatch.New()
	}
	maximumFrequency := entityMeta.Domain.MaximumFrequency

	numAttrs := len(agg.Attributes)
	if len(t.Exprs) != numAttrs+len(agg.GroupBy) {
		return Costly[validate.RelT]{}, ErrNoMatch.New()
	}
	attrExprTs := t.Exprs[:numAttrs]
	groupByExprTs := t.Exprs[numAttrs:]

	groupKeys := make(map[ctxkey.ContextKey]bool, len(groupByExprTs))
	for _, g := range groupByExprTs {
		col, ok := g.Self.(expr.Column)
		if !ok {
			return Costly[validate.RelT]{}, ErrNoMatch.New()
		}
		if g.Board.Taint {
			return Costly[validate.RelT]{}, ErrNoMatch.New()
		}
		if g.Board.Domain.MaximumFrequency <= 0 {
			return Costly[validate.RelT]{}, ErrNoMatch.New()
		}
		maximumFrequency *= g.Board.Domain.MaximumFrequency
		groupKeys[col.Key] = true
	}
	threshold := int64(d.BucketSize * maximumFrequency)

	newAttributes := make([]expr.Expr, 0, numAttrs+1)
	projectionAttributes := make([]expr.Expr, 0, numAttrs)
	var cost float64

	for i, a := range attrExprTs {
		switch self := a.Self.(type) {
		case expr.Column:
			if !groupKeys[self.Key] {
				return Costly[validate.RelT]{}, ErrNoMatch.New()
			}
			newAttributes = append(newAttributes, expr.As{Expr: self, Alias: self.Key.Name()})
			projectionAttributes = append(projectionAttributes, expr.Column{Key: ctxkey.New(self.Key.Name())})

		case expr.Function:
			if !self.Name.IsAggregate() {
				return Costly[validate.RelT]{}, ErrNoMatch.New()
			}
			alias := fmt.Sprintf("f%d_", i)
			noisy := expr.As{
				Expr: expr.Noisy{
					Expr:         self,
					Distribution: dtype.Distribution{Kind: dtype.Laplace, Mean: 0, Variance: a.Board.Domain.Sensitivity / d.Epsilon},
				},
				Alias: alias,
			}
			newAttributes = append(newAttributes, noisy)
			projectionAttributes = append(projectionAttributes, expr.Column{Key: ctxkey.New(alias)})
			cost += d.Epsilon

		default:
			return Costly[validate.RelT]{}, ErrNoMatch.New()
		}
	}

	bucketCount := expr.As{
		Expr: expr.Noisy{
			Expr:         expr.Function{Name: expr.Count, Args: []expr.Expr{expr.Literal{Value: dtype.LongValue(1)}}},
			Distribution: dtype.Distribution{Kind: dtype.Laplace, Mean: 0, Variance: 1 / d.Epsilon},
		},
		Alias: "__bucket_count",
	}
	newAttributes = append(newAttributes, bucketCount)

	noisedRoot := rel.Aggregation{Attributes: newAttributes, GroupBy: agg.GroupBy, From: agg.From}

	where := expr.BinaryOp{
		Left:  expr.Column{Key: ctxkey.New("__bucket_count")},
		Op:    expr.OpGt,
		Right: expr.Literal{Value: dtype.LongValue(threshold)},
	}
	newRoot := rel.Projection{
		Attributes: projectionAttributes,
		From:       rel.Selection{From: noisedRoot, Where: where},
	}

	rebased := validate.New(schema).Rebase(newRoot)
	if rebased.Err != nil {
		return Costly[validate.RelT]{}, ValidateErr(rebased.Err)
	}
	return Costly[validate.RelT]{Root: rebased, Cost: cost}, nil
}
