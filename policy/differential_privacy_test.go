package policy

import (
	"context"
	"testing"

	"github.com/dolthub/privaql/ctxkey"
	"github.com/dolthub/privaql/dtype"
	"github.com/dolthub/privaql/expr"
	"github.com/dolthub/privaql/meta"
	"github.com/dolthub/privaql/rel"
	"github.com/dolthub/privaql/validate"
	"github.com/stretchr/testify/require"
)

func TestDifferentialPrivacyPolicyNoisesAggregateAndGatesBuckets(t *testing.T) {
	require := require.New(t)
	tableKey := ctxkey.New("patient_data", "person")
	schema := oneTableSchema(tableKey, map[string]meta.ExprMeta{
		"gender_concept_id": {DataType: dtype.Integer, Mode: dtype.Required, Domain: meta.DomainStats{MaximumFrequency: 1}},
		"person_id":         {DataType: dtype.Integer, Mode: dtype.Required, Domain: meta.DomainStats{MaximumFrequency: 3, Sensitivity: 1}},
	})
	v := validate.New(schema)

	r := rel.Aggregation{
		Attributes: []expr.Expr{
			expr.Column{Key: ctxkey.New("gender_concept_id")},
			expr.Function{Name: expr.Count, Args: []expr.Expr{expr.Column{Key: ctxkey.New("person_id")}}},
		},
		GroupBy: []expr.Expr{expr.Column{Key: ctxkey.New("gender_concept_id")}},
		From:    rel.Table{Key: tableKey},
	}
	relT := v.Validate(r)
	require.NoError(relT.Err)

	p := DifferentialPrivacyPolicy{Entity: "person_id", Epsilon: 0.5, BucketSize: 2}
	costly, err := p.TransformRel(context.Background(), relT, fakeAccess{schema: schema})
	require.NoError(err)
	require.NoError(costly.Root.Err)
	require.Equal(0.5, costly.Cost)

	proj, ok := costly.Root.Self.(rel.Projection)
	require.True(ok)
	require.Len(proj.Attributes, 2)
	require.Equal(expr.Column{Key: ctxkey.New("gender_concept_id")}, proj.Attributes[0])
	require.Equal(expr.Column{Key: ctxkey.New("f1_")}, proj.Attributes[1])

	sel, ok := proj.From.(rel.Selection)
	require.True(ok)
	where, ok := sel.Where.(expr.BinaryOp)
	require.True(ok)
	require.Equal(expr.Column{Key: ctxkey.New("__bucket_count")}, where.Left)

	agg, ok := sel.From.(rel.Aggregation)
	require.True(ok)
	require.Len(agg.Attributes, 3)
	lastAs, ok := agg.Attributes[2].(expr.As)
	require.True(ok)
	require.Equal("__bucket_count", lastAs.Alias)
	_, isNoisy := lastAs.Expr.(expr.Noisy)
	require.True(isNoisy)
}

func TestDifferentialPrivacyPolicyNoMatchWhenNotAggregation(t *testing.T) {
	require := require.New(t)
	tableKey := ctxkey.New("patient_data", "person")
	schema := oneTableSchema(tableKey, map[string]meta.ExprMeta{
		"person_id": {DataType: dtype.Integer, Mode: dtype.Required, Domain: meta.DomainStats{MaximumFrequency: 1}},
	})
	v := validate.New(schema)
	r := rel.Projection{Attributes: []expr.Expr{expr.Column{Key: ctxkey.New("person_id")}}, From: rel.Table{Key: tableKey}}
	relT := v.Validate(r)
	require.NoError(relT.Err)

	p := DifferentialPrivacyPolicy{Entity: "person_id", Epsilon: 0.5, BucketSize: 2}
	_, err := p.TransformRel(context.Background(), relT, fakeAccess{schema: schema})
	require.True(ErrNoMatch.Is(err))
}
