package meta

import (
	"testing"

	"github.com/dolthub/privaql/ctxkey"
	"github.com/dolthub/privaql/dtype"
	"github.com/dolthub/privaql/expr"
	"github.com/dolthub/privaql/pctx"
	"github.com/dolthub/privaql/rel"
	"github.com/stretchr/testify/require"
)

func TestLiftExprResolvesColumnFromSchema(t *testing.T) {
	require := require.New(t)

	schema := pctx.New[ExprMeta]()
	schema.Insert(ctxkey.New("person_id"), ExprMeta{DataType: dtype.Integer, Mode: dtype.Required})

	e := expr.As{Expr: expr.Column{Key: ctxkey.New("person_id")}, Alias: "pid"}
	out := LiftExpr(e, ComposedExprRepr{}, schema)

	require.NoError(out.Err)
	require.Equal(dtype.Integer, out.Board.DataType)
	require.Len(out.Children, 1)
	require.Equal(dtype.Integer, out.Children[0].Board.DataType)
}

func TestLiftExprPropagatesChildErrorWithoutPanicking(t *testing.T) {
	require := require.New(t)

	schema := pctx.New[ExprMeta]()
	e := expr.As{Expr: expr.Column{Key: ctxkey.New("missing")}, Alias: "x"}

	out := LiftExpr(e, ComposedExprRepr{}, schema)
	require.Error(out.Err)
	require.NotNil(out.Self)
}

func TestLiftExprFunctionTypeMismatchSurfacesOnBoard(t *testing.T) {
	require := require.New(t)

	schema := pctx.New[ExprMeta]()
	schema.Insert(ctxkey.New("name"), ExprMeta{DataType: dtype.String, Mode: dtype.Required})

	e := expr.Function{Name: expr.Sum, Args: []expr.Expr{expr.Column{Key: ctxkey.New("name")}}}
	out := LiftExpr(e, ComposedExprRepr{}, schema)
	require.Error(out.Err)
	require.True(ErrInvalidType.Is(out.Err))
}

func TestLiftRelResolvesTableFromSchema(t *testing.T) {
	require := require.New(t)

	colSchema := pctx.New[ExprMeta]()
	colSchema.Insert(ctxkey.New("person_id"), ExprMeta{DataType: dtype.Integer, Mode: dtype.Required})

	key := ctxkey.New("patient_data.person")
	tableSchema := pctx.New[TableMeta]()
	tableSchema.Insert(key, TableMeta{Columns: colSchema, Provenance: &key})

	r := rel.Table{Key: key}
	out := LiftRel[ExprMeta, TableMeta](r, ComposedExprRepr{}, TableMetaRepr{}, tableSchema)

	require.NoError(out.Err)
	v, ok := out.Board.Columns.Get(ctxkey.New("person_id"))
	require.True(ok)
	require.Equal(dtype.Integer, v.DataType)
	require.Equal(key, *out.Board.Provenance)
}

func TestLiftRelProjectionResolvesColumnsAgainstChildSchema(t *testing.T) {
	require := require.New(t)

	colSchema := pctx.New[ExprMeta]()
	colSchema.Insert(ctxkey.New("person_id"), ExprMeta{DataType: dtype.Integer, Mode: dtype.Required})
	colSchema.Insert(ctxkey.New("name"), ExprMeta{DataType: dtype.String, Mode: dtype.Nullable})

	key := ctxkey.New("patient_data.person")
	tableSchema := pctx.New[TableMeta]()
	tableSchema.Insert(key, TableMeta{Columns: colSchema, Provenance: &key})

	r := rel.Projection{
		Attributes: []expr.Expr{expr.Column{Key: ctxkey.New("person_id")}},
		From:       rel.Table{Key: key},
	}
	out := LiftRel[ExprMeta, TableMeta](r, ComposedExprRepr{}, TableMetaRepr{}, tableSchema)

	require.NoError(out.Err)
	v, ok := out.Board.Columns.Get(ctxkey.New("person_id"))
	require.True(ok)
	require.Equal(dtype.Integer, v.DataType)
	require.Equal(key, *out.Board.Provenance)
}

func TestLiftRelJoinHasNoSingleProvenance(t *testing.T) {
	require := require.New(t)

	leftKey := ctxkey.New("left")
	rightKey := ctxkey.New("right")
	tableSchema := pctx.New[TableMeta]()
	tableSchema.Insert(leftKey, TableMeta{Columns: pctx.New[ExprMeta](), Provenance: &leftKey})
	tableSchema.Insert(rightKey, TableMeta{Columns: pctx.New[ExprMeta](), Provenance: &rightKey})

	r := rel.Join{Left: rel.Table{Key: leftKey}, Right: rel.Table{Key: rightKey}, Kind: rel.CrossJoin}
	out := LiftRel[ExprMeta, TableMeta](r, ComposedExprRepr{}, TableMetaRepr{}, tableSchema)

	require.NoError(out.Err)
	require.Nil(out.Board.Provenance)
}

func TestLiftRelSetSchemaMismatch(t *testing.T) {
	require := require.New(t)

	leftSchema := pctx.New[ExprMeta]()
	leftSchema.Insert(ctxkey.New("x"), ExprMeta{DataType: dtype.Integer})
	rightSchema := pctx.New[ExprMeta]()
	rightSchema.Insert(ctxkey.New("x"), ExprMeta{DataType: dtype.String})

	leftKey, rightKey := ctxkey.New("l"), ctxkey.New("r")
	tableSchema := pctx.New[TableMeta]()
	tableSchema.Insert(leftKey, TableMeta{Columns: leftSchema, Provenance: &leftKey})
	tableSchema.Insert(rightKey, TableMeta{Columns: rightSchema, Provenance: &rightKey})

	r := rel.Set{Left: rel.Table{Key: leftKey}, Right: rel.Table{Key: rightKey}, Op: rel.Union}
	out := LiftRel[ExprMeta, TableMeta](r, ComposedExprRepr{}, TableMetaRepr{}, tableSchema)

	require.Error(out.Err)
	require.True(ErrSchemaMismatch.Is(out.Err))
}
