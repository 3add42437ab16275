package meta

import (
	"testing"

	"github.com/dolthub/privaql/ctxkey"
	"github.com/dolthub/privaql/dtype"
	"github.com/dolthub/privaql/expr"
	"github.com/stretchr/testify/require"
)

func TestDotModeNullLiteralIsNullable(t *testing.T) {
	require := require.New(t)

	m, err := DotMode(expr.Literal{Value: dtype.NullLiteral{}}, nil)
	require.NoError(err)
	require.Equal(dtype.Nullable, m)

	m, err = DotMode(expr.Literal{Value: dtype.LongValue(1)}, nil)
	require.NoError(err)
	require.Equal(dtype.Required, m)
}

func TestDotModeParentNullableIfAnyChildIs(t *testing.T) {
	require := require.New(t)

	m, err := DotMode(expr.BinaryOp{}, []dtype.Mode{dtype.Required, dtype.Nullable})
	require.NoError(err)
	require.Equal(dtype.Nullable, m)

	m, err = DotMode(expr.BinaryOp{}, []dtype.Mode{dtype.Required, dtype.Required})
	require.NoError(err)
	require.Equal(dtype.Required, m)
}

func TestDotModeColumnIsInternalError(t *testing.T) {
	require := require.New(t)

	_, err := DotMode(expr.Column{}, nil)
	require.Error(err)
	require.True(ErrInternal.Is(err))
}

func TestDotTaintOrsChildren(t *testing.T) {
	require := require.New(t)

	require.False(DotTaint(nil))
	require.False(DotTaint([]bool{false, false}))
	require.True(DotTaint([]bool{false, true}))
}

func TestDotAudienceIntersectsChildren(t *testing.T) {
	require := require.New(t)

	a := NewAudience(ctxkey.New("dept_a"), ctxkey.New("dept_b"))
	b := NewAudience(ctxkey.New("dept_b"))

	out := DotAudience([]Audience{a, b})
	require.Equal(NewAudience(ctxkey.New("dept_b")), out)
}

func TestDotAudienceNoChildrenIsEmpty(t *testing.T) {
	require := require.New(t)

	require.Equal(Audience{}, DotAudience(nil))
}
