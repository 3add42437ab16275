package dtype

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLongCoercesStrings(t *testing.T) {
	require := require.New(t)

	v, err := NewLong("42")
	require.NoError(err)
	require.Equal(LongValue(42), v)
	require.Equal(Integer, v.DataType())
}

func TestNewDoubleCoercesInt(t *testing.T) {
	require := require.New(t)

	v, err := NewDouble(3)
	require.NoError(err)
	require.Equal(DoubleValue(3), v)
	require.Equal(Float, v.DataType())
}

func TestNewBoolCoercion(t *testing.T) {
	require := require.New(t)

	v, err := NewBool("true")
	require.NoError(err)
	require.Equal(BoolValue(true), v)
	require.Equal(Boolean, v.DataType())
}

func TestNewStringCoercesInt(t *testing.T) {
	require := require.New(t)

	v, err := NewString(7)
	require.NoError(err)
	require.Equal(StringValue("7"), v)
	require.Equal(String, v.DataType())
}

func TestNullLiteralDataType(t *testing.T) {
	require := require.New(t)

	var lit LiteralValue = NullLiteral{}
	require.Equal(Null, lit.DataType())
}

func TestNewLongRejectsNonNumeric(t *testing.T) {
	require := require.New(t)

	_, err := NewLong("not-a-number")
	require.Error(err)
}

func TestDistributionKindString(t *testing.T) {
	require := require.New(t)
	require.Equal("Laplace", Laplace.String())
}
