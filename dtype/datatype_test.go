package dtype

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsNumeric(t *testing.T) {
	require := require.New(t)

	require.True(Integer.IsNumeric())
	require.True(Float.IsNumeric())
	require.False(String.IsNumeric())
	require.False(Boolean.IsNumeric())
	require.False(Null.IsNumeric())
}

func TestParseDataType(t *testing.T) {
	require := require.New(t)

	for _, name := range []string{"INTEGER", "FLOAT", "STRING", "BOOLEAN", "TIMESTAMP", "DATE", "BYTES", "NULL"} {
		d, ok := ParseDataType(name)
		require.True(ok, name)
		require.Equal(name, d.String())
	}

	_, ok := ParseDataType("NOT_A_TYPE")
	require.False(ok)
}

func TestZeroValueIsNull(t *testing.T) {
	var d DataType
	require.Equal(t, Null, d)

	var m Mode
	require.Equal(t, Nullable, m)
}
