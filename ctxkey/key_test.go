package ctxkey

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAndString(t *testing.T) {
	require := require.New(t)

	k, err := Parse("project.dataset.table.column")
	require.NoError(err)
	require.Equal("project.dataset.table.column", k.String())
	require.Equal("column", k.Name())
	require.Equal([]string{"project", "dataset", "table", "column"}, k.Segments())
}

func TestParseRejectsEmptySegments(t *testing.T) {
	require := require.New(t)

	_, err := Parse("")
	require.Error(err)

	_, err = Parse("a..b")
	require.Error(err)
}

func TestWithPrefix(t *testing.T) {
	require := require.New(t)

	k := New("column")
	k = k.WithPrefix("table")
	k = k.WithPrefix("dataset")
	require.Equal("dataset.table.column", k.String())
}

func TestPrefixMatches(t *testing.T) {
	require := require.New(t)

	require.True(New("a", "b").PrefixMatches(New("a", "b", "c")))
	require.True(New("a", "b").PrefixMatches(New("a", "b")))
	require.False(New("a", "b").PrefixMatches(New("a", "x")))
	require.False(New("a", "b", "c").PrefixMatches(New("a", "b")))
}

func TestMatches(t *testing.T) {
	require := require.New(t)

	pattern := New("patient_data", "*", "*")
	require.True(New("patient_data", "person", "person_id").Matches(pattern))
	require.False(New("patient_data", "person").Matches(pattern))

	exact := New("patient_data", "person", "person_id")
	require.True(New("patient_data", "person", "person_id").Matches(exact))
	require.False(New("patient_data", "vocabulary", "vocabulary_id").Matches(exact))
}

func TestEqualAsMapKey(t *testing.T) {
	require := require.New(t)

	m := map[ContextKey]int{}
	m[New("a", "b")] = 1
	m[New("a", "b")] = 2
	require.Len(m, 1)
	require.Equal(2, m[New("a", "b")])
}
