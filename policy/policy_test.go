package policy

import (
	"testing"

	"github.com/dolthub/privaql/ctxkey"
	"github.com/stretchr/testify/require"
)

func TestBestCandidatePrefersHighestPriority(t *testing.T) {
	require := require.New(t)
	low := newTransformed(1, ctxkey.New("a"), 10, 1)
	high := newTransformed(2, ctxkey.New("b"), 0, 5)
	best, ok := bestCandidate([]Transformed[int]{low, high})
	require.True(ok)
	require.Equal(2, best.Root)
}

func TestBestCandidateBreaksTiesByLowestCost(t *testing.T) {
	require := require.New(t)
	cheap := newTransformed(1, ctxkey.New("a"), 1, 5)
	expensive := newTransformed(2, ctxkey.New("b"), 10, 5)
	best, ok := bestCandidate([]Transformed[int]{expensive, cheap})
	require.True(ok)
	require.Equal(1, best.Root)
}

func TestBestCandidateEmptyIsNotOk(t *testing.T) {
	_, ok := bestCandidate([]Transformed[int]{})
	require.False(t, ok)
}

func TestMatchesInGlob(t *testing.T) {
	require := require.New(t)
	matched, err := matchesIn([]string{"patient_data.*.person_id"}, ctxkey.New("patient_data", "person", "person_id"))
	require.NoError(err)
	require.True(matched)

	matched, err = matchesIn([]string{"patient_data.*.person_id"}, ctxkey.New("patient_data", "person", "gender_concept_id"))
	require.NoError(err)
	require.False(matched)
}

func TestIsInBudget(t *testing.T) {
	require := require.New(t)
	b := PolicyBinding{Budget: &Budget{Maximum: 1.0, Used: 0.9}}
	require.True(b.IsInBudget(0.1))
	require.False(b.IsInBudget(0.2))

	unbounded := PolicyBinding{}
	require.True(unbounded.IsInBudget(1e9))
}
