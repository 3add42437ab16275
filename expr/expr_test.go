package expr

import (
	"testing"

	"github.com/dolthub/privaql/ctxkey"
	"github.com/dolthub/privaql/dtype"
	"github.com/stretchr/testify/require"
)

func TestColumnLeafHasNoChildren(t *testing.T) {
	require := require.New(t)

	c := Column{Key: ctxkey.New("person_id")}
	require.Empty(c.Children())
	require.Equal("person_id", c.Name())
}

func TestAsWithChildrenReplacesExpr(t *testing.T) {
	require := require.New(t)

	lit := Literal{Value: dtype.LongValue(1)}
	a := As{Expr: lit, Alias: "one"}
	require.Equal([]Expr{lit}, a.Children())

	other := Literal{Value: dtype.LongValue(2)}
	replaced := a.WithChildren([]Expr{other}).(As)
	require.Equal(other, replaced.Expr)
	require.Equal("one", replaced.Name())
}

func TestFunctionChildrenAreArgsInOrder(t *testing.T) {
	require := require.New(t)

	col := Column{Key: ctxkey.New("x")}
	lit := Literal{Value: dtype.LongValue(1)}
	fn := Function{Name: Sum, Args: []Expr{col, lit}}
	require.Equal([]Expr{col, lit}, fn.Children())
	require.True(Sum.IsAggregate())
	require.False(Concat.IsAggregate())
}

func TestBetweenChildOrder(t *testing.T) {
	require := require.New(t)

	low := Literal{Value: dtype.LongValue(1)}
	high := Literal{Value: dtype.LongValue(10)}
	col := Column{Key: ctxkey.New("age")}
	b := Between{Expr: col, Low: low, High: high}
	require.Equal([]Expr{col, low, high}, b.Children())
}

func TestCaseChildrenAndWithChildren(t *testing.T) {
	require := require.New(t)

	cond1 := Column{Key: ctxkey.New("a")}
	cond2 := Column{Key: ctxkey.New("b")}
	res1 := Literal{Value: dtype.LongValue(1)}
	res2 := Literal{Value: dtype.LongValue(2)}
	elseExpr := Literal{Value: dtype.LongValue(0)}

	c := Case{Conditions: []Expr{cond1, cond2}, Results: []Expr{res1, res2}, Else: elseExpr}
	require.Equal([]Expr{cond1, cond2, res1, res2, elseExpr}, c.Children())

	newElse := Literal{Value: dtype.LongValue(99)}
	rebuilt := c.WithChildren([]Expr{cond1, cond2, res1, res2, newElse}).(Case)
	require.Equal(newElse, rebuilt.Else)
}

func TestCaseWithoutElse(t *testing.T) {
	require := require.New(t)

	cond := Column{Key: ctxkey.New("a")}
	res := Literal{Value: dtype.LongValue(1)}
	c := Case{Conditions: []Expr{cond}, Results: []Expr{res}}
	require.Equal([]Expr{cond, res}, c.Children())

	rebuilt := c.WithChildren([]Expr{cond, res}).(Case)
	require.Nil(rebuilt.Else)
}

func TestInListChildren(t *testing.T) {
	require := require.New(t)

	col := Column{Key: ctxkey.New("x")}
	a := Literal{Value: dtype.LongValue(1)}
	b := Literal{Value: dtype.LongValue(2)}
	in := InList{Expr: col, List: []Expr{a, b}}
	require.Equal([]Expr{col, a, b}, in.Children())

	rebuilt := in.WithChildren([]Expr{col, b, a}).(InList)
	require.Equal([]Expr{b, a}, rebuilt.List)
}

func TestHashAndReplaceAndNoisyChildren(t *testing.T) {
	require := require.New(t)

	col := Column{Key: ctxkey.New("ssn")}
	salt := Literal{Value: dtype.StringValue("abc")}
	h := Hash{Expr: col, Salt: salt}
	require.Equal([]Expr{col, salt}, h.Children())

	with := Literal{Value: dtype.StringValue("***")}
	r := Replace{Expr: col, With: with}
	require.Equal([]Expr{col, with}, r.Children())

	n := Noisy{Expr: col, Distribution: dtype.Distribution{Kind: dtype.Laplace}}
	require.Equal([]Expr{col}, n.Children())
}

func TestWalkVisitsPreOrderAndCanPrune(t *testing.T) {
	require := require.New(t)

	col := Column{Key: ctxkey.New("a")}
	lit := Literal{Value: dtype.LongValue(1)}
	fn := Function{Name: Count, Args: []Expr{col, lit}}
	top := As{Expr: fn, Alias: "n"}

	var visited []Expr
	Walk(VisitorFunc(func(n Expr) Visitor {
		visited = append(visited, n)
		return VisitorFunc(func(n2 Expr) Visitor {
			visited = append(visited, n2)
			return nil
		})
	}), top)

	require.Equal([]Expr{top, fn}, visited)
}

func TestInspectStopsDescendingWhenFalse(t *testing.T) {
	require := require.New(t)

	col := Column{Key: ctxkey.New("a")}
	fn := Function{Name: Count, Args: []Expr{col}}
	top := As{Expr: fn, Alias: "n"}

	var visited []Expr
	Inspect(top, func(n Expr) bool {
		visited = append(visited, n)
		_, isFn := n.(Function)
		return !isFn
	})

	require.Equal([]Expr{top, fn}, visited)
}
