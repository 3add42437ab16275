// Package rel implements the relational algebra: Rel is a sum type
// rendered as an interface with one struct per constructor, mirroring
// the teacher's sql.Node / plan.Project layout.
package rel

import (
	"github.com/dolthub/privaql/ctxkey"
	"github.com/dolthub/privaql/expr"
)

// Rel is a relational algebra node. Every constructor (Table,
// Projection, Join, ...) implements it.
type Rel interface {
	// Children returns the node's direct relational children, in the
	// fixed positional order Dot folds expect.
	Children() []Rel
	// WithChildren returns a copy of the node with its relational
	// children replaced, which must have the same length as
	// Children() returned.
	WithChildren(children []Rel) Rel
	// Exprs returns the node's own scalar expressions (e.g. a
	// Projection's attributes, a Selection's predicate) — everything a
	// policy rewrite or metadata fold needs to see besides the
	// relational children.
	Exprs() []expr.Expr
	// WithExprs returns a copy of the node with its scalar expressions
	// replaced, which must have the same length as Exprs() returned.
	WithExprs(exprs []expr.Expr) Rel
}

// Table is a leaf reference to a backend-resolved relation.
type Table struct {
	Key ctxkey.ContextKey
}

func (t Table) Children() []Rel { return nil }
func (t Table) WithChildren(children []Rel) Rel {
	mustNoChildren("Table", children)
	return t
}
func (t Table) Exprs() []expr.Expr { return nil }
func (t Table) WithExprs(exprs []expr.Expr) Rel {
	mustNoExprs("Table", exprs)
	return t
}

// WithAlias re-keys From's schema under a single prefix segment.
type WithAlias struct {
	From  Rel
	Alias string
}

func (w WithAlias) Children() []Rel { return []Rel{w.From} }
func (w WithAlias) WithChildren(children []Rel) Rel {
	mustChildren("WithAlias", children, 1)
	w.From = children[0]
	return w
}
func (w WithAlias) Exprs() []expr.Expr { return nil }
func (w WithAlias) WithExprs(exprs []expr.Expr) Rel {
	mustNoExprs("WithAlias", exprs)
	return w
}

// Projection evaluates Attributes over each row of From.
type Projection struct {
	Attributes []expr.Expr
	From       Rel
}

func (p Projection) Children() []Rel { return []Rel{p.From} }
func (p Projection) WithChildren(children []Rel) Rel {
	mustChildren("Projection", children, 1)
	p.From = children[0]
	return p
}
func (p Projection) Exprs() []expr.Expr { return p.Attributes }
func (p Projection) WithExprs(exprs []expr.Expr) Rel {
	p.Attributes = exprs
	return p
}

// Aggregation groups From by GroupBy and evaluates Attributes per group.
type Aggregation struct {
	Attributes []expr.Expr
	GroupBy    []expr.Expr
	From       Rel
}

func (a Aggregation) Children() []Rel { return []Rel{a.From} }
func (a Aggregation) WithChildren(children []Rel) Rel {
	mustChildren("Aggregation", children, 1)
	a.From = children[0]
	return a
}
func (a Aggregation) Exprs() []expr.Expr {
	return append(append([]expr.Expr{}, a.Attributes...), a.GroupBy...)
}
func (a Aggregation) WithExprs(exprs []expr.Expr) Rel {
	n := len(a.Attributes)
	if len(exprs) < n {
		panic("rel: Aggregation.WithExprs got too few exprs")
	}
	a.Attributes = exprs[:n]
	a.GroupBy = exprs[n:]
	return a
}

// Selection filters From's rows by Where.
type Selection struct {
	From  Rel
	Where expr.Expr
}

func (s Selection) Children() []Rel { return []Rel{s.From} }
func (s Selection) WithChildren(children []Rel) Rel {
	mustChildren("Selection", children, 1)
	s.From = children[0]
	return s
}
func (s Selection) Exprs() []expr.Expr { return []expr.Expr{s.Where} }
func (s Selection) WithExprs(exprs []expr.Expr) Rel {
	mustExprs("Selection", exprs, 1)
	s.Where = exprs[0]
	return s
}

// Offset skips the first N rows of From.
type Offset struct {
	From Rel
	N    int64
}

func (o Offset) Children() []Rel { return []Rel{o.From} }
func (o Offset) WithChildren(children []Rel) Rel {
	mustChildren("Offset", children, 1)
	o.From = children[0]
	return o
}
func (o Offset) Exprs() []expr.Expr { return nil }
func (o Offset) WithExprs(exprs []expr.Expr) Rel {
	mustNoExprs("Offset", exprs)
	return o
}

// Limit caps From to the first N rows.
type Limit struct {
	From Rel
	N    int64
}

func (l Limit) Children() []Rel { return []Rel{l.From} }
func (l Limit) WithChildren(children []Rel) Rel {
	mustChildren("Limit", children, 1)
	l.From = children[0]
	return l
}
func (l Limit) Exprs() []expr.Expr { return nil }
func (l Limit) WithExprs(exprs []expr.Expr) Rel {
	mustNoExprs("Limit", exprs)
	return l
}

// SortDirection is the direction of a single OrderBy key.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

// SortKey is one ORDER BY key: an expression plus its direction.
type SortKey struct {
	Expr      expr.Expr
	Direction SortDirection
}

// OrderBy sorts From's rows by Keys, in order.
type OrderBy struct {
	From Rel
	Keys []SortKey
}

func (o OrderBy) Children() []Rel { return []Rel{o.From} }
func (o OrderBy) WithChildren(children []Rel) Rel {
	mustChildren("OrderBy", children, 1)
	o.From = children[0]
	return o
}
func (o OrderBy) Exprs() []expr.Expr {
	out := make([]expr.Expr, len(o.Keys))
	for i, k := range o.Keys {
		out[i] = k.Expr
	}
	return out
}
func (o OrderBy) WithExprs(exprs []expr.Expr) Rel {
	mustExprs("OrderBy", exprs, len(o.Keys))
	keys := make([]SortKey, len(o.Keys))
	for i, k := range o.Keys {
		keys[i] = SortKey{Expr: exprs[i], Direction: k.Direction}
	}
	o.Keys = keys
	return o
}

// Distinct removes duplicate rows of From.
type Distinct struct {
	From Rel
}

func (d Distinct) Children() []Rel { return []Rel{d.From} }
func (d Distinct) WithChildren(children []Rel) Rel {
	mustChildren("Distinct", children, 1)
	d.From = children[0]
	return d
}
func (d Distinct) Exprs() []expr.Expr { return nil }
func (d Distinct) WithExprs(exprs []expr.Expr) Rel {
	mustNoExprs("Distinct", exprs)
	return d
}

// JoinKind enumerates the supported join kinds.
type JoinKind int

const (
	InnerJoin JoinKind = iota
	LeftJoin
	RightJoin
	FullJoin
	CrossJoin
)

// Join combines Left and Right rows matching On.
type Join struct {
	Left  Rel
	Right Rel
	Kind  JoinKind
	On    expr.Expr // nil for CrossJoin
}

func (j Join) Children() []Rel { return []Rel{j.Left, j.Right} }
func (j Join) WithChildren(children []Rel) Rel {
	mustChildren("Join", children, 2)
	j.Left, j.Right = children[0], children[1]
	return j
}
func (j Join) Exprs() []expr.Expr {
	if j.On == nil {
		return nil
	}
	return []expr.Expr{j.On}
}
func (j Join) WithExprs(exprs []expr.Expr) Rel {
	if j.On == nil {
		mustNoExprs("Join", exprs)
		return j
	}
	mustExprs("Join", exprs, 1)
	j.On = exprs[0]
	return j
}

// SetOperator enumerates the supported set operations.
type SetOperator int

const (
	Union SetOperator = iota
	Intersect
	Except
)

// Set combines Left and Right rows by Op.
type Set struct {
	Left  Rel
	Right Rel
	Op    SetOperator
}

func (s Set) Children() []Rel { return []Rel{s.Left, s.Right} }
func (s Set) WithChildren(children []Rel) Rel {
	mustChildren("Set", children, 2)
	s.Left, s.Right = children[0], children[1]
	return s
}
func (s Set) Exprs() []expr.Expr { return nil }
func (s Set) WithExprs(exprs []expr.Expr) Rel {
	mustNoExprs("Set", exprs)
	return s
}

func mustChildren(kind string, children []Rel, want int) {
	if len(children) != want {
		panic(kind + ": WithChildren arity mismatch")
	}
}

func mustNoChildren(kind string, children []Rel) {
	if len(children) != 0 {
		panic(kind + ": WithChildren expects no children")
	}
}

func mustExprs(kind string, exprs []expr.Expr, want int) {
	if len(exprs) != want {
		panic(kind + ": WithExprs arity mismatch")
	}
}

func mustNoExprs(kind string, exprs []expr.Expr) {
	if len(exprs) != 0 {
		panic(kind + ": WithExprs expects no expressions")
	}
}
