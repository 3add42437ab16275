// Package ansatz implements the final fold of the pipeline (spec.md
// §4.6): translating an annotated tree back into the raw SQL AST shape
// the (external) un-parser consumes. RawAst is also the boundary type
// the (external) parser collaborator produces — the same type flows
// in both directions across the core's edge (spec.md §6).
//
// Grounded on backends/bigquery/mod.rs's `ToAnsatz`/`to_ansatz` fold
// and its `RelAnsatz`/`ExprAnsatz` boundary types.
package ansatz

import "github.com/dolthub/privaql/dtype"

// ExprAst is a scalar SQL AST node: the un-parser's input shape for a
// single expression, and the parser's output shape for one.
type ExprAst interface{ isExprAst() }

// RelAst is a relational SQL AST node: one per query-shaped clause,
// mirroring rel.Rel's constructors one for one so ToAnsatz/FromRelAst stay
// a straight structural fold rather than a re-grouping pass.
type RelAst interface{ isRelAst() }

// RawAst is the parser/un-parser boundary type named in spec.md §6:
// `Parser.Parse(sql) -> RawAst`, `Unparser.Unparse(RawAst) -> string`.
// A full query is always relational at its root, so RawAst is RelAst.
type RawAst = RelAst

// --- ExprAst node kinds -----------------------------------------------

type ColumnAst struct{ Name string }

func (ColumnAst) isExprAst() {}

// LiteralAst carries a typed constant value; rendering its exact
// textual quoting/escaping is the un-parser's job, out of core scope
// (spec.md §1).
type LiteralAst struct{ Value dtype.LiteralValue }

func (LiteralAst) isExprAst() {}

type AsAst struct {
	Expr  ExprAst
	Alias string
}

func (AsAst) isExprAst() {}

type FuncCallAst struct {
	Name     string
	Args     []ExprAst
	Distinct bool
}

func (FuncCallAst) isExprAst() {}

type IsNullAst struct{ Expr ExprAst }

func (IsNullAst) isExprAst() {}

type IsNotNullAst struct{ Expr ExprAst }

func (IsNotNullAst) isExprAst() {}

type InListAst struct {
	Expr    ExprAst
	List    []ExprAst
	Negated bool
}

func (InListAst) isExprAst() {}

type BetweenAst struct {
	Expr    ExprAst
	Low     ExprAst
	High    ExprAst
	Negated bool
}

func (BetweenAst) isExprAst() {}

type UnaryAst struct {
	Op   string
	Expr ExprAst
}

func (UnaryAst) isExprAst() {}

type BinaryAst struct {
	Left  ExprAst
	Op    string
	Right ExprAst
}

func (BinaryAst) isExprAst() {}

type CaseAst struct {
	Conditions []ExprAst
	Results    []ExprAst
	Else       ExprAst // nil if absent
}

func (CaseAst) isExprAst() {}

// --- RelAst node kinds --------------------------------------------------

// TableAst names a backend-qualified relation. Lowering a bare-Table
// root (spec.md §9's hotfix) produces this directly as the whole
// RawAst, not just as a FROM clause fragment.
type TableAst struct{ Name string }

func (TableAst) isRelAst() {}

type WithAliasAst struct {
	From  RelAst
	Alias string
}

func (WithAliasAst) isRelAst() {}

type ProjectAst struct {
	Columns []ExprAst
	From    RelAst
}

func (ProjectAst) isRelAst() {}

type AggregateAst struct {
	Columns []ExprAst
	GroupBy []ExprAst
	From    RelAst
}

func (AggregateAst) isRelAst() {}

type FilterAst struct {
	From  RelAst
	Where ExprAst
}

func (FilterAst) isRelAst() {}

type OffsetAst struct {
	From RelAst
	N    int64
}

func (OffsetAst) isRelAst() {}

type LimitAst struct {
	From RelAst
	N    int64
}

func (LimitAst) isRelAst() {}

type OrderByItemAst struct {
	Expr       ExprAst
	Descending bool
}

type OrderByAst struct {
	From RelAst
	Keys []OrderByItemAst
}

func (OrderByAst) isRelAst() {}

type DistinctAst struct{ From RelAst }

func (DistinctAst) isRelAst() {}

type JoinAst struct {
	Left  RelAst
	Right RelAst
	Kind  string
	On    ExprAst // nil for CROSS JOIN
}

func (JoinAst) isRelAst() {}

type SetAst struct {
	Left  RelAst
	Right RelAst
	Op    string
}

func (SetAst) isRelAst() {}
