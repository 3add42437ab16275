// Package access declares the external collaborator interfaces the core
// depends on but never implements: Parser, Unparser, Backend and Access
// (spec.md §6). It also carries the Step/Records boundary types and the
// Error shape external failures are wrapped in before reaching a caller.
//
// Grounded on opt/transform.rs's `Access` trait (`context`,
// `policies_for_group`) and the Backend collaborator sketched in
// spec.md §6 (`compute`, `get_schema`, `get_records`, `probe`).
package access

import (
	"context"
	"fmt"

	"github.com/dolthub/privaql/ansatz"
	"github.com/dolthub/privaql/ctxkey"
	"github.com/dolthub/privaql/meta"
	"github.com/dolthub/privaql/pctx"
	"github.com/dolthub/privaql/policy"
)

// Parser turns raw SQL text into the core's RawAst boundary shape. The
// core converts a RawAst into its own rel.Rel/expr.Expr algebra in one
// pass (ansatz.FromRelAst).
type Parser interface {
	Parse(ctx context.Context, sql string) (ansatz.RawAst, error)
}

// Unparser renders a RawAst back into SQL text, the inverse of Parser.
type Unparser interface {
	Unparse(ast ansatz.RawAst) (string, error)
}

// Records is the opaque row-data shape a Backend hands back from
// GetRecords; the core never inspects it, only threads it through.
type Records interface{}

// Step is the package a Backend receives once a tree is fully
// policy-transformed and validated: the original source schema context,
// the annotated tree itself, and the promised result table's key.
type Step struct {
	Ctx     pctx.Context[meta.TableMeta]
	RelT    meta.RelT[meta.ExprMeta, meta.TableMeta]
	Promise ctxkey.ContextKey
}

// Backend executes a fully policy-transformed, validated tree. It
// lowers the tree via its own ansatz.Backend override and runs it
// against whatever storage engine it fronts.
type Backend interface {
	Compute(ctx context.Context, step Step) error
	GetSchema(ctx context.Context, key ctxkey.ContextKey) (meta.TableMeta, error)
	GetRecords(ctx context.Context, key ctxkey.ContextKey) (Records, error)
	Probe(ctx context.Context, key ctxkey.ContextKey) error
}

// Access is the collaborator the policy transformer calls to load the
// source schema context and the policy bindings active for an audience.
// It is the only suspension point in the core's otherwise-pure folds
// (spec.md §5): only a DifferentialPrivacy or Aggregation policy
// triggers a call to Context, to re-derive the boards (DomainStats
// included) for its rebase step.
type Access interface {
	Context(ctx context.Context) (pctx.Context[meta.TableMeta], error)
	PoliciesForGroup(ctx context.Context, audience ctxkey.ContextKey) (pctx.Context[policy.PolicyBinding], error)
}

// ErrorKind names which collaborator boundary an Error crossed.
type ErrorKind int

const (
	ParserErrorKind ErrorKind = iota
	UnparserErrorKind
	BackendErrorKind
	AccessErrorKind
)

func (k ErrorKind) String() string {
	switch k {
	case ParserErrorKind:
		return "parser"
	case UnparserErrorKind:
		return "unparser"
	case BackendErrorKind:
		return "backend"
	case AccessErrorKind:
		return "access"
	default:
		return "unknown"
	}
}

// Error wraps a failure crossing an external collaborator boundary
// (spec.md §6, §7): Reason is a stable human-readable summary, Source
// the underlying error (nil if none), Description optional extra
// detail, and Kind which collaborator raised it.
type Error struct {
	Reason      string
	Source      error
	Description string
	Kind        ErrorKind
}

func (e *Error) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Reason, e.Description)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *Error) Unwrap() error { return e.Source }

// Wrap builds an Error of the given kind from an underlying error.
func Wrap(kind ErrorKind, reason string, source error) *Error {
	return &Error{Reason: reason, Source: source, Kind: kind}
}
