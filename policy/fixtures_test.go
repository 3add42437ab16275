package policy

import (
	"context"

	"github.com/dolthub/privaql/ctxkey"
	"github.com/dolthub/privaql/meta"
	"github.com/dolthub/privaql/pctx"
)

// fakeAccess is the minimal Access fixture the policy package's tests
// need: a fixed schema, no backend or policy-manifest behavior.
type fakeAccess struct {
	schema pctx.Context[meta.TableMeta]
}

func (f fakeAccess) Context(ctx context.Context) (pctx.Context[meta.TableMeta], error) {
	return f.schema, nil
}

// columnSchema lifts a single Column's ExprMeta into a one-entry
// schema context, the shape LiftExpr/CombineExpr need to resolve a
// bare Column expression in the expression-transformer tests.
func columnSchema(key ctxkey.ContextKey, em meta.ExprMeta) pctx.Context[meta.ExprMeta] {
	s := pctx.New[meta.ExprMeta]()
	s.Insert(key, em)
	return s
}

// oneTableSchema builds a schema containing a single table keyed by
// tableKey, whose columns are cols (name -> ExprMeta).
func oneTableSchema(tableKey ctxkey.ContextKey, cols map[string]meta.ExprMeta) pctx.Context[meta.TableMeta] {
	columns := pctx.New[meta.ExprMeta]()
	for name, em := range cols {
		columns.Insert(ctxkey.New(name), em)
	}
	key := tableKey
	schema := pctx.New[meta.TableMeta]()
	schema.Insert(key, meta.TableMeta{Columns: columns, Provenance: &key})
	return schema
}
