// Package validate implements the validator (spec.md §4.3) and rebase
// (§4.7): both are the same upward fold over meta.LiftRel, the first
// invoked from a freshly parsed tree, the second re-invoked after any
// policy rewrite synthesizes a new subtree. Grounded on
// opt/transform.rs's `Validator::new(&ctx)`/`validator.validate_str`
// test harness and its post-rewrite `RebaseRel::rebase` calls.
package validate

import (
	"fmt"

	"github.com/dolthub/privaql/meta"
	"github.com/dolthub/privaql/pctx"
	"github.com/dolthub/privaql/rel"
	"github.com/sirupsen/logrus"
)

// RelT is the fully-annotated tree shape the validator and rebase both
// produce: a rel.Rel tree where every node carries a TableMeta board
// (whose own expressions carry an ExprMeta board).
type RelT = meta.RelT[meta.ExprMeta, meta.TableMeta]

// Validator converts a raw rel.Rel tree into an annotated RelT,
// resolving Table leaves against Schema.
type Validator struct {
	// Schema binds each known table's ContextKey to its TableMeta —
	// the "schema context" the access collaborator hands the core at
	// query time.
	Schema pctx.Context[meta.TableMeta]
	// Log receives one Warn-level line per validation error
	// encountered on a node's board; defaults to logrus's standard
	// logger. Never logs column values, only ContextKeys and
	// structural facts.
	Log *logrus.Entry
}

// New builds a Validator bound to schema.
func New(schema pctx.Context[meta.TableMeta]) *Validator {
	return &Validator{Schema: schema, Log: logrus.NewEntry(logrus.StandardLogger())}
}

func (v *Validator) logger() *logrus.Entry {
	if v.Log != nil {
		return v.Log
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// Validate lifts r into an annotated RelT using the composed
// ExprMeta/TableMeta representations, binding Table leaves against
// Schema. It never panics or aborts construction; a node whose board
// carries an error is still present in the returned tree (§4.3, §7).
func (v *Validator) Validate(r rel.Rel) RelT {
	out := meta.LiftRel[meta.ExprMeta, meta.TableMeta](r, meta.ComposedExprRepr{}, meta.TableMetaRepr{}, v.Schema)
	if out.Err != nil {
		v.logger().WithFields(logrus.Fields{
			"node": kindOf(out.Self),
		}).Warn(out.Err.Error())
	}
	return out
}

// Rebase re-derives every board in r from scratch, using the same
// representations and schema context Validate does. It is the
// validator's re-entry point the differential-privacy and aggregation
// policies call after synthesizing a new subtree (§4.5 steps 1/7, §4.7
// "rebase is essential"). Rebase is idempotent on an already-consistent
// tree: Rebase(Rebase(T)) == Rebase(T), since both calls fold the same
// raw rel.Rel shape against the same schema.
func (v *Validator) Rebase(r rel.Rel) RelT {
	return v.Validate(r)
}

func kindOf(r rel.Rel) string {
	if r == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", r)
}
