package policy

import (
	"context"

	"github.com/dolthub/privaql/ctxkey"
	"github.com/dolthub/privaql/expr"
	"github.com/dolthub/privaql/meta"
	"github.com/dolthub/privaql/pctx"
	"github.com/dolthub/privaql/rel"
	"github.com/dolthub/privaql/validate"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Access is the subset of the access package's collaborator interface
// RelTransformer needs: just enough to load the source schema context
// for a DifferentialPrivacy or Aggregation rebase. Declaring it locally (rather than
// importing package access) avoids a cycle, since access in turn needs
// policy.PolicyBinding in its own Access interface's return type — any
// concrete access.Access value already satisfies this interface
// structurally.
type Access interface {
	Context(ctx context.Context) (pctx.Context[meta.TableMeta], error)
}

// RelTransform is the relation-level counterpart of ExprTransform,
// implemented by Aggregation and DifferentialPrivacy; every other
// policy variant reports ErrNoMatch.
type RelTransform interface {
	TransformRel(ctx context.Context, t validate.RelT, access Access) (Costly[validate.RelT], error)
}

func (p Policy) TransformRel(ctx context.Context, t validate.RelT, access Access) (Costly[validate.RelT], error) {
	switch {
	case p.DifferentialPrivacy != nil:
		return p.DifferentialPrivacy.TransformRel(ctx, t, access)
	case p.Aggregation != nil:
		return p.Aggregation.TransformRel(ctx, t, access)
	default:
		return Costly[validate.RelT]{}, ErrNoMatch.New()
	}
}

// RelTransformer offers every policy bound to a subtree's provenance
// table to that subtree, recursing toward the leaves when nothing at
// the current level matches. Transcribes transform.rs's
// `RelTransformer`.
type RelTransformer struct {
	Bindings pctx.Context[*PolicyBinding]
	Audience meta.BlockType
	Access   Access
	Log      *logrus.Entry
}

// NewRelTransformer builds a transformer scoped to bindings and the
// audience being evaluated, consulting access for any DP or
// Aggregation rebase.
func NewRelTransformer(bindings pctx.Context[*PolicyBinding], audience meta.BlockType, access Access) *RelTransformer {
	log := logrus.NewEntry(logrus.StandardLogger())
	log.WithField("audience", audience.String()).Debug("initializing relation transformer")
	return &RelTransformer{Bindings: bindings, Audience: audience, Access: access, Log: log}
}

func (r *RelTransformer) logger() *logrus.Entry {
	if r.Log != nil {
		return r.Log
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// filterBindings returns the subset of bindings whose key is an
// ancestor-or-self of contextKey, transcribing `filter_bindings`.
func (r *RelTransformer) filterBindings(contextKey ctxkey.ContextKey) pctx.Context[*PolicyBinding] {
	out := pctx.New[*PolicyBinding]()
	for _, key := range r.Bindings.Keys() {
		if key.PrefixMatches(contextKey) {
			binding, _ := r.Bindings.Get(key)
			out.Insert(key, binding)
		}
	}
	return out
}

// TransformRel offers t to every applicable policy, preferring the
// trivial Projection-directly-over-Table fast path (where column-level
// policies apply directly to the projected attributes) before falling
// back to the provenance-gated whole-subtree offer every other node
// shape uses. It recurses into children — concurrently, via errgroup —
// only once nothing at the current level matches.
func (r *RelTransformer) TransformRel(ctx context.Context, t validate.RelT) (Transformed[validate.RelT], error) {
	proposed, err := r.proposeCandidates(ctx, t)
	if err != nil {
		return Transformed[validate.RelT]{}, err
	}

	if best, ok := bestCandidate(proposed); ok {
		r.logger().Debug("best candidate found for relation")
		return best, nil
	}

	r.logger().Debug("no candidate for relation at this level")
	if len(t.Children) == 0 {
		return Transformed[validate.RelT]{}, ErrNoMatch.New()
	}

	newChildren := make([]validate.RelT, len(t.Children))
	childCosts := make([]map[ctxkey.ContextKey]float64, len(t.Children))
	childPriorities := make([]uint64, len(t.Children))

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range t.Children {
		i, c := i, c
		g.Go(func() error {
			tr, err := r.TransformRel(gctx, c)
			if err != nil {
				return err
			}
			newChildren[i] = tr.Root
			childCosts[i] = tr.Cost
			childPriorities[i] = tr.Priority
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Transformed[validate.RelT]{}, err
	}

	cost := map[ctxkey.ContextKey]float64{}
	var priority uint64
	for i := range t.Children {
		for k, c := range childCosts[i] {
			cost[k] += c
		}
		if childPriorities[i] > priority {
			priority = childPriorities[i]
		}
	}

	newExprs := make([]meta.ExprT[meta.ExprMeta], len(t.Exprs))
	copy(newExprs, t.Exprs)
	root := meta.CombineRel(t.Self.WithChildren(selvesOf(newChildren)), newExprs, newChildren, meta.TableMetaRepr{})
	return Transformed[validate.RelT]{Root: root, Cost: cost, Priority: priority}, nil
}

func selvesOf(children []validate.RelT) []rel.Rel {
	out := make([]rel.Rel, len(children))
	for i, c := range children {
		out[i] = c.Self
	}
	return out
}

func exprSelves(exprTs []meta.ExprT[meta.ExprMeta]) []expr.Expr {
	out := make([]expr.Expr, len(exprTs))
	for i, e := range exprTs {
		out[i] = e.Self
	}
	return out
}

func (r *RelTransformer) proposeCandidates(ctx context.Context, t validate.RelT) ([]Transformed[validate.RelT], error) {
	if proj, ok := t.Self.(rel.Projection); ok {
		if tbl, ok := t.Children[0].Self.(rel.Table); ok {
			return r.proposeLeafProjection(proj, tbl, t)
		}
	}

	if t.Board.Provenance == nil {
		return nil, nil
	}
	bindings := r.filterBindings(*t.Board.Provenance)

	var candidates []Transformed[validate.RelT]
	for _, key := range bindings.Keys() {
		binding, _ := bindings.Get(key)
		for _, pol := range binding.Policies {
			costly, err := pol.TransformRel(ctx, t, r.Access)
			if ErrNoMatch.Is(err) {
				continue
			}
			if err != nil {
				return nil, err
			}
			if !binding.IsInBudget(costly.Cost) {
				continue
			}
			root := costly.Root
			insertTableAudience(&root, r.Audience)
			candidates = append(candidates, newTransformed(root, key, costly.Cost, binding.Priority))
		}
	}
	return candidates, nil
}

func (r *RelTransformer) proposeLeafProjection(proj rel.Projection, tbl rel.Table, t validate.RelT) ([]Transformed[validate.RelT], error) {
	r.logger().Debug("potential expr leaf policy condition met")
	bindings := r.filterBindings(tbl.Key)
	exprTransformer := NewExprTransformer(bindings, r.Audience)

	cost := map[ctxkey.ContextKey]float64{}
	var priority uint64
	newExprs := make([]meta.ExprT[meta.ExprMeta], len(t.Exprs))
	for i, e := range t.Exprs {
		tr, err := exprTransformer.TransformExpr(e)
		switch {
		case ErrNoMatch.Is(err):
			newExprs[i] = e
		case err != nil:
			return nil, err
		default:
			tr.addTo(cost)
			if tr.Priority > priority {
				priority = tr.Priority
			}
			newExprs[i] = tr.Root
		}
	}

	attributes := exprSelves(newExprs)
	newProj := rel.Projection{Attributes: attributes, From: tbl}
	root := meta.CombineRel(newProj, newExprs, []validate.RelT{t.Children[0]}, meta.TableMetaRepr{})

	if root.Err != nil {
		return nil, ValidateErr(root.Err)
	}
	exprAudiences := make([]meta.Audience, len(newExprs))
	for i, e := range newExprs {
		exprAudiences[i] = e.Board.Audience
	}
	audience := make(meta.Audience)
	for k := range meta.DotAudience(exprAudiences) {
		audience[k] = struct{}{}
	}
	for k := range root.Board.Audience {
		audience[k] = struct{}{}
	}
	root.Board.Audience = audience
	if !root.Board.Audience.Contains(r.Audience) {
		return nil, nil
	}
	return []Transformed[validate.RelT]{{Root: root, Cost: cost, Priority: priority}}, nil
}

func insertTableAudience(root *validate.RelT, aud meta.BlockType) {
	next := make(meta.Audience, len(root.Board.Audience)+1)
	for k := range root.Board.Audience {
		next[k] = struct{}{}
	}
	next[aud] = struct{}{}
	root.Board.Audience = next
}
