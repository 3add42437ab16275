// Package policy implements the five disclosure policies and the
// expression/relation transformers that apply them (spec.md §4.4/4.5).
//
// Grounded end to end on opt/transform.rs: the `ExprTransform`/
// `RelTransform` traits, the `Costly<T>`/`Transformed<T>` rewrite-
// candidate types, `PolicyBinding`'s budget check, and the six literal
// `#[test]` scenarios at the bottom of that file (reproduced in spirit,
// over a small synthetic manifest, as this package's end-to-end tests).
package policy

import (
	"github.com/dolthub/privaql/ctxkey"
	"github.com/dolthub/privaql/meta"
	"gopkg.in/src-d/go-errors.v1"
)

// ErrNoMatch is the sentinel kind a policy returns when it does not
// apply to the node it was offered; callers check it with
// ErrNoMatch.Is(err) and fall through to the next candidate instead of
// treating it as a failure, the same Kind-based sentinel idiom
// meta.ErrInternal/pctx.ErrAbsent use.
var ErrNoMatch = errors.NewKind("no policy matched")

// errValidate wraps a hard validation failure encountered mid-rewrite
// (spec.md §7's "policy hard errors"), distinct from ErrNoMatch: it
// aborts the whole transformation instead of falling through.
type errValidate struct{ cause error }

func (e *errValidate) Error() string { return e.cause.Error() }
func (e *errValidate) Unwrap() error { return e.cause }

// ValidateErr wraps cause as a hard rewrite-time validation failure.
func ValidateErr(cause error) error { return &errValidate{cause: cause} }

// Budget caps the total cost a PolicyBinding may spend across every
// rewrite it authorizes (e.g. a differential-privacy epsilon budget).
type Budget struct {
	Maximum float64 `yaml:"maximum"`
	Used    float64 `yaml:"used"`
}

// Policy is the tagged union of the five disclosure policies; exactly
// one field is non-nil. yaml struct tags let an external manifest
// loader unmarshal a binding's policy list directly.
type Policy struct {
	Whitelist           *WhitelistPolicy           `yaml:"whitelist,omitempty"`
	Hash                *HashPolicy                `yaml:"hash,omitempty"`
	Obfuscate           *ObfuscatePolicy           `yaml:"obfuscate,omitempty"`
	Aggregation         *AggregationPolicy         `yaml:"aggregation,omitempty"`
	DifferentialPrivacy *DifferentialPrivacyPolicy `yaml:"differential_privacy,omitempty"`
}

// TransformExpr dispatches to whichever expression-level policy
// variant is set (Whitelist/Hash/Obfuscate); Aggregation and
// DifferentialPrivacy are relation-level only and always report
// ErrNoMatch here, mirroring transform.rs's `ExprTransform for Policy`.
func (p Policy) TransformExpr(t meta.ExprT[meta.ExprMeta]) (Costly[meta.ExprT[meta.ExprMeta]], error) {
	switch {
	case p.Whitelist != nil:
		return p.Whitelist.TransformExpr(t)
	case p.Hash != nil:
		return p.Hash.TransformExpr(t)
	case p.Obfuscate != nil:
		return p.Obfuscate.TransformExpr(t)
	default:
		return Costly[meta.ExprT[meta.ExprMeta]]{}, ErrNoMatch.New()
	}
}

// PolicyBinding attaches an ordered set of policies to a ContextKey
// prefix, along with the priority used to arbitrate between competing
// bindings and an optional spending budget.
type PolicyBinding struct {
	Policies []Policy `yaml:"policies"`
	Priority uint64   `yaml:"priority"`
	Budget   *Budget  `yaml:"budget,omitempty"`
}

// IsInBudget reports whether proposed can still be spent without
// exceeding Budget.Maximum; a binding with no budget always admits.
func (b PolicyBinding) IsInBudget(proposed float64) bool {
	if b.Budget == nil {
		return true
	}
	return b.Budget.Used+proposed <= b.Budget.Maximum
}

// Costly is a single rewrite candidate and the cost it incurs, the Go
// rendering of `Costly<T>`. A bare value lifted via NewCostly carries
// zero cost (the teacher's `impl<T> From<T> for Costly<T>`).
type Costly[T any] struct {
	Root T
	Cost float64
}

// NewCostly lifts root as a free (zero-cost) rewrite candidate.
func NewCostly[T any](root T) Costly[T] {
	return Costly[T]{Root: root}
}

// Transformed is a scored rewrite candidate competing against its
// siblings: Cost is keyed per originating binding so costs from
// different bindings accumulate independently (spec.md's cost-
// additivity property), and Priority is the winning binding's priority.
type Transformed[T any] struct {
	Root     T
	Cost     map[ctxkey.ContextKey]float64
	Priority uint64
}

// Default lifts root as an untransformed candidate: no cost, priority
// zero. Used by callers that catch ErrNoMatch at the top level and
// fall back to the original tree unchanged.
func Default[T any](root T) Transformed[T] {
	return Transformed[T]{Root: root, Cost: map[ctxkey.ContextKey]float64{}}
}

func newTransformed[T any](root T, bindingKey ctxkey.ContextKey, cost float64, priority uint64) Transformed[T] {
	return Transformed[T]{
		Root:     root,
		Cost:     map[ctxkey.ContextKey]float64{bindingKey: cost},
		Priority: priority,
	}
}

func (t Transformed[T]) totalCost() float64 {
	var total float64
	for _, c := range t.Cost {
		total += c
	}
	return total
}

func (t Transformed[T]) addTo(costs map[ctxkey.ContextKey]float64) {
	for k, c := range t.Cost {
		costs[k] += c
	}
}

// bestCandidate picks the winning rewrite among proposed: the highest
// Priority, breaking ties by lowest total cost — spec.md §9's
// deterministic tie-break, transcribed from `Transformed::best_candidate`.
func bestCandidate[T any](proposed []Transformed[T]) (Transformed[T], bool) {
	if len(proposed) == 0 {
		var zero Transformed[T]
		return zero, false
	}
	var highest uint64
	for i, t := range proposed {
		if i == 0 || t.Priority > highest {
			highest = t.Priority
		}
	}
	best := proposed[0]
	bestSet := false
	for _, t := range proposed {
		if t.Priority != highest {
			continue
		}
		if !bestSet || t.totalCost() < best.totalCost() {
			best = t
			bestSet = true
		}
	}
	return best, true
}

// matchesIn reports whether key matches any of the glob field patterns
// in fields, transcribing transform.rs's `matches_in` helper.
func matchesIn(fields []string, key ctxkey.ContextKey) (bool, error) {
	for _, field := range fields {
		pattern, err := ctxkey.Parse(field)
		if err != nil {
			return false, err
		}
		if key.Matches(pattern) {
			return true, nil
		}
	}
	return false, nil
}
