// Package rewrite implements the generic rewriting kernel shared by the
// normal-form transformations (§4.B): a bottom-up fold, a dual top-down
// variant, and the flattening rebuild both use to keep "no And directly
// under And, no Or directly under Or" (§3.1) true of every result they
// produce.
package rewrite

import (
	"context"

	"qbf/ferrors"
	"qbf/formula"
)

// Step rewrites a single node whose children, if any, have already been
// rewritten (BottomUp) or are about to be visited (TopDown).
type Step func(formula.Formula) (formula.Formula, error)

// BottomUp rebuilds f from the leaves up: children are rewritten first, then
// step is applied to the node rebuilt from the rewritten children. ctx is
// checked once per node; on cancellation the walk stops immediately and
// returns ferrors.Cancelled with no partial formula.
func BottomUp(ctx context.Context, f formula.Formula, step Step) (formula.Formula, error) {
	var walk func(formula.Formula) (formula.Formula, error)
	walk = func(n formula.Formula) (formula.Formula, error) {
		if err := ctx.Err(); err != nil {
			return nil, &ferrors.Cancelled{}
		}
		rebuilt, err := formula.Match(n, formula.Cases[matchResult]{
			True:     constResult(n),
			False:    constResult(n),
			Variable: func(string) matchResult { return matchResult{n, nil} },
			Not: func(child formula.Formula) matchResult {
				c, err := walk(child)
				if err != nil {
					return matchResult{nil, err}
				}
				rebuilt, err := formula.NewNot(c)
				return matchResult{rebuilt, err}
			},
			And: func(children []formula.Formula) matchResult {
				return rebuildVariadic(children, walk, Flatten(AndKind))
			},
			Or: func(children []formula.Formula) matchResult {
				return rebuildVariadic(children, walk, Flatten(OrKind))
			},
			ForAll: func(vars []string, body formula.Formula) matchResult {
				b, err := walk(body)
				if err != nil {
					return matchResult{nil, err}
				}
				rebuilt, err := formula.NewForAll(vars, b)
				return matchResult{rebuilt, err}
			},
			Exists: func(vars []string, body formula.Formula) matchResult {
				b, err := walk(body)
				if err != nil {
					return matchResult{nil, err}
				}
				rebuilt, err := formula.NewExists(vars, b)
				return matchResult{rebuilt, err}
			},
		}).unpack()
		if err != nil {
			return nil, err
		}
		return step(rebuilt)
	}
	return walk(f)
}

// TopDown rewrites f outside-in: step is applied to a node, repeatedly until
// it returns a formula structurally equal (formula.Equal) to its input, then
// the walk recurses into
// the children of whatever step settled on. This lets a rewrite rule fire
// again on formulas it just introduced (toNNF relies on this to keep pushing
// a negation through several De Morgan steps before it reaches a child worth
// recursing into), which a strictly bottom-up fold cannot do in a single
// pass. ctx is checked once per node.
func TopDown(ctx context.Context, f formula.Formula, step Step) (formula.Formula, error) {
	var walk func(formula.Formula) (formula.Formula, error)
	walk = func(n formula.Formula) (formula.Formula, error) {
		if err := ctx.Err(); err != nil {
			return nil, &ferrors.Cancelled{}
		}
		rewritten := n
		for {
			next, err := step(rewritten)
			if err != nil {
				return nil, err
			}
			if formula.Equal(next, rewritten) {
				break
			}
			rewritten = next
		}
		return formula.Match(rewritten, formula.Cases[matchResult]{
			True:     constResult(rewritten),
			False:    constResult(rewritten),
			Variable: func(string) matchResult { return matchResult{rewritten, nil} },
			Not: func(child formula.Formula) matchResult {
				c, err := walk(child)
				if err != nil {
					return matchResult{nil, err}
				}
				rebuilt, err := formula.NewNot(c)
				return matchResult{rebuilt, err}
			},
			And: func(children []formula.Formula) matchResult {
				return rebuildVariadic(children, walk, Flatten(AndKind))
			},
			Or: func(children []formula.Formula) matchResult {
				return rebuildVariadic(children, walk, Flatten(OrKind))
			},
			ForAll: func(vars []string, body formula.Formula) matchResult {
				b, err := walk(body)
				if err != nil {
					return matchResult{nil, err}
				}
				rebuilt, err := formula.NewForAll(vars, b)
				return matchResult{rebuilt, err}
			},
			Exists: func(vars []string, body formula.Formula) matchResult {
				b, err := walk(body)
				if err != nil {
					return matchResult{nil, err}
				}
				rebuilt, err := formula.NewExists(vars, b)
				return matchResult{rebuilt, err}
			},
		}).unpack()
	}
	return walk(f)
}

type matchResult struct {
	f   formula.Formula
	err error
}

func (r matchResult) unpack() (formula.Formula, error) { return r.f, r.err }

func constResult(f formula.Formula) func() matchResult {
	return func() matchResult { return matchResult{f, nil} }
}

func rebuildVariadic(children []formula.Formula, walk func(formula.Formula) (formula.Formula, error), build func([]formula.Formula) (formula.Formula, error)) matchResult {
	rewritten := make([]formula.Formula, len(children))
	for i, c := range children {
		r, err := walk(c)
		if err != nil {
			return matchResult{nil, err}
		}
		rewritten[i] = r
	}
	f, err := build(rewritten)
	return matchResult{f, err}
}

// Kind distinguishes And from Or for Flatten.
type Kind int

const (
	AndKind Kind = iota
	OrKind
)

// Flatten returns a builder that merges nested same-kind operators: building
// an And whose children contain an And splices that And's children in place
// (same for Or), preserving §3.1's "no And directly under And" invariant. A
// single surviving child collapses to that child, matching the algebra's
// illegal-arity rule.
func Flatten(kind Kind) func([]formula.Formula) (formula.Formula, error) {
	return func(children []formula.Formula) (formula.Formula, error) {
		var flat []formula.Formula
		for _, c := range children {
			switch kind {
			case AndKind:
				if a, ok := c.(formula.And); ok {
					flat = append(flat, a.Children...)
					continue
				}
			case OrKind:
				if o, ok := c.(formula.Or); ok {
					flat = append(flat, o.Children...)
					continue
				}
			}
			flat = append(flat, c)
		}
		if len(flat) == 1 {
			return flat[0], nil
		}
		if kind == AndKind {
			return formula.NewAnd(flat...)
		}
		return formula.NewOr(flat...)
	}
}
