// Package prenex converts NNF formulas to Prenex Normal Form (§4.D): every
// quantifier hoisted to a contiguous prefix at the root, under one of four
// orderable strategies that trade off where in that prefix each quantifier
// ends up.
package prenex

import (
	"context"

	"qbf/ferrors"
	"qbf/formula"
	"qbf/internal/fresh"
)

// ToPNF repeatedly hoists a quantifier that is currently a direct child of
// an And/Or past that parent, until none remain, using strategy to choose
// among several simultaneously hoistable quantifiers. f must already be in
// NNF; ToPNF does not push negations itself. ctx is checked once per hoist;
// on cancellation Cancelled is returned with no partial formula.
func ToPNF(ctx context.Context, f formula.Formula, strategy Strategy) (formula.Formula, error) {
	alloc := fresh.New(f)
	current := f
	for {
		if err := ctx.Err(); err != nil {
			return nil, &ferrors.Cancelled{}
		}
		var order int
		candidates := collectCandidates(current, nil, identity, &order)
		if len(candidates) == 0 {
			return current, nil
		}
		chosen := choose(candidates, strategy)
		next, err := applyHoist(current, chosen, alloc)
		if err != nil {
			return nil, err
		}
		current = next
	}
}
