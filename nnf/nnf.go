// Package nnf converts formulas to Negation Normal Form and extracts the
// quantifier-free skeleton beneath a prefix (§4.C).
package nnf

import (
	"context"

	"qbf/formula"
	"qbf/rewrite"
)

// ToNNF repeatedly pushes negation inward using De Morgan's laws until every
// Not node's child is a Variable. It terminates because each rewrite strictly
// reduces the depth at which Not occurs, and is idempotent on inputs already
// in NNF (§8 property 2, 3).
func ToNNF(ctx context.Context, f formula.Formula) (formula.Formula, error) {
	return rewrite.TopDown(ctx, f, pushNegation)
}

// step is the (formula, error) pair threaded through the case handlers
// below — the explicit state the source would have boxed in a closure.
type step struct {
	f   formula.Formula
	err error
}

func pushNegation(f formula.Formula) (formula.Formula, error) {
	not, ok := f.(formula.Not)
	if !ok {
		return f, nil
	}
	s := formula.Match(not.Child, formula.Cases[step]{
		True:     func() step { return step{formula.NewFalse(), nil} },
		False:    func() step { return step{formula.NewTrue(), nil} },
		Variable: func(string) step { return step{f, nil} },
		Not:      func(child formula.Formula) step { return step{child, nil} },
		And: func(children []formula.Formula) step {
			r, err := negateAll(children, formula.NewOr)
			return step{r, err}
		},
		Or: func(children []formula.Formula) step {
			r, err := negateAll(children, formula.NewAnd)
			return step{r, err}
		},
		ForAll: func(vars []string, body formula.Formula) step {
			r, err := formula.NewExists(vars, formula.MustNot(body))
			return step{r, err}
		},
		Exists: func(vars []string, body formula.Formula) step {
			r, err := formula.NewForAll(vars, formula.MustNot(body))
			return step{r, err}
		},
	})
	return s.f, s.err
}

func negateAll(children []formula.Formula, build func(...formula.Formula) (formula.Formula, error)) (formula.Formula, error) {
	negated := make([]formula.Formula, len(children))
	for i, c := range children {
		negated[i] = formula.MustNot(c)
	}
	return build(negated...)
}

// Skeleton returns the subformula reached by stripping f's leading
// quantifier chain. On a PNF formula this is the quantifier-free matrix; on
// a non-PNF formula only the leading quantifiers are removed and any inner
// quantifiers are left in place (§4.C).
func Skeleton(f formula.Formula) formula.Formula {
	_, matrix := formula.SplitPrefix(f)
	return matrix
}
