package prenex

import (
	"qbf/formula"
	"qbf/internal/fresh"
	"qbf/rewrite"
)

// ancestorKind records, for a node on the path from the root down to a
// candidate, which kind of quantifier was passed through.
type ancestorKind int

const (
	ancestorForAll ancestorKind = iota
	ancestorExists
)

func countKind(ancestors []ancestorKind, k ancestorKind) int {
	n := 0
	for _, a := range ancestors {
		if a == k {
			n++
		}
	}
	return n
}

// candidate is a quantifier node that is currently a direct child of an
// And/Or and can legally hoist past that parent in one step (§4.D). sibling
// is the combined content of the parent's other children; setRoot rebuilds
// the whole tree with the parent And/Or replaced by whatever the hoist
// produces.
type candidate struct {
	isForAll  bool
	vars      []string
	body      formula.Formula
	sibling   formula.Formula
	opKind    rewrite.Kind
	children  []formula.Formula
	index     int
	setRoot   func(formula.Formula) formula.Formula
	nQPath    int
	nCritical int
	order     int
}

func identity(f formula.Formula) formula.Formula { return f }

// collectCandidates walks f top-down, gathering every quantifier node that
// is a direct child of an And/Or, in document pre-order. Quantifiers nested
// only under other quantifiers (no And/Or between them and the root) are
// not yet candidates; they become ones once their enclosing quantifier
// hoists out, on a later round.
func collectCandidates(f formula.Formula, ancestors []ancestorKind, setRoot func(formula.Formula) formula.Formula, order *int) []candidate {
	switch n := f.(type) {
	case formula.And:
		return collectOperands(n.Children, rewrite.AndKind, ancestors, setRoot, order)
	case formula.Or:
		return collectOperands(n.Children, rewrite.OrKind, ancestors, setRoot, order)
	case formula.Not:
		childSetRoot := func(repl formula.Formula) formula.Formula { return setRoot(formula.MustNot(repl)) }
		return collectCandidates(n.Child, ancestors, childSetRoot, order)
	case formula.ForAll:
		next := append(append([]ancestorKind{}, ancestors...), ancestorForAll)
		bodySetRoot := func(repl formula.Formula) formula.Formula { return setRoot(formula.MustForAll(n.Vars, repl)) }
		return collectCandidates(n.Body, next, bodySetRoot, order)
	case formula.Exists:
		next := append(append([]ancestorKind{}, ancestors...), ancestorExists)
		bodySetRoot := func(repl formula.Formula) formula.Formula { return setRoot(formula.MustExists(n.Vars, repl)) }
		return collectCandidates(n.Body, next, bodySetRoot, order)
	default:
		return nil
	}
}

func collectOperands(children []formula.Formula, kind rewrite.Kind, ancestors []ancestorKind, setRoot func(formula.Formula) formula.Formula, order *int) []candidate {
	var out []candidate
	for i, c := range children {
		switch q := c.(type) {
		case formula.ForAll:
			if cand, ok := makeCandidate(true, q.Vars, q.Body, children, i, kind, ancestors, setRoot, order); ok {
				out = append(out, cand)
			}
		case formula.Exists:
			if cand, ok := makeCandidate(false, q.Vars, q.Body, children, i, kind, ancestors, setRoot, order); ok {
				out = append(out, cand)
			}
		}
		childSetRoot := func(repl formula.Formula) formula.Formula {
			next := make([]formula.Formula, len(children))
			copy(next, children)
			next[i] = repl
			rebuilt, err := rewrite.Flatten(kind)(next)
			if err != nil {
				return setRoot(repl)
			}
			return setRoot(rebuilt)
		}
		out = append(out, collectCandidates(c, ancestors, childSetRoot, order)...)
	}
	return out
}

func makeCandidate(isForAll bool, vars []string, body formula.Formula, children []formula.Formula, i int, kind rewrite.Kind, ancestors []ancestorKind, setRoot func(formula.Formula) formula.Formula, order *int) (candidate, bool) {
	others := make([]formula.Formula, 0, len(children)-1)
	others = append(others, children[:i]...)
	others = append(others, children[i+1:]...)
	sibling, err := rewrite.Flatten(kind)(others)
	if err != nil {
		return candidate{}, false
	}
	same, opposite := ancestorForAll, ancestorExists
	if !isForAll {
		same, opposite = ancestorExists, ancestorForAll
	}
	c := candidate{
		isForAll:  isForAll,
		vars:      vars,
		body:      body,
		sibling:   sibling,
		opKind:    kind,
		children:  children,
		index:     i,
		setRoot:   setRoot,
		nQPath:    countKind(ancestors, same),
		nCritical: countKind(ancestors, opposite),
		order:     *order,
	}
	*order++
	return c, true
}

// choose picks the candidate to hoist this round: among those whose
// strategy predicate is satisfied, the left-to-right first; if none
// qualify, the left-to-right first of all candidates, guaranteeing
// progress (§4.D's tie-break) even when a strategy's predicate rejects
// every candidate.
func choose(candidates []candidate, strategy Strategy) candidate {
	var preferred []candidate
	for _, c := range candidates {
		verdict := strategy.SelectExists(c.nQPath, c.nCritical)
		if c.isForAll {
			verdict = strategy.SelectForAll(c.nQPath, c.nCritical)
		}
		if verdict {
			preferred = append(preferred, c)
		}
	}
	pool := preferred
	if len(pool) == 0 {
		pool = candidates
	}
	best := pool[0]
	for _, c := range pool[1:] {
		if c.order < best.order {
			best = c
		}
	}
	return best
}

// applyHoist rewrites current by hoisting c's quantifier past its parent,
// renaming its bound variables when they would otherwise capture a free
// variable of the sibling content or collide with an already-hoisted
// prefix name (§4.D's correctness obligation).
func applyHoist(current formula.Formula, c candidate, alloc *fresh.Allocator) (formula.Formula, error) {
	freeSibling := toSet(formula.StreamFreeVariables(c.sibling))
	bound := prefixNames(current)

	renamedVars := make([]string, len(c.vars))
	body := c.body
	for i, v := range c.vars {
		if freeSibling[v] || bound[v] {
			nv := alloc.Fresh(v)
			body = renameVariable(body, v, nv)
			renamedVars[i] = nv
		} else {
			renamedVars[i] = v
		}
	}

	next := make([]formula.Formula, len(c.children))
	copy(next, c.children)
	next[c.index] = body
	opRebuilt, err := rewrite.Flatten(c.opKind)(next)
	if err != nil {
		return nil, err
	}

	var hoisted formula.Formula
	if c.isForAll {
		hoisted, err = formula.NewForAll(renamedVars, opRebuilt)
	} else {
		hoisted, err = formula.NewExists(renamedVars, opRebuilt)
	}
	if err != nil {
		return nil, err
	}
	return c.setRoot(hoisted), nil
}
