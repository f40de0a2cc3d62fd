package formula

import "fmt"

// Cases is a total dispatch table, one handler per variant. Match is the
// exhaustive case analysis over a node's shape — the idiomatic-Go shape of
// a case analysis over a closed sum type (§4.A, §9).
type Cases[T any] struct {
	True     func() T
	False    func() T
	Variable func(name string) T
	Not      func(child Formula) T
	And      func(children []Formula) T
	Or       func(children []Formula) T
	ForAll   func(vars []string, body Formula) T
	Exists   func(vars []string, body Formula) T
}

// Match dispatches f to the matching handler in cs and returns its result.
// It panics if f is not one of the eight variants declared in this package,
// which can only happen if a caller defines its own Formula implementation.
func Match[T any](f Formula, cs Cases[T]) T {
	switch n := f.(type) {
	case True:
		return cs.True()
	case False:
		return cs.False()
	case Variable:
		return cs.Variable(n.Name)
	case Not:
		return cs.Not(n.Child)
	case And:
		return cs.And(n.Children)
	case Or:
		return cs.Or(n.Children)
	case ForAll:
		return cs.ForAll(n.Vars, n.Body)
	case Exists:
		return cs.Exists(n.Vars, n.Body)
	default:
		panic(fmt.Sprintf("formula: unhandled variant %T", f))
	}
}
