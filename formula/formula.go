// Package formula implements the QBF formula algebra: an immutable tree of
// Boolean and quantifier nodes, together with the structural predicates,
// equality and traversal primitives operating on it (§3, §4.A of the design).
//
// Every node variant is immutable once constructed. Transformations elsewhere
// in this module build new trees; nothing in this package mutates a node in
// place, and there is no global registry — identity is purely structural.
package formula

import (
	"fmt"
	"unicode"

	"qbf/ferrors"
)

// Formula is any node in the algebra. Match is its total case dispatch; the
// variant types are exported, so callers may also type-switch on them.
type Formula interface {
	isFormula()
}

// True is the tautology constant.
type True struct{}

// False is the contradiction constant.
type False struct{}

// Variable is a propositional atom identified by name.
type Variable struct {
	Name string
}

// Not is the negation of exactly one subformula.
type Not struct {
	Child Formula
}

// And is an n-ary conjunction, n >= 2.
type And struct {
	Children []Formula
}

// Or is an n-ary disjunction, n >= 2.
type Or struct {
	Children []Formula
}

// ForAll universally binds a non-empty, pairwise-distinct set of variable
// names over Body.
type ForAll struct {
	Vars []string
	Body Formula
}

// Exists existentially binds a non-empty, pairwise-distinct set of variable
// names over Body.
type Exists struct {
	Vars []string
	Body Formula
}

func (True) isFormula()     {}
func (False) isFormula()    {}
func (Variable) isFormula() {}
func (Not) isFormula()      {}
func (And) isFormula()      {}
func (Or) isFormula()       {}
func (ForAll) isFormula()   {}
func (Exists) isFormula()   {}

// NewTrue returns the tautology constant.
func NewTrue() Formula { return True{} }

// NewFalse returns the contradiction constant.
func NewFalse() Formula { return False{} }

// NewVariable constructs a propositional atom. name must be a non-empty
// string of printable, non-whitespace characters.
func NewVariable(name string) (Formula, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return Variable{Name: name}, nil
}

// NewNot negates child.
func NewNot(child Formula) (Formula, error) {
	if child == nil {
		return nil, &ferrors.InvalidStructure{Reason: "Not requires a non-nil child"}
	}
	return Not{Child: child}, nil
}

// NewAnd builds a conjunction. Fewer than two children is illegal.
func NewAnd(children ...Formula) (Formula, error) {
	if len(children) < 2 {
		return nil, &ferrors.InvalidStructure{Reason: "And requires at least two children"}
	}
	cs := make([]Formula, len(children))
	copy(cs, children)
	return And{Children: cs}, nil
}

// NewOr builds a disjunction. Fewer than two children is illegal.
func NewOr(children ...Formula) (Formula, error) {
	if len(children) < 2 {
		return nil, &ferrors.InvalidStructure{Reason: "Or requires at least two children"}
	}
	cs := make([]Formula, len(children))
	copy(cs, children)
	return Or{Children: cs}, nil
}

// NewForAll universally binds vars over body. vars must be non-empty and
// pairwise distinct.
func NewForAll(vars []string, body Formula) (Formula, error) {
	vs, err := validateVars(vars)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, &ferrors.InvalidStructure{Reason: "ForAll requires a non-nil body"}
	}
	return ForAll{Vars: vs, Body: body}, nil
}

// NewExists existentially binds vars over body. vars must be non-empty and
// pairwise distinct.
func NewExists(vars []string, body Formula) (Formula, error) {
	vs, err := validateVars(vars)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, &ferrors.InvalidStructure{Reason: "Exists requires a non-nil body"}
	}
	return Exists{Vars: vs, Body: body}, nil
}

// MustVariable panics on error. Useful for codec internals and test
// fixtures that have already validated the shape of their input.
func MustVariable(name string) Formula {
	f, err := NewVariable(name)
	if err != nil {
		panic(err)
	}
	return f
}

// MustNot panics on error.
func MustNot(child Formula) Formula {
	f, err := NewNot(child)
	if err != nil {
		panic(err)
	}
	return f
}

// MustAnd panics on error.
func MustAnd(children ...Formula) Formula {
	f, err := NewAnd(children...)
	if err != nil {
		panic(err)
	}
	return f
}

// MustOr panics on error.
func MustOr(children ...Formula) Formula {
	f, err := NewOr(children...)
	if err != nil {
		panic(err)
	}
	return f
}

// MustForAll panics on error.
func MustForAll(vars []string, body Formula) Formula {
	f, err := NewForAll(vars, body)
	if err != nil {
		panic(err)
	}
	return f
}

// MustExists panics on error.
func MustExists(vars []string, body Formula) Formula {
	f, err := NewExists(vars, body)
	if err != nil {
		panic(err)
	}
	return f
}

func validateName(name string) error {
	if name == "" {
		return &ferrors.InvalidStructure{Reason: "variable name must be non-empty"}
	}
	for _, r := range name {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return &ferrors.InvalidStructure{Reason: fmt.Sprintf("variable name %q contains whitespace or a non-printable character", name)}
		}
	}
	return nil
}

func validateVars(vars []string) ([]string, error) {
	if len(vars) == 0 {
		return nil, &ferrors.InvalidStructure{Reason: "quantifier requires at least one variable"}
	}
	seen := make(map[string]bool, len(vars))
	vs := make([]string, len(vars))
	for i, v := range vars {
		if err := validateName(v); err != nil {
			return nil, err
		}
		if seen[v] {
			return nil, &ferrors.InvalidStructure{Reason: fmt.Sprintf("duplicate variable %q in quantifier", v)}
		}
		seen[v] = true
		vs[i] = v
	}
	return vs, nil
}
