// Package qcir reads the QCIR-subset wire format (§4.F): a forall block, an
// exists block, a list of and/or/negation gate definitions, and an output
// gate. The reader inlines every gate reference rather than preserving
// sharing, so the result carries no gate-DAG structure of its own, only the
// formula.Formula it denotes.
package qcir

import (
	"io"

	"github.com/alecthomas/participle/v2"

	"qbf/ferrors"
	"qbf/formula"
)

var parser = participle.MustBuild[program](
	participle.Lexer(Lexer),
	participle.Elide("Whitespace", "Header"),
	participle.UseLookahead(2),
)

// Read parses a QCIR-subset source from r and returns the formula it
// denotes. A literal whose name is neither declared (forall/exists) nor
// defined by an earlier gate is an implicit existential, bound at the
// innermost level directly enclosing the matrix, matching ordinary QCIR
// semantics for implicit existential gates.
func Read(r io.Reader) (formula.Formula, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, &ferrors.Io{Err: err}
	}

	prog, err := parser.ParseBytes("", src)
	if err != nil {
		if pe, ok := err.(participle.Error); ok {
			pos := pe.Position()
			return nil, &ferrors.ParseError{Line: pos.Line, Message: pe.Message()}
		}
		return nil, &ferrors.ParseError{Message: err.Error()}
	}

	return build(prog)
}

type builder struct {
	declared     map[string]bool
	defined      map[string]formula.Formula
	implicitVars []string
}

func build(prog *program) (formula.Formula, error) {
	b := &builder{declared: map[string]bool{}, defined: map[string]formula.Formula{}}

	var forallVars, existsVars []string
	if prog.ForAll != nil {
		forallVars = prog.ForAll.Vars
		for _, v := range forallVars {
			b.declared[v] = true
		}
	}
	if prog.Exists != nil {
		existsVars = prog.Exists.Vars
		for _, v := range existsVars {
			b.declared[v] = true
		}
	}

	for _, g := range prog.Gates {
		body, err := b.buildGate(g)
		if err != nil {
			return nil, err
		}
		b.defined[g.Name] = body
	}

	matrix, err := b.resolveName(prog.Output.Gate, false)
	if err != nil {
		return nil, err
	}

	current := matrix
	if len(b.implicitVars) > 0 {
		if current, err = formula.NewExists(b.implicitVars, current); err != nil {
			return nil, err
		}
	}
	if len(existsVars) > 0 {
		if current, err = formula.NewExists(existsVars, current); err != nil {
			return nil, err
		}
	}
	if len(forallVars) > 0 {
		if current, err = formula.NewForAll(forallVars, current); err != nil {
			return nil, err
		}
	}
	return current, nil
}

func (b *builder) buildGate(g *gate) (formula.Formula, error) {
	switch {
	case g.And != nil:
		lits, err := b.resolveAll(g.And.Lits)
		if err != nil {
			return nil, err
		}
		return formula.NewAnd(lits...)
	case g.Or != nil:
		lits, err := b.resolveAll(g.Or.Lits)
		if err != nil {
			return nil, err
		}
		return formula.NewOr(lits...)
	case g.Neg != nil:
		return b.resolveName(g.Neg.Name, g.Neg.Neg)
	default:
		return nil, &ferrors.ParseError{Message: "gate " + g.Name + " has no and/or/negation body"}
	}
}

func (b *builder) resolveAll(lits []*literal) ([]formula.Formula, error) {
	out := make([]formula.Formula, len(lits))
	for i, l := range lits {
		f, err := b.resolveName(l.Name, l.Neg)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// resolveName maps a name used in literal position to its formula: an
// earlier gate's body if name was defined, otherwise a Variable atom
// (registering name as an implicit existential the first time it is seen
// outside forall/exists). neg wraps the result in Not.
func (b *builder) resolveName(name string, neg bool) (formula.Formula, error) {
	if body, ok := b.defined[name]; ok {
		if neg {
			return formula.NewNot(body)
		}
		return body, nil
	}
	if !b.declared[name] {
		b.declared[name] = true
		b.implicitVars = append(b.implicitVars, name)
	}
	v, err := formula.NewVariable(name)
	if err != nil {
		return nil, err
	}
	if neg {
		return formula.NewNot(v)
	}
	return v, nil
}
