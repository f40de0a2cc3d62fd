// Package qdimacs reads and writes the QDIMACS prenex-CNF wire format
// (§4.E, §6.1).
package qdimacs

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"qbf/ferrors"
	"qbf/formula"
)

type level struct {
	forall bool
	vars   []string
}

// Read parses a QDIMACS source from r. Prefix lines (a/e) must form a
// contiguous block immediately after the comment/problem preamble; once a
// clause line is seen, a further prefix line is a parse error. Every
// prefix line and every clause must carry at least one token before its
// terminating 0 (§9's stricter reading of the open question: an empty
// level is a ParseError, not a silently-dropped one).
func Read(r io.Reader) (formula.Formula, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var (
		levels      []level
		clauses     []formula.Formula
		seenProblem bool
		seenClause  bool
		lineNo      int
	)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch line[0] {
		case 'c':
			continue
		case 'p':
			if seenProblem {
				return nil, &ferrors.ParseError{Line: lineNo, Message: "duplicate problem line"}
			}
			seenProblem = true
		case 'a', 'e':
			if seenClause {
				return nil, &ferrors.ParseError{Line: lineNo, Message: "prefix line follows the start of the clause block"}
			}
			vars, err := terminatedTokens(line[1:])
			if err != nil {
				return nil, &ferrors.ParseError{Line: lineNo, Message: err.Error()}
			}
			levels = append(levels, level{forall: line[0] == 'a', vars: vars})
		default:
			seenClause = true
			tokens, err := terminatedTokens(line)
			if err != nil {
				return nil, &ferrors.ParseError{Line: lineNo, Message: err.Error()}
			}
			clause, err := buildClause(tokens)
			if err != nil {
				return nil, &ferrors.ParseError{Line: lineNo, Message: err.Error()}
			}
			clauses = append(clauses, clause)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ferrors.Io{Err: err}
	}

	matrix, err := buildMatrix(clauses, lineNo)
	if err != nil {
		return nil, err
	}
	return wrapLevels(levels, matrix)
}

// terminatedTokens splits the remainder of a prefix or clause line on
// whitespace, requiring at least one token before the terminating "0".
func terminatedTokens(rest string) ([]string, error) {
	fields := strings.Fields(rest)
	if len(fields) == 0 || fields[len(fields)-1] != "0" {
		return nil, fmt.Errorf("line is not terminated by a literal 0")
	}
	body := fields[:len(fields)-1]
	if len(body) == 0 {
		return nil, fmt.Errorf("line has no variable before its terminating 0")
	}
	return body, nil
}

func buildClause(tokens []string) (formula.Formula, error) {
	lits := make([]formula.Formula, len(tokens))
	for i, tok := range tokens {
		name := tok
		negated := false
		if strings.HasPrefix(tok, "-") {
			negated = true
			name = tok[1:]
		}
		v, err := formula.NewVariable(name)
		if err != nil {
			return nil, err
		}
		if negated {
			v, err = formula.NewNot(v)
			if err != nil {
				return nil, err
			}
		}
		lits[i] = v
	}
	if len(lits) == 1 {
		return lits[0], nil
	}
	return formula.NewOr(lits...)
}

func buildMatrix(clauses []formula.Formula, lineNo int) (formula.Formula, error) {
	if len(clauses) == 0 {
		return nil, &ferrors.ParseError{Line: lineNo, Message: "no clauses present"}
	}
	if len(clauses) == 1 {
		return clauses[0], nil
	}
	return formula.NewAnd(clauses...)
}

// wrapLevels nests the matrix inside quantifiers innermost-first, so the
// first prefix line read ends up outermost (§4.E).
func wrapLevels(levels []level, matrix formula.Formula) (formula.Formula, error) {
	current := matrix
	for i := len(levels) - 1; i >= 0; i-- {
		lv := levels[i]
		var err error
		if lv.forall {
			current, err = formula.NewForAll(lv.vars, current)
		} else {
			current, err = formula.NewExists(lv.vars, current)
		}
		if err != nil {
			return nil, err
		}
	}
	return current, nil
}

// Write serializes f as QDIMACS. f's body, after stripping its prefix, must
// be a CNF matrix (§3.2); otherwise Write fails with NotCNF. The problem
// line is computed from the body actually emitted, requiring a two-pass
// buffer: the clause and prefix lines are built first, counted, and only
// then is the header written (§4.E, §6.1).
func Write(w io.Writer, f formula.Formula) error {
	prefix, matrix := formula.SplitPrefix(f)
	if !formula.IsCNFMatrix(matrix) {
		return &ferrors.NotCNF{Reason: "formula body is not a conjunction of clauses"}
	}

	var body bytes.Buffer
	for _, q := range prefix {
		if err := writePrefixLevel(&body, q); err != nil {
			return err
		}
	}
	clauseCount, err := writeClauses(&body, matrix)
	if err != nil {
		return err
	}

	varCount := len(distinctVariableNames(f))
	if _, err := io.WriteString(w, fmt.Sprintf("p cnf %d %d\n", varCount, clauseCount)); err != nil {
		return &ferrors.Io{Err: err}
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return &ferrors.Io{Err: err}
	}
	return nil
}

func writePrefixLevel(body *bytes.Buffer, q formula.Formula) error {
	return formula.Match(q, formula.Cases[error]{
		True:     func() error { return nil },
		False:    func() error { return nil },
		Variable: func(string) error { return nil },
		Not:      func(formula.Formula) error { return nil },
		And:      func([]formula.Formula) error { return nil },
		Or:       func([]formula.Formula) error { return nil },
		ForAll: func(vars []string, _ formula.Formula) error {
			body.WriteString("a " + strings.Join(vars, " ") + " 0\n")
			return nil
		},
		Exists: func(vars []string, _ formula.Formula) error {
			body.WriteString("e " + strings.Join(vars, " ") + " 0\n")
			return nil
		},
	})
}

func writeClauses(body *bytes.Buffer, matrix formula.Formula) (int, error) {
	clauses := clauseList(matrix)
	for _, c := range clauses {
		line, err := clauseLine(c)
		if err != nil {
			return 0, err
		}
		body.WriteString(line)
	}
	return len(clauses), nil
}

// clauseList flattens a CNF matrix (a single clause, or an And of clauses)
// into its individual clauses.
func clauseList(matrix formula.Formula) []formula.Formula {
	if and, ok := matrix.(formula.And); ok {
		return and.Children
	}
	return []formula.Formula{matrix}
}

func clauseLine(clause formula.Formula) (string, error) {
	lits := literalList(clause)
	parts := make([]string, len(lits))
	for i, lit := range lits {
		s, err := literalToken(lit)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, " ") + " 0\n", nil
}

func literalList(clause formula.Formula) []formula.Formula {
	if or, ok := clause.(formula.Or); ok {
		return or.Children
	}
	return []formula.Formula{clause}
}

func literalToken(lit formula.Formula) (string, error) {
	switch l := lit.(type) {
	case formula.Variable:
		return l.Name, nil
	case formula.Not:
		v, ok := l.Child.(formula.Variable)
		if !ok {
			return "", &ferrors.NotCNF{Reason: "clause contains a negation of a non-variable"}
		}
		return "-" + v.Name, nil
	default:
		return "", &ferrors.NotCNF{Reason: "clause contains a non-literal child"}
	}
}

func distinctVariableNames(f formula.Formula) map[string]struct{} {
	names := make(map[string]struct{})
	for _, v := range formula.StreamVariables(f) {
		names[v] = struct{}{}
	}
	return names
}
