package prenex

import "qbf/formula"

// renameVariable alpha-renames free occurrences of old to new within f,
// leaving occurrences shadowed by an inner quantifier rebinding old alone.
func renameVariable(f formula.Formula, old, new string) formula.Formula {
	return formula.Match(f, formula.Cases[formula.Formula]{
		True:  func() formula.Formula { return f },
		False: func() formula.Formula { return f },
		Variable: func(name string) formula.Formula {
			if name == old {
				return formula.MustVariable(new)
			}
			return f
		},
		Not: func(child formula.Formula) formula.Formula {
			return formula.MustNot(renameVariable(child, old, new))
		},
		And: func(children []formula.Formula) formula.Formula {
			return formula.MustAnd(renameAll(children, old, new)...)
		},
		Or: func(children []formula.Formula) formula.Formula {
			return formula.MustOr(renameAll(children, old, new)...)
		},
		ForAll: func(vars []string, body formula.Formula) formula.Formula {
			if containsString(vars, old) {
				return f
			}
			return formula.MustForAll(vars, renameVariable(body, old, new))
		},
		Exists: func(vars []string, body formula.Formula) formula.Formula {
			if containsString(vars, old) {
				return f
			}
			return formula.MustExists(vars, renameVariable(body, old, new))
		},
	})
}

func renameAll(children []formula.Formula, old, new string) []formula.Formula {
	out := make([]formula.Formula, len(children))
	for i, c := range children {
		out[i] = renameVariable(c, old, new)
	}
	return out
}

func containsString(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func toSet(xs []string) map[string]bool {
	set := make(map[string]bool, len(xs))
	for _, x := range xs {
		set[x] = true
	}
	return set
}

// prefixNames collects every variable bound by f's current prenex prefix.
func prefixNames(f formula.Formula) map[string]bool {
	prefix, _ := formula.SplitPrefix(f)
	names := make(map[string]bool)
	for _, q := range prefix {
		formula.Match(q, formula.Cases[struct{}]{
			True:  func() struct{} { return struct{}{} },
			False: func() struct{} { return struct{}{} },
			Variable: func(string) struct{} { return struct{}{} },
			Not:      func(formula.Formula) struct{} { return struct{}{} },
			And:      func([]formula.Formula) struct{} { return struct{}{} },
			Or:       func([]formula.Formula) struct{} { return struct{}{} },
			ForAll: func(vars []string, _ formula.Formula) struct{} {
				for _, v := range vars {
					names[v] = true
				}
				return struct{}{}
			},
			Exists: func(vars []string, _ formula.Formula) struct{} {
				for _, v := range vars {
					names[v] = true
				}
				return struct{}{}
			},
		})
	}
	return names
}
