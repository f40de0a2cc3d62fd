package formula

import "runtime"

// StreamSubformulas returns every descendant of f including f itself, in
// pre-order (document order). The result is reproducible from the root but
// the returned slice itself is a one-shot snapshot, not a restartable handle
// (§4.A).
func StreamSubformulas(f Formula) []Formula {
	var out []Formula
	var walk func(Formula)
	walk = func(n Formula) {
		out = append(out, n)
		Match(n, Cases[struct{}]{
			True:     func() struct{} { return struct{}{} },
			False:    func() struct{} { return struct{}{} },
			Variable: func(string) struct{} { return struct{}{} },
			Not: func(child Formula) struct{} {
				walk(child)
				return struct{}{}
			},
			And: func(children []Formula) struct{} {
				for _, c := range children {
					walk(c)
				}
				return struct{}{}
			},
			Or: func(children []Formula) struct{} {
				for _, c := range children {
					walk(c)
				}
				return struct{}{}
			},
			ForAll: func(_ []string, body Formula) struct{} {
				walk(body)
				return struct{}{}
			},
			Exists: func(_ []string, body Formula) struct{} {
				walk(body)
				return struct{}{}
			},
		})
	}
	walk(f)
	return out
}

// StreamVariables returns every occurrence of a Variable atom in f, bound or
// free, in document order. Occurrences are not deduplicated: a variable used
// three times yields three entries.
func StreamVariables(f Formula) []string {
	var out []string
	for _, sub := range StreamSubformulas(f) {
		if v, ok := sub.(Variable); ok {
			out = append(out, v.Name)
		}
	}
	return out
}

// StreamFreeVariables returns every occurrence of a Variable atom in f that
// is not in the scope of a binding quantifier for that name, in document
// order. Like StreamVariables, occurrences are not deduplicated.
func StreamFreeVariables(f Formula) []string {
	var out []string
	var walk func(Formula, map[string]int)
	walk = func(n Formula, bound map[string]int) {
		Match(n, Cases[struct{}]{
			True:  func() struct{} { return struct{}{} },
			False: func() struct{} { return struct{}{} },
			Variable: func(name string) struct{} {
				if bound[name] == 0 {
					out = append(out, name)
				}
				return struct{}{}
			},
			Not: func(child Formula) struct{} {
				walk(child, bound)
				return struct{}{}
			},
			And: func(children []Formula) struct{} {
				for _, c := range children {
					walk(c, bound)
				}
				return struct{}{}
			},
			Or: func(children []Formula) struct{} {
				for _, c := range children {
					walk(c, bound)
				}
				return struct{}{}
			},
			ForAll: func(vars []string, body Formula) struct{} {
				walk(body, withBound(bound, vars))
				return struct{}{}
			},
			Exists: func(vars []string, body Formula) struct{} {
				walk(body, withBound(bound, vars))
				return struct{}{}
			},
		})
	}
	walk(f, map[string]int{})
	return out
}

func withBound(bound map[string]int, vars []string) map[string]int {
	next := make(map[string]int, len(bound)+len(vars))
	for k, v := range bound {
		next[k] = v
	}
	for _, v := range vars {
		next[v]++
	}
	return next
}

// StreamPrefix returns the prefix quantifiers of f, outermost inward,
// stopping at the first non-quantifier node.
func StreamPrefix(f Formula) []Formula {
	prefix, _ := SplitPrefix(f)
	return prefix
}

// SplitPrefix splits f into its prefix (the maximal contiguous chain of
// quantifier nodes at the root) and its matrix (the first non-quantifier
// descendant along that chain), §3.2.
func SplitPrefix(f Formula) (prefix []Formula, matrix Formula) {
	cur := f
	for {
		if !IsQuantifier(cur) {
			return prefix, cur
		}
		prefix = append(prefix, cur)
		cur = Match(cur, Cases[Formula]{
			ForAll: func(_ []string, body Formula) Formula { return body },
			Exists: func(_ []string, body Formula) Formula { return body },
			True:     func() Formula { return nil },
			False:    func() Formula { return nil },
			Variable: func(string) Formula { return nil },
			Not:      func(Formula) Formula { return nil },
			And:      func([]Formula) Formula { return nil },
			Or:       func([]Formula) Formula { return nil },
		})
	}
}

// ForEachParallel splits items across a worker pool of size GOMAXPROCS and
// calls fn on each, blocking until every call has returned. It is the
// "indexable sequence produced eagerly, then dispatched in chunks" half of
// §5/§9's parallel-stream requirement: StreamSubformulas/StreamVariables/
// StreamFreeVariables already materialize eagerly, so consumers that want to
// process them across goroutines can hand the resulting slice to this helper
// without the algebra exposing any shared mutable state.
func ForEachParallel[T any](items []T, fn func(T)) {
	n := len(items)
	if n == 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for _, it := range items {
			fn(it)
		}
		return
	}

	chunk := (n + workers - 1) / workers
	done := make(chan struct{}, workers)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= n {
			done <- struct{}{}
			continue
		}
		if end > n {
			end = n
		}
		go func(lo, hi int) {
			for _, it := range items[lo:hi] {
				fn(it)
			}
			done <- struct{}{}
		}(start, end)
	}
	for w := 0; w < workers; w++ {
		<-done
	}
}
