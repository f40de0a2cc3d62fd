package prenex

// Strategy picks which of several simultaneously hoistable quantifiers to
// raise first, via two predicates over the counters accumulated along the
// path from the quantifier up to the root: nQPath counts same-kind
// quantifiers already passed, nCritical counts opposite-kind ones (§4.D).
// The four named strategies below share this shape and differ only in
// these two predicates (§9 design note: prefer one algorithm parameterized
// by predicate values over a strategy class hierarchy).
type Strategy struct {
	Name         string
	SelectForAll func(nQPath, nCritical int) bool
	SelectExists func(nQPath, nCritical int) bool
}

func criticalBound(nQPath, nCritical int) bool { return nCritical-nQPath <= 1 }

func always(int, int) bool { return true }

// ForAllDownExistsUp raises existentials aggressively, keeping universals
// low unless forced.
var ForAllDownExistsUp = Strategy{
	Name:         "forall-down-exists-up",
	SelectForAll: criticalBound,
	SelectExists: always,
}

// ExistsDownForAllUp raises universals aggressively, keeping existentials
// low unless forced.
var ExistsDownForAllUp = Strategy{
	Name:         "exists-down-forall-up",
	SelectForAll: always,
	SelectExists: criticalBound,
}

// ForAllUpExistsUp always raises whichever quantifier is ready.
var ForAllUpExistsUp = Strategy{
	Name:         "forall-up-exists-up",
	SelectForAll: always,
	SelectExists: always,
}

// ForAllDownExistsDown prefers a quantifier of either kind only while its
// path has at most one more opposite-kind than same-kind quantifier; a
// candidate outside that bound is hoisted only when no candidate is within it.
var ForAllDownExistsDown = Strategy{
	Name:         "forall-down-exists-down",
	SelectForAll: criticalBound,
	SelectExists: criticalBound,
}
