// Package fresh allocates variable names guaranteed absent from a formula,
// one Allocator per transformation rather than a process-wide counter (§5).
package fresh

import (
	"strconv"
	"strings"

	"qbf/formula"
)

// Allocator hands out names that never collide with the formula it was
// built from, nor with any name it has already issued.
type Allocator struct {
	used map[string]bool
}

// New seeds an Allocator with every variable name occurring anywhere in f.
func New(f formula.Formula) *Allocator {
	used := make(map[string]bool)
	for _, name := range formula.StreamVariables(f) {
		used[name] = true
	}
	return &Allocator{used: used}
}

// Fresh returns a name derived from hint that has not been seen by this
// Allocator. The returned name is reserved: a later call never repeats it.
func (a *Allocator) Fresh(hint string) string {
	base := strings.TrimRight(hint, "0123456789_")
	if base == "" {
		base = "v"
	}
	for n := 1; ; n++ {
		candidate := base + "_" + strconv.Itoa(n)
		if !a.used[candidate] {
			a.used[candidate] = true
			return candidate
		}
	}
}
