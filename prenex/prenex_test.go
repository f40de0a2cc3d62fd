package prenex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qbf/ferrors"
	"qbf/formula"
)

func TestToPNFForAllUpExistsUpMatchesSpecS4(t *testing.T) {
	// S4: toPNF_{forall-up-exists-up}((forall{x}.x) and (exists{y}.y))
	//   = forall{x}.exists{y}.(x and y), left-to-right sibling order.
	f := formula.MustAnd(
		formula.MustForAll([]string{"x"}, formula.MustVariable("x")),
		formula.MustExists([]string{"y"}, formula.MustVariable("y")),
	)
	got, err := ToPNF(context.Background(), f, ForAllUpExistsUp)
	require.NoError(t, err)

	want := formula.MustForAll([]string{"x"},
		formula.MustExists([]string{"y"},
			formula.MustAnd(formula.MustVariable("x"), formula.MustVariable("y"))))
	assert.True(t, formula.Equal(want, got))
}

func TestToPNFForAllDownExistsDownForcesHoistMatchesSpecS5(t *testing.T) {
	// S5: toPNF_{forall-down-exists-down}((forall{x}.x) or z), z quantifier-free:
	//   forall is hoisted (forced by the disjunction-forall rule); result
	//   forall{x}.(x or z).
	f := formula.MustOr(
		formula.MustForAll([]string{"x"}, formula.MustVariable("x")),
		formula.MustVariable("z"),
	)
	got, err := ToPNF(context.Background(), f, ForAllDownExistsDown)
	require.NoError(t, err)

	want := formula.MustForAll([]string{"x"},
		formula.MustOr(formula.MustVariable("x"), formula.MustVariable("z")))
	assert.True(t, formula.Equal(want, got))
}

func TestToPNFLeavesTrivialPNFUnchangedUnderEveryStrategy(t *testing.T) {
	f := formula.MustForAll([]string{"x"},
		formula.MustExists([]string{"y"},
			formula.MustOr(formula.MustVariable("x"), formula.MustVariable("y"))))
	for _, s := range []Strategy{ForAllDownExistsUp, ExistsDownForAllUp, ForAllUpExistsUp, ForAllDownExistsDown} {
		got, err := ToPNF(context.Background(), f, s)
		require.NoError(t, err)
		assert.True(t, formula.Equal(f, got), "strategy %s changed an already-PNF formula", s.Name)
	}
}

func TestToPNFIsIdempotent(t *testing.T) {
	f := formula.MustAnd(
		formula.MustForAll([]string{"x"}, formula.MustVariable("x")),
		formula.MustExists([]string{"y"}, formula.MustVariable("y")),
	)
	once, err := ToPNF(context.Background(), f, ForAllUpExistsUp)
	require.NoError(t, err)
	twice, err := ToPNF(context.Background(), once, ForAllUpExistsUp)
	require.NoError(t, err)
	assert.True(t, formula.Equal(once, twice))
}

func TestToPNFVisitsEveryQuantifierInPrefix(t *testing.T) {
	f := formula.MustAnd(
		formula.MustForAll([]string{"x"}, formula.MustVariable("x")),
		formula.MustExists([]string{"y"}, formula.MustVariable("y")),
	)
	got, err := ToPNF(context.Background(), f, ForAllUpExistsUp)
	require.NoError(t, err)
	assert.True(t, formula.IsPNF(got))
	assert.Len(t, formula.StreamPrefix(got), 2)
}

func TestToPNFRenamesOnCapture(t *testing.T) {
	// forall{x}.x hoisted over a sibling that has x free: the bound x must
	// be renamed so the sibling's free x is not captured.
	f := formula.MustAnd(
		formula.MustForAll([]string{"x"}, formula.MustVariable("x")),
		formula.MustVariable("x"),
	)
	got, err := ToPNF(context.Background(), f, ForAllUpExistsUp)
	require.NoError(t, err)

	prefix := formula.StreamPrefix(got)
	require.Len(t, prefix, 1)
	fa, ok := prefix[0].(formula.ForAll)
	require.True(t, ok)
	assert.NotContains(t, fa.Vars, "x")

	_, matrix := formula.SplitPrefix(got)
	assert.Contains(t, formula.StreamFreeVariables(matrix), "x")
}

func TestToPNFPreservesFreeVariables(t *testing.T) {
	f := formula.MustAnd(
		formula.MustExists([]string{"x"}, formula.MustVariable("x")),
		formula.MustVariable("y"),
	)
	got, err := ToPNF(context.Background(), f, ExistsDownForAllUp)
	require.NoError(t, err)
	assert.ElementsMatch(t, formula.StreamFreeVariables(f), formula.StreamFreeVariables(got))
}

func TestToPNFRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := formula.MustAnd(
		formula.MustForAll([]string{"x"}, formula.MustVariable("x")),
		formula.MustExists([]string{"y"}, formula.MustVariable("y")),
	)
	_, err := ToPNF(ctx, f, ForAllUpExistsUp)
	require.Error(t, err)
	assert.IsType(t, &ferrors.Cancelled{}, err)
}
