package nnf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qbf/formula"
)

func TestToNNFPushesNegationThroughAnd(t *testing.T) {
	f := formula.MustNot(formula.MustAnd(formula.MustVariable("x"), formula.MustVariable("y")))
	got, err := ToNNF(context.Background(), f)
	require.NoError(t, err)

	want := formula.MustOr(formula.MustNot(formula.MustVariable("x")), formula.MustNot(formula.MustVariable("y")))
	assert.True(t, formula.Equal(want, got))
}

func TestToNNFEliminatesDoubleNegation(t *testing.T) {
	f := formula.MustNot(formula.MustNot(formula.MustVariable("x")))
	got, err := ToNNF(context.Background(), f)
	require.NoError(t, err)
	assert.True(t, formula.Equal(formula.MustVariable("x"), got))
}

func TestToNNFFlipsQuantifiersUnderNegation(t *testing.T) {
	// S3: toNNF(not(forall{x}. (x and not y))) = exists{x}. (not x or y)
	f := formula.MustNot(formula.MustForAll([]string{"x"},
		formula.MustAnd(formula.MustVariable("x"), formula.MustNot(formula.MustVariable("y")))))
	got, err := ToNNF(context.Background(), f)
	require.NoError(t, err)

	want := formula.MustExists([]string{"x"},
		formula.MustOr(formula.MustNot(formula.MustVariable("x")), formula.MustVariable("y")))
	assert.True(t, formula.Equal(want, got))
}

func TestToNNFOnConstants(t *testing.T) {
	got, err := ToNNF(context.Background(), formula.MustNot(formula.NewTrue()))
	require.NoError(t, err)
	assert.Equal(t, formula.NewFalse(), got)

	got, err = ToNNF(context.Background(), formula.MustNot(formula.NewFalse()))
	require.NoError(t, err)
	assert.Equal(t, formula.NewTrue(), got)
}

func TestToNNFIsIdempotent(t *testing.T) {
	f := formula.MustNot(formula.MustOr(
		formula.MustExists([]string{"x"}, formula.MustVariable("x")),
		formula.MustNot(formula.MustVariable("y")),
	))
	once, err := ToNNF(context.Background(), f)
	require.NoError(t, err)
	twice, err := ToNNF(context.Background(), once)
	require.NoError(t, err)
	assert.True(t, formula.Equal(once, twice))
	assert.True(t, formula.IsNNF(once))
}

func TestSkeletonStripsLeadingPrefixOnly(t *testing.T) {
	matrix := formula.MustOr(formula.MustVariable("x"), formula.MustVariable("y"))
	f := formula.MustForAll([]string{"x"}, formula.MustExists([]string{"y"}, matrix))
	assert.True(t, formula.Equal(matrix, Skeleton(f)))

	// A non-quantifier root is its own skeleton.
	assert.True(t, formula.Equal(matrix, Skeleton(matrix)))
}
