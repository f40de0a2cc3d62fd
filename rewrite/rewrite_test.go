package rewrite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qbf/ferrors"
	"qbf/formula"
)

func identity(f formula.Formula) (formula.Formula, error) { return f, nil }

func TestBottomUpRebuildsLeafFirst(t *testing.T) {
	f := formula.MustAnd(formula.MustVariable("x"), formula.MustVariable("y"))
	var visited []string
	_, err := BottomUp(context.Background(), f, func(n formula.Formula) (formula.Formula, error) {
		if v, ok := n.(formula.Variable); ok {
			visited = append(visited, v.Name)
		}
		return n, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, visited)
}

func TestBottomUpFlattensNestedAnd(t *testing.T) {
	inner := formula.MustAnd(formula.MustVariable("x"), formula.MustVariable("y"))
	outer := formula.MustAnd(inner, formula.MustVariable("z"))
	rebuilt, err := BottomUp(context.Background(), outer, identity)
	require.NoError(t, err)
	and, ok := rebuilt.(formula.And)
	require.True(t, ok)
	assert.Len(t, and.Children, 3)
}

func TestTopDownReprocessesIntroducedNodes(t *testing.T) {
	// A miniature De Morgan step: Not(And(cs...)) becomes Or(Not(c)...).
	// TopDown must recurse into the *rewritten* node's children so the
	// freshly introduced Not(x)/Not(y) nodes are themselves visited by step.
	var visitedNots []string
	step := func(n formula.Formula) (formula.Formula, error) {
		if not, ok := n.(formula.Not); ok {
			if and, ok := not.Child.(formula.And); ok {
				negated := make([]formula.Formula, len(and.Children))
				for i, c := range and.Children {
					negated[i] = formula.MustNot(c)
				}
				return formula.MustOr(negated...), nil
			}
			if v, ok := not.Child.(formula.Variable); ok {
				visitedNots = append(visitedNots, v.Name)
			}
		}
		return n, nil
	}
	f := formula.MustNot(formula.MustAnd(formula.MustVariable("x"), formula.MustVariable("y")))
	result, err := TopDown(context.Background(), f, step)
	require.NoError(t, err)

	or, ok := result.(formula.Or)
	require.True(t, ok)
	require.Len(t, or.Children, 2)
	assert.Equal(t, []string{"x", "y"}, visitedNots)
}

func TestBottomUpRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := BottomUp(ctx, formula.MustVariable("x"), identity)
	require.Error(t, err)
	assert.IsType(t, &ferrors.Cancelled{}, err)
}

func TestFlattenCollapsesSingleChild(t *testing.T) {
	build := Flatten(AndKind)
	f, err := build([]formula.Formula{formula.MustVariable("x")})
	require.NoError(t, err)
	assert.Equal(t, formula.Variable{Name: "x"}, f)
}

func TestFlattenMergesNestedOr(t *testing.T) {
	build := Flatten(OrKind)
	inner := formula.MustOr(formula.MustVariable("x"), formula.MustVariable("y"))
	f, err := build([]formula.Formula{inner, formula.MustVariable("z")})
	require.NoError(t, err)
	or, ok := f.(formula.Or)
	require.True(t, ok)
	assert.Len(t, or.Children, 3)
}
