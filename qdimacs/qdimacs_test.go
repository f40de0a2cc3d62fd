package qdimacs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qbf/ferrors"
	"qbf/formula"
)

func TestReadMatchesSpecS1(t *testing.T) {
	src := "p cnf 2 1\na 1 0\ne 2 0\n-1 2 0\n"
	got, err := Read(strings.NewReader(src))
	require.NoError(t, err)

	want := formula.MustForAll([]string{"1"},
		formula.MustExists([]string{"2"},
			formula.MustOr(formula.MustNot(formula.MustVariable("1")), formula.MustVariable("2"))))
	assert.True(t, formula.Equal(want, got))
}

func TestWriteMatchesSpecS2(t *testing.T) {
	f := formula.MustForAll([]string{"x"},
		formula.MustExists([]string{"y"},
			formula.MustAnd(
				formula.MustOr(formula.MustVariable("x"), formula.MustNot(formula.MustVariable("y"))),
				formula.MustVariable("y"),
			)))
	var out strings.Builder
	require.NoError(t, Write(&out, f))
	assert.Equal(t, "p cnf 2 2\na x 0\ne y 0\nx -y 0\ny 0\n", out.String())
}

func TestWriteFailsOnNonPrenexBodyMatchesSpecS6(t *testing.T) {
	f := formula.MustAnd(formula.MustVariable("x"), formula.MustForAll([]string{"y"}, formula.MustVariable("y")))
	var out strings.Builder
	err := Write(&out, f)
	require.Error(t, err)
	assert.IsType(t, &ferrors.NotCNF{}, err)
}

func TestRoundTrip(t *testing.T) {
	f := formula.MustForAll([]string{"x"},
		formula.MustExists([]string{"y"},
			formula.MustAnd(
				formula.MustOr(formula.MustVariable("x"), formula.MustVariable("y")),
				formula.MustVariable("y"),
			)))
	var out strings.Builder
	require.NoError(t, Write(&out, f))

	got, err := Read(strings.NewReader(out.String()))
	require.NoError(t, err)
	assert.True(t, formula.Equal(f, got))
}

func TestWriteHeaderCountsMatchEmission(t *testing.T) {
	f := formula.MustExists([]string{"a", "b"},
		formula.MustAnd(
			formula.MustOr(formula.MustVariable("a"), formula.MustVariable("b")),
			formula.MustVariable("a"),
			formula.MustVariable("b"),
		))
	var out strings.Builder
	require.NoError(t, Write(&out, f))
	lines := strings.Split(out.String(), "\n")
	assert.Equal(t, "p cnf 2 3", lines[0])
}

func TestReadRejectsEmptyPrefixLine(t *testing.T) {
	_, err := Read(strings.NewReader("p cnf 1 1\na 0\nx 0\n"))
	require.Error(t, err)
	pe, ok := err.(*ferrors.ParseError)
	require.True(t, ok)
	assert.Equal(t, 2, pe.Line)
}

func TestReadRejectsEmptyClauseLine(t *testing.T) {
	_, err := Read(strings.NewReader("p cnf 1 1\n0\n"))
	require.Error(t, err)
	assert.IsType(t, &ferrors.ParseError{}, err)
}

func TestReadRejectsPrefixAfterClauseBlock(t *testing.T) {
	_, err := Read(strings.NewReader("p cnf 2 1\na x 0\nx y 0\ne y 0\n"))
	require.Error(t, err)
	assert.IsType(t, &ferrors.ParseError{}, err)
}

func TestReadSingleUnitClauseIsLegal(t *testing.T) {
	got, err := Read(strings.NewReader("p cnf 1 1\nx 0\n"))
	require.NoError(t, err)
	assert.True(t, formula.Equal(formula.MustVariable("x"), got))
}

func TestReadIgnoresCommentsAndBlankLines(t *testing.T) {
	src := "c a benchmark\n\np cnf 1 1\nc another comment\nx 0\n"
	got, err := Read(strings.NewReader(src))
	require.NoError(t, err)
	assert.True(t, formula.Equal(formula.MustVariable("x"), got))
}
