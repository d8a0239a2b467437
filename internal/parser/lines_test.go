package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLines(t *testing.T) {
	lines := SplitLines("first\n\n  second  \nthird")
	require.Len(t, lines, 3)

	assert.Equal(t, "first", lines[0].Text)
	assert.Equal(t, 1, lines[0].Number)
	assert.Equal(t, "second", lines[1].Text)
	assert.Equal(t, 3, lines[1].Number)
	assert.Equal(t, "third", lines[2].Text)
	assert.Equal(t, 4, lines[2].Number)
}

func TestSplitLinesEmpty(t *testing.T) {
	assert.Empty(t, SplitLines(""))
	assert.Empty(t, SplitLines("   \n\t\n  "))
}

func TestScanLine(t *testing.T) {
	lt := scanLine("040510 MILK 2 56.00 99,00")

	assert.Equal(t, "040510", lt.itemCode)

	require.Len(t, lt.decimals, 1)
	assert.Equal(t, 56.00, lt.decimals[0].Value)
	assert.Equal(t, FormDecimal, lt.decimals[0].Form)

	require.Len(t, lt.commas, 1)
	assert.Equal(t, 99.00, lt.commas[0].Value)
	assert.Equal(t, FormComma, lt.commas[0].Form)

	// The item code never doubles as a quantity candidate.
	require.NotEmpty(t, lt.integers)
	assert.Equal(t, 2.0, lt.integers[0].Value)
	for _, tok := range lt.integers {
		assert.NotEqual(t, "040510", tok.Text)
	}
}

func TestScanLineKeepsFourDigitIntegers(t *testing.T) {
	lt := scanLine("123456 PREMIUM BASMATI 1500 3000.00")

	assert.Equal(t, "123456", lt.itemCode)
	require.NotEmpty(t, lt.integers)
	assert.Equal(t, 1500.0, lt.integers[0].Value)

	// Five-plus digit runs are still excluded.
	for _, tok := range lt.integers {
		assert.Less(t, len(tok.Text), 5)
	}
}

func TestScanLineNoCode(t *testing.T) {
	lt := scanLine("FRESH TOMATO 2 80.00")
	assert.Empty(t, lt.itemCode)
	require.Len(t, lt.decimals, 1)
	assert.Equal(t, 80.00, lt.decimals[0].Value)
}

func TestCountNumericTokens(t *testing.T) {
	assert.Equal(t, 0, countNumericTokens("NO NUMBERS HERE"))
	assert.Equal(t, 3, countNumericTokens("040510 ITEM 1 56.00"))
}

func TestHasLetterRun(t *testing.T) {
	assert.True(t, hasLetterRun("040510 MILK"))
	assert.False(t, hasLetterRun("12 34 a b"))
}
