package parser

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testSectionConfig() SectionConfig {
	return SectionConfig{
		HeaderKeywords: regexp.MustCompile(`(?i)(qty|rate|value)`),
		MinHeaderHits:  2,
		Footer:         regexp.MustCompile(`(?i)sub\s*total`),
	}
}

func TestSectionHeaderNeedsMultipleHits(t *testing.T) {
	scan := newSectionScanner(testSectionConfig())

	// A single header-like word inside an item name must not open the table.
	assert.False(t, scan.observeHeader("SPECIAL VALUE PACK 2KG"))

	assert.True(t, scan.observeHeader("Qty Rate Value"))
	assert.False(t, scan.done())

	// Once inside, header lines are no longer consumed.
	assert.False(t, scan.observeHeader("Qty Rate Value"))
}

func TestSectionFooterRequiresItems(t *testing.T) {
	scan := newSectionScanner(testSectionConfig())
	scan.markItemFound()

	// A garbled footer-like line before any item cannot end the table.
	assert.False(t, scan.observeFooter("Sub Total 130 00", false))
	assert.False(t, scan.done())

	assert.True(t, scan.observeFooter("Sub Total 130 00", true))
	assert.True(t, scan.done())

	// Transitions are monotonic: the table never reopens.
	assert.False(t, scan.observeHeader("Qty Rate Value"))
	assert.False(t, scan.observeFooter("Sub Total", true))
}

func TestSectionItemPromotesState(t *testing.T) {
	scan := newSectionScanner(testSectionConfig())

	// A parsed item is evidence the table started even without a header.
	scan.markItemFound()
	assert.False(t, scan.observeHeader("Qty Rate Value"))
}
