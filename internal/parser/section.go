package parser

import "regexp"

// sectionState tracks where the cursor is relative to the item table.
// Transitions are monotonic: beforeTable -> inTable -> afterTable.
type sectionState int

const (
	beforeTable sectionState = iota
	inTable
	afterTable
)

// SectionConfig describes how a vendor marks the boundaries of its item
// table.
type SectionConfig struct {
	// HeaderKeywords matches individual column-header words. A line needs
	// MinHeaderHits distinct hits to count as the table header; a single
	// stray header-like word inside an item name must not trigger.
	HeaderKeywords *regexp.Regexp
	MinHeaderHits  int

	// Footer matches totals/tax/discount lines that end the table.
	Footer *regexp.Regexp
}

type sectionScanner struct {
	cfg   SectionConfig
	state sectionState
}

func newSectionScanner(cfg SectionConfig) *sectionScanner {
	return &sectionScanner{cfg: cfg}
}

// observeHeader reports whether the line is the item-table header and
// advances the state if so.
func (s *sectionScanner) observeHeader(line string) bool {
	if s.state != beforeTable || s.cfg.HeaderKeywords == nil {
		return false
	}
	hits := len(s.cfg.HeaderKeywords.FindAllString(line, -1))
	if hits >= s.cfg.MinHeaderHits {
		s.state = inTable
		return true
	}
	return false
}

// observeFooter reports whether the line ends the item table. A footer match
// only terminates the table once at least one item has been accepted, so a
// tax line garbled into the middle of the receipt cannot truncate it.
func (s *sectionScanner) observeFooter(line string, itemsFound bool) bool {
	if s.state == afterTable || s.cfg.Footer == nil {
		return false
	}
	if s.cfg.Footer.MatchString(line) && itemsFound {
		s.state = afterTable
		return true
	}
	return false
}

// markItemFound flags that extraction succeeded on the current line. OCR
// frequently garbles the header beyond recognition, so a parsed item is
// itself evidence that the table has started.
func (s *sectionScanner) markItemFound() {
	if s.state == beforeTable {
		s.state = inTable
	}
}

func (s *sectionScanner) done() bool {
	return s.state == afterTable
}
