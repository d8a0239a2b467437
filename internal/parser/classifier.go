package parser

import "regexp"

// itemShapePatterns are the known silhouettes of an item line, each
// tolerating a different OCR corruption mode around the leading item code.
var itemShapePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{6}\s+[A-Za-z]`),            // bare code: "040510 NANDINI..."
	regexp.MustCompile(`^[~\s]*\d{6}\s+[A-Za-z]`),      // tilde artifact: "~ 040510 NANDINI..."
	regexp.MustCompile(`^\d+\s+\d{6}\s+[A-Za-z]`),      // stray number first: "7 190590 GANESH..."
	regexp.MustCompile(`^[#=«©—»]\s*\d{6}\s+[A-Za-z]`), // symbol artifact: "#250100 KWALITY..."
	regexp.MustCompile(`^[=\s]*\d{5,6}\s+[A-Za-z]`),    // 5-digit codes: "= 71320 TATA..."
	regexp.MustCompile(`^[—»]\s*\d{6}\s+[A-Za-z]`),     // dash/quote artifact: "— 210690 TOO YUM..."
}

// boilerplatePatterns match header, footer and separator lines that can
// never be items.
var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(avenue|dmart|supermarts|gstin|cin|phone|tax|invoice|cashier|date|time|bill)`),
	regexp.MustCompile(`(?i)^(sgst|cgst|cess|discount|total|subtotal|amount|net|gross)`),
	regexp.MustCompile(`(?i)^(nsh|particulars|qty|rate|value|item)(\s|$)`),
	regexp.MustCompile(`^\s*[-=]+\s*$`),
	regexp.MustCompile(`^\s*\d+\s*$`),
}

var boilerplatePrefixRe = regexp.MustCompile(`(?i)^(avenue|dmart|supermarts|gstin|cin|phone|tax|invoice|cashier|sgst|cgst|sub|total)`)

func isBoilerplate(line string) bool {
	for _, p := range boilerplatePatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

func matchesItemShape(line string) bool {
	for _, p := range itemShapePatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// isCandidateItem decides whether a line plausibly describes one purchased
// product. A strict shape match suffices; real OCR output often fails every
// shape while still being a genuine item line, so a looser numeric/letter
// density check backs it up.
func isCandidateItem(line string, t Tunables) bool {
	if len(line) < t.MinLineLength {
		return false
	}
	if matchesItemShape(line) {
		return true
	}
	return countNumericTokens(line) >= 3 && hasLetterRun(line) && !boilerplatePrefixRe.MatchString(line)
}
