package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// ReceiptLine is a single trimmed, non-empty line of OCR output.
type ReceiptLine struct {
	Text   string
	Number int // 1-based position in the raw text
}

// SplitLines normalizes raw OCR text into trimmed, non-empty lines.
func SplitLines(text string) []ReceiptLine {
	var lines []ReceiptLine
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lines = append(lines, ReceiptLine{Text: line, Number: i + 1})
	}
	return lines
}

// TokenForm describes the lexical shape of a numeric token.
type TokenForm int

const (
	FormInteger TokenForm = iota
	FormDecimal
	FormComma // comma used as decimal separator, e.g. "99,00"
)

// NumericToken is a numeric substring found on a line.
type NumericToken struct {
	Text  string
	Value float64
	Form  TokenForm
}

var (
	itemCodeRe  = regexp.MustCompile(`\d{5,6}`)
	decimalRe   = regexp.MustCompile(`\b\d+\.\d+\b`)
	commaRe     = regexp.MustCompile(`\b(\d{1,4}),(\d{2})\b`)
	integerRe   = regexp.MustCompile(`\b\d+\b`)
	numericRe   = regexp.MustCompile(`\d+(?:\.\d+)?`)
	letterRunRe = regexp.MustCompile(`[A-Za-z]{3,}`)
)

// lineTokens holds the classified numeric tokens of one line. The item code
// is tracked separately and excluded from the integer candidates.
type lineTokens struct {
	itemCode string
	decimals []NumericToken
	commas   []NumericToken
	integers []NumericToken // standalone integers, item code and code-length runs excluded
}

func scanLine(text string) lineTokens {
	lt := lineTokens{itemCode: itemCodeRe.FindString(text)}

	for _, m := range decimalRe.FindAllString(text, -1) {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		lt.decimals = append(lt.decimals, NumericToken{Text: m, Value: v, Form: FormDecimal})
	}

	for _, m := range commaRe.FindAllStringSubmatch(text, -1) {
		v, err := strconv.ParseFloat(m[1]+"."+m[2], 64)
		if err != nil {
			continue
		}
		lt.commas = append(lt.commas, NumericToken{Text: m[0], Value: v, Form: FormComma})
	}

	for _, m := range integerRe.FindAllString(text, -1) {
		// Runs of 5+ digits are item codes or phone-number fragments, never
		// prices. Four-digit integers stay: they are unit-price candidates.
		if m == lt.itemCode || len(m) >= 5 {
			continue
		}
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		lt.integers = append(lt.integers, NumericToken{Text: m, Value: v, Form: FormInteger})
	}

	return lt
}

// countNumericTokens counts every number-looking run on the line, item code
// included. Used by the heuristic candidate check, not by reconciliation.
func countNumericTokens(text string) int {
	return len(numericRe.FindAllString(text, -1))
}

func hasLetterRun(text string) bool {
	return letterRunRe.MatchString(text)
}
