package parser

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/ninjashari/grocery-manager/internal/models"
)

var (
	codePrefixRe     = regexp.MustCompile(`^[^A-Za-z]*\d{5,6}\s+`)
	trailingDigitsRe = regexp.MustCompile(`[\d,.\s]+$`)
	leadingDigitRe   = regexp.MustCompile(`^\d+`)

	// Cleaned-name fragments produced by mis-split tax and footer lines.
	garbageNameRe = regexp.MustCompile(`(?i)^(cost|cgst|sgst|phone|sy|nn|ecana|s\d+|ti|vee|wun|ven)$`)
)

// Engine extracts line items from OCR text for one vendor. It runs a
// section-scanned primary pass and, when that comes up short, a
// comprehensive re-scan over the full line range, then merges, validates
// and deduplicates the results.
type Engine struct {
	section SectionConfig
	tun     Tunables
	logger  *log.Logger
}

// NewEngine creates an extraction engine. logger may be nil to disable
// per-candidate diagnostics.
func NewEngine(section SectionConfig, tun Tunables, logger *log.Logger) *Engine {
	return &Engine{section: section, tun: tun, logger: logger}
}

// Extract returns the validated, deduplicated item list for the given lines.
func (e *Engine) Extract(lines []ReceiptLine) []models.ReceiptItem {
	items := e.primaryPass(lines)

	if len(items) < e.tun.FallbackMinItems {
		e.logf("primary pass found %d item(s), running comprehensive pass", len(items))
		items = mergeItems(items, e.comprehensivePass(lines))
	}

	return validateItems(items, e.tun, e.logger)
}

// primaryPass walks the lines through the section scanner and parses
// candidates inside the item table. Parsing is attempted even before a
// header is seen: OCR garbles headers often enough that a parsed item is
// the more reliable table-start signal.
func (e *Engine) primaryPass(lines []ReceiptLine) []models.ReceiptItem {
	scan := newSectionScanner(e.section)
	var items []models.ReceiptItem

	for _, ln := range lines {
		if scan.observeHeader(ln.Text) {
			e.logf("line %d: item table header", ln.Number)
			continue
		}
		if scan.observeFooter(ln.Text, len(items) > 0) {
			e.logf("line %d: end of item table", ln.Number)
			break
		}
		if item := e.parseItemLine(ln, "primary"); item != nil {
			items = append(items, *item)
			scan.markItemFound()
		}
	}

	return items
}

// comprehensivePass ignores section boundaries and re-scans every line
// against the full pattern set, then retries lines whose product name
// wrapped onto the next physical line.
func (e *Engine) comprehensivePass(lines []ReceiptLine) []models.ReceiptItem {
	var items []models.ReceiptItem

	for _, ln := range lines {
		if item := e.parseItemLine(ln, "comprehensive"); item != nil {
			items = append(items, *item)
		}
	}

	for _, ln := range combineWrappedLines(lines) {
		if item := e.parseItemLine(ln, "combined"); item != nil {
			items = append(items, *item)
		}
	}

	return items
}

// parseItemLine builds a candidate item from one line, or nil if the line
// is not a parseable item. Failures are silent by design: a skipped line
// costs one item, a hard error would cost the receipt.
func (e *Engine) parseItemLine(ln ReceiptLine, strategy string) *models.ReceiptItem {
	if isBoilerplate(ln.Text) || !isCandidateItem(ln.Text, e.tun) {
		return nil
	}

	lt := scanLine(ln.Text)
	r, ok := reconcile(lt, e.tun)
	if !ok {
		e.logf("line %d: no reconcilable price triple", ln.Number)
		return nil
	}

	name := CleanName(rawName(ln.Text, r.prices))
	if len(name) < e.tun.MinNameLength {
		return nil
	}

	e.logf("line %d: %s/%s -> %q qty=%.2f rate=%.2f total=%.2f",
		ln.Number, strategy, r.strategy, name, r.Quantity, r.UnitPrice, r.TotalPrice)

	return &models.ReceiptItem{
		Name:       name,
		Quantity:   r.Quantity,
		UnitPrice:  r.UnitPrice,
		TotalPrice: r.TotalPrice,
		Category:   Categorize(name),
	}
}

// rawName cuts the product name out of an item line: everything after the
// leading item code and before the price columns. Each price token is looked
// up from the right, since a short token like "56" can legitimately occur
// inside the product name ("56G") ahead of the actual price.
func rawName(line string, prices []string) string {
	name := codePrefixRe.ReplaceAllString(line, "")

	cut := len(name)
	for _, p := range prices {
		if i := strings.LastIndex(name, p); i >= 0 && i < cut {
			cut = i
		}
	}
	name = name[:cut]

	return trailingDigitsRe.ReplaceAllString(name, "")
}

// combineWrappedLines concatenates a truncated item line (leading number,
// fewer than three numeric tokens) with its successor when the successor
// supplies numbers, re-forming items whose name wrapped across two lines.
func combineWrappedLines(lines []ReceiptLine) []ReceiptLine {
	var combined []ReceiptLine
	for i := 0; i+1 < len(lines); i++ {
		cur := lines[i]
		if !leadingDigitRe.MatchString(cur.Text) || countNumericTokens(cur.Text) >= 3 {
			continue
		}
		next := lines[i+1]
		if countNumericTokens(next.Text) == 0 {
			continue
		}
		combined = append(combined, ReceiptLine{Text: cur.Text + " " + next.Text, Number: cur.Number})
		i++
	}
	return combined
}

// mergeItems unions the fallback results into the primary results, keyed by
// case-insensitive cleaned name.
func mergeItems(primary, extra []models.ReceiptItem) []models.ReceiptItem {
	seen := make(map[string]bool, len(primary))
	for _, item := range primary {
		seen[strings.ToLower(item.Name)] = true
	}
	for _, item := range extra {
		key := strings.ToLower(item.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		primary = append(primary, item)
	}
	return primary
}

// validateItems drops items with implausible values or known-garbage names.
// Shared by every ruleset, whatever its extraction strategy.
func validateItems(items []models.ReceiptItem, tun Tunables, logger *log.Logger) []models.ReceiptItem {
	var kept []models.ReceiptItem
	for _, item := range items {
		if reason := rejectReason(item, tun); reason != "" {
			if logger != nil {
				logger.Printf("discarding %q: %s", item.Name, reason)
			}
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

func rejectReason(item models.ReceiptItem, tun Tunables) string {
	switch {
	case item.UnitPrice <= 0 || item.TotalPrice <= 0:
		return "non-positive price"
	case item.UnitPrice > tun.MaxItemPrice || item.TotalPrice > tun.MaxItemPrice:
		return fmt.Sprintf("price above %.0f", tun.MaxItemPrice)
	case item.Quantity > tun.MaxItemQuantity:
		return fmt.Sprintf("quantity above %.0f", tun.MaxItemQuantity)
	case len(item.Name) < tun.MinNameLength:
		return "name too short"
	case garbageNameRe.MatchString(item.Name):
		return "known garbage token"
	}
	return ""
}

func (e *Engine) logf(format string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}
