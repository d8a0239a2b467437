package parser

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/ninjashari/grocery-manager/internal/models"
)

// DMart is the ruleset for DMart (Avenue Supermarts) receipts: a 6-digit
// item code anchors each row, with unit and total price as the last two
// decimal numbers.
type DMart struct {
	detect []*regexp.Regexp
	dateRe *regexp.Regexp
	totals []*regexp.Regexp
	engine *Engine
}

// NewDMart creates the DMart ruleset.
func NewDMart(tun Tunables, logger *log.Logger) *DMart {
	return &DMart{
		detect: []*regexp.Regexp{
			regexp.MustCompile(`(?i)d[-\s]*mart`),
			regexp.MustCompile(`(?i)avenue\s*supermarts`),
		},
		dateRe: regexp.MustCompile(`\d{1,2}[-/]\d{1,2}[-/]\d{2,4}`),
		totals: []*regexp.Regexp{
			// "Card Payment 7607.05 /-" is the actual amount paid.
			regexp.MustCompile(`(?i)card\s+payment\s+(\d+\.?\d*)`),
			// GST summary row: "Ti 6834.81 9416.42 © 416.42 bea 7007.05 F"
			regexp.MustCompile(`(?i)ti\s+[\d.]+\s+[\d.]+\s+[\d.]+\s+\w+\s+(\d+\.?\d*)`),
			regexp.MustCompile(`(?i)total.*?(\d+\.?\d*)`),
		},
		engine: NewEngine(SectionConfig{
			HeaderKeywords: regexp.MustCompile(`(?i)(nsh|particulars|qty|rate|value)`),
			MinHeaderHits:  2,
			Footer:         regexp.MustCompile(`(?i)(total.*items|gross.*amount|sub.*total|total.*qty|total.*value|cgst|sgst|discount|net.*amount)`),
		}, tun, logger),
	}
}

func (d *DMart) Name() string { return "DMart" }

func (d *DMart) Detect(text string) bool {
	lower := strings.ToLower(text)
	for _, re := range d.detect {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

func (d *DMart) ExtractItems(lines []ReceiptLine) []models.ReceiptItem {
	return d.engine.Extract(lines)
}

func (d *DMart) ExtractDate(lines []ReceiptLine) string {
	for _, ln := range lines {
		if m := d.dateRe.FindString(ln.Text); m != "" {
			if iso, ok := ParseDayFirstDate(m); ok {
				return iso
			}
		}
	}
	return currentDate()
}

// ExtractTotal tries each total pattern against every line before falling
// back to the next pattern, so the reliable card-payment amount wins over
// the loose generic "total" match.
func (d *DMart) ExtractTotal(lines []ReceiptLine) float64 {
	for _, re := range d.totals {
		for _, ln := range lines {
			m := re.FindStringSubmatch(ln.Text)
			if len(m) < 2 {
				continue
			}
			if v, err := strconv.ParseFloat(m[1], 64); err == nil && v > 0 {
				return v
			}
		}
	}
	return 0
}
