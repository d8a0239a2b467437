package parser

import (
	"log"
	"regexp"
	"strconv"

	"github.com/ninjashari/grocery-manager/internal/models"
)

// Generic is the fallback ruleset used when no vendor detection pattern
// matches. It runs the code-anchored engine with broad section keywords
// and generic date/total scans; extraction quality is best-effort.
type Generic struct {
	dateRe  *regexp.Regexp
	totalRe *regexp.Regexp
	engine  *Engine
}

// NewGeneric creates the fallback ruleset.
func NewGeneric(tun Tunables, logger *log.Logger) *Generic {
	return &Generic{
		dateRe:  regexp.MustCompile(`\d{1,2}[-/]\d{1,2}[-/]\d{2,4}`),
		totalRe: regexp.MustCompile(`(?i)(?:grand\s*total|total|amount\s*due)\s*:?\s*(?:rs\.?\s*)?(\d+\.?\d*)`),
		engine: NewEngine(SectionConfig{
			HeaderKeywords: regexp.MustCompile(`(?i)(particulars|qty|rate|value|item|amount|mrp)`),
			MinHeaderHits:  2,
			Footer:         regexp.MustCompile(`(?i)(total.*items|gross.*amount|sub.*total|cgst|sgst|discount|net.*amount)`),
		}, tun, logger),
	}
}

func (g *Generic) Name() string { return "Generic" }

// Detect always reports false: the generic ruleset is only reachable as
// the dispatcher's fallback.
func (g *Generic) Detect(string) bool { return false }

func (g *Generic) ExtractItems(lines []ReceiptLine) []models.ReceiptItem {
	return g.engine.Extract(lines)
}

func (g *Generic) ExtractDate(lines []ReceiptLine) string {
	for _, ln := range lines {
		if m := g.dateRe.FindString(ln.Text); m != "" {
			if iso, ok := ParseDayFirstDate(m); ok {
				return iso
			}
		}
	}
	return currentDate()
}

func (g *Generic) ExtractTotal(lines []ReceiptLine) float64 {
	for _, ln := range lines {
		m := g.totalRe.FindStringSubmatch(ln.Text)
		if len(m) < 2 {
			continue
		}
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v > 0 {
			return v
		}
	}
	return 0
}
