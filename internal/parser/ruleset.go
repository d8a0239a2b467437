package parser

import (
	"errors"
	"log"
	"strings"

	"github.com/ninjashari/grocery-manager/internal/models"
)

// ErrNoText is returned when OCR produced empty or whitespace-only text.
// This is the one failure the parser surfaces: no heuristic can recover
// structure from nothing.
var ErrNoText = errors.New("no text could be extracted from the image")

// Ruleset is one vendor's heuristic rule set: detection patterns plus
// vendor-specific item, date and total extraction.
type Ruleset interface {
	Name() string
	Detect(text string) bool
	ExtractItems(lines []ReceiptLine) []models.ReceiptItem
	ExtractDate(lines []ReceiptLine) string
	ExtractTotal(lines []ReceiptLine) float64
}

// Registry is the ordered vendor dispatcher. Selection never fails: a
// generic ruleset is always present as the final fallback.
type Registry struct {
	rulesets []Ruleset
	fallback Ruleset
}

// NewRegistry creates a registry with the built-in vendor rulesets in
// detection order and the generic fallback.
func NewRegistry(tun Tunables, logger *log.Logger) *Registry {
	return &Registry{
		rulesets: []Ruleset{
			NewKPN(tun, logger),
			NewDMart(tun, logger),
		},
		fallback: NewGeneric(tun, logger),
	}
}

// Add registers an additional vendor ruleset. It is consulted after the
// built-in ones and before the fallback.
func (r *Registry) Add(rs Ruleset) {
	r.rulesets = append(r.rulesets, rs)
}

// Select returns the first ruleset whose detection patterns match the
// text, or the generic fallback.
func (r *Registry) Select(text string) Ruleset {
	for _, rs := range r.rulesets {
		if rs.Detect(text) {
			return rs
		}
	}
	return r.fallback
}

// Names returns the display names of the registered vendor rulesets.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.rulesets))
	for _, rs := range r.rulesets {
		names = append(names, rs.Name())
	}
	return names
}

// Parse runs the full extraction pipeline over raw OCR text: dispatch,
// item extraction, and the date and grand-total scans.
func (r *Registry) Parse(text string, confidence float64) (*models.ParsedReceipt, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoText
	}

	lines := SplitLines(text)
	rs := r.Select(text)

	items := rs.ExtractItems(lines)
	if items == nil {
		items = []models.ReceiptItem{}
	}

	total := rs.ExtractTotal(lines)
	if total == 0 {
		for _, item := range items {
			total += item.TotalPrice
		}
	}

	return &models.ParsedReceipt{
		Vendor:     rs.Name(),
		Date:       rs.ExtractDate(lines),
		Total:      total,
		Items:      items,
		RawText:    text,
		Confidence: confidence,
	}, nil
}
