package parser

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/ninjashari/grocery-manager/internal/models"
)

// KPN is the ruleset for KPN Fresh receipts: numbered rows under a
// "SNo Item MRP Rate Qty Amt" header, with the price columns either inline
// or wrapped onto one of the next few lines.
type KPN struct {
	detect     []*regexp.Regexp
	dateRe     *regexp.Regexp
	subTotalRe *regexp.Regexp
	totalRsRe  *regexp.Regexp
	section    SectionConfig
	rowRe      *regexp.Regexp
	inlineRe   *regexp.Regexp
	priceRowRe *regexp.Regexp
	tun        Tunables
	logger     *log.Logger
}

// Known OCR misreads on KPN receipts, applied after generic cleaning.
var kpnCorrections = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?i)too yunim`), "Too Yumm"},
	{regexp.MustCompile(`(?i)bhagyalakshmi chali`), "Bhagyalakshmi Chakki"},
	{regexp.MustCompile(`(?i)kpn fresh`), "KPN Fresh"},
}

// NewKPN creates the KPN Fresh ruleset.
func NewKPN(tun Tunables, logger *log.Logger) *KPN {
	return &KPN{
		detect: []*regexp.Regexp{
			regexp.MustCompile(`(?i)kpn\s*farm\s*fresh`),
			regexp.MustCompile(`(?i)kpn\s*fresh`),
		},
		dateRe:     regexp.MustCompile(`(?i)bill\s+no.*?date\s+(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`),
		subTotalRe: regexp.MustCompile(`(?i)sub\s*total\s+(\d+)\s+(\d+)`),
		totalRsRe:  regexp.MustCompile(`(?i)total\s+rs\s+(\d+\.?\d*)`),
		section: SectionConfig{
			HeaderKeywords: regexp.MustCompile(`(?i)sno.*item.*mrp.*rate.*qty.*amt`),
			MinHeaderHits:  1,
			Footer:         regexp.MustCompile(`(?i)sub\s*total`),
		},
		rowRe: regexp.MustCompile(`^(\d+)\s+(.+)$`),
		// Name MRP Rate Qty Amount on one line.
		inlineRe: regexp.MustCompile(`(.+?)\s+(\d+\.?\d*)\s+(\d+\.?\d*)\s+(\d+\.?\d*)\s+(\d+\.?\d*)$`),
		// MRP Rate Qty Amount on a wrapped line.
		priceRowRe: regexp.MustCompile(`(\d+\.?\d*)\s+(\d+\.?\d*)\s+(\d+\.?\d*)\s+(\d+\.?\d*)`),
		tun:        tun,
		logger:     logger,
	}
}

func (k *KPN) Name() string { return "KPN Fresh" }

func (k *KPN) Detect(text string) bool {
	lower := strings.ToLower(text)
	for _, re := range k.detect {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

func (k *KPN) ExtractItems(lines []ReceiptLine) []models.ReceiptItem {
	scan := newSectionScanner(k.section)
	var items []models.ReceiptItem

	for i := 0; i < len(lines); i++ {
		ln := lines[i]
		if scan.observeHeader(ln.Text) {
			continue
		}
		if scan.observeFooter(ln.Text, len(items) > 0) {
			break
		}
		if scan.state != inTable {
			continue
		}

		row := k.rowRe.FindStringSubmatch(ln.Text)
		if row == nil {
			continue
		}
		content := strings.TrimSpace(row[2])

		if item := k.parseInlineRow(content); item != nil {
			items = append(items, *item)
			continue
		}

		// Prices wrapped onto a following line: look ahead a few lines
		// for the MRP/Rate/Qty/Amount columns.
		name := k.cleanName(content)
		for j := i + 1; j < len(lines) && j <= i+3; j++ {
			pm := k.priceRowRe.FindStringSubmatch(lines[j].Text)
			if pm == nil {
				continue
			}
			rate, _ := strconv.ParseFloat(pm[2], 64)
			qty, _ := strconv.ParseFloat(pm[3], 64)
			amount, _ := strconv.ParseFloat(pm[4], 64)
			rate, amount = fixPriceMagnitude(rate, qty, amount)

			items = append(items, models.ReceiptItem{
				Name:       name,
				Quantity:   qty,
				UnitPrice:  rate,
				TotalPrice: amount,
				Category:   Categorize(name),
			})
			break
		}
	}

	return validateItems(items, k.tun, k.logger)
}

// parseInlineRow handles rows that carry name and all four price columns
// on one physical line.
func (k *KPN) parseInlineRow(content string) *models.ReceiptItem {
	m := k.inlineRe.FindStringSubmatch(content)
	if m == nil {
		return nil
	}

	name := k.cleanName(m[1])
	rate, _ := strconv.ParseFloat(m[3], 64)
	qty, _ := strconv.ParseFloat(m[4], 64)
	amount, _ := strconv.ParseFloat(m[5], 64)
	rate, amount = fixPriceMagnitude(rate, qty, amount)

	return &models.ReceiptItem{
		Name:       name,
		Quantity:   qty,
		UnitPrice:  rate,
		TotalPrice: amount,
		Category:   Categorize(name),
	}
}

func (k *KPN) cleanName(name string) string {
	cleaned := CleanName(name)
	for _, c := range kpnCorrections {
		cleaned = c.re.ReplaceAllString(cleaned, c.repl)
	}
	return cleaned
}

// fixPriceMagnitude repairs a rate whose decimal point OCR dropped: a
// 4-digit rate like 4500 reads back as 45.00, and the amount is recomputed
// from the quantity.
func fixPriceMagnitude(rate, qty, amount float64) (float64, float64) {
	if rate <= 100 {
		return rate, amount
	}
	s := strconv.Itoa(int(rate))
	if len(s) != 4 {
		return rate, amount
	}
	fixed, err := strconv.ParseFloat(s[:2]+"."+s[2:], 64)
	if err != nil {
		return rate, amount
	}
	return fixed, fixed * qty
}

func (k *KPN) ExtractDate(lines []ReceiptLine) string {
	for _, ln := range lines {
		m := k.dateRe.FindStringSubmatch(ln.Text)
		if m == nil {
			continue
		}
		if iso, ok := ParseDayFirstDate(m[1]); ok {
			return iso
		}
	}
	return currentDate()
}

func (k *KPN) ExtractTotal(lines []ReceiptLine) float64 {
	for _, ln := range lines {
		if m := k.subTotalRe.FindStringSubmatch(ln.Text); m != nil {
			whole, _ := strconv.Atoi(m[1])
			decimal, _ := strconv.Atoi(m[2])
			return float64(whole) + float64(decimal)/100.0
		}
		if m := k.totalRsRe.FindStringSubmatch(ln.Text); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				return v
			}
		}
	}
	return 0
}
