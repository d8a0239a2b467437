package parser

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninjashari/grocery-manager/internal/models"
)

func testEngine() *Engine {
	return NewEngine(SectionConfig{
		HeaderKeywords: regexp.MustCompile(`(?i)(nsh|particulars|qty|rate|value)`),
		MinHeaderHits:  2,
		Footer:         regexp.MustCompile(`(?i)(total.*items|sub.*total|cgst|sgst)`),
	}, DefaultTunables(), nil)
}

func TestEngineExtractsCodeAnchoredItem(t *testing.T) {
	lines := SplitLines("040510 NANDINI SALTED-100g 1 56.00 56.00 [i")

	items := testEngine().Extract(lines)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "Nandini Salted-100g", item.Name)
	assert.Equal(t, 1.0, item.Quantity)
	assert.Equal(t, 56.00, item.UnitPrice)
	assert.Equal(t, 56.00, item.TotalPrice)
	assert.Equal(t, "Dairy", item.Category)
}

func TestEngineStopsAtFooter(t *testing.T) {
	lines := SplitLines(`NSH Particulars Qty Rate Value
040510 NANDINI SALTED-100g 1 56.00 56.00
Total Items: 1
250100 AFTER FOOTER ITEM 1 45.00 45.00`)

	// Footer ends the primary pass, but the comprehensive fallback still
	// rescues items below it when the table looked suspiciously short.
	engine := testEngine()
	items := engine.primaryPass(lines)
	require.Len(t, items, 1)
	assert.Equal(t, "Nandini Salted-100g", items[0].Name)
}

func TestEngineCombinesWrappedLines(t *testing.T) {
	lines := SplitLines("7 GANESH CANA M\n118/60\" 110.00")

	items := testEngine().Extract(lines)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "Ganesh Cana M", item.Name)
	assert.Equal(t, 7.0, item.UnitPrice)
	assert.Equal(t, 110.00, item.TotalPrice)
	assert.InDelta(t, 110.0/7.0, item.Quantity, 0.001)
}

func TestEngineCombinesTruncatedCodeLine(t *testing.T) {
	// A stray row number on its own line, with the real item line below it.
	lines := SplitLines("7\n190590 GANESH CANA M-250g 110.00 110.00")

	items := testEngine().Extract(lines)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "Ganesh Cana M-250g", item.Name)
	assert.Equal(t, 1.0, item.Quantity)
	assert.Equal(t, 110.00, item.UnitPrice)
	assert.Equal(t, 110.00, item.TotalPrice)
}

func TestEngineKeepsNameDigitsAheadOfPrices(t *testing.T) {
	// "56" appears inside the product name before it appears as the price;
	// the name must be cut at the price columns, not at the first "56".
	lines := SplitLines("654321 TATA 56G SALT PACK 56 112")

	items := testEngine().Extract(lines)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "Tata 56g Salt Pack", item.Name)
	assert.Equal(t, 2.0, item.Quantity)
	assert.Equal(t, 56.0, item.UnitPrice)
	assert.Equal(t, 112.0, item.TotalPrice)
}

func TestEngineDropsImplausibleItems(t *testing.T) {
	lines := SplitLines("123456 GOLD BAR ITEM 1 75000.00 75000.00")

	items := testEngine().Extract(lines)
	assert.Empty(t, items)
}

func TestEngineMergeDeduplicatesByName(t *testing.T) {
	primary := []models.ReceiptItem{
		{Name: "Nandini Salted-100g", Quantity: 1, UnitPrice: 56, TotalPrice: 56},
	}
	extra := []models.ReceiptItem{
		{Name: "nandini salted-100g", Quantity: 1, UnitPrice: 56, TotalPrice: 56},
		{Name: "Kwality Choco", Quantity: 2, UnitPrice: 45, TotalPrice: 90},
	}

	merged := mergeItems(primary, extra)
	require.Len(t, merged, 2)
	assert.Equal(t, "Nandini Salted-100g", merged[0].Name)
	assert.Equal(t, "Kwality Choco", merged[1].Name)
}

func TestValidateItems(t *testing.T) {
	tun := DefaultTunables()
	items := []models.ReceiptItem{
		{Name: "Good Item", Quantity: 1, UnitPrice: 50, TotalPrice: 50},
		{Name: "Free Item", Quantity: 1, UnitPrice: 0, TotalPrice: 0},
		{Name: "Pricy Item", Quantity: 1, UnitPrice: 60000, TotalPrice: 60000},
		{Name: "Bulk Item", Quantity: 20000, UnitPrice: 1, TotalPrice: 20000},
		{Name: "Ab", Quantity: 1, UnitPrice: 10, TotalPrice: 10},
		{Name: "Cgst", Quantity: 1, UnitPrice: 10, TotalPrice: 10},
	}

	kept := validateItems(items, tun, nil)
	require.Len(t, kept, 1)
	assert.Equal(t, "Good Item", kept[0].Name)
}

func TestRejectReason(t *testing.T) {
	tun := DefaultTunables()

	assert.Empty(t, rejectReason(models.ReceiptItem{Name: "Good Item", Quantity: 1, UnitPrice: 50, TotalPrice: 50}, tun))
	assert.NotEmpty(t, rejectReason(models.ReceiptItem{Name: "Good Item", Quantity: 1, UnitPrice: -1, TotalPrice: 50}, tun))
	assert.NotEmpty(t, rejectReason(models.ReceiptItem{Name: "Sy", Quantity: 1, UnitPrice: 50, TotalPrice: 50}, tun))
	assert.NotEmpty(t, rejectReason(models.ReceiptItem{Name: "Phone", Quantity: 1, UnitPrice: 50, TotalPrice: 50}, tun))
}

func TestCombineWrappedLines(t *testing.T) {
	lines := SplitLines("7 GANESH CANA M\n118/60\" 110.00\nNO LEADING DIGIT\n55.00 50.00")

	combined := combineWrappedLines(lines)
	require.Len(t, combined, 1)
	assert.Equal(t, `7 GANESH CANA M 118/60" 110.00`, combined[0].Text)
	assert.Equal(t, 1, combined[0].Number)
}
