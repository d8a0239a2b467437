package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dmartReceipt = `D-MART
Avenue Supermarts Ltd
GSTIN: 27AACCA8432H1ZW
Tax Invoice
NSH Particulars Qty Rate Value
040510 NANDINI SALTED-100g 1 56.00 56.00 [i
250100 KWALITY CHOCO 2 45.00 90.00
Total Items: 2
CGST 2.5%
SGST 2.5%
Card Payment 146.00 /-
Date: 15-03-2024`

func TestDMartDetect(t *testing.T) {
	d := NewDMart(DefaultTunables(), nil)

	assert.True(t, d.Detect("D-MART"))
	assert.True(t, d.Detect("welcome to dmart"))
	assert.True(t, d.Detect("AVENUE SUPERMARTS LTD"))
	assert.False(t, d.Detect("KPN Farm Fresh"))
	assert.False(t, d.Detect("corner store"))
}

func TestDMartExtractItems(t *testing.T) {
	d := NewDMart(DefaultTunables(), nil)
	items := d.ExtractItems(SplitLines(dmartReceipt))
	require.Len(t, items, 2)

	assert.Equal(t, "Nandini Salted-100g", items[0].Name)
	assert.Equal(t, 1.0, items[0].Quantity)
	assert.Equal(t, 56.00, items[0].UnitPrice)
	assert.Equal(t, 56.00, items[0].TotalPrice)
	assert.Equal(t, "Dairy", items[0].Category)

	assert.Equal(t, "Kwality Choco", items[1].Name)
	assert.Equal(t, 2.0, items[1].Quantity)
	assert.Equal(t, 45.00, items[1].UnitPrice)
	assert.Equal(t, 90.00, items[1].TotalPrice)
}

func TestDMartExtractTotalPrefersCardPayment(t *testing.T) {
	d := NewDMart(DefaultTunables(), nil)

	// "Total Items: 2" appears earlier but the card payment amount wins.
	assert.Equal(t, 146.00, d.ExtractTotal(SplitLines(dmartReceipt)))
}

func TestDMartExtractDate(t *testing.T) {
	d := NewDMart(DefaultTunables(), nil)

	assert.Equal(t, "2024-03-15", d.ExtractDate(SplitLines(dmartReceipt)))

	// Missing date falls back to today.
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, d.ExtractDate(SplitLines("D-MART\nno date here")))
}

func TestDMartViaRegistry(t *testing.T) {
	reg := NewRegistry(DefaultTunables(), nil)

	parsed, err := reg.Parse(dmartReceipt, 0.9)
	require.NoError(t, err)

	assert.Equal(t, "DMart", parsed.Vendor)
	assert.Equal(t, "2024-03-15", parsed.Date)
	assert.Equal(t, 146.00, parsed.Total)
	assert.Len(t, parsed.Items, 2)
}
