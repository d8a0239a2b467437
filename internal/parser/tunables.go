package parser

// Tunables are the heuristic constants of the extraction engine. The
// defaults were tuned against sample DMart and KPN receipts; callers can
// override individual values through configuration.
type Tunables struct {
	// FallbackMinItems triggers the comprehensive re-scan when the primary
	// pass finds fewer items than this.
	FallbackMinItems int

	// QuantitySpread is the factor by which total must exceed unit price
	// before a standalone-integer quantity search is attempted.
	QuantitySpread float64

	// Plausibility gate applied to every reconciled triple.
	MinQuantity  float64
	MaxQuantity  float64
	MinUnitPrice float64
	MaxUnitPrice float64

	// UnitPriceSearchMax bounds integer tokens considered as unit-price
	// candidates when only a single decimal token is present.
	UnitPriceSearchMax float64

	// RatioQuantityMin/Max bound the quantity derived as total/unit.
	RatioQuantityMin float64
	RatioQuantityMax float64

	// Validation filter for extracted items.
	MaxItemPrice    float64
	MaxItemQuantity float64
	MinNameLength   int

	// MinLineLength is the minimum length for a candidate item line.
	MinLineLength int
}

// DefaultTunables returns the empirically tuned defaults.
func DefaultTunables() Tunables {
	return Tunables{
		FallbackMinItems:   20,
		QuantitySpread:     1.5,
		MinQuantity:        0.01,
		MaxQuantity:        100,
		MinUnitPrice:       0.1,
		MaxUnitPrice:       5000,
		UnitPriceSearchMax: 2000,
		RatioQuantityMin:   0.1,
		RatioQuantityMax:   20,
		MaxItemPrice:       50000,
		MaxItemQuantity:    10000,
		MinNameLength:      3,
		MinLineLength:      15,
	}
}
