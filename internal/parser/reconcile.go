package parser

import "math"

// Triple is a reconciled (quantity, unit price, total price) assignment for
// one item line.
type Triple struct {
	Quantity   float64
	UnitPrice  float64
	TotalPrice float64
}

// reconciled carries a Triple plus the lexical price tokens it consumed,
// so the caller can cut the product name off ahead of them.
type reconciled struct {
	Triple
	strategy string
	prices   []string
}

type attemptFunc func(lt lineTokens, t Tunables) (reconciled, bool)

// The chain is ordered by reliability: decimal-formatted prices beat
// single-decimal inference, which beats bare integers. First strategy whose
// result passes the plausibility gate wins; a gated-out result falls through
// to the next strategy.
var reconcileChain = []attemptFunc{
	attemptDecimalPair,
	attemptSingleDecimal,
	attemptIntegerPair,
}

func reconcile(lt lineTokens, t Tunables) (reconciled, bool) {
	for _, attempt := range reconcileChain {
		r, ok := attempt(lt, t)
		if !ok {
			continue
		}
		if !plausible(r.Triple, t) {
			continue
		}
		return r, true
	}
	return reconciled{}, false
}

func plausible(tr Triple, t Tunables) bool {
	return tr.Quantity >= t.MinQuantity && tr.Quantity <= t.MaxQuantity &&
		tr.UnitPrice >= t.MinUnitPrice && tr.UnitPrice <= t.MaxUnitPrice &&
		tr.TotalPrice > 0
}

// attemptDecimalPair reads the last two decimal tokens as unit and total
// price. Quantity defaults to 1 unless the total is clearly a multiple of
// the unit price, in which case the standalone integers are searched for a
// quantity that explains the gap better than 1 does.
func attemptDecimalPair(lt lineTokens, t Tunables) (reconciled, bool) {
	n := len(lt.decimals)
	if n < 2 {
		return reconciled{}, false
	}

	unit := lt.decimals[n-2]
	total := lt.decimals[n-1]
	qty := 1.0

	if total.Value > unit.Value*t.QuantitySpread {
		base := math.Abs(unit.Value - total.Value)
		for _, tok := range lt.integers {
			// Quantities are short tokens; a 4-digit integer is a price.
			if len(tok.Text) >= 4 {
				continue
			}
			if math.Abs(tok.Value*unit.Value-total.Value) < base {
				qty = tok.Value
				break
			}
		}
	}

	return reconciled{
		Triple:   Triple{Quantity: qty, UnitPrice: unit.Value, TotalPrice: total.Value},
		strategy: "decimal-pair",
		prices:   []string{unit.Text, total.Text},
	}, true
}

// attemptSingleDecimal treats the lone decimal token as the total and
// searches the integer tokens for a unit price whose implied quantity lands
// in a believable range. Comma-grouped tokens ("99,00" for "99.00") are the
// backup source.
func attemptSingleDecimal(lt lineTokens, t Tunables) (reconciled, bool) {
	if len(lt.decimals) != 1 {
		return reconciled{}, false
	}

	total := lt.decimals[0]
	unit := total.Value
	qty := 1.0

	for _, tok := range lt.integers {
		if tok.Value < 1 || tok.Value > t.UnitPriceSearchMax || total.Value < tok.Value {
			continue
		}
		ratio := total.Value / tok.Value
		if ratio >= t.RatioQuantityMin && ratio <= t.RatioQuantityMax {
			unit = tok.Value
			qty = ratio
			break
		}
	}

	if unit == total.Value {
		for _, tok := range lt.commas {
			if tok.Value >= 1 && tok.Value <= t.UnitPriceSearchMax {
				unit = tok.Value
				qty = total.Value / tok.Value
				break
			}
		}
	}

	return reconciled{
		Triple:   Triple{Quantity: qty, UnitPrice: unit, TotalPrice: total.Value},
		strategy: "single-decimal",
		prices:   []string{total.Text},
	}, true
}

// attemptIntegerPair handles lines where OCR dropped every decimal point:
// a comma-grouped price is taken as a quantity-1 item, otherwise the last
// two plain integers become unit and total price.
func attemptIntegerPair(lt lineTokens, t Tunables) (reconciled, bool) {
	if len(lt.decimals) > 0 {
		return reconciled{}, false
	}

	if len(lt.commas) > 0 {
		price := lt.commas[len(lt.commas)-1]
		return reconciled{
			Triple:   Triple{Quantity: 1, UnitPrice: price.Value, TotalPrice: price.Value},
			strategy: "comma-price",
			prices:   []string{price.Text},
		}, true
	}

	n := len(lt.integers)
	if n < 2 {
		return reconciled{}, false
	}

	unit := lt.integers[n-2]
	total := lt.integers[n-1]
	qty := 1.0
	if unit.Value > 0 && unit.Value <= total.Value {
		qty = total.Value / unit.Value
	}

	return reconciled{
		Triple:   Triple{Quantity: qty, UnitPrice: unit.Value, TotalPrice: total.Value},
		strategy: "integer-pair",
		prices:   []string{unit.Text, total.Text},
	}, true
}
