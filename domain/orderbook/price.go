package orderbook

import "github.com/shopspring/decimal"

var priceScaleDec = decimal.NewFromInt(PriceScale)

// PriceFromFloat converts a quote-currency price to fixed point,
// rounding half up at the fourth decimal digit. Negative inputs clamp
// to zero. decimal keeps the conversion exact for every price
// representable at the scale: PriceFromFloat(150.25) == 1502500.
func PriceFromFloat(v float64) Price {
	d := decimal.NewFromFloat(v).Mul(priceScaleDec).Round(0)
	if d.Sign() < 0 {
		return 0
	}
	return Price(d.IntPart())
}

// PriceToFloat converts a fixed-point price back to a quote-currency
// float. p must not be the PriceNone sentinel.
func PriceToFloat(p Price) float64 {
	f, _ := decimal.NewFromUint64(uint64(p)).Div(priceScaleDec).Float64()
	return f
}
