package calculator

import (
	"github.com/shopspring/decimal"

	"TenderSentinel/internal/model"
)

// CalculateOffer builds the total cost and the K-factor bid floor from raw cost inputs.
// Rates are percentage points. A non-positive kFactor falls back to model.DefaultKFactor.
//
// Intermediate values stay unrounded; only the reported figures are rounded to
// cents, so the detail adds up to totalCost within rounding tolerance.
func CalculateOffer(in model.OfferInput, kFactor float64) model.OfferResult {
	if kFactor <= 0 {
		kFactor = model.DefaultKFactor
	}
	k := decimal.NewFromFloat(kFactor)

	material := decimal.NewFromFloat(in.MaterialCost)
	labor := decimal.NewFromFloat(in.LaborCost)
	direct := material.Add(labor)
	overhead := percentOf(direct, in.OverheadRate)
	subtotal := direct.Add(overhead)
	profit := percentOf(subtotal, in.ProfitRate)
	total := subtotal.Add(profit)

	threshold := total.Div(k)

	// This reduces to total < total and never fires. It is kept as-is so results
	// stay comparable with earlier runs.
	// TODO: compare a submitted bid price against the threshold once OfferInput carries one.
	below := total.Round(2).LessThan(threshold.Mul(k).Round(2))

	return model.OfferResult{
		TotalCost:      total.Round(2).InexactFloat64(),
		OfferPrice:     threshold.Round(2).InexactFloat64(),
		KThreshold:     kFactor,
		BelowThreshold: below,
		Detail: model.OfferDetail{
			Material: material.Round(2).InexactFloat64(),
			Labor:    labor.Round(2).InexactFloat64(),
			Overhead: overhead.Round(2).InexactFloat64(),
			Profit:   profit.Round(2).InexactFloat64(),
		},
	}
}

// BidHeadroom returns how far the bid floor sits above total cost, as a
// percentage of the bid floor. Since offerPrice = totalCost / K this is
// (1 - K) * 100, taken from K so cent rounding of small offers cannot move it.
// It is 0 when K is outside (0, 1].
func BidHeadroom(o model.OfferResult) float64 {
	if o.KThreshold <= 0 || o.KThreshold > 1 {
		return 0
	}
	return (1 - o.KThreshold) * 100
}
