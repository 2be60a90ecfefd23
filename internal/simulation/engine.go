package simulation

import (
	"math"

	"TenderSentinel/internal/calculator"
	"TenderSentinel/internal/menu"
	"TenderSentinel/internal/model"
	"TenderSentinel/internal/reasoning"
)

// Run applies the what-if deltas to a prior analysis and offer, rebuilds the
// offer through the cost builder and scores the new pair.
//
// Protein and carb shares are floored at 0 and fat takes the remainder, so the
// new balance always sums to exactly 100 (fat may go negative for extreme
// deltas). Warnings are carried over from the prior analysis unless
// p.RecomputeSimWarnings is set.
func Run(in *model.SimulationInput, p model.Policy) (*model.SimulationResult, error) {
	if in == nil {
		return nil, model.Invalid("input", "required")
	}
	if in.Menu == nil {
		return nil, model.Invalid("menu", "required")
	}
	if in.Offer == nil {
		return nil, model.Invalid("offer", "required")
	}
	adj := in.Adjustments
	for _, d := range []struct {
		field string
		v     *float64
	}{
		{"adjustments.proteinDelta", adj.ProteinDelta},
		{"adjustments.carbDelta", adj.CarbDelta},
		{"adjustments.profitRateDelta", adj.ProfitRateDelta},
	} {
		if d.v != nil && (math.IsNaN(*d.v) || math.IsInf(*d.v, 0)) {
			return nil, model.Invalid(d.field, "must be a finite number")
		}
	}

	newMenu := ShiftBalance(*in.Menu, value(adj.ProteinDelta), value(adj.CarbDelta))
	if p.RecomputeSimWarnings {
		newMenu.Warnings = menu.Warnings(newMenu.MacroBalance, p.Macro)
	}

	newInput, err := ImpliedInput(*in.Offer, value(adj.ProfitRateDelta))
	if err != nil {
		return nil, err
	}
	newOffer := calculator.CalculateOffer(newInput, p.KFactor)

	res, err := reasoning.Run(&newMenu, &newOffer, p)
	if err != nil {
		return nil, err
	}
	return &model.SimulationResult{NewMenu: newMenu, NewOffer: newOffer, Reasoning: *res}, nil
}

// ShiftBalance returns a copy of m with its macro balance shifted by the deltas.
func ShiftBalance(m model.MenuAnalysis, proteinDelta, carbDelta float64) model.MenuAnalysis {
	protein := int(math.Max(0, math.Round(float64(m.MacroBalance.Protein)+proteinDelta)))
	carb := int(math.Max(0, math.Round(float64(m.MacroBalance.Carb)+carbDelta)))

	out := m
	out.MacroBalance = model.MacroBalance{Protein: protein, Fat: 100 - (protein + carb), Carb: carb}
	out.Warnings = append([]string{}, m.Warnings...)
	out.Items = append([]model.MenuItem(nil), m.Items...)
	return out
}

// ImpliedInput recovers cost inputs from a prior offer. The profit rate is
// recovered as profit over total cost, then shifted by profitRateDelta; the
// overhead rate as overhead over material plus labor.
func ImpliedInput(o model.OfferResult, profitRateDelta float64) (model.OfferInput, error) {
	if o.TotalCost == 0 {
		return model.OfferInput{}, model.Invalid("offer.totalCost", "must be non-zero to recover the profit rate")
	}
	direct := o.Detail.Material + o.Detail.Labor
	if direct == 0 {
		return model.OfferInput{}, model.Invalid("offer.detail", "material + labor must be non-zero to recover the overhead rate")
	}
	profitRate := o.Detail.Profit/o.TotalCost*100 + profitRateDelta
	overheadRate := o.Detail.Overhead / direct * 100
	if math.IsNaN(profitRate) || math.IsInf(profitRate, 0) || math.IsNaN(overheadRate) || math.IsInf(overheadRate, 0) {
		return model.OfferInput{}, model.Invalid("offer", "recovered rates are not finite")
	}
	return model.OfferInput{
		MaterialCost: o.Detail.Material,
		LaborCost:    o.Detail.Labor,
		OverheadRate: overheadRate,
		ProfitRate:   profitRate,
	}, nil
}

func value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
