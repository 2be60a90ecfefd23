package reasoning

import (
	"fmt"
	"math"

	"TenderSentinel/internal/calculator"
	"TenderSentinel/internal/model"
)

// Bands defines the 4-level risk mapping, highest score first.
var Bands = []struct {
	MinScore int
	Level    model.RiskLevel
}{
	{80, model.RiskLow},
	{60, model.RiskMedium},
	{40, model.RiskHigh},
}

// DefaultLevel applies to scores below the last band.
const DefaultLevel = model.RiskCritical

// Level maps a score to its risk band.
func Level(score int) model.RiskLevel {
	for _, b := range Bands {
		if score >= b.MinScore {
			return b.Level
		}
	}
	return DefaultLevel
}

// Run scores a menu analysis and offer pair. It returns a *model.ValidationError
// for malformed input and never a partial result.
//
// The score starts at 100 and each triggered factor subtracts its penalty;
// see the Penalty constants. The result is clamped to [0, 100].
func Run(m *model.MenuAnalysis, o *model.OfferResult, p model.Policy) (*model.ReasoningResult, error) {
	if err := validate(m, o); err != nil {
		return nil, err
	}

	var findings []finding
	findings = append(findings, scoreNutrition(m, p.Macro)...)
	findings = append(findings, scoreMargin(o, p.MinProfitShare)...)
	findings = append(findings, scoreThreshold(o, p.NearThresholdPct)...)

	res := &model.ReasoningResult{
		Risks:       []string{},
		Suggestions: []string{},
		Compliance:  []string{},
		Insights:    []string{},
	}

	penalty := 0.0
	regulatoryFlag := false
	for _, f := range findings {
		penalty += f.factor.Penalty
		res.Factors = append(res.Factors, f.factor)
		res.Risks = append(res.Risks, f.risk)
		res.Suggestions = appendUnique(res.Suggestions, f.suggestion)
		if f.compliance != "" {
			res.Compliance = append(res.Compliance, f.compliance)
			regulatoryFlag = true
		}
	}
	if !regulatoryFlag {
		res.Compliance = append(res.Compliance, fmt.Sprintf(
			"K=%.2f sınır değer kontrolü uygun: teklif tabanı %.2f TL, toplam maliyet %.2f TL",
			o.KThreshold, o.OfferPrice, o.TotalCost))
	}

	res.Insights = insights(m, o)

	score := int(math.Round(100 - penalty))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	res.Score = score
	res.Level = Level(score)
	return res, nil
}

func insights(m *model.MenuAnalysis, o *model.OfferResult) []string {
	out := []string{}

	if m.MenuType == model.MenuTypeUndetermined || m.MenuType == "" {
		out = append(out, "Menü döngüsü belirlenemedi (7/15/30 gün ifadesi bulunamadı)")
	} else {
		out = append(out, "Menü döngüsü: "+m.MenuType)
	}

	b := m.MacroBalance
	switch {
	case b.Protein < 0 || b.Fat < 0 || b.Carb < 0:
		out = append(out, fmt.Sprintf("Makro dengesi geçersiz: protein %%%d, yağ %%%d, karbonhidrat %%%d", b.Protein, b.Fat, b.Carb))
	case b.Sum() == 0 && m.TotalItems > 0:
		out = append(out, "Menü satırlarında makro değeri bulunamadı; besin dengesi değerlendirilemedi")
	}

	if o.TotalCost > 0 {
		out = append(out, fmt.Sprintf("Malzeme maliyeti toplam maliyetin %%%.1f'i", o.Detail.Material/o.TotalCost*100))
		out = append(out, fmt.Sprintf("Teklif tabanı ile toplam maliyet arasındaki pay %%%.1f", calculator.BidHeadroom(*o)))
	}
	return out
}

func validate(m *model.MenuAnalysis, o *model.OfferResult) error {
	if m == nil {
		return model.Invalid("menu", "required")
	}
	if o == nil {
		return model.Invalid("offer", "required")
	}
	if m.TotalItems < 0 {
		return model.Invalid("menu.totalItems", "must be >= 0, got %d", m.TotalItems)
	}
	numbers := []struct {
		field string
		v     float64
	}{
		{"offer.totalCost", o.TotalCost},
		{"offer.offerPrice", o.OfferPrice},
		{"offer.kThreshold", o.KThreshold},
		{"offer.detail.material", o.Detail.Material},
		{"offer.detail.labor", o.Detail.Labor},
		{"offer.detail.overhead", o.Detail.Overhead},
		{"offer.detail.profit", o.Detail.Profit},
	}
	for _, n := range numbers {
		if math.IsNaN(n.v) || math.IsInf(n.v, 0) {
			return model.Invalid(n.field, "must be a finite number")
		}
	}
	if o.TotalCost < 0 {
		return model.Invalid("offer.totalCost", "must be >= 0, got %.2f", o.TotalCost)
	}
	if o.KThreshold <= 0 || o.KThreshold > 1 {
		return model.Invalid("offer.kThreshold", "must be in (0, 1], got %v", o.KThreshold)
	}
	return nil
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
