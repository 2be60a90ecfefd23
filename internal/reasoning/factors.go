package reasoning

import (
	"fmt"

	"TenderSentinel/internal/calculator"
	"TenderSentinel/internal/menu"
	"TenderSentinel/internal/model"
)

// Penalties subtracted from the 100-point base score.
const (
	PenaltyStaleWarning   = 5
	PenaltyLowProtein     = 15
	PenaltyHighCarb       = 10
	PenaltyHighFat        = 10
	PenaltyEmptyMenu      = 10
	PenaltyNoProfit       = 30
	PenaltyLowProfit      = 20
	PenaltyBelowThreshold = 40
	PenaltyNearThreshold  = 15
)

// finding is one triggered factor with its risk text and paired remediation.
type finding struct {
	factor     model.FactorScore
	risk       string
	suggestion string
	compliance string
}

func newFinding(name, category string, penalty float64, risk, suggestion string) finding {
	return finding{
		factor:     model.FactorScore{Name: name, Category: category, Penalty: penalty, Commentary: risk},
		risk:       risk,
		suggestion: suggestion,
	}
}

// scoreNutrition re-derives macro risks from the balance and carries over any
// analyzer warnings that the re-derivation does not already cover.
func scoreNutrition(m *model.MenuAnalysis, th model.MacroThresholds) []finding {
	var out []finding

	if m.TotalItems == 0 {
		out = append(out, newFinding("Boş menü", model.CategoryNutrition, PenaltyEmptyMenu,
			"Menüde analiz edilebilir kalem yok",
			"Menü metnini kontrol edin; her satıra bir yemek yazın"))
	}

	b := m.MacroBalance
	derived := map[string]bool{}
	if b.Sum() != 0 {
		if float64(b.Protein) < th.MinProtein {
			risk := fmt.Sprintf(menu.WarnLowProtein, b.Protein, th.MinProtein)
			derived[risk] = true
			out = append(out, newFinding("Protein payı", model.CategoryNutrition, PenaltyLowProtein, risk,
				fmt.Sprintf("Protein payını en az %%%.0f seviyesine çıkarın: et, tavuk, balık, baklagil veya yumurta ekleyin", th.MinProtein)))
		}
		if float64(b.Carb) > th.MaxCarb {
			risk := fmt.Sprintf(menu.WarnHighCarb, b.Carb, th.MaxCarb)
			derived[risk] = true
			out = append(out, newFinding("Karbonhidrat payı", model.CategoryNutrition, PenaltyHighCarb, risk,
				"Pilav, makarna ve ekmek porsiyonlarını azaltıp sebze yemekleriyle dengeleyin"))
		}
		if float64(b.Fat) > th.MaxFat {
			risk := fmt.Sprintf(menu.WarnHighFat, b.Fat, th.MaxFat)
			derived[risk] = true
			out = append(out, newFinding("Yağ payı", model.CategoryNutrition, PenaltyHighFat, risk,
				"Kızartma yerine fırın veya haşlama tarifleri tercih edin"))
		}
	}

	for _, w := range m.Warnings {
		if derived[w] {
			continue
		}
		out = append(out, newFinding("Menü uyarısı", model.CategoryNutrition, PenaltyStaleWarning, w,
			"Menü analizini güncel makro dengesiyle yeniden çalıştırın"))
	}
	return out
}

// scoreMargin flags thin or negative profit relative to total cost.
func scoreMargin(o *model.OfferResult, minShare float64) []finding {
	share := o.ProfitShare()
	switch {
	case o.Detail.Profit <= 0:
		return []finding{newFinding("Kâr marjı", model.CategoryFinancial, PenaltyNoProfit,
			fmt.Sprintf("Kâr marjı sıfır veya negatif (%.2f TL)", o.Detail.Profit),
			fmt.Sprintf("Kâr oranını en az %%%.0f seviyesine yükseltin", minShare))}
	case share < minShare:
		return []finding{newFinding("Kâr marjı", model.CategoryFinancial, PenaltyLowProfit,
			fmt.Sprintf("Kâr payı toplam maliyetin %%%.1f'i, eşik %%%.0f", share, minShare),
			fmt.Sprintf("Kâr oranını en az %%%.0f seviyesine yükseltin veya maliyet kalemlerini düşürün", minShare))}
	}
	return nil
}

// scoreThreshold checks the anomalous-bid rule and proximity to its boundary.
func scoreThreshold(o *model.OfferResult, nearPct float64) []finding {
	if o.BelowThreshold {
		f := newFinding("Aşırı düşük teklif", model.CategoryRegulatory, PenaltyBelowThreshold,
			"Teklif aşırı düşük teklif sınırının altında",
			"Aşırı düşük teklif açıklamasını hazırlayın veya birim fiyatları sınır değerin üzerine çekin")
		f.compliance = fmt.Sprintf("UYARI: K=%.2f sınır değer kontrolünde teklif aşırı düşük; idare açıklama isteyecektir", o.KThreshold)
		return []finding{f}
	}

	headroom := calculator.BidHeadroom(*o)
	if headroom < nearPct {
		f := newFinding("Sınır değere yakınlık", model.CategoryRegulatory, PenaltyNearThreshold,
			fmt.Sprintf("Teklif tabanı ile toplam maliyet arasındaki pay yalnızca %%%.1f", headroom),
			"Fiyat indirimi yapmadan önce sınır değeri yeniden hesaplayın; marjı artırın")
		f.compliance = fmt.Sprintf("DİKKAT: teklif tabanı (%.2f TL) aşırı düşük teklif sınırına %%%.1f mesafede", o.OfferPrice, headroom)
		return []finding{f}
	}
	return nil
}
