package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"TenderSentinel/internal/model"
)

var levelLabels = map[model.RiskLevel]string{
	model.RiskLow:      "🟢 Düşük risk",
	model.RiskMedium:   "🟡 Orta risk",
	model.RiskHigh:     "🟠 Yüksek risk",
	model.RiskCritical: "🔴 Kritik risk",
}

// FormatReport renders a full evaluation as a Telegram HTML message.
func FormatReport(menu *model.MenuAnalysis, offer *model.OfferResult, r *model.ReasoningResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📋 <b>İhale Değerlendirmesi</b> | %s\n\n", time.Now().Format("2006-01-02")))

	writeMenu(&b, menu)
	writeOffer(&b, offer)
	writeReasoning(&b, r)

	return b.String()
}

// FormatSimulation renders a what-if result next to the score it started from.
func FormatSimulation(before *model.ReasoningResult, sim *model.SimulationResult) string {
	var b strings.Builder

	b.WriteString("🧪 <b>Simülasyon Sonucu</b>\n\n")
	if before != nil {
		b.WriteString(fmt.Sprintf("Skor: %d → %d (%+d)\n\n", before.Score, sim.Reasoning.Score, sim.Reasoning.Score-before.Score))
	}
	writeMenu(&b, &sim.NewMenu)
	writeOffer(&b, &sim.NewOffer)
	writeReasoning(&b, &sim.Reasoning)

	return b.String()
}

func writeMenu(b *strings.Builder, m *model.MenuAnalysis) {
	mb := m.MacroBalance
	b.WriteString("🍽 <b>Menü:</b>\n")
	b.WriteString(fmt.Sprintf("  Döngü: %s | Kalem: %d\n", html.EscapeString(m.MenuType), m.TotalItems))
	b.WriteString(fmt.Sprintf("  Protein %%%d | Yağ %%%d | Karbonhidrat %%%d\n", mb.Protein, mb.Fat, mb.Carb))
	for _, w := range m.Warnings {
		b.WriteString(fmt.Sprintf("  ⚠️ %s\n", html.EscapeString(w)))
	}
	b.WriteString("\n")
}

func writeOffer(b *strings.Builder, o *model.OfferResult) {
	d := o.Detail
	b.WriteString("💰 <b>Maliyet:</b>\n")
	b.WriteString(fmt.Sprintf("  Malzeme: %.2f TL | İşçilik: %.2f TL\n", d.Material, d.Labor))
	b.WriteString(fmt.Sprintf("  Genel gider: %.2f TL | Kâr: %.2f TL\n", d.Overhead, d.Profit))
	b.WriteString("  ─────────────────\n")
	b.WriteString(fmt.Sprintf("  Toplam maliyet: %.2f TL\n", o.TotalCost))
	b.WriteString(fmt.Sprintf("  Teklif tabanı (K=%.2f): %.2f TL\n", o.KThreshold, o.OfferPrice))
	if o.BelowThreshold {
		b.WriteString("  🚨 Aşırı düşük teklif sınırının altında\n")
	}
	b.WriteString("\n")
}

func writeReasoning(b *strings.Builder, r *model.ReasoningResult) {
	label, ok := levelLabels[r.Level]
	if !ok {
		label = string(r.Level)
	}
	b.WriteString(fmt.Sprintf("📊 <b>Skor: %d/100</b> | %s\n", r.Score, label))
	for _, f := range r.Factors {
		b.WriteString(fmt.Sprintf("  %s: -%.0f\n", html.EscapeString(f.Name), f.Penalty))
	}
	writeList(b, "❗ <b>Riskler:</b>", r.Risks)
	writeList(b, "🛠 <b>Öneriler:</b>", r.Suggestions)
	writeList(b, "⚖️ <b>Mevzuat:</b>", r.Compliance)
	writeList(b, "💡 <b>Notlar:</b>", r.Insights)
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n" + title + "\n")
	for _, it := range items {
		b.WriteString(fmt.Sprintf("  • %s\n", html.EscapeString(it)))
	}
}
