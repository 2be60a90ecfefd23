package menu

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"TenderSentinel/internal/model"
)

const number = `(\d+(?:[.,]\d+)?)`

// macroPattern matches "protein N ... yağ N ... karbonhidrat N" in that order.
var macroPattern = regexp.MustCompile(`(?i)protein\D*?` + number +
	`.*?(?:yağ|yag|fat)\D*?` + number +
	`.*?(?:karbonhidrat|karb|carb)\D*?` + number)

// Cycle markers, checked most specific first. Text is lowered with Turkish
// casing before matching, so "AYLIK" becomes "aylık".
var cyclePatterns = []struct {
	re    *regexp.Regexp
	label string
}{
	{regexp.MustCompile(`(?i)(\b30\s*-?\s*(gün|gun|day)|ayl[ıi]k|monthly)`), model.MenuType30Day},
	{regexp.MustCompile(`(?i)\b15\s*-?\s*(gün|gun|day)`), model.MenuType15Day},
	{regexp.MustCompile(`(?i)(\b7\s*-?\s*(gün|gun|day)|haftal[ıi]k|weekly)`), model.MenuType7Day},
}

// Warning texts. The reasoning step matches on these to avoid double counting.
const (
	WarnLowProtein = "Protein oranı düşük (%%%d < %%%.0f)"
	WarnHighCarb   = "Karbonhidrat oranı yüksek (%%%d > %%%.0f)"
	WarnHighFat    = "Yağ oranı yüksek (%%%d > %%%.0f)"
)

// AnalyzeMenu parses free-text menu lines, aggregates macro shares and raises warnings.
func AnalyzeMenu(text string, th model.MacroThresholds) model.MenuAnalysis {
	items := make([]model.MenuItem, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		items = append(items, ParseLine(line))
	}

	balance, hasMacros := Aggregate(items)

	warnings := []string{}
	if hasMacros {
		warnings = Warnings(balance, th)
	}

	return model.MenuAnalysis{
		MenuType:     ClassifyCycle(text),
		MacroBalance: balance,
		Warnings:     warnings,
		TotalItems:   len(items),
		Items:        items,
	}
}

// ParseLine turns one trimmed menu line into a MenuItem.
func ParseLine(line string) model.MenuItem {
	m := macroPattern.FindStringSubmatch(line)
	if m == nil {
		return model.MenuItem{Name: line}
	}
	name, _, _ := strings.Cut(line, "(")
	return model.MenuItem{
		Name:    strings.TrimSpace(name),
		Protein: parseNumber(m[1]),
		Fat:     parseNumber(m[2]),
		Carb:    parseNumber(m[3]),
	}
}

func parseNumber(s string) *float64 {
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return nil
	}
	return &v
}

// Aggregate sums macros across items and converts them to rounded percentage shares.
// The second return value is false when no item carried any macro value.
func Aggregate(items []model.MenuItem) (model.MacroBalance, bool) {
	var protein, fat, carb float64
	for _, it := range items {
		if it.Protein != nil {
			protein += *it.Protein
		}
		if it.Fat != nil {
			fat += *it.Fat
		}
		if it.Carb != nil {
			carb += *it.Carb
		}
	}
	total := protein + fat + carb
	hasMacros := total != 0
	if !hasMacros {
		total = 1
	}
	return model.MacroBalance{
		Protein: share(protein, total),
		Fat:     share(fat, total),
		Carb:    share(carb, total),
	}, hasMacros
}

func share(part, total float64) int {
	return int(math.Round(part / total * 100))
}

// ClassifyCycle detects the menu cycle length from descriptive text.
func ClassifyCycle(text string) string {
	lowered := strings.ToLowerSpecial(unicode.TurkishCase, text)
	for _, c := range cyclePatterns {
		if c.re.MatchString(lowered) {
			return c.label
		}
	}
	return model.MenuTypeUndetermined
}

// Warnings applies the macro heuristics. Order is protein, carb, fat.
func Warnings(b model.MacroBalance, th model.MacroThresholds) []string {
	warnings := []string{}
	if float64(b.Protein) < th.MinProtein {
		warnings = append(warnings, fmt.Sprintf(WarnLowProtein, b.Protein, th.MinProtein))
	}
	if float64(b.Carb) > th.MaxCarb {
		warnings = append(warnings, fmt.Sprintf(WarnHighCarb, b.Carb, th.MaxCarb))
	}
	if float64(b.Fat) > th.MaxFat {
		warnings = append(warnings, fmt.Sprintf(WarnHighFat, b.Fat, th.MaxFat))
	}
	return warnings
}
