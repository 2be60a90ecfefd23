package model

// MenuItem is a single parsed menu line. Macros are nil when the line carried none.
type MenuItem struct {
	Name    string   `json:"name"`
	Protein *float64 `json:"protein,omitempty"`
	Fat     *float64 `json:"fat,omitempty"`
	Carb    *float64 `json:"carb,omitempty"`
}

// HasMacros reports whether the item carries a parsed macro triple.
func (m MenuItem) HasMacros() bool {
	return m.Protein != nil && m.Fat != nil && m.Carb != nil
}

// MacroBalance holds integer percentage shares. Rounding may leave the sum at 99 or 101.
type MacroBalance struct {
	Protein int `json:"protein"`
	Fat     int `json:"fat"`
	Carb    int `json:"carb"`
}

// Sum returns protein + fat + carb.
func (b MacroBalance) Sum() int {
	return b.Protein + b.Fat + b.Carb
}

// MenuType labels produced by cycle classification.
const (
	MenuType30Day        = "30 Günlük"
	MenuType15Day        = "15 Günlük"
	MenuType7Day         = "7 Günlük"
	MenuTypeUndetermined = "Belirsiz"
)

// MenuAnalysis is the output of the macro-nutrient analyzer.
type MenuAnalysis struct {
	MenuType     string       `json:"menuType"`
	MacroBalance MacroBalance `json:"macroBalance"`
	Warnings     []string     `json:"warnings"`
	TotalItems   int          `json:"totalItems"`
	Items        []MenuItem   `json:"items,omitempty"`
}
