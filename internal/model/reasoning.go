package model

// RiskLevel is the 4-band classification of a reasoning score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// FactorScore is one scoring factor's contribution.
type FactorScore struct {
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Penalty    float64 `json:"penalty"`
	Commentary string  `json:"commentary"`
}

// Factor categories.
const (
	CategoryNutrition  = "nutrition"
	CategoryFinancial  = "financial"
	CategoryRegulatory = "regulatory"
)

// ReasoningResult is the composite score for a menu and offer pair.
type ReasoningResult struct {
	Score       int           `json:"score"`
	Level       RiskLevel     `json:"level"`
	Risks       []string      `json:"risks"`
	Suggestions []string      `json:"suggestions"`
	Compliance  []string      `json:"compliance"`
	Insights    []string      `json:"insights"`
	Factors     []FactorScore `json:"factors,omitempty"`
}
