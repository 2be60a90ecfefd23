package model

// Adjustments are the what-if deltas. Nil means no change.
type Adjustments struct {
	ProteinDelta    *float64 `json:"proteinDelta,omitempty"`
	CarbDelta       *float64 `json:"carbDelta,omitempty"`
	ProfitRateDelta *float64 `json:"profitRateDelta,omitempty"`
}

// SimulationInput is a prior analysis and offer plus the deltas to apply.
type SimulationInput struct {
	Menu        *MenuAnalysis `json:"menu"`
	Offer       *OfferResult  `json:"offer"`
	Adjustments Adjustments   `json:"adjustments"`
}

// SimulationResult holds the derived analysis, offer and their reasoning.
type SimulationResult struct {
	NewMenu   MenuAnalysis    `json:"newMenu"`
	NewOffer  OfferResult     `json:"newOffer"`
	Reasoning ReasoningResult `json:"reasoning"`
}

// Float returns a pointer to v, for building Adjustments.
func Float(v float64) *float64 {
	return &v
}
