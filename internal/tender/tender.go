package tender

import (
	"sync"

	"TenderSentinel/internal/calculator"
	"TenderSentinel/internal/menu"
	"TenderSentinel/internal/model"
	"TenderSentinel/internal/reasoning"
	"TenderSentinel/internal/simulation"
)

// Evaluation bundles one full pass over a menu and its cost inputs.
type Evaluation struct {
	Menu      model.MenuAnalysis    `json:"menu"`
	Offer     model.OfferResult     `json:"offer"`
	Reasoning model.ReasoningResult `json:"reasoning"`
}

// Evaluate analyzes the menu and builds the offer concurrently, then scores the pair.
func Evaluate(menuText string, in model.OfferInput, p model.Policy) (*Evaluation, error) {
	if err := ValidateOfferInput(in); err != nil {
		return nil, err
	}

	var (
		wg       sync.WaitGroup
		analysis model.MenuAnalysis
		offer    model.OfferResult
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		analysis = menu.AnalyzeMenu(menuText, p.Macro)
	}()
	go func() {
		defer wg.Done()
		offer = calculator.CalculateOffer(in, p.KFactor)
	}()
	wg.Wait()

	res, err := reasoning.Run(&analysis, &offer, p)
	if err != nil {
		return nil, err
	}
	return &Evaluation{Menu: analysis, Offer: offer, Reasoning: *res}, nil
}

// Simulate runs a what-if pass over a prior evaluation.
func Simulate(in *model.SimulationInput, p model.Policy) (*model.SimulationResult, error) {
	return simulation.Run(in, p)
}

// ValidateOfferInput rejects negative costs.
func ValidateOfferInput(in model.OfferInput) error {
	if in.MaterialCost < 0 {
		return model.Invalid("materialCost", "must be >= 0, got %.2f", in.MaterialCost)
	}
	if in.LaborCost < 0 {
		return model.Invalid("laborCost", "must be >= 0, got %.2f", in.LaborCost)
	}
	return nil
}
