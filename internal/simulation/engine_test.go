package simulation

import (
	"errors"
	"math"
	"testing"

	"TenderSentinel/internal/calculator"
	"TenderSentinel/internal/menu"
	"TenderSentinel/internal/model"
)

func baseInput(adj model.Adjustments) *model.SimulationInput {
	m := menu.AnalyzeMenu("7 günlük\nKuru Fasulye (protein 15, yağ 10, karbonhidrat 30)", model.DefaultMacroThresholds())
	o := calculator.CalculateOffer(model.OfferInput{MaterialCost: 100, LaborCost: 80, OverheadRate: 15, ProfitRate: 20}, model.DefaultKFactor)
	return &model.SimulationInput{Menu: &m, Offer: &o, Adjustments: adj}
}

func TestRun_ProteinDelta(t *testing.T) {
	in := baseInput(model.Adjustments{ProteinDelta: model.Float(10)})
	res, err := Run(in, model.DefaultPolicy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := res.NewMenu.MacroBalance
	if b.Protein != in.Menu.MacroBalance.Protein+10 {
		t.Errorf("expected protein %d, got %d", in.Menu.MacroBalance.Protein+10, b.Protein)
	}
	if b.Carb != in.Menu.MacroBalance.Carb {
		t.Errorf("carb should be unchanged, got %d", b.Carb)
	}
	if b.Sum() != 100 {
		t.Errorf("expected balance sum exactly 100, got %d", b.Sum())
	}
	if in.Menu.MacroBalance.Protein != 27 {
		t.Errorf("input menu must not be mutated, protein=%d", in.Menu.MacroBalance.Protein)
	}
	if res.NewMenu.TotalItems != in.Menu.TotalItems || res.NewMenu.MenuType != in.Menu.MenuType {
		t.Errorf("menu metadata should carry over: %+v", res.NewMenu)
	}
}

func TestRun_ClampsAtZero(t *testing.T) {
	in := baseInput(model.Adjustments{ProteinDelta: model.Float(-50), CarbDelta: model.Float(-80)})
	res, err := Run(in, model.DefaultPolicy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := res.NewMenu.MacroBalance
	if b.Protein != 0 || b.Carb != 0 || b.Fat != 100 {
		t.Errorf("expected 0/100/0, got %+v", b)
	}
}

func TestRun_ExtremeDeltaGivesNegativeFat(t *testing.T) {
	in := baseInput(model.Adjustments{ProteinDelta: model.Float(60), CarbDelta: model.Float(20)})
	res, err := Run(in, model.DefaultPolicy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := res.NewMenu.MacroBalance
	if b.Fat >= 0 {
		t.Errorf("expected negative fat, got %+v", b)
	}
	if b.Sum() != 100 {
		t.Errorf("expected sum 100, got %d", b.Sum())
	}
}

func TestRun_WarningsCarriedOver(t *testing.T) {
	in := baseInput(model.Adjustments{ProteinDelta: model.Float(-20)})
	res, err := Run(in, model.DefaultPolicy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.NewMenu.Warnings) != 0 {
		t.Errorf("warnings should be carried over unchanged, got %v", res.NewMenu.Warnings)
	}

	p := model.DefaultPolicy()
	p.RecomputeSimWarnings = true
	res, err = Run(in, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.NewMenu.Warnings) == 0 {
		t.Error("expected recomputed low-protein warning")
	}
}

func TestRun_ProfitRateDelta(t *testing.T) {
	in := baseInput(model.Adjustments{ProfitRateDelta: model.Float(5)})
	res, err := Run(in, model.DefaultPolicy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	o := in.Offer
	implied := o.Detail.Profit/o.TotalCost*100 + 5
	want := calculator.CalculateOffer(model.OfferInput{
		MaterialCost: o.Detail.Material,
		LaborCost:    o.Detail.Labor,
		OverheadRate: o.Detail.Overhead / (o.Detail.Material + o.Detail.Labor) * 100,
		ProfitRate:   implied,
	}, model.DefaultKFactor)
	if res.NewOffer != want {
		t.Errorf("expected %+v, got %+v", want, res.NewOffer)
	}
	if res.NewOffer.Detail.Overhead != o.Detail.Overhead {
		t.Errorf("overhead should be reproduced, got %.2f want %.2f", res.NewOffer.Detail.Overhead, o.Detail.Overhead)
	}
	if res.Reasoning.Score < 0 || res.Reasoning.Score > 100 {
		t.Errorf("score out of range: %d", res.Reasoning.Score)
	}
}

func TestRun_NegativeProfitDeltaRaisesRisk(t *testing.T) {
	in := baseInput(model.Adjustments{ProfitRateDelta: model.Float(-30)})
	res, err := Run(in, model.DefaultPolicy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.NewOffer.Detail.Profit >= 0 {
		t.Errorf("expected negative profit, got %.2f", res.NewOffer.Detail.Profit)
	}
	if res.Reasoning.Score >= 100 {
		t.Errorf("expected penalised score, got %d", res.Reasoning.Score)
	}
}

func TestRun_DivisionGuards(t *testing.T) {
	zeroTotal := baseInput(model.Adjustments{})
	zeroTotal.Offer = &model.OfferResult{KThreshold: 0.93}

	zeroDirect := baseInput(model.Adjustments{})
	zeroDirect.Offer = &model.OfferResult{TotalCost: 10, KThreshold: 0.93, Detail: model.OfferDetail{Overhead: 5, Profit: 5}}

	nanDelta := baseInput(model.Adjustments{CarbDelta: model.Float(math.NaN())})

	for name, in := range map[string]*model.SimulationInput{
		"zero total":  zeroTotal,
		"zero direct": zeroDirect,
		"nan delta":   nanDelta,
		"nil menu":    {Offer: zeroTotal.Offer},
		"nil offer":   {Menu: zeroTotal.Menu},
	} {
		res, err := Run(in, model.DefaultPolicy())
		if !errors.Is(err, model.ErrValidation) {
			t.Errorf("%s: expected validation error, got %v", name, err)
		}
		if res != nil {
			t.Errorf("%s: expected nil result", name)
		}
	}
	if _, err := Run(nil, model.DefaultPolicy()); !errors.Is(err, model.ErrValidation) {
		t.Errorf("nil input: expected validation error, got %v", err)
	}
}

func TestImpliedInput(t *testing.T) {
	o := model.OfferResult{TotalCost: 248.4, Detail: model.OfferDetail{Material: 100, Labor: 80, Overhead: 27, Profit: 41.4}}
	in, err := ImpliedInput(o, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(in.OverheadRate-15) > 1e-9 {
		t.Errorf("expected overhead rate 15, got %v", in.OverheadRate)
	}
	if math.Abs(in.ProfitRate-41.4/248.4*100) > 1e-9 {
		t.Errorf("unexpected profit rate %v", in.ProfitRate)
	}
}
