package model

import (
	"encoding/json"
	"fmt"
)

// Wire shapes with pointer fields so that absent keys can be told apart from zeros.
type wireBalance struct {
	Protein *int `json:"protein"`
	Fat     *int `json:"fat"`
	Carb    *int `json:"carb"`
}

type wireMenu struct {
	MenuType     *string      `json:"menuType"`
	MacroBalance *wireBalance `json:"macroBalance"`
	Warnings     []string     `json:"warnings"`
	TotalItems   *int         `json:"totalItems"`
	Items        []MenuItem   `json:"items"`
}

type wireDetail struct {
	Material *float64 `json:"material"`
	Labor    *float64 `json:"labor"`
	Overhead *float64 `json:"overhead"`
	Profit   *float64 `json:"profit"`
}

type wireOffer struct {
	TotalCost      *float64    `json:"totalCost"`
	OfferPrice     *float64    `json:"offerPrice"`
	KThreshold     *float64    `json:"kThreshold"`
	BelowThreshold bool        `json:"belowThreshold"`
	Detail         *wireDetail `json:"detail"`
}

type wireSimulation struct {
	Menu        *wireMenu   `json:"menu"`
	Offer       *wireOffer  `json:"offer"`
	Adjustments Adjustments `json:"adjustments"`
}

// DecodeMenuAnalysis parses a JSON menu analysis, rejecting missing required fields.
func DecodeMenuAnalysis(data []byte) (*MenuAnalysis, error) {
	var w wireMenu
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, Invalid("menu", "malformed json: %v", err)
	}
	return w.toModel("menu")
}

// DecodeOfferResult parses a JSON offer result, rejecting missing required fields.
func DecodeOfferResult(data []byte) (*OfferResult, error) {
	var w wireOffer
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, Invalid("offer", "malformed json: %v", err)
	}
	return w.toModel("offer")
}

// DecodeSimulationInput parses a JSON simulation request.
func DecodeSimulationInput(data []byte) (*SimulationInput, error) {
	var w wireSimulation
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, Invalid("input", "malformed json: %v", err)
	}
	if w.Menu == nil {
		return nil, Invalid("menu", "required")
	}
	if w.Offer == nil {
		return nil, Invalid("offer", "required")
	}
	menu, err := w.Menu.toModel("menu")
	if err != nil {
		return nil, err
	}
	offer, err := w.Offer.toModel("offer")
	if err != nil {
		return nil, err
	}
	return &SimulationInput{Menu: menu, Offer: offer, Adjustments: w.Adjustments}, nil
}

func (w *wireMenu) toModel(prefix string) (*MenuAnalysis, error) {
	b := w.MacroBalance
	if b == nil {
		return nil, Invalid(prefix+".macroBalance", "required")
	}
	for _, f := range []struct {
		name string
		v    *int
	}{{"protein", b.Protein}, {"fat", b.Fat}, {"carb", b.Carb}} {
		if f.v == nil {
			return nil, Invalid(fmt.Sprintf("%s.macroBalance.%s", prefix, f.name), "required")
		}
	}
	if w.TotalItems == nil {
		return nil, Invalid(prefix+".totalItems", "required")
	}
	m := &MenuAnalysis{
		MenuType:     MenuTypeUndetermined,
		MacroBalance: MacroBalance{Protein: *b.Protein, Fat: *b.Fat, Carb: *b.Carb},
		Warnings:     w.Warnings,
		TotalItems:   *w.TotalItems,
		Items:        w.Items,
	}
	if w.MenuType != nil {
		m.MenuType = *w.MenuType
	}
	if m.Warnings == nil {
		m.Warnings = []string{}
	}
	return m, nil
}

func (w *wireOffer) toModel(prefix string) (*OfferResult, error) {
	required := []struct {
		name string
		v    *float64
	}{{"totalCost", w.TotalCost}, {"offerPrice", w.OfferPrice}, {"kThreshold", w.KThreshold}}
	for _, f := range required {
		if f.v == nil {
			return nil, Invalid(prefix+"."+f.name, "required")
		}
	}
	d := w.Detail
	if d == nil {
		return nil, Invalid(prefix+".detail", "required")
	}
	for _, f := range []struct {
		name string
		v    *float64
	}{{"material", d.Material}, {"labor", d.Labor}, {"overhead", d.Overhead}, {"profit", d.Profit}} {
		if f.v == nil {
			return nil, Invalid(fmt.Sprintf("%s.detail.%s", prefix, f.name), "required")
		}
	}
	return &OfferResult{
		TotalCost:      *w.TotalCost,
		OfferPrice:     *w.OfferPrice,
		KThreshold:     *w.KThreshold,
		BelowThreshold: w.BelowThreshold,
		Detail: OfferDetail{
			Material: *d.Material,
			Labor:    *d.Labor,
			Overhead: *d.Overhead,
			Profit:   *d.Profit,
		},
	}, nil
}
