package model

// OfferInput holds raw cost inputs. Rates are percentage points (5 means 5%).
type OfferInput struct {
	MaterialCost float64 `json:"materialCost" yaml:"material_cost"`
	LaborCost    float64 `json:"laborCost" yaml:"labor_cost"`
	OverheadRate float64 `json:"overheadRate" yaml:"overhead_rate"`
	ProfitRate   float64 `json:"profitRate" yaml:"profit_rate"`
}

// OfferDetail is the cost build-up, each component rounded to cents.
type OfferDetail struct {
	Material float64 `json:"material"`
	Labor    float64 `json:"labor"`
	Overhead float64 `json:"overhead"`
	Profit   float64 `json:"profit"`
}

// OfferResult is the costed bid together with the anomalous-bid check.
type OfferResult struct {
	TotalCost      float64     `json:"totalCost"`
	OfferPrice     float64     `json:"offerPrice"`
	KThreshold     float64     `json:"kThreshold"`
	BelowThreshold bool        `json:"belowThreshold"`
	Detail         OfferDetail `json:"detail"`
}

// ProfitShare returns profit as a percentage of total cost, or 0 when total cost is 0.
func (o OfferResult) ProfitShare() float64 {
	if o.TotalCost == 0 {
		return 0
	}
	return o.Detail.Profit / o.TotalCost * 100
}
