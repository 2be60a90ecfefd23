package model

// MacroThresholds are the nutritional heuristics, in percentage points of the macro balance.
type MacroThresholds struct {
	MinProtein float64 `yaml:"min_protein"`
	MaxCarb    float64 `yaml:"max_carb"`
	MaxFat     float64 `yaml:"max_fat"`
}

// Policy groups the regulatory and heuristic constants used by the engine.
type Policy struct {
	KFactor              float64         `yaml:"k_factor"`
	Macro                MacroThresholds `yaml:"macro"`
	MinProfitShare       float64         `yaml:"min_profit_share"`
	NearThresholdPct     float64         `yaml:"near_threshold_pct"`
	RecomputeSimWarnings bool            `yaml:"recompute_sim_warnings"`
}

// DefaultKFactor is the catering-tender coefficient of the anomalous-bid rule.
const DefaultKFactor = 0.93

// DefaultMacroThresholds returns the 15/65/30 heuristic.
func DefaultMacroThresholds() MacroThresholds {
	return MacroThresholds{MinProtein: 15, MaxCarb: 65, MaxFat: 30}
}

// DefaultPolicy returns the stock policy.
func DefaultPolicy() Policy {
	return Policy{
		KFactor:          DefaultKFactor,
		Macro:            DefaultMacroThresholds(),
		MinProfitShare:   5,
		NearThresholdPct: 5,
	}
}
