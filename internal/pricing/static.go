package pricing

import (
	"context"
	"fmt"
)

// StaticSource serves fixed prices, typically from the config file.
type StaticSource struct {
	prices map[string]float64
}

// NewStaticSource creates a StaticSource. Product names are matched case-insensitively.
func NewStaticSource(prices map[string]float64) *StaticSource {
	s := &StaticSource{prices: make(map[string]float64, len(prices))}
	for k, v := range prices {
		s.prices[normalize(k)] = v
	}
	return s
}

// Name identifies the source in costing breakdowns.
func (s *StaticSource) Name() string { return "static" }

// AveragePrice returns the configured price for product.
func (s *StaticSource) AveragePrice(_ context.Context, product string) (float64, error) {
	p, ok := s.prices[normalize(product)]
	if !ok {
		return 0, fmt.Errorf("%s: %w", product, ErrPriceNotFound)
	}
	return p, nil
}
