package pricing

import (
	"context"
	"errors"
	"strings"
)

// ErrPriceNotFound is returned when a source has no price for a product.
var ErrPriceNotFound = errors.New("price not found")

// PriceSource supplies pre-averaged unit prices per product.
type PriceSource interface {
	AveragePrice(ctx context.Context, product string) (float64, error)
	Name() string
}

// normalize folds product names for lookup.
func normalize(product string) string {
	return strings.ToLower(strings.TrimSpace(product))
}
