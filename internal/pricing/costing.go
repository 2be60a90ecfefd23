package pricing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// RecipeLine is the quantity of one product needed per portion.
type RecipeLine struct {
	Product  string  `yaml:"product"`
	Quantity float64 `yaml:"quantity"`
	Unit     string  `yaml:"unit"`
}

// Recipe is the ingredient list of a tender, scaled by portions.
type Recipe struct {
	Portions int          `yaml:"portions"`
	Lines    []RecipeLine `yaml:"lines"`
}

// LineCost is the priced result of one recipe line.
type LineCost struct {
	Product   string
	Quantity  float64
	UnitPrice float64
	Cost      float64
	Source    string
}

// LoadRecipe reads a recipe from a YAML file. Portions default to 1.
func LoadRecipe(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipe: %w", err)
	}
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse recipe: %w", err)
	}
	if r.Portions == 0 {
		r.Portions = 1
	}
	return &r, nil
}

// Costing prices recipes against an ordered list of sources; the first source
// that knows a product wins.
type Costing struct {
	Sources []PriceSource
}

// NewCosting creates a Costing over the given sources.
func NewCosting(sources ...PriceSource) *Costing {
	return &Costing{Sources: sources}
}

// MaterialCost sums quantity × portions × average price for every line.
func (c *Costing) MaterialCost(ctx context.Context, r *Recipe) (float64, []LineCost, error) {
	if r == nil || len(r.Lines) == 0 {
		return 0, nil, errors.New("empty recipe")
	}
	if r.Portions < 0 {
		return 0, nil, fmt.Errorf("portions must be non-negative, got %d", r.Portions)
	}

	portions := decimal.NewFromInt(int64(r.Portions))
	total := decimal.Zero
	lines := make([]LineCost, 0, len(r.Lines))
	for _, l := range r.Lines {
		if l.Quantity < 0 {
			return 0, nil, fmt.Errorf("%s: quantity must be non-negative", l.Product)
		}
		price, src, err := c.lookup(ctx, l.Product)
		if err != nil {
			return 0, nil, fmt.Errorf("price %s: %w", l.Product, err)
		}
		qty := decimal.NewFromFloat(l.Quantity).Mul(portions)
		cost := qty.Mul(decimal.NewFromFloat(price)).Round(2)
		total = total.Add(cost)
		lines = append(lines, LineCost{
			Product:   l.Product,
			Quantity:  qty.InexactFloat64(),
			UnitPrice: price,
			Cost:      cost.InexactFloat64(),
			Source:    src,
		})
	}
	return total.InexactFloat64(), lines, nil
}

func (c *Costing) lookup(ctx context.Context, product string) (float64, string, error) {
	for _, s := range c.Sources {
		p, err := s.AveragePrice(ctx, product)
		if err == nil {
			return p, s.Name(), nil
		}
		if !errors.Is(err, ErrPriceNotFound) {
			log.Printf("[WARN] price source %s failed for %s: %v", s.Name(), product, err)
		}
	}
	return 0, "", ErrPriceNotFound
}
