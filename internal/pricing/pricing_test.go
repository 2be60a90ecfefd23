package pricing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStaticSource(t *testing.T) {
	s := NewStaticSource(map[string]float64{"Kuru Fasulye": 85.5})
	p, err := s.AveragePrice(context.Background(), "  kuru fasulye ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != 85.5 {
		t.Errorf("expected 85.5, got %v", p)
	}
	if _, err := s.AveragePrice(context.Background(), "pirinç"); !errors.Is(err, ErrPriceNotFound) {
		t.Errorf("expected ErrPriceNotFound, got %v", err)
	}
}

func TestSQLiteSource_AveragesObservations(t *testing.T) {
	src, err := NewSQLiteSource(filepath.Join(t.TempDir(), "prices.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer src.Close()

	ctx := context.Background()
	now := time.Now()
	for _, p := range []float64{40, 50, 60} {
		if err := src.Record(ctx, "Pirinç", p, "hal", now); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if err := src.Record(ctx, "Tavuk", 120, "hal", now); err != nil {
		t.Fatalf("record: %v", err)
	}

	avg, err := src.AveragePrice(ctx, "Pirinç ")
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	if avg != 50 {
		t.Errorf("expected 50, got %v", avg)
	}

	if _, err := src.AveragePrice(ctx, "mercimek"); !errors.Is(err, ErrPriceNotFound) {
		t.Errorf("expected ErrPriceNotFound, got %v", err)
	}

	products, err := src.Products(ctx)
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	if len(products) != 2 || products[0].Product != "pirinç" || products[0].Samples != 3 {
		t.Errorf("unexpected products: %+v", products)
	}
}

func TestSQLiteSource_RejectsBadInput(t *testing.T) {
	src, err := NewSQLiteSource(filepath.Join(t.TempDir(), "prices.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer src.Close()

	if err := src.Record(context.Background(), " ", 10, "", time.Now()); err == nil {
		t.Error("expected error for empty product")
	}
	if err := src.Record(context.Background(), "tuz", -1, "", time.Now()); err == nil {
		t.Error("expected error for negative price")
	}
}

func TestCosting_MaterialCost(t *testing.T) {
	primary := NewStaticSource(map[string]float64{"pirinç": 40})
	fallback := NewStaticSource(map[string]float64{"pirinç": 99, "tavuk": 120.5})
	c := NewCosting(primary, fallback)

	r := &Recipe{Portions: 10, Lines: []RecipeLine{
		{Product: "Pirinç", Quantity: 0.08, Unit: "kg"},
		{Product: "Tavuk", Quantity: 0.15, Unit: "kg"},
	}}
	total, lines, err := c.MaterialCost(context.Background(), r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 0.8kg × 40 + 1.5kg × 120.5
	if total != 212.75 {
		t.Errorf("expected 212.75, got %v", total)
	}
	if len(lines) != 2 || lines[0].UnitPrice != 40 || lines[1].UnitPrice != 120.5 {
		t.Errorf("unexpected lines: %+v", lines)
	}
}

func TestCosting_Errors(t *testing.T) {
	c := NewCosting(NewStaticSource(map[string]float64{"pirinç": 40}))
	if _, _, err := c.MaterialCost(context.Background(), &Recipe{Portions: 1}); err == nil {
		t.Error("expected error for empty recipe")
	}
	_, _, err := c.MaterialCost(context.Background(), &Recipe{Portions: 1, Lines: []RecipeLine{{Product: "safran", Quantity: 1}}})
	if !errors.Is(err, ErrPriceNotFound) {
		t.Errorf("expected ErrPriceNotFound, got %v", err)
	}
}

func TestLoadRecipe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipe.yaml")
	content := `lines:
  - product: pirinç
    quantity: 0.08
    unit: kg
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	r, err := LoadRecipe(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Portions != 1 {
		t.Errorf("expected default portions 1, got %d", r.Portions)
	}
	if len(r.Lines) != 1 || r.Lines[0].Product != "pirinç" {
		t.Errorf("unexpected lines: %+v", r.Lines)
	}
}
