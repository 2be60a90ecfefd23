package config

import (
	"os"
	"path/filepath"
	"testing"

	"TenderSentinel/internal/model"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Policy != model.DefaultPolicy() {
		t.Errorf("expected default policy, got %+v", cfg.Policy)
	}
	if cfg.Schedule.DigestCron == "" || cfg.Database.SQLitePath == "" {
		t.Errorf("expected schedule and database defaults, got %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if err := cfg.ValidateNotifier(); err == nil {
		t.Error("expected notifier validation to fail without a token")
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
tender:
  menu_file: menu.txt
  offer:
    material_cost: 100
    labor_cost: 80
    overhead_rate: 15
    profit_rate: 20
policy:
  k_factor: 0.9
  macro:
    min_protein: 18
    max_carb: 60
    max_fat: 30
  min_profit_share: 4
prices:
  pirinç: 42.5
telegram:
  chat_id: "123"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("CRON_DIGEST", "0 0 6 * * *")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Policy.KFactor != 0.9 || cfg.Policy.Macro.MinProtein != 18 || cfg.Policy.MinProfitShare != 4 {
		t.Errorf("unexpected policy: %+v", cfg.Policy)
	}
	if cfg.Tender.Offer.MaterialCost != 100 || cfg.Tender.Offer.ProfitRate != 20 {
		t.Errorf("unexpected offer: %+v", cfg.Tender.Offer)
	}
	if cfg.Prices["pirinç"] != 42.5 {
		t.Errorf("unexpected prices: %v", cfg.Prices)
	}
	if cfg.Telegram.BotToken != "token" || cfg.Schedule.DigestCron != "0 0 6 * * *" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if err := cfg.ValidateNotifier(); err != nil {
		t.Errorf("unexpected notifier error: %v", err)
	}
}

func TestLoad_KFactorEnv(t *testing.T) {
	t.Setenv("K_FACTOR", "1.5")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Policy.KFactor != 1.5 {
		t.Errorf("expected k 1.5, got %v", cfg.Policy.KFactor)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for k > 1")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("policy: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}
