package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"TenderSentinel/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Tender struct {
		MenuFile   string           `yaml:"menu_file"`
		RecipeFile string           `yaml:"recipe_file"`
		Offer      model.OfferInput `yaml:"offer"`
	} `yaml:"tender"`
	Policy   model.Policy       `yaml:"policy"`
	Prices   map[string]float64 `yaml:"prices"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		DigestCron string `yaml:"digest_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{Policy: model.DefaultPolicy()}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("PRICES_SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_DIGEST"); v != "" {
		cfg.Schedule.DigestCron = v
	}
	if v := os.Getenv("K_FACTOR"); v != "" {
		var k float64
		if _, err := fmt.Sscanf(v, "%f", &k); err == nil {
			cfg.Policy.KFactor = k
		}
	}

	// Defaults
	if cfg.Policy.KFactor == 0 {
		cfg.Policy.KFactor = model.DefaultKFactor
	}
	if cfg.Policy.Macro == (model.MacroThresholds{}) {
		cfg.Policy.Macro = model.DefaultMacroThresholds()
	}
	if cfg.Schedule.DigestCron == "" {
		cfg.Schedule.DigestCron = "0 0 8 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/prices.db"
	}

	return cfg, nil
}

// Validate checks policy ranges.
func (c *Config) Validate() error {
	p := c.Policy
	if p.KFactor <= 0 || p.KFactor > 1 {
		return fmt.Errorf("policy.k_factor must be in (0, 1], got %v", p.KFactor)
	}
	if p.Macro.MinProtein < 0 || p.Macro.MaxCarb <= 0 || p.Macro.MaxFat <= 0 {
		return fmt.Errorf("policy.macro thresholds must be positive")
	}
	if p.MinProfitShare < 0 {
		return fmt.Errorf("policy.min_profit_share must be non-negative")
	}
	if p.NearThresholdPct < 0 {
		return fmt.Errorf("policy.near_threshold_pct must be non-negative")
	}
	if c.Tender.Offer.MaterialCost < 0 || c.Tender.Offer.LaborCost < 0 {
		return fmt.Errorf("tender.offer costs must be non-negative")
	}
	return nil
}

// ValidateNotifier checks the fields needed to deliver reports.
func (c *Config) ValidateNotifier() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}
