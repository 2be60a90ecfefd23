package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TenderSentinel/internal/config"
	"TenderSentinel/internal/model"
	"TenderSentinel/internal/notifier"
	"TenderSentinel/internal/pricing"
	"TenderSentinel/internal/scheduler"
	"TenderSentinel/internal/tender"

	"github.com/joho/godotenv"
)

const usage = `Usage: tender <command> [flags]

Commands:
  evaluate   cost a tender and score its menu
  simulate   run a what-if pass over a saved evaluation
  prices     record or list ingredient price observations
  watch      send a scheduled digest and answer Telegram commands`

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[WARN] load .env: %v", err)
	}

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	var runErr error
	switch os.Args[1] {
	case "evaluate":
		runErr = runEvaluate(cfg, os.Args[2:])
	case "simulate":
		runErr = runSimulate(cfg, os.Args[2:])
	case "prices":
		runErr = runPrices(cfg, os.Args[2:])
	case "watch":
		runErr = runWatch(cfg)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

func runEvaluate(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("evaluate", flag.ExitOnError)
	var (
		menuFile   = fs.String("menu", cfg.Tender.MenuFile, "Path to the extracted menu text")
		recipeFile = fs.String("recipe", cfg.Tender.RecipeFile, "Recipe YAML used to price material cost (optional)")
		material   = fs.Float64("material", cfg.Tender.Offer.MaterialCost, "Material cost, ignored when -recipe is set")
		labor      = fs.Float64("labor", cfg.Tender.Offer.LaborCost, "Labor cost")
		overhead   = fs.Float64("overhead", cfg.Tender.Offer.OverheadRate, "Overhead rate in percent")
		profit     = fs.Float64("profit", cfg.Tender.Offer.ProfitRate, "Profit rate in percent")
		asJSON     = fs.Bool("json", false, "Print the evaluation as JSON")
		notify     = fs.Bool("notify", false, "Also send the report to Telegram")
	)
	fs.Parse(args)

	in := model.OfferInput{MaterialCost: *material, LaborCost: *labor, OverheadRate: *overhead, ProfitRate: *profit}
	ctx := context.Background()

	ev, err := evaluateFiles(ctx, cfg, *menuFile, *recipeFile, in)
	if err != nil {
		return err
	}

	if *asJSON {
		if err := printJSON(ev); err != nil {
			return err
		}
	} else {
		fmt.Println(notifier.FormatReport(&ev.Menu, &ev.Offer, &ev.Reasoning))
	}

	if *notify {
		if err := cfg.ValidateNotifier(); err != nil {
			return err
		}
		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		if err := tn.SendWithRetry(ctx, notifier.FormatReport(&ev.Menu, &ev.Offer, &ev.Reasoning), 3); err != nil {
			return fmt.Errorf("send report: %w", err)
		}
		log.Println("[INFO] report sent to Telegram")
	}
	return nil
}

// evaluateFiles reads the menu text, prices the recipe when one is given, and evaluates.
func evaluateFiles(ctx context.Context, cfg *config.Config, menuFile, recipeFile string, in model.OfferInput) (*tender.Evaluation, error) {
	if menuFile == "" {
		return nil, errors.New("menu file is required (-menu or tender.menu_file)")
	}
	text, err := os.ReadFile(menuFile)
	if err != nil {
		return nil, fmt.Errorf("read menu: %w", err)
	}

	if recipeFile != "" {
		material, err := recipeMaterialCost(ctx, cfg, recipeFile)
		if err != nil {
			return nil, err
		}
		in.MaterialCost = material
	}

	return tender.Evaluate(string(text), in, cfg.Policy)
}

func recipeMaterialCost(ctx context.Context, cfg *config.Config, recipeFile string) (float64, error) {
	recipe, err := pricing.LoadRecipe(recipeFile)
	if err != nil {
		return 0, err
	}

	var sources []pricing.PriceSource
	if _, err := os.Stat(cfg.Database.SQLitePath); err == nil {
		src, err := pricing.NewSQLiteSource(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] open price database, using static prices only: %v", err)
		} else {
			defer src.Close()
			sources = append(sources, src)
		}
	}
	if len(cfg.Prices) > 0 {
		sources = append(sources, pricing.NewStaticSource(cfg.Prices))
	}
	if len(sources) == 0 {
		return 0, errors.New("no price source configured (database.sqlite_path or prices)")
	}

	total, lines, err := pricing.NewCosting(sources...).MaterialCost(ctx, recipe)
	if err != nil {
		return 0, fmt.Errorf("material cost: %w", err)
	}
	for _, l := range lines {
		log.Printf("[INFO] %s: %.3f × %.2f = %.2f TL (%s)", l.Product, l.Quantity, l.UnitPrice, l.Cost, l.Source)
	}
	return total, nil
}

func runSimulate(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	var (
		inputFile   = fs.String("input", "", "JSON file with menu, offer and optional adjustments")
		protein     = fs.Float64("protein", 0, "Protein share delta in points")
		carb        = fs.Float64("carb", 0, "Carbohydrate share delta in points")
		profitDelta = fs.Float64("profit-delta", 0, "Profit rate delta in points")
		asJSON      = fs.Bool("json", false, "Print the result as JSON")
	)
	fs.Parse(args)

	if *inputFile == "" {
		return errors.New("-input is required")
	}
	data, err := os.ReadFile(*inputFile)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	in, err := model.DecodeSimulationInput(data)
	if err != nil {
		return err
	}

	// Flags given on the command line override deltas from the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "protein":
			in.Adjustments.ProteinDelta = model.Float(*protein)
		case "carb":
			in.Adjustments.CarbDelta = model.Float(*carb)
		case "profit-delta":
			in.Adjustments.ProfitRateDelta = model.Float(*profitDelta)
		}
	})

	res, err := tender.Simulate(in, cfg.Policy)
	if err != nil {
		return err
	}
	if *asJSON {
		return printJSON(res)
	}
	fmt.Println(notifier.FormatSimulation(nil, res))
	return nil
}

func runPrices(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: tender prices add|list")
	}
	src, err := pricing.NewSQLiteSource(cfg.Database.SQLitePath)
	if err != nil {
		return err
	}
	defer src.Close()
	ctx := context.Background()

	switch args[0] {
	case "add":
		fs := flag.NewFlagSet("prices add", flag.ExitOnError)
		product := fs.String("product", "", "Product name")
		price := fs.Float64("price", 0, "Averaged unit price")
		source := fs.String("source", "manual", "Where the price came from")
		fs.Parse(args[1:])
		if err := src.Record(ctx, *product, *price, *source, time.Now()); err != nil {
			return fmt.Errorf("record price: %w", err)
		}
		log.Printf("[INFO] recorded %s = %.2f", *product, *price)
		return nil
	case "list":
		products, err := src.Products(ctx)
		if err != nil {
			return err
		}
		for _, p := range products {
			fmt.Printf("%-24s %10.2f TL  (%d kayıt, son %s)\n", p.Product, p.AveragePrice, p.Samples, p.LastSeen.Format("2006-01-02"))
		}
		return nil
	default:
		return fmt.Errorf("unknown prices command %q", args[0])
	}
}

func runWatch(cfg *config.Config) error {
	if err := cfg.ValidateNotifier(); err != nil {
		return err
	}
	log.Println("[INFO] TenderSentinel watch starting...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	eval := func(ctx context.Context) (*tender.Evaluation, error) {
		return evaluateFiles(ctx, cfg, cfg.Tender.MenuFile, cfg.Tender.RecipeFile, cfg.Tender.Offer)
	}

	sched := scheduler.NewScheduler(ctx, eval, tn, cfg.Policy)
	if err := sched.RegisterDigest(cfg.Schedule.DigestCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, sending digest now")
		go sched.RunDigestNow()
	}

	log.Println("[INFO] TenderSentinel is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
