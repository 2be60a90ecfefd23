package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"TenderSentinel/internal/model"
	"TenderSentinel/internal/notifier"
	"TenderSentinel/internal/tender"

	"github.com/robfig/cron/v3"
)

// EvaluateFunc produces a fresh evaluation, re-reading menu and prices.
type EvaluateFunc func(ctx context.Context) (*tender.Evaluation, error)

// Sender delivers a formatted report.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs the periodic tender digest and answers chat commands.
type Scheduler struct {
	Cron     *cron.Cron
	Evaluate EvaluateFunc
	Notifier Sender
	Policy   model.Policy
	Ctx      context.Context

	mu   sync.Mutex
	last *tender.Evaluation
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, eval EvaluateFunc, sender Sender, p model.Policy) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Evaluate: eval,
		Notifier: sender,
		Policy:   p,
		Ctx:      ctx,
	}
}

// RegisterDigest registers the digest task on a 6-field cron spec.
func (s *Scheduler) RegisterDigest(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunDigestNow executes the digest task immediately.
func (s *Scheduler) RunDigestNow() {
	s.digestTask()
}

func (s *Scheduler) digestTask() {
	log.Println("[INFO] running tender digest")
	report, err := s.report(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] digest evaluate: %v", err)
		s.trySend(fmt.Sprintf("❌ İhale değerlendirmesi başarısız: %v", err))
		return
	}
	s.trySend(report)
}

func (s *Scheduler) report(ctx context.Context) (string, error) {
	ev, err := s.Evaluate(ctx)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.last = ev
	s.mu.Unlock()
	return notifier.FormatReport(&ev.Menu, &ev.Offer, &ev.Reasoning), nil
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	switch fields[0] {
	case "/rapor", "rapor":
		report, err := s.report(ctx)
		if err != nil {
			return fmt.Sprintf("❌ Değerlendirme başarısız: %v", err)
		}
		return report
	case "/simule", "simule":
		return s.simulate(fields[1:])
	default:
		return helpText
	}
}

const helpText = "Komutlar:\n• /rapor\n• /simule protein=+5 karb=-5 kar=+2"

func (s *Scheduler) simulate(args []string) string {
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()
	if last == nil {
		return "Önce /rapor çalıştırın"
	}

	adj, err := ParseAdjustments(args)
	if err != nil {
		return fmt.Sprintf("❌ %v\n\n%s", err, helpText)
	}
	res, err := tender.Simulate(&model.SimulationInput{Menu: &last.Menu, Offer: &last.Offer, Adjustments: adj}, s.Policy)
	if err != nil {
		return fmt.Sprintf("❌ Simülasyon başarısız: %v", err)
	}
	return notifier.FormatSimulation(&last.Reasoning, res)
}

// ParseAdjustments reads key=value deltas: protein, karb|carb, kar|profit.
func ParseAdjustments(args []string) (model.Adjustments, error) {
	var adj model.Adjustments
	for _, a := range args {
		key, raw, ok := strings.Cut(a, "=")
		if !ok {
			return adj, fmt.Errorf("geçersiz parametre: %s", a)
		}
		v, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
		if err != nil {
			return adj, fmt.Errorf("geçersiz sayı: %s", a)
		}
		switch strings.ToLower(key) {
		case "protein":
			adj.ProteinDelta = model.Float(v)
		case "karb", "carb":
			adj.CarbDelta = model.Float(v)
		case "kar", "kâr", "profit":
			adj.ProfitRateDelta = model.Float(v)
		default:
			return adj, fmt.Errorf("bilinmeyen parametre: %s", key)
		}
	}
	return adj, nil
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
