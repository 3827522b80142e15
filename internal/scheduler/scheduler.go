package scheduler

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/Dev9710/bot-market/internal/collector"
	"github.com/Dev9710/bot-market/internal/fund"
	"github.com/Dev9710/bot-market/internal/notifier"
	"github.com/Dev9710/bot-market/internal/strategy"
)

// Scheduler re-evaluates a set of tokens on a cron schedule and writes a
// report whenever a token has received a new alert since the last run.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Engine    *strategy.Engine
	Capital   float64
	Out       io.Writer
	Ctx       context.Context

	mu     sync.Mutex
	tokens []string
	seen   map[string]int
}

// NewScheduler creates a new Scheduler. Reports are written to out.
func NewScheduler(ctx context.Context, col *collector.Collector, engine *strategy.Engine, capital float64, out io.Writer) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Engine:    engine,
		Capital:   capital,
		Out:       out,
		Ctx:       ctx,
		seen:      make(map[string]int),
	}
}

// Register schedules the evaluation of tokens. spec uses the six-field
// cron syntax with seconds.
func (s *Scheduler) Register(spec string, tokens []string) error {
	if len(tokens) == 0 {
		return errors.New("no tokens to watch")
	}
	if _, err := s.Cron.AddFunc(spec, s.evaluateTask); err != nil {
		return errors.Wrapf(err, "register watch task %q", spec)
	}

	s.mu.Lock()
	s.tokens = append(s.tokens, tokens...)
	s.mu.Unlock()
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info("scheduler stopped")
}

// RunNow executes one evaluation round immediately.
func (s *Scheduler) RunNow() {
	s.evaluateTask()
}

func (s *Scheduler) evaluateTask() {
	s.mu.Lock()
	tokens := append([]string(nil), s.tokens...)
	s.mu.Unlock()

	for _, token := range tokens {
		if err := s.Ctx.Err(); err != nil {
			return
		}
		if err := s.evaluate(token); err != nil {
			log.WithField("token", token).Errorf("evaluate: %v", err)
		}
	}
}

// evaluate reports a token only when its alert count grew since the last run.
func (s *Scheduler) evaluate(token string) error {
	snap, err := s.Collector.Collect(s.Ctx, token)
	if errors.Is(err, collector.ErrNoAlerts) {
		log.WithField("token", token).Debug("no alerts yet")
		return nil
	}
	if err != nil {
		return err
	}

	count := len(snap.Previous) + 1
	s.mu.Lock()
	prev := s.seen[token]
	s.seen[token] = count
	s.mu.Unlock()
	if count <= prev {
		return nil
	}

	report := s.Engine.Evaluate(snap)
	alloc := fund.Allocate(s.Capital, report.Plan)
	log.WithFields(log.Fields{
		"token":  token,
		"alerts": count,
		"score":  report.Score.Score,
		"action": report.Recommendation.Action,
	}).Info("new alert evaluated")

	_, err = fmt.Fprintf(s.Out, "%s\n", notifier.FormatReport(report, alloc))
	return errors.Wrap(err, "write report")
}

// Seen returns the alert count last reported for token.
func (s *Scheduler) Seen(token string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen[token]
}
