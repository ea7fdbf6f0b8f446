package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CycleRunner is the job the scheduler drives on every tick.
type CycleRunner interface {
	RunCycle(ctx context.Context)
}

type PollScheduler struct {
	cronEngine *cron.Cron
	chain      cron.Chain
	runner     CycleRunner
	logger     *logrus.Entry
	period     time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex // held for the duration of a cycle
	stopped bool
}

// NewPollScheduler runs runner every period. Ticks that fire while a cycle is still
// running are skipped, so cycles never overlap.
func NewPollScheduler(runner CycleRunner, period time.Duration, logger *logrus.Entry) *PollScheduler {
	ctx, cancel := context.WithCancel(context.Background())
	cronLogger := cron.PrintfLogger(logger)
	return &PollScheduler{
		cronEngine: cron.New(
			cron.WithLocation(time.Local), // Use server's local time for cron
			cron.WithLogger(cronLogger),
		),
		chain:  cron.NewChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		runner: runner,
		logger: logger,
		period: period,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start registers the poll job, triggers the first cycle right away and starts the engine.
func (s *PollScheduler) Start() error {
	s.logger.WithField("period", s.period.String()).Info("Starting poll scheduler...")

	// One wrapped job for both the immediate and the periodic runs, so they share
	// the skip-if-still-running guard.
	job := s.chain.Then(cron.FuncJob(s.runCycle))

	if _, err := s.cronEngine.AddJob(fmt.Sprintf("@every %s", s.period), job); err != nil {
		return fmt.Errorf("could not add poll job: %w", err)
	}

	go job.Run()
	s.cronEngine.Start()
	s.logger.Info("Poll scheduler started.")
	return nil
}

func (s *PollScheduler) runCycle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.logger.Debug("Poll job triggered.")
	s.runner.RunCycle(s.ctx)
}

// Stop halts the scheduler and waits for a running cycle to finish.
func (s *PollScheduler) Stop() {
	s.logger.Info("Stopping poll scheduler...")
	s.cancel()
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown

	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	s.logger.Info("Poll scheduler gracefully stopped.")
}
