package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Runner is one schedulable ingestion job
type Runner interface {
	Name() string
	Run(ctx context.Context) (int, error)
}

// Scheduler runs every job on a fixed interval, plus once right at start.
// A job never overlaps itself; different jobs run independently.
type Scheduler struct {
	interval       time.Duration
	runImmediately bool
	jobs           []Runner
	cron           *cron.Cron
	entries        map[string]cron.EntryID
	wg             sync.WaitGroup
	mu             map[string]*sync.Mutex
}

// NewScheduler creates a new scheduler instance
func NewScheduler(interval time.Duration, runImmediately bool, jobs ...Runner) *Scheduler {
	logger := cronLogger{}
	mu := make(map[string]*sync.Mutex, len(jobs))
	for _, j := range jobs {
		mu[j.Name()] = &sync.Mutex{}
	}
	return &Scheduler{
		interval:       interval,
		runImmediately: runImmediately,
		jobs:           jobs,
		cron:           cron.New(cron.WithLogger(logger), cron.WithChain(cron.Recover(logger))),
		entries:        make(map[string]cron.EntryID, len(jobs)),
		mu:             mu,
	}
}

// Start schedules all jobs and starts the scheduler
func (s *Scheduler) Start(ctx context.Context) error {
	log.Info().Msg("Scheduler starting...")

	spec := fmt.Sprintf("@every %s", s.interval)
	for _, job := range s.jobs {
		job := job
		id, err := s.cron.AddFunc(spec, func() { s.runJob(ctx, job) })
		if err != nil {
			return fmt.Errorf("failed to schedule %s: %w", job.Name(), err)
		}
		s.entries[job.Name()] = id
		log.Info().
			Str("job", job.Name()).
			Dur("interval", s.interval).
			Msg("Job scheduled")
	}

	s.cron.Start()

	if s.runImmediately {
		for _, job := range s.jobs {
			job := job
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				s.runJob(ctx, job)
			}()
		}
	}

	return nil
}

// Stop stops the scheduler and waits for running jobs to return
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler...")

	<-s.cron.Stop().Done()
	s.wg.Wait()

	log.Info().Msg("Scheduler stopped")
}

// NextRun returns when a job fires next, zero if it is not scheduled
func (s *Scheduler) NextRun(name string) time.Time {
	id, ok := s.entries[name]
	if !ok {
		return time.Time{}
	}
	return s.cron.Entry(id).Next
}

// runJob runs a job unless a previous run of the same job is still going
func (s *Scheduler) runJob(ctx context.Context, job Runner) {
	mu := s.mu[job.Name()]
	if !mu.TryLock() {
		log.Warn().Str("job", job.Name()).Msg("Previous run still in progress, skipping")
		return
	}
	defer mu.Unlock()

	// Errors are logged by the job itself
	_, _ = job.Run(ctx)
}

// cronLogger routes cron's internal logging to zerolog
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(keysAndValues).Msg(msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
