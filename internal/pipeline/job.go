// Package pipeline runs the fetch, map and write steps for one sport.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"volleypro/ingestion/internal/mapper"
	"volleypro/ingestion/internal/metrics"
	"volleypro/ingestion/internal/models"

	"github.com/rs/zerolog/log"
)

// Fetcher returns the raw feed document for a sport
type Fetcher interface {
	FetchTournaments(ctx context.Context, sport models.Sport) ([]byte, error)
}

// Store persists one batch of tournaments atomically
type Store interface {
	SaveBatch(ctx context.Context, tournaments []*models.Tournament) (int, error)
}

// Job is the stateless ingestion run for one sport
type Job struct {
	sport   models.Sport
	fetcher Fetcher
	store   Store
}

// NewJob creates the ingestion job for a sport
func NewJob(sport models.Sport, fetcher Fetcher, store Store) *Job {
	return &Job{sport: sport, fetcher: fetcher, store: store}
}

// Name is the scheduler id of the job
func (j *Job) Name() string {
	return string(j.sport) + "_job"
}

// Run fetches, maps and writes the sport's tournaments once. Steps run
// strictly in sequence; the first failure ends the run.
func (j *Job) Run(ctx context.Context) (int, error) {
	start := time.Now()
	logger := log.With().Str("sport", string(j.sport)).Logger()

	saved, err := j.run(ctx)
	duration := time.Since(start)
	if err != nil {
		metrics.RecordSync(string(j.sport), "error", 0, duration.Seconds())
		logger.Error().
			Err(err).
			Dur("duration", duration).
			Msgf("[%s] Error: %v", j.sport.Label(), err)
		return 0, err
	}

	metrics.RecordSync(string(j.sport), "success", saved, duration.Seconds())
	logger.Info().
		Int("count", saved).
		Dur("duration", duration).
		Msgf("[%s] Saved %d tournaments", j.sport.Label(), saved)

	return saved, nil
}

func (j *Job) run(ctx context.Context) (int, error) {
	body, err := j.fetcher.FetchTournaments(ctx, j.sport)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch tournaments: %w", err)
	}

	tournaments, err := mapper.ParseTournaments(j.sport, body)
	if err != nil {
		return 0, err
	}

	saved, err := j.store.SaveBatch(ctx, tournaments)
	if err != nil {
		return 0, fmt.Errorf("failed to store tournaments: %w", err)
	}

	return saved, nil
}
