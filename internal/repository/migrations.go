package repository

import (
	"context"
	"fmt"

	"volleypro/ingestion/internal/models"

	"github.com/rs/zerolog/log"
)

const createTournamentTable = `
	CREATE TABLE IF NOT EXISTS %s (
		id             SERIAL PRIMARY KEY,
		code           VARCHAR NOT NULL UNIQUE,
		season         VARCHAR,
		country_code   VARCHAR,
		name           VARCHAR,
		gender         VARCHAR,
		event_logos    VARCHAR,
		start_date     DATE,
		end_date       DATE,
		organizer_type VARCHAR,
		type           VARCHAR,
		website        VARCHAR,
		no             VARCHAR,
		version        VARCHAR,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// Migrate creates the tournament tables if they are missing. It never drops or
// alters existing data and is safe to run on every start.
func (db *Database) Migrate(ctx context.Context) error {
	for _, sport := range models.AllSports() {
		if _, err := db.Pool.Exec(ctx, fmt.Sprintf(createTournamentTable, sport.Table())); err != nil {
			return fmt.Errorf("failed to create %s: %w", sport.Table(), err)
		}
		log.Debug().Str("table", sport.Table()).Msg("Table ensured")
	}

	log.Info().Msg("Schema up to date")
	return nil
}

// Reset drops and recreates the tournament tables, discarding all stored rows
func (db *Database) Reset(ctx context.Context) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, sport := range models.AllSports() {
		if _, err := tx.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", sport.Table())); err != nil {
			return fmt.Errorf("failed to drop %s: %w", sport.Table(), err)
		}
		if _, err := tx.Exec(ctx, fmt.Sprintf(createTournamentTable, sport.Table())); err != nil {
			return fmt.Errorf("failed to create %s: %w", sport.Table(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit reset: %w", err)
	}

	log.Warn().Msg("Tournament tables dropped and recreated")
	return nil
}
