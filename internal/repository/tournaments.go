package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"volleypro/ingestion/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

const tournamentColumns = `id, code, season, country_code, name, gender, event_logos,
	start_date, end_date, organizer_type, type, website, no, version,
	created_at, updated_at`

// TournamentRepository handles tournament database operations for one sport
type TournamentRepository struct {
	db    *Database
	sport models.Sport
}

// SaveBatch upserts every tournament by code inside a single transaction.
// Existing rows are fully overwritten. Any failure rolls back the whole batch.
func (r *TournamentRepository) SaveBatch(ctx context.Context, tournaments []*models.Tournament) (int, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, t := range tournaments {
		if err := r.upsert(ctx, tx, t); err != nil {
			return 0, fmt.Errorf("failed to save tournament %d (code=%s): %w", i, t.Code.String, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit tournaments: %w", err)
	}

	return len(tournaments), nil
}

// upsert looks the row up by code and inserts or overwrites it
func (r *TournamentRepository) upsert(ctx context.Context, tx pgx.Tx, t *models.Tournament) error {
	var id int
	err := tx.QueryRow(ctx,
		fmt.Sprintf(`SELECT id FROM %s WHERE code = $1`, r.sport.Table()),
		t.Code,
	).Scan(&id)

	if errors.Is(err, pgx.ErrNoRows) {
		return r.insert(ctx, tx, t)
	}
	if err != nil {
		return fmt.Errorf("failed to look up tournament: %w", err)
	}

	t.ID = id
	return r.update(ctx, tx, t)
}

func (r *TournamentRepository) insert(ctx context.Context, tx pgx.Tx, t *models.Tournament) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			code, season, country_code, name, gender, event_logos,
			start_date, end_date, organizer_type, type, website, no, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`, r.sport.Table())

	err := tx.QueryRow(
		ctx, query,
		t.Code, t.Season, t.CountryCode, t.Name, t.Gender, t.EventLogos,
		t.StartDate, t.EndDate, t.OrganizerType, t.Type, t.Website, t.No, t.Version,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert tournament: %w", err)
	}

	log.Debug().
		Str("sport", string(r.sport)).
		Int("id", t.ID).
		Str("code", t.Code.String).
		Msg("Tournament created")

	return nil
}

func (r *TournamentRepository) update(ctx context.Context, tx pgx.Tx, t *models.Tournament) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			code = $1,
			season = $2,
			country_code = $3,
			name = $4,
			gender = $5,
			event_logos = $6,
			start_date = $7,
			end_date = $8,
			organizer_type = $9,
			type = $10,
			website = $11,
			no = $12,
			version = $13,
			updated_at = NOW()
		WHERE id = $14
		RETURNING created_at, updated_at
	`, r.sport.Table())

	err := tx.QueryRow(
		ctx, query,
		t.Code, t.Season, t.CountryCode, t.Name, t.Gender, t.EventLogos,
		t.StartDate, t.EndDate, t.OrganizerType, t.Type, t.Website, t.No, t.Version,
		t.ID,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update tournament: %w", err)
	}

	return nil
}

// GetByCode retrieves a tournament by its natural key
func (r *TournamentRepository) GetByCode(ctx context.Context, code string) (*models.Tournament, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE code = $1`, tournamentColumns, r.sport.Table())

	t, err := scanTournament(r.db.Pool.QueryRow(ctx, query, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("tournament code=%s: %w", code, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}

	return t, nil
}

// EventFilter narrows List to a window of start dates
type EventFilter struct {
	// Year restricts to tournaments starting in that calendar year. Zero means
	// upcoming: start date today or later.
	Year int
}

// List retrieves tournaments matching the filter ordered by start date
func (r *TournamentRepository) List(ctx context.Context, filter EventFilter) ([]*models.Tournament, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE `, tournamentColumns, r.sport.Table())
	var args []any

	if filter.Year == 0 {
		query += `start_date >= CURRENT_DATE`
	} else {
		query += `start_date >= $1 AND start_date < $2`
		args = append(args,
			time.Date(filter.Year, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(filter.Year+1, time.January, 1, 0, 0, 0, 0, time.UTC),
		)
	}
	query += ` ORDER BY start_date ASC, code ASC`

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tournament: %w", err)
		}
		tournaments = append(tournaments, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tournaments: %w", err)
	}

	return tournaments, nil
}

// Count returns the total number of tournaments stored for the sport
func (r *TournamentRepository) Count(ctx context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.sport.Table())

	var count int
	if err := r.db.Pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tournaments: %w", err)
	}

	return count, nil
}

func scanTournament(row pgx.Row) (*models.Tournament, error) {
	var t models.Tournament
	err := row.Scan(
		&t.ID, &t.Code, &t.Season, &t.CountryCode, &t.Name, &t.Gender, &t.EventLogos,
		&t.StartDate, &t.EndDate, &t.OrganizerType, &t.Type, &t.Website, &t.No, &t.Version,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
