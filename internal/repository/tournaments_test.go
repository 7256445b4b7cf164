package repository

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"volleypro/ingestion/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ns(s string) sql.NullString { return sql.NullString{String: s, Valid: true} }

func date(y int, m time.Month, d int) sql.NullTime {
	return sql.NullTime{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

func TestTournamentRepository_InsertAndGet(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	b1 := &models.Tournament{
		Code:      ns("B1"),
		Gender:    ns("Male"),
		Type:      ns("Olympic games"),
		StartDate: date(2024, time.May, 1),
	}

	saved, err := db.Beach.SaveBatch(ctx, []*models.Tournament{b1})
	require.NoError(t, err, "Should save batch")
	assert.Equal(t, 1, saved)

	got, err := db.Beach.GetByCode(ctx, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Male", got.Gender.String)
	assert.Equal(t, "Olympic games", got.Type.String)
	assert.True(t, got.StartDate.Valid)
	assert.Equal(t, "2024-05-01", got.StartDate.Time.Format(models.DateLayout))
	assert.False(t, got.EndDate.Valid)
	assert.False(t, got.Season.Valid)

	// Tables are independent per sport
	_, err = db.Volley.GetByCode(ctx, "B1")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestTournamentRepository_IdempotentRerun(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	batch := func() []*models.Tournament {
		return []*models.Tournament{
			{Code: ns("V1"), Name: ns("World Championship"), StartDate: date(2025, time.September, 12)},
			{Code: ns("V2"), Name: ns("Nations League")},
		}
	}

	_, err := db.Volley.SaveBatch(ctx, batch())
	require.NoError(t, err)
	first, err := db.Volley.GetByCode(ctx, "V1")
	require.NoError(t, err)

	_, err = db.Volley.SaveBatch(ctx, batch())
	require.NoError(t, err)

	count, err := db.Volley.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "Second run must not duplicate rows")

	second, err := db.Volley.GetByCode(ctx, "V1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "Row should be updated in place")
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, first.StartDate, second.StartDate)
}

func TestTournamentRepository_FullOverwrite(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	original := &models.Tournament{
		Code:          ns("B7"),
		Season:        ns("2023"),
		CountryCode:   ns("ITA"),
		Name:          ns("Old name"),
		Gender:        ns("Female"),
		EventLogos:    ns("old.png"),
		StartDate:     date(2023, time.June, 1),
		EndDate:       date(2023, time.June, 4),
		OrganizerType: ns("FIVB"),
		Type:          ns("Open"),
		Website:       ns("https://old.example"),
		No:            ns("1"),
		Version:       ns("1"),
	}
	_, err := db.Beach.SaveBatch(ctx, []*models.Tournament{original})
	require.NoError(t, err)

	// New feed values: some fields changed, some now absent
	replacement := &models.Tournament{
		Code:      ns("B7"),
		Season:    ns("2024"),
		Name:      ns("New name"),
		Gender:    ns("Male"),
		StartDate: date(2024, time.June, 2),
		Type:      ns("Challenger"),
		Version:   ns("2"),
	}
	_, err = db.Beach.SaveBatch(ctx, []*models.Tournament{replacement})
	require.NoError(t, err)

	got, err := db.Beach.GetByCode(ctx, "B7")
	require.NoError(t, err)
	assert.Equal(t, ns("2024"), got.Season)
	assert.Equal(t, ns("New name"), got.Name)
	assert.Equal(t, ns("Male"), got.Gender)
	assert.Equal(t, ns("Challenger"), got.Type)
	assert.Equal(t, ns("2"), got.Version)
	assert.Equal(t, "2024-06-02", got.StartDate.Time.Format(models.DateLayout))

	// Full replace, not merge: fields absent from the new record are cleared
	assert.False(t, got.CountryCode.Valid)
	assert.False(t, got.EventLogos.Valid)
	assert.False(t, got.EndDate.Valid)
	assert.False(t, got.OrganizerType.Valid)
	assert.False(t, got.Website.Valid)
	assert.False(t, got.No.Valid)
}

func TestTournamentRepository_DuplicateCodesInBatch(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	batch := []*models.Tournament{
		{Code: ns("B1"), Name: ns("first")},
		{Code: ns("B1"), Name: ns("last")},
	}
	saved, err := db.Beach.SaveBatch(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, saved)

	count, err := db.Beach.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := db.Beach.GetByCode(ctx, "B1")
	require.NoError(t, err)
	assert.Equal(t, "last", got.Name.String, "Later duplicate wins")
}

func TestTournamentRepository_BatchAtomicity(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	_, err := db.Volley.SaveBatch(ctx, []*models.Tournament{{Code: ns("EXISTING"), Name: ns("before")}})
	require.NoError(t, err)

	// Third record has no code and violates NOT NULL
	batch := []*models.Tournament{
		{Code: ns("N1")},
		{Code: ns("EXISTING"), Name: ns("after")},
		{Name: ns("missing code")},
		{Code: ns("N2")},
	}
	saved, err := db.Volley.SaveBatch(ctx, batch)
	require.Error(t, err, "Batch with an invalid record should fail")
	assert.Equal(t, 0, saved)

	count, err := db.Volley.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "No record from the failed batch may be committed")

	_, err = db.Volley.GetByCode(ctx, "N1")
	assert.True(t, errors.Is(err, ErrNotFound))

	existing, err := db.Volley.GetByCode(ctx, "EXISTING")
	require.NoError(t, err)
	assert.Equal(t, "before", existing.Name.String, "Updates from the failed batch are rolled back")
}

func TestTournamentRepository_List(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	now := time.Now().UTC()
	future := sql.NullTime{Time: time.Date(now.Year()+1, time.March, 1, 0, 0, 0, 0, time.UTC), Valid: true}

	_, err := db.Beach.SaveBatch(ctx, []*models.Tournament{
		{Code: ns("Y2024B"), StartDate: date(2024, time.August, 1)},
		{Code: ns("Y2024A"), StartDate: date(2024, time.February, 1)},
		{Code: ns("Y2023"), StartDate: date(2023, time.December, 31)},
		{Code: ns("FUTURE"), StartDate: future},
		{Code: ns("NODATE")},
	})
	require.NoError(t, err)

	in2024, err := db.Beach.List(ctx, EventFilter{Year: 2024})
	require.NoError(t, err)
	require.Len(t, in2024, 2)
	assert.Equal(t, "Y2024A", in2024[0].Code.String, "Ordered by start date")
	assert.Equal(t, "Y2024B", in2024[1].Code.String)

	upcoming, err := db.Beach.List(ctx, EventFilter{})
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "FUTURE", upcoming[0].Code.String)
}

func TestTournamentRepository_GetNotFound(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	_, err := db.Beach.GetByCode(ctx, "NOPE")
	assert.Error(t, err, "Should return error for non-existent tournament")
	assert.True(t, errors.Is(err, ErrNotFound))
}
