package models

import (
	"database/sql"
	"time"
)

// DateLayout is the only accepted feed date format
const DateLayout = "2006-01-02"

// Tournament is one persisted tournament row. Beach and volley tables share
// this shape.
type Tournament struct {
	ID            int            `db:"id"`
	Code          sql.NullString `db:"code"`
	Season        sql.NullString `db:"season"`
	CountryCode   sql.NullString `db:"country_code"`
	Name          sql.NullString `db:"name"`
	Gender        sql.NullString `db:"gender"`
	EventLogos    sql.NullString `db:"event_logos"`
	StartDate     sql.NullTime   `db:"start_date"`
	EndDate       sql.NullTime   `db:"end_date"`
	OrganizerType sql.NullString `db:"organizer_type"`
	Type          sql.NullString `db:"type"`
	Website       sql.NullString `db:"website"`
	No            sql.NullString `db:"no"`
	Version       sql.NullString `db:"version"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// TournamentInput is a tournament as it appears in the VIS feed. Every field
// comes from an XML attribute of the same name; a nil pointer means the
// attribute was absent.
type TournamentInput struct {
	Code          *string
	Season        *string
	CountryCode   *string
	Name          *string
	Gender        *string
	EventLogos    *string
	StartDate     *string
	EndDate       *string
	OrganizerType *string
	Type          *string
	WebSite       *string
	No            *string
	Version       *string
}

// ToTournament converts TournamentInput (from the feed) to a Tournament model.
// Coded fields go through the enumeration maps and dates are parsed strictly;
// anything missing or unrecognised becomes null.
func (ti *TournamentInput) ToTournament() *Tournament {
	return &Tournament{
		Code:          nullString(ti.Code),
		Season:        nullString(ti.Season),
		CountryCode:   nullString(ti.CountryCode),
		Name:          nullString(ti.Name),
		Gender:        GenderName(deref(ti.Gender)),
		EventLogos:    nullString(ti.EventLogos),
		StartDate:     ParseDate(deref(ti.StartDate)),
		EndDate:       ParseDate(deref(ti.EndDate)),
		OrganizerType: OrganizerTypeName(deref(ti.OrganizerType)),
		Type:          TournamentTypeName(deref(ti.Type)),
		Website:       nullString(ti.WebSite),
		No:            nullString(ti.No),
		Version:       nullString(ti.Version),
	}
}

// ParseDate parses a YYYY-MM-DD date. Empty or malformed input is null.
func ParseDate(s string) sql.NullTime {
	if s == "" {
		return sql.NullTime{}
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
