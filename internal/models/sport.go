package models

import (
	"fmt"
	"strings"
)

// Sport identifies one of the FIVB disciplines that gets ingested
type Sport string

const (
	SportBeach  Sport = "beach"
	SportVolley Sport = "volleyball"
)

// AllSports returns every ingested sport in a fixed order
func AllSports() []Sport {
	return []Sport{SportBeach, SportVolley}
}

// ParseSport parses a sport name as used by the CLI and the events endpoint
func ParseSport(s string) (Sport, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beach", "beach-volleyball":
		return SportBeach, nil
	case "volley", "volleyball":
		return SportVolley, nil
	default:
		return "", fmt.Errorf("unknown sport %q: use one of beach, volleyball", s)
	}
}

// Table returns the table holding this sport's tournaments
func (s Sport) Table() string {
	if s == SportBeach {
		return "beach_tournaments"
	}
	return "volley_tournaments"
}

// Label is the short prefix used in log lines
func (s Sport) Label() string {
	if s == SportBeach {
		return "Beach"
	}
	return "Volley"
}

// ElementNames lists the XML element names that carry one tournament
func (s Sport) ElementNames() []string {
	if s == SportBeach {
		return []string{"BeachTournament", "BeachVolleyballTournament"}
	}
	return []string{"VolleyballTournament", "VolleyTournament"}
}

// FeedRequest describes the VIS XmlRequest for a sport
type FeedRequest struct {
	Type     string
	Fields   string
	Statuses string
}

// FeedRequest returns the VIS request parameters for this sport
func (s Sport) FeedRequest() FeedRequest {
	if s == SportBeach {
		return FeedRequest{
			Type:     "GetBeachTournamentList",
			Fields:   "Code Season CountryCode Name Gender EventLogos StartDate EndDate OrganizerType Type WebSite No Version",
			Statuses: "0 1 6 7 8 9",
		}
	}
	return FeedRequest{
		Type:     "GetVolleyTournamentList",
		Fields:   "logos code City CountryCode StartDate EndDate EventLogos Gender Name OrganizerType Season ShortNameOrName Type WebSite",
		Statuses: "1 2 3 4 5",
	}
}
