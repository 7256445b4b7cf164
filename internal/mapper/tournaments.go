// Package mapper turns raw VIS feed documents into tournament records.
package mapper

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"volleypro/ingestion/internal/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"
)

// ErrNoDocument is returned when the body holds no root element
var ErrNoDocument = errors.New("feed body is not an XML document")

// ParseTournaments decodes every tournament element of the sport, at any depth
// and including elements nested in one another, in document order.
// Attribute-level problems never fail the parse; only a body that is not a
// single well-formed XML document does.
func ParseTournaments(sport models.Sport, body []byte) ([]*models.Tournament, error) {
	names := make(map[string]struct{})
	for _, n := range sport.ElementNames() {
		names[n] = struct{}{}
	}

	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.Strict = true
	dec.CharsetReader = charset.NewReaderLabel

	tournaments := make([]*models.Tournament, 0)
	depth, roots := 0, 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s feed: %w", sport, err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
				if roots > 1 {
					return nil, fmt.Errorf("failed to parse %s feed: second root element <%s>", sport, el.Name.Local)
				}
			}
			depth++

			if _, ok := names[el.Name.Local]; ok {
				tournaments = append(tournaments, inputFromAttrs(el.Attr).ToTournament())
			}
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(el)) > 0 {
				return nil, fmt.Errorf("failed to parse %s feed: text outside root element", sport)
			}
		}
	}

	if roots == 0 {
		return nil, fmt.Errorf("failed to parse %s feed: %w", sport, ErrNoDocument)
	}

	log.Debug().
		Str("sport", string(sport)).
		Int("count", len(tournaments)).
		Msg("Feed parsed")

	return tournaments, nil
}

// inputFromAttrs maps the attributes of one tournament element
func inputFromAttrs(attrs []xml.Attr) *models.TournamentInput {
	var in models.TournamentInput
	for _, a := range attrs {
		v := a.Value
		switch a.Name.Local {
		case "Code":
			in.Code = &v
		case "Season":
			in.Season = &v
		case "CountryCode":
			in.CountryCode = &v
		case "Name":
			in.Name = &v
		case "Gender":
			in.Gender = &v
		case "EventLogos":
			in.EventLogos = &v
		case "StartDate":
			in.StartDate = &v
		case "EndDate":
			in.EndDate = &v
		case "OrganizerType":
			in.OrganizerType = &v
		case "Type":
			in.Type = &v
		case "WebSite":
			in.WebSite = &v
		case "No":
			in.No = &v
		case "Version":
			in.Version = &v
		}
	}
	return &in
}
