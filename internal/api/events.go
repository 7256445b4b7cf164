package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"volleypro/ingestion/internal/metrics"
	"volleypro/ingestion/internal/models"
	"volleypro/ingestion/internal/repository"

	"github.com/rs/zerolog/log"
)

// Event is one tournament as served by /events. Field names are the ones the
// mobile client reads.
type Event struct {
	Season        *int   `json:"season,omitempty"`
	CountryCode   string `json:"countrycode"`
	Name          string `json:"name"`
	Gender        string `json:"gender"`
	StartDate     string `json:"startdate"`
	EndDate       string `json:"enddate"`
	OrganizerType string `json:"orangizertype"`
	Type          string `json:"type"`
	Website       string `json:"website"`
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type eventsHandler struct {
	events map[models.Sport]EventLister
	cache  ResponseCache
}

func (h *eventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sport := models.Sport(q.Get("sport"))
	lister, ok := h.events[sport]
	if !ok || (sport != models.SportBeach && sport != models.SportVolley) {
		respondWithJSON(w, http.StatusBadRequest, errorResponse{
			Error: "Invalid sport. Use one of: beach, volleyball",
		})
		return
	}

	rawYear := "upcoming"
	if q.Has("year") {
		rawYear = q.Get("year")
	}
	filter, err := parseYear(rawYear)
	if err != nil {
		respondWithJSON(w, http.StatusBadRequest, errorResponse{
			Error: "Invalid year. Use 'upcoming' or YYYY.",
		})
		return
	}

	ctx := r.Context()
	key := cacheKey(sport, filter)
	if h.cache != nil {
		data, hit, err := h.cache.Get(ctx, key)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		}
		if hit {
			metrics.RecordCacheHit()
			writeJSON(w, http.StatusOK, data)
			return
		}
		metrics.RecordCacheMiss()
	}

	tournaments, err := lister.List(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("sport", string(sport)).Msg("Failed to query events")
		respondWithJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to query events"})
		return
	}

	events := make([]Event, 0, len(tournaments))
	for _, t := range tournaments {
		events = append(events, toEvent(t))
	}

	data, err := json.Marshal(events)
	if err != nil {
		respondWithJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to encode events"})
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, key, data); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
		}
	}

	writeJSON(w, http.StatusOK, data)
}

// parseYear accepts "upcoming" in any case or a four digit year between 2000
// and 2100. Surrounding whitespace is ignored.
func parseYear(raw string) (repository.EventFilter, error) {
	v := strings.TrimSpace(raw)
	if strings.EqualFold(v, "upcoming") {
		return repository.EventFilter{}, nil
	}

	if len(v) != 4 || strings.Trim(v, "0123456789") != "" {
		return repository.EventFilter{}, fmt.Errorf("invalid year %q", raw)
	}
	year, err := strconv.Atoi(v)
	if err != nil || year < 2000 || year > 2100 {
		return repository.EventFilter{}, fmt.Errorf("invalid year %q", raw)
	}
	return repository.EventFilter{Year: year}, nil
}

// cacheKey keys a response by sport and parsed year
func cacheKey(sport models.Sport, filter repository.EventFilter) string {
	if filter.Year == 0 {
		return fmt.Sprintf("events:%s:upcoming", sport)
	}
	return fmt.Sprintf("events:%s:%d", sport, filter.Year)
}

func toEvent(t *models.Tournament) Event {
	e := Event{
		CountryCode:   t.CountryCode.String,
		Name:          t.Name.String,
		Gender:        t.Gender.String,
		OrganizerType: t.OrganizerType.String,
		Type:          t.Type.String,
		Website:       t.Website.String,
	}
	if season, err := strconv.Atoi(t.Season.String); err == nil && season != 0 {
		e.Season = &season
	}
	if t.StartDate.Valid {
		e.StartDate = t.StartDate.Time.Format(models.DateLayout)
	}
	if t.EndDate.Valid {
		e.EndDate = t.EndDate.Time.Format(models.DateLayout)
	}
	return e
}
