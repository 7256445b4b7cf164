package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"volleypro/ingestion/internal/metrics"
	"volleypro/ingestion/internal/models"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the VIS XmlRequest endpoint
const DefaultBaseURL = "https://www.fivb.org/Vis2009/XmlRequest.asmx"

// StatusError is returned when the feed answers with a non-2xx status
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("feed returned status %d: %s", e.StatusCode, e.Body)
}

// Client fetches raw tournament documents from the FIVB VIS feed
type Client struct {
	baseURL    string
	firstDate  string
	httpClient *http.Client
}

// NewClient creates a new VIS feed client. Requests are single blocking GETs:
// no retry and no client-side timeout.
func NewClient(baseURL, firstDate string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:   baseURL,
		firstDate: firstDate,
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// BuildRequestURL embeds the sport's VIS XML request document as the Request
// query value of baseURL.
func BuildRequestURL(baseURL string, sport models.Sport, firstDate string) string {
	req := sport.FeedRequest()
	doc := fmt.Sprintf(
		`<Requests><Request Type="%s" Fields="%s"><Filter FirstDate="%s" Statuses="%s"/></Request></Requests>`,
		req.Type, req.Fields, firstDate, req.Statuses,
	)
	// VIS expects %20 for spaces inside the request document
	encoded := strings.ReplaceAll(url.QueryEscape(doc), "+", "%20")
	return baseURL + "?Request=" + encoded
}

// FetchTournaments performs one GET for the sport's tournament list and returns
// the raw XML body
func (c *Client) FetchTournaments(ctx context.Context, sport models.Sport) ([]byte, error) {
	reqURL := BuildRequestURL(c.baseURL, sport, c.firstDate)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/xml, application/xml;q=0.9, */*;q=0.1")
	req.Header.Set("User-Agent", "volleypro-ingestion/1.0")

	log.Debug().
		Str("sport", string(sport)).
		Str("url", reqURL).
		Msg("Requesting tournament feed")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordFeedRequest(string(sport), "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordFeedRequest(string(sport), "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordFeedRequest(string(sport), fmt.Sprintf("%d", resp.StatusCode), time.Since(start).Seconds())
		return nil, &StatusError{URL: reqURL, StatusCode: resp.StatusCode, Body: truncate(string(body), 256)}
	}

	metrics.RecordFeedRequest(string(sport), "success", time.Since(start).Seconds())
	log.Debug().
		Str("sport", string(sport)).
		Int("status", resp.StatusCode).
		Int("size", len(body)).
		Msg("Feed request successful")

	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
