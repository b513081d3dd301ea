package ergast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const DefaultBaseURL = "https://api.jolpi.ca/ergast/f1"

// lap timing rows per page; jolpi.ca caps limit at 100, so a full race
// (~1100 rows) takes several pages
const lapTimingsPageSize = 100

var (
	// ErrNoData means the API answered but holds nothing for the requested
	// year/round, e.g. a race that has not happened yet.
	ErrNoData = errors.New("ergast: no data for request")
)

// Client talks to an ergast-compatible results API.
type Client struct {
	baseURL string
	hc      *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      http.DefaultClient,
	}
}

func (c *Client) get(ctx context.Context, path string) (*Response, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "building request for %s", url)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "requesting %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.Wrapf(ErrNoData, "%s", url)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status %s for %s", resp.Status, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "reading response of %s", url)
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, errors.Wrapf(err, "decoding response of %s", url)
	}
	return &out, nil
}

// Schedule returns all races of a season.
func (c *Client) Schedule(ctx context.Context, year int) ([]Race, error) {
	resp, err := c.get(ctx, fmt.Sprintf("%d.json", year))
	if err != nil {
		return nil, err
	}
	if len(resp.MRData.RaceTable.Races) == 0 {
		return nil, errors.Wrapf(ErrNoData, "season %d", year)
	}
	return resp.MRData.RaceTable.Races, nil
}

// FindRound resolves a race name ("Bahrain Grand Prix", or just "Bahrain")
// to its schedule entry within a season. Matching is case-insensitive on
// race name and circuit name.
func (c *Client) FindRound(ctx context.Context, year int, race string) (Race, error) {
	races, err := c.Schedule(ctx, year)
	if err != nil {
		return Race{}, err
	}
	needle := strings.ToLower(strings.TrimSpace(race))
	for _, r := range races {
		if strings.Contains(strings.ToLower(r.RaceName), needle) ||
			strings.Contains(strings.ToLower(r.Circuit.CircuitName), needle) {
			return r, nil
		}
	}
	return Race{}, errors.Wrapf(ErrNoData, "no race matching %q in %d", race, year)
}

// RaceResults returns the final race classification for a round.
func (c *Client) RaceResults(ctx context.Context, year int, round string) (Race, error) {
	resp, err := c.get(ctx, fmt.Sprintf("%d/%s/results.json", year, round))
	if err != nil {
		return Race{}, err
	}
	races := resp.MRData.RaceTable.Races
	if len(races) == 0 || len(races[0].Results) == 0 {
		return Race{}, errors.Wrapf(ErrNoData, "race results %d round %s", year, round)
	}
	return races[0], nil
}

// QualifyingResults returns the qualifying classification for a round.
func (c *Client) QualifyingResults(ctx context.Context, year int, round string) (Race, error) {
	resp, err := c.get(ctx, fmt.Sprintf("%d/%s/qualifying.json", year, round))
	if err != nil {
		return Race{}, err
	}
	races := resp.MRData.RaceTable.Races
	if len(races) == 0 || len(races[0].QualifyingResults) == 0 {
		return Race{}, errors.Wrapf(ErrNoData, "qualifying results %d round %s", year, round)
	}
	return races[0], nil
}

// LapTimings returns the per-lap position and time table of a race. The API
// paginates at the timing-row level and may split one lap across pages, so
// pages are fetched until MRData.total rows are consumed and laps with the
// same number are merged.
func (c *Client) LapTimings(ctx context.Context, year int, round string) ([]Lap, error) {
	laps := []Lap{}
	byNumber := map[string]int{}

	for offset := 0; ; offset += lapTimingsPageSize {
		path := fmt.Sprintf("%d/%s/laps.json?limit=%d&offset=%d", year, round, lapTimingsPageSize, offset)
		resp, err := c.get(ctx, path)
		if err != nil {
			return nil, err
		}

		rows := 0
		races := resp.MRData.RaceTable.Races
		if len(races) > 0 {
			for _, lap := range races[0].Laps {
				rows += len(lap.Timings)
				if i, ok := byNumber[lap.Number]; ok {
					laps[i].Timings = append(laps[i].Timings, lap.Timings...)
					continue
				}
				byNumber[lap.Number] = len(laps)
				laps = append(laps, lap)
			}
		}

		total, _ := strconv.Atoi(resp.MRData.Total)
		if rows == 0 || offset+lapTimingsPageSize >= total {
			break
		}
	}

	if len(laps) == 0 {
		return nil, errors.Wrapf(ErrNoData, "lap timings %d round %s", year, round)
	}
	return laps, nil
}
