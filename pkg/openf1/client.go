package openf1

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

const DefaultBaseURL = "https://api.openf1.org/v1"

var (
	// ErrNoSession means no session of the live-timing API matches the
	// requested year/race/type.
	ErrNoSession = errors.New("openf1: no matching session")
)

// Client talks to an openf1-compatible live-timing API.
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

func (c *Client) get(ctx context.Context, path string, out any) error {
	url := fmt.Sprintf("%s/%s", c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrapf(err, "building request for %s", url)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return errors.Wrapf(err, "requesting %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %s for %s", resp.Status, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "reading response of %s", url)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(err, "decoding response of %s", url)
	}
	return nil
}

// wireSessionType maps the dashboard's one-letter session codes onto the
// live API's session_type values. Sprints are typed "Race" upstream and
// told apart by session_name.
func wireSessionType(sessionType string) (apiType, wantName string) {
	switch sessionType {
	case "Q":
		return "Qualifying", ""
	case "P":
		return "Practice", ""
	case "R":
		return "Race", "Race"
	case "S":
		return "Race", "Sprint"
	}
	return sessionType, ""
}

// FindSession resolves (year, race name, session type) to a session of the
// live-timing API. The race name is matched case-insensitively against
// country, location and circuit ("Bahrain Grand Prix" matches country
// "Bahrain").
func (c *Client) FindSession(ctx context.Context, year int, race, sessionType string) (Session, error) {
	apiType, wantName := wireSessionType(sessionType)

	var sessions []Session
	path := fmt.Sprintf("sessions?year=%d&session_type=%s", year, apiType)
	if err := c.get(ctx, path, &sessions); err != nil {
		return Session{}, err
	}
	needle := strings.ToLower(race)
	for _, s := range sessions {
		if wantName != "" && s.SessionName != wantName {
			continue
		}
		if matchesRace(needle, s) {
			return s, nil
		}
	}
	return Session{}, errors.Wrapf(ErrNoSession, "%d %q (%s)", year, race, sessionType)
}

func matchesRace(needle string, s Session) bool {
	for _, candidate := range []string{s.CountryName, s.Location, s.CircuitShortName} {
		if candidate == "" {
			continue
		}
		if strings.Contains(needle, strings.ToLower(candidate)) ||
			strings.Contains(strings.ToLower(candidate), needle) {
			return true
		}
	}
	return false
}

// Laps returns all laps of a session ordered as the API delivers them.
func (c *Client) Laps(ctx context.Context, sessionKey int) ([]Lap, error) {
	var laps []Lap
	if err := c.get(ctx, fmt.Sprintf("laps?session_key=%d", sessionKey), &laps); err != nil {
		return nil, err
	}
	return laps, nil
}

// Stints returns the tyre stints of a session.
func (c *Client) Stints(ctx context.Context, sessionKey int) ([]Stint, error) {
	var stints []Stint
	if err := c.get(ctx, fmt.Sprintf("stints?session_key=%d", sessionKey), &stints); err != nil {
		return nil, err
	}
	return stints, nil
}

// WeatherData returns the weather samples of a session.
func (c *Client) WeatherData(ctx context.Context, sessionKey int) ([]Weather, error) {
	var samples []Weather
	if err := c.get(ctx, fmt.Sprintf("weather?session_key=%d", sessionKey), &samples); err != nil {
		return nil, err
	}
	return samples, nil
}

// Drivers returns the entry list of a session.
func (c *Client) Drivers(ctx context.Context, sessionKey int) ([]Driver, error) {
	var drivers []Driver
	if err := c.get(ctx, fmt.Sprintf("drivers?session_key=%d", sessionKey), &drivers); err != nil {
		return nil, err
	}
	return drivers, nil
}
