package model

import (
	"fmt"
	"sort"
	"time"
)

type SessionType string

const (
	SessionQualifying SessionType = "Q"
	SessionRace       SessionType = "R"
	SessionPractice   SessionType = "P"
	SessionSprint     SessionType = "S"
)

func (st SessionType) Name() string {
	switch st {
	case SessionQualifying:
		return "Qualifying"
	case SessionRace:
		return "Race"
	case SessionPractice:
		return "Practice"
	case SessionSprint:
		return "Sprint"
	}
	return string(st)
}

// SessionID identifies one session of one race weekend. It is never
// persisted, only used to address fetches.
type SessionID struct {
	Year int
	Race string
	Type SessionType
}

func (id SessionID) String() string {
	return fmt.Sprintf("%d %s (%s)", id.Year, id.Race, id.Type.Name())
}

// LapRecord is one driver's timing data for one lap, normalized from the
// upstream response. Times are in seconds; zero means "not set" (in-lap,
// out-lap, red flag).
type LapRecord struct {
	Driver   string    `json:"driver"` // three-letter code, e.g. "VER"
	Name     string    `json:"name"`
	Team     string    `json:"team"`
	Lap      int       `json:"lap"`
	Start    time.Time `json:"start"`
	Time     float64   `json:"time"`
	S1       float64   `json:"s1"`
	S2       float64   `json:"s2"`
	S3       float64   `json:"s3"`
	Position int       `json:"position"`
	Compound string    `json:"compound"`
}

// WeatherSample is one weather reading during a session.
type WeatherSample struct {
	Time      time.Time `json:"time"`
	AirTemp   float64   `json:"airTemp"`
	TrackTemp float64   `json:"trackTemp"`
	Humidity  float64   `json:"humidity"`
	Rainfall  float64   `json:"rainfall"`
}

// Result is one entry of the final classification of a session.
type Result struct {
	Driver   string  `json:"driver"`
	Name     string  `json:"name"`
	Team     string  `json:"team"`
	Position int     `json:"position"`
	Points   float64 `json:"points"`
	Status   string  `json:"status"`
	Best     float64 `json:"best,omitempty"` // best lap seconds, qualifying only
}

// SessionData is a fully loaded session. Laps and Weather are read-only
// inputs once fetched; derived views are recomputed from them on demand.
type SessionData struct {
	ID      SessionID       `json:"id"`
	Event   string          `json:"event"` // official event name
	Laps    []LapRecord     `json:"laps"`
	Weather []WeatherSample `json:"weather"`
	Results []Result        `json:"results"`
}

// Drivers returns the unique driver codes present in the lap data, sorted.
func (s *SessionData) Drivers() []string {
	seen := map[string]bool{}
	for _, lap := range s.Laps {
		seen[lap.Driver] = true
	}
	drivers := make([]string, 0, len(seen))
	for d := range seen {
		drivers = append(drivers, d)
	}
	sort.Strings(drivers)
	return drivers
}

// Teams returns the unique team names present in the lap data, sorted.
func (s *SessionData) Teams() []string {
	seen := map[string]bool{}
	for _, lap := range s.Laps {
		seen[lap.Team] = true
	}
	teams := make([]string, 0, len(seen))
	for t := range seen {
		teams = append(teams, t)
	}
	sort.Strings(teams)
	return teams
}

func (s *SessionData) HasDriver(code string) bool {
	for _, lap := range s.Laps {
		if lap.Driver == code {
			return true
		}
	}
	return false
}

// LapsForDriver returns the driver's laps ordered by lap number.
func (s *SessionData) LapsForDriver(code string) []LapRecord {
	laps := []LapRecord{}
	for _, lap := range s.Laps {
		if lap.Driver == code {
			laps = append(laps, lap)
		}
	}
	sort.Slice(laps, func(i, j int) bool { return laps[i].Lap < laps[j].Lap })
	return laps
}

// WeatherAt returns the weather sample closest in time to t. The bool is
// false when the session carries no weather data.
func (s *SessionData) WeatherAt(t time.Time) (WeatherSample, bool) {
	if len(s.Weather) == 0 {
		return WeatherSample{}, false
	}
	best := s.Weather[0]
	bestDiff := absDuration(t.Sub(best.Time))
	for _, w := range s.Weather[1:] {
		diff := absDuration(t.Sub(w.Time))
		if diff < bestDiff {
			best = w
			bestDiff = diff
		}
	}
	return best, true
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// LapDelta pairs one lap of two drivers. Delta is TimeA - TimeB, so a
// negative value means driver A was faster on that lap.
type LapDelta struct {
	Lap   int     `json:"lap"`
	TimeA float64 `json:"timeA"`
	TimeB float64 `json:"timeB"`
	Delta float64 `json:"delta"`
}

// DriverComparison is the paired per-lap view of two drivers in a session.
type DriverComparison struct {
	Session SessionID  `json:"session"`
	DriverA string     `json:"driverA"`
	DriverB string     `json:"driverB"`
	Laps    []LapDelta `json:"laps"`
}

// GridFinish is one row of the qualifying-vs-race view. Delta is
// QualiPos - RacePos: positive means places gained on Sunday.
type GridFinish struct {
	Driver   string `json:"driver"`
	Name     string `json:"name"`
	Team     string `json:"team"`
	QualiPos int    `json:"qualiPos"`
	RacePos  int    `json:"racePos"`
	Delta    int    `json:"delta"`
}

const (
	ConditionDry = "dry"
	ConditionWet = "wet"
)

// TeamConditionStats aggregates a team's lap times under one weather
// condition.
type TeamConditionStats struct {
	Team      string  `json:"team"`
	Condition string  `json:"condition"`
	LapCount  int     `json:"lapCount"`
	Mean      float64 `json:"mean"`
	Median    float64 `json:"median"`
	StdDev    float64 `json:"stdDev"`
	Best      float64 `json:"best"`
}

// RaceAvailable is published when the watcher sees a race whose date has
// passed, meaning results can now be fetched.
type RaceAvailable struct {
	Year int    `json:"year"`
	Race string `json:"race"`
	Date string `json:"date"`
}

func (ra RaceAvailable) String() string {
	return fmt.Sprintf("  ▸ Season: %d\n  ▸ Race: %s\n  ▸ Date: %s", ra.Year, ra.Race, ra.Date)
}
