package pipeline

import (
	"context"
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"f1strategydash/pkg/ergast"
	"f1strategydash/pkg/helper"
	"f1strategydash/pkg/model"
	"f1strategydash/pkg/openf1"
)

// Config carries the knobs the dashboard leaves open.
type Config struct {
	// WetThreshold is the rainfall value above which a lap counts as wet.
	// The live API reports 0/1, so the default of 0 means "any rain";
	// mm-reporting mirrors can raise it.
	WetThreshold float64

	// DefaultYear is the season preselected on the dashboard.
	DefaultYear int
}

// Pipeline fetches session data from the upstream APIs, normalizes it into
// the model schema and computes the derived views. It holds no state across
// requests; every view is recomputed on demand.
type Pipeline struct {
	results *ergast.Client
	timing  *openf1.Client
	cfg     Config
}

func New(results *ergast.Client, timing *openf1.Client, cfg Config) *Pipeline {
	return &Pipeline{
		results: results,
		timing:  timing,
		cfg:     cfg,
	}
}

func (p *Pipeline) Config() Config {
	return p.cfg
}

// LoadSession fetches and normalizes the lap and weather data of one
// session. Laps, sectors, tyre stints and weather come from the live-timing
// API; the final classification and, for races, the per-lap positions come
// from the results API.
func (p *Pipeline) LoadSession(ctx context.Context, year int, race string, st model.SessionType) (*model.SessionData, error) {
	sess, err := p.timing.FindSession(ctx, year, race, string(st))
	if err != nil {
		if errors.Is(err, openf1.ErrNoSession) {
			return nil, errors.Wrapf(ErrDataUnavailable, "%d %s (%s)", year, race, st)
		}
		return nil, errors.Wrapf(ErrUpstream, "finding session: %v", err)
	}

	drivers, err := p.timing.Drivers(ctx, sess.SessionKey)
	if err != nil {
		return nil, errors.Wrapf(ErrUpstream, "fetching drivers: %v", err)
	}
	laps, err := p.timing.Laps(ctx, sess.SessionKey)
	if err != nil {
		return nil, errors.Wrapf(ErrUpstream, "fetching laps: %v", err)
	}
	if len(laps) == 0 {
		return nil, errors.Wrapf(ErrDataUnavailable, "no lap data yet for %d %s (%s)", year, race, st)
	}
	stints, err := p.timing.Stints(ctx, sess.SessionKey)
	if err != nil {
		return nil, errors.Wrapf(ErrUpstream, "fetching stints: %v", err)
	}
	weather, err := p.timing.WeatherData(ctx, sess.SessionKey)
	if err != nil {
		return nil, errors.Wrapf(ErrUpstream, "fetching weather: %v", err)
	}

	data := &model.SessionData{
		ID:    model.SessionID{Year: year, Race: race, Type: st},
		Event: sess.CountryName,
	}
	byNumber := map[int]openf1.Driver{}
	for _, d := range drivers {
		byNumber[d.DriverNumber] = d
	}
	for _, lap := range laps {
		d := byNumber[lap.DriverNumber]
		code := d.NameAcronym
		if code == "" {
			code = helper.GetDriverCodeName(d.FullName)
		}
		data.Laps = append(data.Laps, model.LapRecord{
			Driver:   code,
			Name:     d.FullName,
			Team:     d.TeamName,
			Lap:      lap.LapNumber,
			Start:    lap.DateStart,
			Time:     lap.LapDuration,
			S1:       lap.DurationSector1,
			S2:       lap.DurationSector2,
			S3:       lap.DurationSector3,
			Compound: compoundFor(stints, lap.DriverNumber, lap.LapNumber),
		})
	}
	sort.Slice(data.Laps, func(i, j int) bool {
		if data.Laps[i].Driver != data.Laps[j].Driver {
			return data.Laps[i].Driver < data.Laps[j].Driver
		}
		return data.Laps[i].Lap < data.Laps[j].Lap
	})

	for _, w := range weather {
		data.Weather = append(data.Weather, model.WeatherSample{
			Time:      w.Date,
			AirTemp:   w.AirTemperature,
			TrackTemp: w.TrackTemperature,
			Humidity:  w.Humidity,
			Rainfall:  w.Rainfall,
		})
	}

	// classification enrichment is best-effort: lap data alone is already a
	// usable session
	if err := p.attachClassification(ctx, data); err != nil && !errors.Is(err, ergast.ErrNoData) {
		return nil, errors.Wrapf(ErrUpstream, "fetching classification: %v", err)
	}

	return data, nil
}

func compoundFor(stints []openf1.Stint, driverNumber, lap int) string {
	for _, s := range stints {
		if s.DriverNumber == driverNumber && s.Covers(lap) {
			return s.Compound
		}
	}
	return ""
}

// attachClassification fills SessionData.Results from the results API and,
// for races, stamps the per-lap positions onto the lap records.
func (p *Pipeline) attachClassification(ctx context.Context, data *model.SessionData) error {
	round, err := p.results.FindRound(ctx, data.ID.Year, data.ID.Race)
	if err != nil {
		return err
	}
	data.Event = round.RaceName

	switch data.ID.Type {
	case model.SessionQualifying:
		race, err := p.results.QualifyingResults(ctx, data.ID.Year, round.Round)
		if err != nil {
			return err
		}
		for _, q := range race.QualifyingResults {
			pos, _ := strconv.Atoi(q.Position)
			best, _ := helper.ParseLapTime(q.BestTime())
			data.Results = append(data.Results, model.Result{
				Driver:   q.Driver.Code,
				Name:     q.Driver.FullName(),
				Team:     q.Constructor.Name,
				Position: pos,
				Best:     best,
			})
		}
	case model.SessionRace:
		race, err := p.results.RaceResults(ctx, data.ID.Year, round.Round)
		if err != nil {
			return err
		}
		idToCode := map[string]string{}
		for _, r := range race.Results {
			pos, _ := strconv.Atoi(r.Position)
			points, _ := strconv.ParseFloat(r.Points, 64)
			idToCode[r.Driver.DriverID] = r.Driver.Code
			data.Results = append(data.Results, model.Result{
				Driver:   r.Driver.Code,
				Name:     r.Driver.FullName(),
				Team:     r.Constructor.Name,
				Position: pos,
				Points:   points,
				Status:   r.Status,
			})
		}
		// per-lap running positions only exist for races
		timings, err := p.results.LapTimings(ctx, data.ID.Year, round.Round)
		if err != nil {
			if errors.Is(err, ergast.ErrNoData) {
				return nil
			}
			return err
		}
		positions := map[string]map[int]int{}
		for _, lap := range timings {
			n, _ := strconv.Atoi(lap.Number)
			for _, t := range lap.Timings {
				code := idToCode[t.DriverID]
				if code == "" {
					continue
				}
				if positions[code] == nil {
					positions[code] = map[int]int{}
				}
				pos, _ := strconv.Atoi(t.Position)
				positions[code][n] = pos
			}
		}
		for i := range data.Laps {
			data.Laps[i].Position = positions[data.Laps[i].Driver][data.Laps[i].Lap]
		}
	}
	return nil
}
