package pipeline

import (
	"context"
	"sort"

	"github.com/montanaflynn/stats"

	"f1strategydash/pkg/model"
)

// TeamWeatherBreakdown loads the race of a weekend and aggregates lap times
// per team per weather condition. A lap counts as wet when the weather
// sample nearest to its start reports rainfall above the configured
// threshold.
func (p *Pipeline) TeamWeatherBreakdown(ctx context.Context, year int, race string) ([]model.TeamConditionStats, error) {
	s, err := p.LoadSession(ctx, year, race, model.SessionRace)
	if err != nil {
		return nil, err
	}
	return BreakdownByCondition(s, p.cfg.WetThreshold), nil
}

// BreakdownByCondition is the pure aggregation step: it buckets a session's
// laps into wet/dry by timestamp-proximate weather samples and computes the
// per-team statistics. Laps without a time are skipped; when the session has
// no weather data at all, every lap counts as dry.
func BreakdownByCondition(s *model.SessionData, wetThreshold float64) []model.TeamConditionStats {
	samples := map[string]map[string][]float64{}
	for _, lap := range s.Laps {
		if lap.Time <= 0 {
			continue
		}
		condition := model.ConditionDry
		if w, ok := s.WeatherAt(lap.Start); ok && w.Rainfall > wetThreshold {
			condition = model.ConditionWet
		}
		if samples[lap.Team] == nil {
			samples[lap.Team] = map[string][]float64{}
		}
		samples[lap.Team][condition] = append(samples[lap.Team][condition], lap.Time)
	}

	out := []model.TeamConditionStats{}
	for team, byCondition := range samples {
		for condition, times := range byCondition {
			mean, _ := stats.Mean(times)
			median, _ := stats.Median(times)
			stdDev, _ := stats.StandardDeviation(times)
			best, _ := stats.Min(times)
			out = append(out, model.TeamConditionStats{
				Team:      team,
				Condition: condition,
				LapCount:  len(times),
				Mean:      mean,
				Median:    median,
				StdDev:    stdDev,
				Best:      best,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Team != out[j].Team {
			return out[i].Team < out[j].Team
		}
		return out[i].Condition < out[j].Condition
	})
	return out
}
