package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/pkg/errors"

	"f1strategydash/pkg/ergast"
	"f1strategydash/pkg/model"
)

// PreloadSeason walks every completed race of a season and loads its race
// session, warming whatever caches sit between us and the upstream APIs.
// Failures of single races are logged and skipped; only a missing season is
// an error. Returns the number of races loaded.
func (p *Pipeline) PreloadSeason(ctx context.Context, year int) (int, error) {
	races, err := p.results.Schedule(ctx, year)
	if err != nil {
		if errors.Is(err, ergast.ErrNoData) {
			return 0, errors.Wrapf(ErrDataUnavailable, "season %d", year)
		}
		return 0, errors.Wrapf(ErrUpstream, "fetching schedule: %v", err)
	}

	completed := []ergast.Race{}
	now := time.Now()
	for _, r := range races {
		date, err := time.Parse("2006-01-02", r.Date)
		if err != nil || date.After(now) {
			continue
		}
		completed = append(completed, r)
	}

	pw := progress.NewWriter()
	pw.SetAutoStop(true)
	pw.SetTrackerLength(34)
	pw.SetNumTrackersExpected(1)
	pw.SetTrackerPosition(progress.PositionRight)
	pw.SetUpdateFrequency(time.Millisecond * 100)
	pw.Style().Chars.BoxLeft = "|"
	pw.Style().Chars.BoxRight = "🏁"
	go pw.Render()

	tracker := progress.Tracker{Message: "preloading season", Total: int64(len(completed))}
	pw.AppendTracker(&tracker)

	loaded := 0
	for _, r := range completed {
		if _, err := p.LoadSession(ctx, year, r.RaceName, model.SessionRace); err != nil {
			log.Printf("preload: skipping %s: %s\n", r.RaceName, err)
		} else {
			loaded++
		}
		tracker.Increment(1)
	}
	tracker.MarkAsDone()
	return loaded, nil
}
