package pipeline

import (
	"context"
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"f1strategydash/pkg/ergast"
	"f1strategydash/pkg/model"
)

// QualifyingVsRace loads the qualifying and race classifications of a race
// weekend and joins them on driver code. Drivers present in only one of the
// two sessions (e.g. a DNS after qualifying, or a pit-lane start without a
// qualifying time) are excluded from the joined view. Rows are ordered by
// race position.
func (p *Pipeline) QualifyingVsRace(ctx context.Context, year int, race string) ([]model.GridFinish, error) {
	round, err := p.results.FindRound(ctx, year, race)
	if err != nil {
		if errors.Is(err, ergast.ErrNoData) {
			return nil, errors.Wrapf(ErrDataUnavailable, "%d %s", year, race)
		}
		return nil, errors.Wrapf(ErrUpstream, "resolving round: %v", err)
	}

	quali, err := p.results.QualifyingResults(ctx, year, round.Round)
	if err != nil {
		if errors.Is(err, ergast.ErrNoData) {
			return nil, errors.Wrapf(ErrDataUnavailable, "qualifying %d %s", year, race)
		}
		return nil, errors.Wrapf(ErrUpstream, "fetching qualifying: %v", err)
	}
	raceRes, err := p.results.RaceResults(ctx, year, round.Round)
	if err != nil {
		if errors.Is(err, ergast.ErrNoData) {
			return nil, errors.Wrapf(ErrDataUnavailable, "race %d %s", year, race)
		}
		return nil, errors.Wrapf(ErrUpstream, "fetching race results: %v", err)
	}

	qualiPos := map[string]int{}
	for _, q := range quali.QualifyingResults {
		pos, _ := strconv.Atoi(q.Position)
		qualiPos[q.Driver.Code] = pos
	}

	rows := []model.GridFinish{}
	for _, r := range raceRes.Results {
		qp, ok := qualiPos[r.Driver.Code]
		if !ok {
			continue
		}
		rp, _ := strconv.Atoi(r.Position)
		rows = append(rows, model.GridFinish{
			Driver:   r.Driver.Code,
			Name:     r.Driver.FullName(),
			Team:     r.Constructor.Name,
			QualiPos: qp,
			RacePos:  rp,
			Delta:    qp - rp,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].RacePos < rows[j].RacePos })
	return rows, nil
}
