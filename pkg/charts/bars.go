package charts

import (
	"fmt"
	"io"
	"math"

	"github.com/llgcode/draw2d/draw2dkit"
	"github.com/llgcode/draw2d/draw2dsvg"

	"f1strategydash/pkg/helper"
	"f1strategydash/pkg/model"
)

// RenderTeamConditions draws one bar per team per condition: mean race-lap
// seconds, dry in orange next to wet in blue.
func RenderTeamConditions(w io.Writer, event string, rows []model.TeamConditionStats) error {
	svg := newSVG()
	gc := draw2dsvg.NewGraphicContext(svg)

	title := fmt.Sprintf("Team pace by conditions - %s", event)
	drawFrame(gc, title, "Team", "Mean lap time")
	if len(rows) == 0 {
		return WriteSVG(w, svg)
	}

	teams := []string{}
	seen := map[string]bool{}
	minMean, maxMean := math.Inf(1), math.Inf(-1)
	for _, r := range rows {
		if !seen[r.Team] {
			seen[r.Team] = true
			teams = append(teams, r.Team)
		}
		minMean = math.Min(minMean, r.Mean)
		maxMean = math.Max(maxMean, r.Mean)
	}

	// bars grow from a baseline a bit under the slowest mean, so the
	// differences stay visible
	base := minMean - (maxMean-minMean)*0.25
	if maxMean == minMean {
		base = minMean - 1
	}
	ys := newLinear(base, maxMean, Height-marginBottom, marginTop)

	plotWidth := Width - marginLeft - marginRight
	slot := plotWidth / float64(len(teams))
	barWidth := slot / 3

	byTeam := map[string]map[string]model.TeamConditionStats{}
	for _, r := range rows {
		if byTeam[r.Team] == nil {
			byTeam[r.Team] = map[string]model.TeamConditionStats{}
		}
		byTeam[r.Team][r.Condition] = r
	}

	for i, team := range teams {
		left := marginLeft + float64(i)*slot

		for j, condition := range []string{model.ConditionDry, model.ConditionWet} {
			r, ok := byTeam[team][condition]
			if !ok || r.LapCount == 0 {
				continue
			}
			c := colorDry
			if condition == model.ConditionWet {
				c = colorWet
			}
			x := left + slot/2 + (float64(j)-1)*barWidth
			top := ys.at(r.Mean)

			gc.Save()
			gc.SetFillColor(c)
			draw2dkit.Rectangle(gc, x, top, x+barWidth-2, Height-marginBottom)
			gc.Fill()
			gc.Restore()

			gc.Save()
			gc.SetFillColor(colorText)
			gc.SetFontSize(8)
			gc.FillStringAt(helper.SecondsToMinutes(r.Mean), x-4, top-4)
			gc.Restore()
		}

		gc.Save()
		gc.SetFillColor(colorText)
		gc.SetFontSize(9)
		gc.FillStringAt(shorten(team), left+6, Height-marginBottom+16)
		gc.Restore()
	}

	return WriteSVG(w, svg)
}

func shorten(team string) string {
	if len(team) <= 12 {
		return team
	}
	return team[:12] + "."
}
