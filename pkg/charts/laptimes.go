package charts

import (
	"fmt"
	"io"
	"math"

	"github.com/llgcode/draw2d/draw2dsvg"

	"f1strategydash/pkg/helper"
	"f1strategydash/pkg/model"
)

// RenderLapTimes draws one lap-time line per driver. Untimed laps (in-laps,
// red flags) break the line instead of plunging it to zero.
func RenderLapTimes(w io.Writer, s *model.SessionData, drivers []string) error {
	svg := newSVG()
	gc := draw2dsvg.NewGraphicContext(svg)

	minTime, maxTime := math.Inf(1), math.Inf(-1)
	maxLap := 0
	for _, d := range drivers {
		for _, lap := range s.LapsForDriver(d) {
			if lap.Time <= 0 {
				continue
			}
			minTime = math.Min(minTime, lap.Time)
			maxTime = math.Max(maxTime, lap.Time)
			if lap.Lap > maxLap {
				maxLap = lap.Lap
			}
		}
	}

	title := fmt.Sprintf("Lap times - %s", s.ID)
	drawFrame(gc, title, "Lap", "Lap time")
	if maxLap == 0 {
		return WriteSVG(w, svg)
	}

	// small head room so the extremes don't sit on the frame
	pad := (maxTime - minTime) * 0.05
	if pad == 0 {
		pad = 0.5
	}
	xs := newLinear(1, float64(maxLap), marginLeft, Width-marginRight)
	ys := newLinear(minTime-pad, maxTime+pad, Height-marginBottom, marginTop)

	gc.Save()
	gc.SetFillColor(colorText)
	gc.SetFontSize(9)
	for _, v := range []float64{minTime, maxTime} {
		y := ys.at(v)
		drawHGrid(gc, y)
		gc.FillStringAt(helper.SecondsToMinutes(v), 6, y+3)
	}
	gc.Restore()

	for i, d := range drivers {
		laps := s.LapsForDriver(d)
		c := paletteColor(i)
		if len(laps) > 0 {
			c = teamColor(laps[0].Team, i)
		}

		gc.Save()
		gc.SetStrokeColor(c)
		gc.SetLineWidth(2)
		penDown := false
		for _, lap := range laps {
			if lap.Time <= 0 {
				penDown = false
				continue
			}
			x := xs.at(float64(lap.Lap))
			y := ys.at(lap.Time)
			if !penDown {
				gc.MoveTo(x, y)
				penDown = true
			} else {
				gc.LineTo(x, y)
			}
		}
		gc.Stroke()
		gc.Restore()

		gc.Save()
		gc.SetFillColor(c)
		gc.SetFontSize(10)
		gc.FillStringAt(d, Width-marginRight-40, marginTop+float64(i)*14)
		gc.Restore()
	}

	return WriteSVG(w, svg)
}
