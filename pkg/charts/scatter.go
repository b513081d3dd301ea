package charts

import (
	"fmt"
	"image"
	"io"

	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	"github.com/llgcode/draw2d/draw2dsvg"

	"f1strategydash/pkg/model"
)

// RenderGridFinish draws the qualifying-vs-race scatter. The diagonal marks
// "finished where you started"; points below it gained places.
func RenderGridFinish(w io.Writer, event string, rows []model.GridFinish) error {
	svg := newSVG()
	gc := draw2dsvg.NewGraphicContext(svg)

	title := fmt.Sprintf("Grid vs finish - %s", event)
	drawFrame(gc, title, "Qualifying position", "Race position")
	if len(rows) == 0 {
		return WriteSVG(w, svg)
	}

	maxPos := 0
	for _, r := range rows {
		if r.QualiPos > maxPos {
			maxPos = r.QualiPos
		}
		if r.RacePos > maxPos {
			maxPos = r.RacePos
		}
	}

	xs := newLinear(0.5, float64(maxPos)+0.5, marginLeft, Width-marginRight)
	ys := newLinear(0.5, float64(maxPos)+0.5, marginTop, Height-marginBottom)

	gc.Save()
	gc.SetStrokeColor(colorTrend)
	gc.SetLineWidth(1)
	gc.MoveTo(xs.at(0.5), ys.at(0.5))
	gc.LineTo(xs.at(float64(maxPos)+0.5), ys.at(float64(maxPos)+0.5))
	gc.Stroke()
	gc.Restore()

	for i, r := range rows {
		c := teamColor(r.Team, i)
		x := xs.at(float64(r.QualiPos))
		y := ys.at(float64(r.RacePos))

		gc.Save()
		gc.SetFillColor(c)
		draw2dkit.Circle(gc, x, y, 5)
		gc.Fill()
		gc.Restore()

		gc.Save()
		gc.SetFillColor(colorText)
		gc.SetFontSize(8)
		gc.FillStringAt(r.Driver, x+7, y+3)
		gc.Restore()
	}

	return WriteSVG(w, svg)
}

// RenderGridFinishPNG writes a small label-free thumbnail of the scatter,
// for embedding where SVG is not an option.
func RenderGridFinishPNG(path string, rows []model.GridFinish) error {
	const size = 240.0
	rect := image.Rect(0, 0, int(size), int(size))
	dest := image.NewRGBA(rect)
	gc := draw2dimg.NewGraphicContext(dest)

	maxPos := 1
	for _, r := range rows {
		if r.QualiPos > maxPos {
			maxPos = r.QualiPos
		}
		if r.RacePos > maxPos {
			maxPos = r.RacePos
		}
	}
	xs := newLinear(0.5, float64(maxPos)+0.5, 10, size-10)
	ys := newLinear(0.5, float64(maxPos)+0.5, 10, size-10)

	gc.Save()
	gc.SetStrokeColor(colorTrend)
	gc.SetLineWidth(1)
	gc.MoveTo(xs.at(0.5), ys.at(0.5))
	gc.LineTo(xs.at(float64(maxPos)+0.5), ys.at(float64(maxPos)+0.5))
	gc.Stroke()
	gc.Restore()

	for i, r := range rows {
		gc.Save()
		gc.SetFillColor(teamColor(r.Team, i))
		draw2dkit.Circle(gc, xs.at(float64(r.QualiPos)), ys.at(float64(r.RacePos)), 3)
		gc.Fill()
		gc.Restore()
	}

	return draw2dimg.SaveToPngFile(path, dest)
}
