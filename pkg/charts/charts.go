package charts

import (
	"encoding/xml"
	"image/color"
	"io"

	"github.com/llgcode/draw2d"
	"github.com/llgcode/draw2d/draw2dsvg"
)

// Canvas geometry shared by all chart renderers.
const (
	Width  = 800.0
	Height = 480.0

	marginLeft   = 70.0
	marginRight  = 30.0
	marginTop    = 40.0
	marginBottom = 56.0
)

var (
	colorAxis  = color.RGBA{0x33, 0x33, 0x33, 0xff}
	colorGrid  = color.RGBA{0xdd, 0xdd, 0xdd, 0xff}
	colorText  = color.RGBA{0x22, 0x22, 0x22, 0xff}
	colorWet   = color.RGBA{0x00, 0x5a, 0xff, 0xff}
	colorDry   = color.RGBA{0xff, 0x8c, 0x00, 0xff}
	colorTrend = color.RGBA{0x99, 0x99, 0x99, 0xff}
)

// official-ish liveries, fallback palette below covers the rest
var teamColors = map[string]color.RGBA{
	"Red Bull Racing": {0x1e, 0x41, 0xff, 0xff},
	"Mercedes":        {0x00, 0xd2, 0xbe, 0xff},
	"Ferrari":         {0xdc, 0x14, 0x3c, 0xff},
	"McLaren":         {0xff, 0x87, 0x00, 0xff},
	"Alpine":          {0x00, 0x90, 0xff, 0xff},
	"Aston Martin":    {0x00, 0x6f, 0x62, 0xff},
	"Williams":        {0x00, 0x5a, 0xff, 0xff},
	"AlphaTauri":      {0x2b, 0x45, 0x62, 0xff},
	"RB":              {0x2b, 0x45, 0x62, 0xff},
	"Alfa Romeo":      {0x90, 0x00, 0x00, 0xff},
	"Kick Sauber":     {0x90, 0x00, 0x00, 0xff},
	"Haas F1 Team":    {0x78, 0x78, 0x78, 0xff},
}

var palette = []color.RGBA{
	{0x1e, 0x41, 0xff, 0xff},
	{0xdc, 0x14, 0x3c, 0xff},
	{0x00, 0x6f, 0x62, 0xff},
	{0xff, 0x87, 0x00, 0xff},
	{0x00, 0xd2, 0xbe, 0xff},
	{0x90, 0x00, 0x00, 0xff},
	{0x2b, 0x45, 0x62, 0xff},
	{0x78, 0x78, 0x78, 0xff},
}

func teamColor(team string, fallback int) color.RGBA {
	if c, ok := teamColors[team]; ok {
		return c
	}
	return paletteColor(fallback)
}

func paletteColor(i int) color.RGBA {
	return palette[i%len(palette)]
}

// linear maps a data value into pixel space.
type linear struct {
	min, max float64
	from, to float64
}

func newLinear(min, max, from, to float64) linear {
	if max == min {
		max = min + 1
	}
	return linear{min: min, max: max, from: from, to: to}
}

func (l linear) at(v float64) float64 {
	return l.from + (v-l.min)/(l.max-l.min)*(l.to-l.from)
}

func newSVG() *draw2dsvg.Svg {
	svg := draw2dsvg.NewSvg()
	svg.Width = "800px"
	svg.Height = "480px"
	svg.FontMode = draw2dsvg.SysFontMode
	return svg
}

// WriteSVG encodes the finished canvas the same way draw2dsvg writes files,
// just onto a writer so handlers can stream it.
func WriteSVG(w io.Writer, svg *draw2dsvg.Svg) error {
	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return err
	}
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "\t")
	return encoder.Encode(svg)
}

// drawFrame paints the plot background, axes and title.
func drawFrame(gc draw2d.GraphicContext, title, xLabel, yLabel string) {
	gc.Save()
	gc.SetStrokeColor(colorAxis)
	gc.SetLineWidth(1.5)
	gc.MoveTo(marginLeft, marginTop)
	gc.LineTo(marginLeft, Height-marginBottom)
	gc.LineTo(Width-marginRight, Height-marginBottom)
	gc.Stroke()
	gc.Restore()

	gc.Save()
	gc.SetFillColor(colorText)
	gc.SetFontSize(13)
	gc.FillStringAt(title, marginLeft, marginTop-16)
	gc.SetFontSize(10)
	gc.FillStringAt(xLabel, Width/2-40, Height-14)
	gc.FillStringAt(yLabel, 8, marginTop-16)
	gc.Restore()
}

func drawHGrid(gc draw2d.GraphicContext, y float64) {
	gc.Save()
	gc.SetStrokeColor(colorGrid)
	gc.SetLineWidth(0.5)
	gc.MoveTo(marginLeft, y)
	gc.LineTo(Width-marginRight, y)
	gc.Stroke()
	gc.Restore()
}
